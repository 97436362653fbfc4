package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Rewards  RewardsConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds verification settings for externally issued bearer tokens
type JWTConfig struct {
	Secret string
}

// RewardsConfig holds the token values for the static reward catalog.
// Loaded once at startup; the catalog built from it is immutable at runtime.
type RewardsConfig struct {
	Catalog map[string]int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "kiweel")
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Rewards.Catalog.DAILY_CHECK_IN", 5)
	viper.SetDefault("Rewards.Catalog.POST_PUBLISHED", 10)
	viper.SetDefault("Rewards.Catalog.COMMENT_POSTED", 2)
	viper.SetDefault("Rewards.Catalog.BOOKING_COMPLETED", 50)
	viper.SetDefault("Rewards.Catalog.WORKOUT_COMPLETED", 20)
	viper.SetDefault("Rewards.Catalog.MISSION_COMPLETED", 25)
}
