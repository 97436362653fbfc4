// Package rewards holds the static catalog mapping gamified actions to token
// values. The catalog is built once at startup from configuration and injected
// into the ledger service; it is never mutated at runtime.
package rewards

import "strings"

// Recognized action keys.
const (
	ActionDailyCheckIn     = "DAILY_CHECK_IN"
	ActionPostPublished    = "POST_PUBLISHED"
	ActionCommentPosted    = "COMMENT_POSTED"
	ActionBookingCompleted = "BOOKING_COMPLETED"
	ActionWorkoutCompleted = "WORKOUT_COMPLETED"
	ActionMissionCompleted = "MISSION_COMPLETED" // overridden per-mission by TokenReward
)

// Catalog maps action keys to token values.
type Catalog map[string]int

// NewCatalog copies the given values into a catalog, dropping non-positive
// entries. Keys are uppercased because viper lowercases map keys when
// unmarshalling.
func NewCatalog(values map[string]int) Catalog {
	c := make(Catalog, len(values))
	for key, points := range values {
		if points > 0 {
			c[strings.ToUpper(key)] = points
		}
	}
	return c
}

// Lookup returns the token value for an action and whether the action is
// recognized.
func (c Catalog) Lookup(action string) (int, bool) {
	points, ok := c[action]
	return points, ok
}

// Actions returns the recognized action keys in no particular order.
func (c Catalog) Actions() []string {
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	return keys
}

// DefaultValues are the built-in point values, used as configuration defaults.
func DefaultValues() map[string]int {
	return map[string]int{
		ActionDailyCheckIn:     5,
		ActionPostPublished:    10,
		ActionCommentPosted:    2,
		ActionBookingCompleted: 50,
		ActionWorkoutCompleted: 20,
		ActionMissionCompleted: 25,
	}
}
