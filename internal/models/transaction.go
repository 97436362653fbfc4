package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionKind represents the business reason for a token movement.
type TransactionKind string

const (
	KindEarn     TransactionKind = "earn"
	KindSpend    TransactionKind = "spend"
	KindPurchase TransactionKind = "purchase"
	KindGift     TransactionKind = "gift"
)

// TokenTransaction is a single row in the append-only token ledger.
// Rows are never updated or deleted; BalanceBefore/BalanceAfter are captured
// at write time so the trail can be audited without replaying it.
type TokenTransaction struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TransactionRef  string             `bson:"transactionRef" json:"transactionRef"` // globally unique
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Amount          int                `bson:"amount" json:"amount"` // positive = credit, negative = debit
	Kind            TransactionKind    `bson:"kind" json:"kind"`
	BalanceBefore   int                `bson:"balanceBefore" json:"balanceBefore"`
	BalanceAfter    int                `bson:"balanceAfter" json:"balanceAfter"`
	Description     string             `bson:"description" json:"description"`
	RelatedEntityID string             `bson:"relatedEntityId,omitempty" json:"relatedEntityId,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
