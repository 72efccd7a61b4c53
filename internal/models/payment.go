// internal/models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is append-only; the unique index on bookingId is what stops
// a retried finalization from recording the same sale twice.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string             `bson:"email" json:"email"`
	ProductID     string             `bson:"productId" json:"productId"`
	BookingID     string             `bson:"bookingId" json:"bookingId"`
	Amount        float64            `bson:"amount" json:"amount"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// ReportedProduct entries are not deduplicated; the same product can
// be reported many times. They are deleted en masse when the product
// goes away.
type ReportedProduct struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductID  string             `bson:"productId" json:"productId"`
	ReportedBy string             `bson:"reportedBy,omitempty" json:"reportedBy,omitempty"`
	ReportedAt time.Time          `bson:"reportedAt" json:"reportedAt"`
}
