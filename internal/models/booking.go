// internal/models/booking.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booker is one buyer's reservation entry inside a Booking.
type Booker struct {
	BookerName     string    `bson:"bookerName" json:"bookerName"`
	BookerEmail    string    `bson:"bookerEmail" json:"bookerEmail"`
	BookerLocation string    `bson:"bookerLocation,omitempty" json:"bookerLocation,omitempty"`
	BookerNumber   string    `bson:"bookerNumber,omitempty" json:"bookerNumber,omitempty"`
	BookedAt       time.Time `bson:"bookedAt" json:"bookedAt"`
}

// Booking holds at most one document per productId while the product
// is unsold (unique index on productId). Product fields are snapshots
// captured at first reservation; later product edits never reach the
// booking record. The document survives the sale as the sale record.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductID     string             `bson:"productId" json:"productId"`
	ProductName   string             `bson:"productName" json:"productName"`
	Price         float64            `bson:"price" json:"price"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	SellerEmail   string             `bson:"sellerEmail" json:"sellerEmail"`
	SellerContact string             `bson:"sellerContact,omitempty" json:"sellerContact,omitempty"`
	IsPaid        bool               `bson:"isPaid" json:"isPaid"`
	BoughtBy      string             `bson:"boughtBy,omitempty" json:"boughtBy,omitempty"`
	SellerRemoved bool               `bson:"sellerRemoved,omitempty" json:"sellerRemoved,omitempty"`
	Bookers       []Booker           `bson:"bookers" json:"bookers"`
}
