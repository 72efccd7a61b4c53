// internal/models/product.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name string             `bson:"name" json:"name"`
}

// Product exists only while it is available: a sold product is removed
// from the collection, so "available" queries are plain existence
// checks.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	SellerEmail   string             `bson:"sellerEmail" json:"sellerEmail,omitempty"`
	SellerName    string             `bson:"sellerName" json:"sellerName"`
	CategoryID    string             `bson:"categoryId" json:"categoryId"`
	Name          string             `bson:"name" json:"name"`
	Price         float64            `bson:"price" json:"price"`
	OriginalPrice float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Condition     string             `bson:"condition,omitempty" json:"condition,omitempty"`
	Location      string             `bson:"location,omitempty" json:"location,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	YearsOfUse    string             `bson:"yearsOfUse,omitempty" json:"yearsOfUse,omitempty"`
	IsAdvertised  bool               `bson:"isAdvertised" json:"isAdvertised"`
	PostedAt      time.Time          `bson:"postedAt" json:"postedAt"`
}

// CatalogItem is the seller-joined read model for public listings. The
// seller's email is deliberately absent from the JSON output.
type CatalogItem struct {
	Product        `bson:",inline"`
	SellerVerified bool   `json:"sellerVerified"`
	SellerPhone    string `json:"sellerPhone,omitempty"`
}

func (c CatalogItem) MarshalPrivacy() CatalogItem {
	c.SellerEmail = ""
	return c
}
