// internal/services/booking_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secondnest/secondhand-backend/internal/models"
)

func TestProjectForBuyerStripsOtherBuyers(t *testing.T) {
	booking := models.Booking{
		ProductID:   "64b0c8a19f1d2e3a4b5c6d7e",
		ProductName: "Bike",
		IsPaid:      true,
		BoughtBy:    "a@x.com",
		Bookers: []models.Booker{
			{BookerName: "A", BookerEmail: "a@x.com", BookerNumber: "111"},
			{BookerName: "B", BookerEmail: "b@x.com", BookerNumber: "222"},
		},
	}

	projected := projectForBuyer(booking, "b@x.com")

	assert.Len(t, projected.Bookers, 1)
	assert.Equal(t, "b@x.com", projected.Bookers[0].BookerEmail)
	// Shared product and sale fields survive projection.
	assert.Equal(t, "Bike", projected.ProductName)
	assert.True(t, projected.IsPaid)
	assert.Equal(t, "a@x.com", projected.BoughtBy)
}

func TestProjectForBuyerKeepsOwnEntriesInOrder(t *testing.T) {
	booking := models.Booking{
		Bookers: []models.Booker{
			{BookerEmail: "a@x.com", BookedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			{BookerEmail: "b@x.com"},
			{BookerEmail: "a@x.com", BookedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
	}

	projected := projectForBuyer(booking, "a@x.com")

	assert.Len(t, projected.Bookers, 2)
	assert.True(t, projected.Bookers[0].BookedAt.Before(projected.Bookers[1].BookedAt))
}

func TestProjectForBuyerNoMatch(t *testing.T) {
	booking := models.Booking{
		Bookers: []models.Booker{{BookerEmail: "a@x.com"}},
	}

	projected := projectForBuyer(booking, "c@x.com")
	assert.Empty(t, projected.Bookers)
}

func TestSnapshotFields(t *testing.T) {
	product := &models.Product{
		ID:          primitive.NewObjectID(),
		SellerEmail: "seller@x.com",
		Name:        "Bike",
		Price:       50,
		Image:       "https://img/bike.jpg",
		Phone:       "555-0100",
	}

	fields := snapshotFields(product)

	assert.Equal(t, bson.M{
		"productName":   "Bike",
		"price":         float64(50),
		"image":         "https://img/bike.jpg",
		"sellerEmail":   "seller@x.com",
		"sellerContact": "555-0100",
		"isPaid":        false,
	}, fields)
	// productId is supplied by the upsert filter, never by the snapshot.
	assert.NotContains(t, fields, "productId")
}

func TestReserveRejectsInvalidProductID(t *testing.T) {
	svc := NewBookingService(nil)

	_, err := svc.Reserve(context.Background(), "a@x.com", &ReserveRequest{
		ProductID:  "not-an-object-id",
		BookerName: "A",
	})
	assert.Error(t, err)
}

func TestGetByIDRejectsInvalidBookingID(t *testing.T) {
	svc := NewBookingService(nil)

	_, err := svc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
