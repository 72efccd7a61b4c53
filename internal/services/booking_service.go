// internal/services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/secondnest/secondhand-backend/internal/models"
	"github.com/secondnest/secondhand-backend/internal/store"
	"github.com/secondnest/secondhand-backend/internal/utils"
)

// BookingService owns the reservation state machine. Per product the
// states are: no booking document (unbooked), document with isPaid
// unset (booked), document with isPaid true and the product deleted
// (sold).
type BookingService struct {
	store *store.Store
}

type ReserveRequest struct {
	ProductID      string `json:"productId" validate:"required,objectid"`
	BookerName     string `json:"bookerName" validate:"required,min=1,max=100"`
	BookerLocation string `json:"bookerLocation,omitempty"`
	BookerNumber   string `json:"bookerNumber,omitempty"`
}

func NewBookingService(st *store.Store) *BookingService {
	return &BookingService{store: st}
}

// Reserve books a product for a buyer. The whole lookup-and-branch is
// a single conditional write: $setOnInsert captures the product
// snapshot when no booking exists yet, $push appends the booker when
// one does. Two concurrent first-time reservations both upsert; the
// unique index on productId fails one of them with a duplicate key,
// and the retry lands as an append on the winner's document, so both
// buyers end up in one booking.
func (s *BookingService) Reserve(ctx context.Context, buyerEmail string, req *ReserveRequest) (*models.Booking, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id", ErrNotFound)
	}

	var product models.Product
	if err := s.store.Products().FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: product %s is not available", ErrNotFound, req.ProductID)
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	booker := models.Booker{
		BookerName:     req.BookerName,
		BookerEmail:    buyerEmail,
		BookerLocation: req.BookerLocation,
		BookerNumber:   req.BookerNumber,
		BookedAt:       time.Now().UTC(),
	}

	booking, err := s.reserveOnce(ctx, &product, booker)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		// Lost the insert race; the retry matches the winner's
		// document and appends.
		booking, err = s.reserveOnce(ctx, &product, booker)
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %s already reserved product %s", ErrConflict, buyerEmail, req.ProductID)
		}
		return nil, fmt.Errorf("failed to reserve product: %w", err)
	}

	return booking, nil
}

func (s *BookingService) reserveOnce(ctx context.Context, product *models.Product, booker models.Booker) (*models.Booking, error) {
	// The filter excludes paid bookings and bookings already holding
	// this buyer; either case drives the upsert into the unique index.
	filter := bson.M{
		"productId": product.ID.Hex(),
		"isPaid":    bson.M{"$ne": true},
		"bookers.bookerEmail": bson.M{
			"$ne": booker.BookerEmail,
		},
	}

	update := bson.M{
		"$setOnInsert": snapshotFields(product),
		"$push":        bson.M{"bookers": booker},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var booking models.Booking
	if err := s.store.Bookings().FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking); err != nil {
		return nil, err
	}

	return &booking, nil
}

// snapshotFields is the only place product data crosses into a
// booking. Captured once at first reservation; later product edits do
// not retroactively change booking records. productId itself comes
// from the filter's equality match on upsert.
func snapshotFields(product *models.Product) bson.M {
	return bson.M{
		"productName":   product.Name,
		"price":         product.Price,
		"image":         product.Image,
		"sellerEmail":   product.SellerEmail,
		"sellerContact": product.Phone,
		"isPaid":        false,
	}
}

// ListForBuyer returns every booking the buyer participates in, with
// the other buyers' contact entries stripped out.
func (s *BookingService) ListForBuyer(ctx context.Context, buyerEmail string) ([]models.Booking, error) {
	cursor, err := s.store.Bookings().Find(ctx, bson.M{"bookers.bookerEmail": buyerEmail})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	for i := range bookings {
		bookings[i] = projectForBuyer(bookings[i], buyerEmail)
	}

	return bookings, nil
}

// projectForBuyer keeps only the named buyer's own booker entries on
// the shared booking document.
func projectForBuyer(booking models.Booking, buyerEmail string) models.Booking {
	own := make([]models.Booker, 0, 1)
	for _, b := range booking.Bookers {
		if b.BookerEmail == buyerEmail {
			own = append(own, b)
		}
	}
	booking.Bookers = own
	return booking
}

// Unreserve pulls the buyer's entry from an unpaid booking. When the
// pull empties the bookers list the document is removed as well, so
// empty husks do not accumulate; paid bookings are sale records and
// are never touched.
func (s *BookingService) Unreserve(ctx context.Context, productID, buyerEmail string) (*mongo.UpdateResult, error) {
	result, err := s.store.Bookings().UpdateOne(ctx,
		bson.M{"productId": productID, "isPaid": bson.M{"$ne": true}},
		bson.M{"$pull": bson.M{"bookers": bson.M{"bookerEmail": buyerEmail}}})
	if err != nil {
		return nil, fmt.Errorf("failed to remove booker: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: no open booking for product %s", ErrNotFound, productID)
	}

	if _, err := s.store.Bookings().DeleteOne(ctx, bson.M{
		"productId": productID,
		"isPaid":    bson.M{"$ne": true},
		"bookers":   bson.M{"$size": 0},
	}); err != nil {
		return result, fmt.Errorf("booker removed but empty booking cleanup failed: %w", err)
	}

	return result, nil
}

// GetByID fetches the sale-time snapshot checkout charges against.
func (s *BookingService) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	id, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", ErrNotFound)
	}

	var booking models.Booking
	if err := s.store.Bookings().FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	return &booking, nil
}
