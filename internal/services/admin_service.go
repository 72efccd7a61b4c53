// internal/services/admin_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/secondnest/secondhand-backend/internal/models"
	"github.com/secondnest/secondhand-backend/internal/store"
)

// AdminService carries the cross-cutting moderation operations:
// reporting, account removal and the cascades they trigger.
type AdminService struct {
	store *store.Store
}

// ReportedItem joins a report with the product it references.
type ReportedItem struct {
	Report  models.ReportedProduct `json:"report"`
	Product models.Product         `json:"product"`
}

func NewAdminService(st *store.Store) *AdminService {
	return &AdminService{store: st}
}

// ReportProduct records a report. Reports are not deduplicated; each
// call produces its own entry.
func (s *AdminService) ReportProduct(ctx context.Context, productID, reporterEmail string) (*mongo.InsertOneResult, error) {
	if _, err := primitive.ObjectIDFromHex(productID); err != nil {
		return nil, fmt.Errorf("%w: invalid product id", ErrNotFound)
	}

	report := models.ReportedProduct{
		ProductID:  productID,
		ReportedBy: reporterEmail,
		ReportedAt: time.Now().UTC(),
	}

	result, err := s.store.ReportedProducts().InsertOne(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("failed to report product: %w", err)
	}

	return result, nil
}

// ListReported joins reports with still-existing products; reports on
// sold or deleted products drop out of the join naturally.
func (s *AdminService) ListReported(ctx context.Context) ([]ReportedItem, error) {
	cursor, err := s.store.ReportedProducts().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}

	var reports []models.ReportedProduct
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(reports))
	for _, r := range reports {
		if id, err := primitive.ObjectIDFromHex(r.ProductID); err == nil {
			ids = append(ids, id)
		}
	}

	productCursor, err := s.store.Products().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reported products: %w", err)
	}

	var products []models.Product
	if err := productCursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode reported products: %w", err)
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID.Hex()] = p
	}

	items := []ReportedItem{}
	for _, r := range reports {
		if p, ok := byID[r.ProductID]; ok {
			items = append(items, ReportedItem{Report: r, Product: p})
		}
	}

	return items, nil
}

func (s *AdminService) ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	cursor, err := s.store.Users().Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}

// VerifySeller sets the verified badge; repeated calls are no-ops.
func (s *AdminService) VerifySeller(ctx context.Context, sellerID string) (*mongo.UpdateResult, error) {
	id, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid seller id", ErrNotFound)
	}

	result, err := s.store.Users().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isVerified": true}},
		options.Update().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("failed to verify seller: %w", err)
	}

	return result, nil
}

// RemoveBuyer deletes the account and pulls the buyer's entries from
// every unpaid booking, so reservations do not point at a user that no
// longer exists. Paid bookings are immutable sale records and keep the
// boughtBy reference.
func (s *AdminService) RemoveBuyer(ctx context.Context, buyerID string) (*mongo.DeleteResult, error) {
	id, err := primitive.ObjectIDFromHex(buyerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid buyer id", ErrNotFound)
	}

	var buyer models.User
	if err := s.store.Users().FindOne(ctx, bson.M{"_id": id}).Decode(&buyer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: buyer %s", ErrNotFound, buyerID)
		}
		return nil, fmt.Errorf("failed to fetch buyer: %w", err)
	}

	pulled, err := s.store.Bookings().UpdateMany(ctx,
		bson.M{"isPaid": bson.M{"$ne": true}},
		bson.M{"$pull": bson.M{"bookers": bson.M{"bookerEmail": buyer.Email}}})
	if err != nil {
		return nil, fmt.Errorf("failed to clear buyer reservations: %w", err)
	}

	result, err := s.store.Users().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to delete buyer: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"buyer":           buyer.Email,
		"clearedBookings": pulled.ModifiedCount,
	}).Info("Buyer removed")

	return result, nil
}

// RemoveSeller cascades in a fixed order: listings first, then the
// sellerRemoved flag on bookings, then the user document. A crash
// mid-sequence never leaves a user pointing at products that still
// look purchasable.
func (s *AdminService) RemoveSeller(ctx context.Context, email string) (*mongo.DeleteResult, error) {
	log := logrus.WithField("seller", email)

	products, err := s.store.Products().DeleteMany(ctx, bson.M{"sellerEmail": email})
	if err != nil {
		return nil, fmt.Errorf("failed to delete seller products: %w", err)
	}
	log.WithField("deletedProducts", products.DeletedCount).Info("Remove seller step 1: listings deleted")

	bookings, err := s.store.Bookings().UpdateMany(ctx,
		bson.M{"sellerEmail": email},
		bson.M{"$set": bson.M{"sellerRemoved": true}})
	if err != nil {
		return nil, fmt.Errorf("failed to flag seller bookings: %w", err)
	}
	log.WithField("flaggedBookings", bookings.ModifiedCount).Info("Remove seller step 2: bookings flagged")

	result, err := s.store.Users().DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to delete seller: %w", err)
	}
	if result.DeletedCount == 0 {
		return nil, fmt.Errorf("%w: seller %s", ErrNotFound, email)
	}
	log.Info("Remove seller step 3: account deleted")

	return result, nil
}
