// internal/services/checkout_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/secondnest/secondhand-backend/internal/config"
	"github.com/secondnest/secondhand-backend/internal/models"
	"github.com/secondnest/secondhand-backend/internal/store"
	"github.com/secondnest/secondhand-backend/internal/utils"
)

// CheckoutService owns the sale-finalization sequence that moves a
// product from booked to sold.
type CheckoutService struct {
	store  *store.Store
	config *config.Config
}

type CreateIntentRequest struct {
	Price float64 `json:"price" validate:"required,min=0.01"`
}

type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type FinalizeSaleRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	ProductID     string  `json:"productId" validate:"required,objectid"`
	BookingID     string  `json:"bookingId" validate:"required,objectid"`
	Amount        float64 `json:"amount" validate:"required,min=0.01"`
	TransactionID string  `json:"transactionId" validate:"required"`
}

func NewCheckoutService(st *store.Store, cfg *config.Config) *CheckoutService {
	stripe.Key = cfg.Payment.StripeSecretKey

	return &CheckoutService{
		store:  st,
		config: cfg,
	}
}

// CreateIntent asks the payment gateway for an intent over the price
// in minor currency units. No local state is written.
func (s *CheckoutService) CreateIntent(req *CreateIntentRequest) (*IntentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(req.Price * 100)),
		Currency:           stripe.String(s.config.Payment.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: payment gateway rejected intent: %v", ErrUpstream, err)
	}

	return &IntentResponse{ClientSecret: pi.ClientSecret}, nil
}

// FinalizeSale runs the three writes that mark a sale complete, in a
// fixed order: delete the product, mark the booking paid, insert the
// payment record. With MONGO_USE_TRANSACTIONS the sequence runs inside
// one session transaction; otherwise each step's outcome is logged so
// a partial failure is at least visible. The unique index on
// payments.bookingId turns a retried finalization into a conflict
// instead of a duplicate payment.
func (s *CheckoutService) FinalizeSale(ctx context.Context, req *FinalizeSaleRequest) (*mongo.InsertOneResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !s.config.Mongo.UseTransactions {
		return s.finalizeSteps(ctx, req)
	}

	session, err := s.store.Client().StartSession()
	if err != nil {
		logrus.WithError(err).Warn("Session unavailable, finalizing sale without transaction")
		return s.finalizeSteps(ctx, req)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return s.finalizeSteps(sc, req)
	})
	if err != nil {
		return nil, err
	}

	return result.(*mongo.InsertOneResult), nil
}

func (s *CheckoutService) finalizeSteps(ctx context.Context, req *FinalizeSaleRequest) (*mongo.InsertOneResult, error) {
	log := logrus.WithFields(logrus.Fields{
		"productId": req.ProductID,
		"bookingId": req.BookingID,
		"buyer":     req.Email,
	})

	// Step 1: the product leaves the catalog; existence means
	// availability, so this alone stops further sales.
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id", ErrNotFound)
	}

	deleted, err := s.store.Products().DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		return nil, fmt.Errorf("failed to delete sold product: %w", err)
	}
	if deleted.DeletedCount == 0 {
		// Not fatal: a prior attempt may have removed it already.
		log.Warn("Finalize step 1: product already absent")
	} else {
		log.Info("Finalize step 1: product removed from catalog")
	}

	// Step 2: the booking becomes the sale record.
	bookingID, err := primitive.ObjectIDFromHex(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", ErrNotFound)
	}

	updated, err := s.store.Bookings().UpdateOne(ctx,
		bson.M{"_id": bookingID},
		bson.M{"$set": bson.M{"isPaid": true, "boughtBy": req.Email}})
	if err != nil {
		return nil, fmt.Errorf("failed to mark booking paid: %w", err)
	}
	if updated.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, req.BookingID)
	}
	log.WithField("modified", updated.ModifiedCount).Info("Finalize step 2: booking marked paid")

	// Step 3: append-only payment record.
	payment := models.Payment{
		Email:         req.Email,
		ProductID:     req.ProductID,
		BookingID:     req.BookingID,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		CreatedAt:     time.Now().UTC(),
	}

	inserted, err := s.store.Payments().InsertOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: booking %s is already paid for", ErrConflict, req.BookingID)
		}
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	log.Info("Finalize step 3: payment recorded")

	return inserted, nil
}
