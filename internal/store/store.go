// internal/store/store.go
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/secondnest/secondhand-backend/internal/models"
)

// Collection names. All services share these through the Store; no
// service owns a collection exclusively.
const (
	CollectionUsers            = "users"
	CollectionCategories       = "categories"
	CollectionProducts         = "products"
	CollectionBookings         = "bookings"
	CollectionPayments         = "payments"
	CollectionReportedProducts = "reportedProducts"
)

// ErrUserNotFound is returned by role resolution when no user document
// matches the credential's email.
var ErrUserNotFound = errors.New("user not found")

// Store is the single shared handle on the document store. It is
// constructed once at process start and passed by reference to every
// service; the only atomicity it offers is per-document.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func New(client *mongo.Client, database string) *Store {
	return &Store{
		client: client,
		db:     client.Database(database),
	}
}

// Client exposes the underlying client for session transactions.
func (s *Store) Client() *mongo.Client {
	return s.client
}

func (s *Store) Users() *mongo.Collection            { return s.db.Collection(CollectionUsers) }
func (s *Store) Categories() *mongo.Collection       { return s.db.Collection(CollectionCategories) }
func (s *Store) Products() *mongo.Collection         { return s.db.Collection(CollectionProducts) }
func (s *Store) Bookings() *mongo.Collection         { return s.db.Collection(CollectionBookings) }
func (s *Store) Payments() *mongo.Collection         { return s.db.Collection(CollectionPayments) }
func (s *Store) ReportedProducts() *mongo.Collection { return s.db.Collection(CollectionReportedProducts) }

// UserByEmail is the lookup behind every role-restricted call; the
// extra read is the price of resolving roles from the store rather
// than trusting the token.
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.Users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// UserRole satisfies the middleware's role lookup.
func (s *Store) UserRole(ctx context.Context, email string) (models.Role, error) {
	user, err := s.UserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}
