// internal/database/indexes.go
package database

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/secondnest/secondhand-backend/internal/models"
	"github.com/secondnest/secondhand-backend/internal/store"
)

// EnsureIndexes creates the indexes the consistency core depends on:
//   - users.email unique: email is the join key across collections;
//   - bookings.productId unique: at most one booking document per
//     product, and the index is what makes two concurrent first-time
//     reservations converge instead of silently overwriting each other;
//   - payments.bookingId unique: a retried sale finalization fails the
//     insert instead of recording the payment twice.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}

	indexes := map[string]mongo.IndexModel{
		store.CollectionUsers:    unique("email"),
		store.CollectionBookings: unique("productId"),
		store.CollectionPayments: unique("bookingId"),
	}

	for collection, model := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", collection, err)
		}
	}

	secondary := map[string]bson.D{
		store.CollectionProducts: {{Key: "categoryId", Value: 1}},
		store.CollectionBookings: {{Key: "bookers.bookerEmail", Value: 1}},
	}

	for collection, keys := range secondary {
		model := mongo.IndexModel{Keys: keys}
		if _, err := db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", collection, err)
		}
	}

	log.Println("Document store indexes ensured")
	return nil
}

// SeedCategories inserts the default category set when the collection
// is empty. Idempotent across restarts.
func SeedCategories(ctx context.Context, db *mongo.Database) error {
	categories := db.Collection(store.CollectionCategories)

	count, err := categories.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []interface{}{
		models.Category{Name: "Bikes"},
		models.Category{Name: "Furniture"},
		models.Category{Name: "Electronics"},
		models.Category{Name: "Books"},
		models.Category{Name: "Clothing"},
		models.Category{Name: "Home Appliances"},
	}

	if _, err := categories.InsertMany(ctx, defaults); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	log.Printf("Seeded %d default categories", len(defaults))
	return nil
}
