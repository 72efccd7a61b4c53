// internal/services/catalog_service.go
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
	"github.com/secondnest/secondhand-backend/internal/utils"
)

type CatalogService struct {
	store *store.Store
}

type CreateProductRequest struct {
	CategoryID    string  `json:"categoryId" validate:"required,objectid"`
	Name          string  `json:"name" validate:"required,min=1,max=255"`
	Price         float64 `json:"price" validate:"required,min=0.01"`
	OriginalPrice float64 `json:"originalPrice,omitempty" validate:"omitempty,min=0"`
	Condition     string  `json:"condition,omitempty"`
	Location      string  `json:"location,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	Image         string  `json:"image,omitempty"`
	Description   string  `json:"description,omitempty"`
	YearsOfUse    string  `json:"yearsOfUse,omitempty"`
}

func NewCatalogService(st *store.Store) *CatalogService {
	return &CatalogService{store: st}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.store.Categories().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, nil
}

// CreateProduct stores a seller's listing with categoryId normalized
// to the category's identity key and the seller's display name
// denormalized onto the document.
func (s *CatalogService) CreateProduct(ctx context.Context, sellerEmail string, req *CreateProductRequest) (*mongo.InsertOneResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid category id", ErrNotFound)
	}

	var category models.Category
	if err := s.store.Categories().FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: category %s", ErrNotFound, req.CategoryID)
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}

	seller, err := s.store.UserByEmail(ctx, sellerEmail)
	if err != nil {
		return nil, fmt.Errorf("%w: seller %s", ErrNotFound, sellerEmail)
	}

	product := models.Product{
		SellerEmail:   sellerEmail,
		SellerName:    seller.Name,
		CategoryID:    category.ID.Hex(),
		Name:          req.Name,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Condition:     req.Condition,
		Location:      req.Location,
		Phone:         req.Phone,
		Image:         req.Image,
		Description:   req.Description,
		YearsOfUse:    req.YearsOfUse,
		IsAdvertised:  false,
		PostedAt:      time.Now().UTC(),
	}

	result, err := s.store.Products().InsertOne(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return result, nil
}

func (s *CatalogService) ListBySeller(ctx context.Context, sellerEmail string) ([]models.Product, error) {
	return s.listProducts(ctx, bson.M{"sellerEmail": sellerEmail})
}

func (s *CatalogService) ListByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	return s.listProducts(ctx, bson.M{"categoryId": categoryID})
}

func (s *CatalogService) ListAdvertised(ctx context.Context) ([]models.Product, error) {
	return s.listProducts(ctx, bson.M{"isAdvertised": true})
}

// ListByCategoryJoined and ListAdvertisedJoined attach the seller's
// public profile to each product and strip the seller's email from
// the output.
func (s *CatalogService) ListByCategoryJoined(ctx context.Context, categoryID string) ([]models.CatalogItem, error) {
	products, err := s.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return s.joinSellers(ctx, products)
}

func (s *CatalogService) ListAdvertisedJoined(ctx context.Context) ([]models.CatalogItem, error) {
	products, err := s.ListAdvertised(ctx)
	if err != nil {
		return nil, err
	}
	return s.joinSellers(ctx, products)
}

// SetAdvertised flags a product for the advertised shelf. Upsert
// semantics absorb a momentarily missing row instead of rejecting; the
// flag set is idempotent either way.
func (s *CatalogService) SetAdvertised(ctx context.Context, productID string) (*mongo.UpdateResult, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id", ErrNotFound)
	}

	result, err := s.store.Products().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isAdvertised": true}},
		options.Update().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("failed to advertise product: %w", err)
	}

	return result, nil
}

// DeleteProduct removes the listing and every report referencing it,
// in that order. Only the owning seller or an admin may delete; the
// requester's role is resolved from the store, not from the token.
func (s *CatalogService) DeleteProduct(ctx context.Context, productID, requesterEmail string) (*mongo.DeleteResult, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id", ErrNotFound)
	}

	var product models.Product
	if err := s.store.Products().FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	if product.SellerEmail != requesterEmail {
		requester, err := s.store.UserByEmail(ctx, requesterEmail)
		if err != nil || requester.Role != models.RoleAdmin {
			return nil, fmt.Errorf("%w: not the owner of product %s", ErrForbidden, productID)
		}
	}

	result, err := s.store.Products().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	reports, err := s.store.ReportedProducts().DeleteMany(ctx, bson.M{"productId": productID})
	if err != nil {
		logrus.WithError(err).WithField("productId", productID).
			Error("Product deleted but report cleanup failed")
		return result, nil
	}

	logrus.WithFields(logrus.Fields{
		"productId":      productID,
		"deletedReports": reports.DeletedCount,
	}).Info("Product deleted")

	return result, nil
}

func (s *CatalogService) listProducts(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cursor, err := s.store.Products().Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "postedAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

func (s *CatalogService) joinSellers(ctx context.Context, products []models.Product) ([]models.CatalogItem, error) {
	// One lookup per distinct seller, not per product.
	sellers := map[string]*models.User{}
	for _, p := range products {
		sellers[p.SellerEmail] = nil
	}

	emails := make([]string, 0, len(sellers))
	for email := range sellers {
		emails = append(emails, email)
	}

	cursor, err := s.store.Users().Find(ctx, bson.M{"email": bson.M{"$in": emails}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sellers: %w", err)
	}

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode sellers: %w", err)
	}
	for i := range users {
		sellers[users[i].Email] = &users[i]
	}

	items := make([]models.CatalogItem, 0, len(products))
	for _, p := range products {
		item := models.CatalogItem{Product: p}
		if seller := sellers[p.SellerEmail]; seller != nil {
			item.SellerName = seller.Name
			item.SellerVerified = seller.IsVerified
			item.SellerPhone = p.Phone
		}
		items = append(items, item.MarshalPrivacy())
	}

	return items, nil
}
