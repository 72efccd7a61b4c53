// internal/services/auth_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/secondnest/secondhand-backend/internal/config"
	"github.com/secondnest/secondhand-backend/internal/models"
	"github.com/secondnest/secondhand-backend/internal/store"
	"github.com/secondnest/secondhand-backend/internal/utils"
)

type AuthService struct {
	store  *store.Store
	config *config.Config
}

type UpsertUserRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Role string `json:"role,omitempty" validate:"omitempty,role"`
}

func NewAuthService(st *store.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		store:  st,
		config: cfg,
	}
}

// UpsertUser creates the user on first sign-in and updates the profile
// on subsequent ones, keyed on email. The role is set once on insert
// and never silently escalated by a later upsert.
func (s *AuthService) UpsertUser(ctx context.Context, email string, req *UpsertUserRequest) (*mongo.UpdateResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	role := models.Role(req.Role)
	if !role.Valid() {
		role = models.RoleBuyer
	}

	// email comes from the filter's equality match on upsert.
	update := bson.M{
		"$set": bson.M{
			"name": req.Name,
		},
		"$setOnInsert": bson.M{
			"role":       role,
			"isVerified": false,
			"createdAt":  time.Now().UTC(),
		},
	}

	result, err := s.store.Users().UpdateOne(ctx, bson.M{"email": email}, update,
		options.Update().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return result, nil
}

// IssueToken mints a signed credential for an email that has a user
// record; anyone else gets ErrForbidden and an empty credential.
func (s *AuthService) IssueToken(ctx context.Context, email string) (string, error) {
	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%w: no account for %s", ErrForbidden, email)
	}

	token, err := utils.GenerateJWT(user.Email, string(user.Role), s.config.JWT.AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}
