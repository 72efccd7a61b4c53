// internal/middleware/auth_test.go
package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/secondnest/secondhand-backend/internal/models"
	"github.com/secondnest/secondhand-backend/internal/store"
	"github.com/secondnest/secondhand-backend/internal/utils"
)

type fakeRoleLookup struct {
	roles map[string]models.Role
}

func (f *fakeRoleLookup) UserRole(_ context.Context, email string) (models.Role, error) {
	role, ok := f.roles[email]
	if !ok {
		return "", store.ErrUserNotFound
	}
	return role, nil
}

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *AuthMiddlewareTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	lookup := &fakeRoleLookup{roles: map[string]models.Role{
		"seller@example.com": models.RoleSeller,
		"buyer@example.com":  models.RoleBuyer,
	}}

	suite.router = gin.New()
	suite.router.GET("/me", AuthRequired(), func(c *gin.Context) {
		email, _ := utils.GetUserEmailFromContext(c)
		c.JSON(http.StatusOK, gin.H{"email": email})
	})
	suite.router.POST("/listings", AuthRequired(), RoleRequired(lookup, models.RoleSeller), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

func (suite *AuthMiddlewareTestSuite) request(method, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthMiddlewareTestSuite) TestMissingCredential() {
	w := suite.request("GET", "/me", "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestInvalidCredential() {
	w := suite.request("GET", "/me", "not-a-token")
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestWrongScheme() {
	req, _ := http.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestValidCredential() {
	token, err := utils.GenerateJWT("seller@example.com", "seller", 1)
	suite.Require().NoError(err)

	w := suite.request("GET", "/me", token)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "seller@example.com")
}

func (suite *AuthMiddlewareTestSuite) TestRoleMismatchForbidden() {
	token, err := utils.GenerateJWT("buyer@example.com", "buyer", 1)
	suite.Require().NoError(err)

	w := suite.request("POST", "/listings", token)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestRoleResolvedFromStoreNotToken() {
	// The token claims seller, but the stored role is what counts.
	token, err := utils.GenerateJWT("buyer@example.com", "seller", 1)
	suite.Require().NoError(err)

	w := suite.request("POST", "/listings", token)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestUnknownUserForbidden() {
	token, err := utils.GenerateJWT("ghost@example.com", "seller", 1)
	suite.Require().NoError(err)

	w := suite.request("POST", "/listings", token)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestRoleMatchAdmitted() {
	token, err := utils.GenerateJWT("seller@example.com", "seller", 1)
	suite.Require().NoError(err)

	w := suite.request("POST", "/listings", token)
	suite.Equal(http.StatusOK, w.Code)
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}
