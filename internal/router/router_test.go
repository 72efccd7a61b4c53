// internal/router/router_test.go
package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/secondnest/secondhand-backend/internal/config"
	"github.com/secondnest/secondhand-backend/internal/store"
)

type RouterTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	// The driver connects lazily; no server is needed for routes that
	// are rejected before any store access.
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	suite.Require().NoError(err)

	cfg := &config.Config{
		Environment: "development",
		JWT:         config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 24},
		Payment:     config.PaymentConfig{Currency: "usd"},
		CORS:        config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		AWS:         config.AWSConfig{S3Bucket: "test-bucket", Region: "us-east-1"},
	}

	suite.router = Initialize(store.New(client, "secondnest_test"), cfg)
}

func (suite *RouterTestSuite) request(method, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RouterTestSuite) TestHealthCheck() {
	w := suite.request("GET", "/health")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "healthy")
}

func (suite *RouterTestSuite) TestBookingsRequireAuthentication() {
	w := suite.request("GET", "/api/v1/bookings")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *RouterTestSuite) TestPaymentsRequireAuthentication() {
	w := suite.request("POST", "/api/v1/payments/create-intent")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *RouterTestSuite) TestInvalidCredentialForbidden() {
	req, _ := http.NewRequest("GET", "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *RouterTestSuite) TestTokenRequiresEmail() {
	w := suite.request("GET", "/api/v1/jwt")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
