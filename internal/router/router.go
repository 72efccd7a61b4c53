// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/secondnest/secondhand-backend/internal/config"
	"github.com/secondnest/secondhand-backend/internal/handlers"
	"github.com/secondnest/secondhand-backend/internal/middleware"
	"github.com/secondnest/secondhand-backend/internal/models"
	"github.com/secondnest/secondhand-backend/internal/services"
	"github.com/secondnest/secondhand-backend/internal/store"
	"github.com/secondnest/secondhand-backend/internal/utils"
)

func Initialize(st *store.Store, cfg *config.Config) *gin.Engine {
	// Initialize services
	authService := services.NewAuthService(st, cfg)
	catalogService := services.NewCatalogService(st)
	bookingService := services.NewBookingService(st)
	checkoutService := services.NewCheckoutService(st, cfg)
	adminService := services.NewAdminService(st)
	storageService, _ := services.NewStorageService(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService, adminService, storageService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	paymentHandler := handlers.NewPaymentHandler(checkoutService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	sellerOnly := middleware.RoleRequired(st, models.RoleSeller)
	adminOnly := middleware.RoleRequired(st, models.RoleAdmin)

	v1 := r.Group("/api/v1")
	{
		// Users and credentials
		v1.PUT("/users/:email", middleware.TokenRateLimit(), authHandler.UpsertUser)
		v1.GET("/jwt", middleware.TokenRateLimit(), authHandler.GetToken)

		// Public catalog
		v1.GET("/categories", productHandler.GetCategories)
		v1.GET("/categories/:id/products", productHandler.GetCategoryProducts)

		// Products
		products := v1.Group("/products")
		{
			products.GET("/advertised", productHandler.GetAdvertisedProducts)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("", sellerOnly, productHandler.GetMyProducts)
				protected.POST("", sellerOnly, productHandler.CreateProduct)
				protected.PUT("/:id/advertise", sellerOnly, productHandler.AdvertiseProduct)
				protected.POST("/upload-image", sellerOnly, middleware.UploadRateLimit(), productHandler.UploadProductImage)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.POST("/:id/report", productHandler.ReportProduct)
			}
		}

		// Bookings
		bookings := v1.Group("/bookings")
		bookings.Use(middleware.AuthRequired())
		{
			bookings.POST("", bookingHandler.Reserve)
			bookings.GET("", bookingHandler.GetMyBookings)
			bookings.GET("/:id", bookingHandler.GetBooking)
			bookings.DELETE("/:productId", bookingHandler.Unreserve)
		}

		// Payments
		payments := v1.Group("/payments")
		payments.Use(middleware.AuthRequired())
		{
			payments.POST("/create-intent", paymentHandler.CreatePaymentIntent)
			payments.POST("", paymentHandler.RecordPayment)
		}

		// Admin
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), adminOnly)
		{
			admin.GET("/sellers", adminHandler.GetSellers)
			admin.GET("/buyers", adminHandler.GetBuyers)
			admin.PUT("/sellers/:id/verify", adminHandler.VerifySeller)
			admin.DELETE("/sellers/:email", adminHandler.RemoveSeller)
			admin.DELETE("/buyers/:id", adminHandler.RemoveBuyer)
			admin.GET("/reported-products", adminHandler.GetReportedProducts)
		}
	}

	return r
}
