package routes

import (
	"time"

	"decorhub/handlers"
	"decorhub/middleware"
	"decorhub/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes registers service catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.AuthMiddleware(hb.Verifier)
	admin := middleware.RequireRole(hb.Guard, models.RoleAdmin)

	api := r.Group("/services")
	{
		api.GET("", hb.Catalog.SearchServices)
		api.GET("/categories", hb.Catalog.Categories)
		api.GET("/:id", hb.Catalog.GetService)

		protected := api.Group("", auth, admin)
		protected.POST("", hb.Catalog.CreateService)
		protected.PATCH("/:id", hb.Catalog.UpdateService)
		protected.DELETE("/:id", hb.Catalog.DeleteService)
	}
	r.GET("/my-projects", auth, middleware.RequireRole(hb.Guard, models.RoleDecorator), hb.Catalog.MyProjects)
}

// RegisterBookingRoutes registers booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.AuthMiddleware(hb.Verifier)
	admin := middleware.RequireRole(hb.Guard, models.RoleAdmin)

	api := r.Group("/bookings", auth)
	{
		api.POST("", hb.Booking.CreateBooking)
		api.GET("", admin, hb.Booking.ListBookings)
		api.GET("/user/:email", hb.Booking.ListUserBookings)
		api.GET("/:id", hb.Booking.GetBooking)
		api.PATCH("/:id", hb.Booking.UpdateSchedule)
		api.DELETE("/:id", hb.Booking.CancelBooking)
		api.PATCH("/:id/cancel", admin, hb.Booking.CancelBooking)
		api.PATCH("/:id/status", hb.Booking.UpdateStatus)
	}

	assign := r.Group("/booking", auth, admin)
	{
		assign.PATCH("/:id", hb.Booking.AssignDecorator)
		assign.DELETE("/:id/decorator", hb.Booking.UnassignDecorator)
	}

	r.GET("/my-bookings", auth, hb.Booking.MyBookings)
	r.GET("/manage-bookings", auth, middleware.RequireRole(hb.Guard, models.RoleDecorator), hb.Booking.ManageBookings)
	r.GET("/booking-decorator", auth, admin, hb.Booking.ListBookings)
}

// RegisterPaymentRoutes registers checkout and reconciliation endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.AuthMiddleware(hb.Verifier)

	r.POST("/create-checkout-session", auth, hb.Payment.CreateCheckoutSession)
	// The checkout session id is the capability; no bearer token is required.
	r.PATCH("/payment-success", hb.Payment.PaymentSuccess)
	r.POST("/payment-success", hb.Payment.PaymentSuccess)
	r.POST("/webhooks/stripe", hb.Payment.StripeWebhook)
	r.GET("/payments/user/:email", auth, hb.Payment.ListUserPayments)
}

// RegisterDecoratorRoutes registers decorator application and admin endpoints.
func RegisterDecoratorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.AuthMiddleware(hb.Verifier)
	admin := middleware.RequireRole(hb.Guard, models.RoleAdmin)

	r.POST("/become-decorator", auth, hb.Decorator.Apply)
	api := r.Group("/decorators")
	{
		api.GET("", hb.Decorator.ListDecorators)
		api.GET("/:id", hb.Decorator.GetDecorator)
		api.PATCH("/:id", auth, admin, hb.Decorator.UpdateStatus)
		api.DELETE("/:id", auth, admin, hb.Decorator.DeleteDecorator)
	}
}

// RegisterUserRoutes registers login and role endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.AuthMiddleware(hb.Verifier)
	admin := middleware.RequireRole(hb.Guard, models.RoleAdmin)

	r.POST("/user", auth, hb.User.Login)
	r.GET("/user/role/:email", auth, hb.User.GetRole)
	r.PATCH("/update-role", auth, admin, hb.User.UpdateRole)
	r.GET("/users", auth, admin, hb.User.ListUsers)
}

// RegisterAdminRoutes registers admin reports and uploads.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.AuthMiddleware(hb.Verifier)

	r.GET("/admin/analytics", auth, middleware.RequireRole(hb.Guard, models.RoleAdmin), hb.Admin.AnalyticsReport)
	r.POST("/uploads/image", auth, middleware.RequireRole(hb.Guard, models.RoleAdmin, models.RoleDecorator), hb.Storage.UploadImage)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCatalogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterDecoratorRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
