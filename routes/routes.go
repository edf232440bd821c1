package routes

import (
	"strings"
	"time"

	"resonance/handlers"
	"resonance/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configure the global middleware.
type Options struct {
	Tokens            middleware.TokenParser
	Revocations       middleware.RevocationChecker
	CORSOrigins       string
	MaxRequestsPerMin int
	// Production stops wildcard origins from receiving credentialed responses.
	Production bool
}

// RegisterSlotRoutes registers availability and slot management endpoints.
func RegisterSlotRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	requireAdmin := []gin.HandlerFunc{middleware.RequireAuth(opts.Tokens, opts.Revocations), middleware.RequireAdmin()}

	api := r.Group("/api/slots")
	{
		api.GET("", middleware.OptionalAuth(opts.Tokens, opts.Revocations), hb.Slots.ListSlots)
		api.GET("/calendar", hb.Slots.Calendar)

		protected := api.Group("", requireAdmin...)
		protected.POST("", hb.Slots.CreateSlot)
		protected.POST("/bulk", hb.Slots.CreateSlots)
		protected.DELETE("/:id", hb.Slots.DeleteSlot)
	}
}

// RegisterEnquiryRoutes registers the booking form and its admin lifecycle.
func RegisterEnquiryRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	api := r.Group("/api/enquiries")
	{
		api.POST("", middleware.OptionalAuth(opts.Tokens, opts.Revocations), hb.Enquiries.Submit)

		protected := api.Group("", middleware.RequireAuth(opts.Tokens, opts.Revocations), middleware.RequireAdmin())
		protected.GET("", hb.Enquiries.List)
		protected.GET("/:id", hb.Enquiries.Get)
		protected.PATCH("/:id", hb.Enquiries.UpdateStatus)
		protected.DELETE("/:id", hb.Enquiries.Delete)
	}
}

// RegisterShopRoutes registers the catalog, cart, checkout and order endpoints.
func RegisterShopRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	optional := middleware.OptionalAuth(opts.Tokens, opts.Revocations)
	auth := middleware.RequireAuth(opts.Tokens, opts.Revocations)

	api := r.Group("/api")
	{
		api.GET("/products", optional, hb.Content.ListProducts)
		api.GET("/products/:id", optional, hb.Content.GetProduct)
		api.POST("/products", auth, middleware.RequireAdmin(), hb.Content.CreateProduct)
		api.GET("/blogs", optional, hb.Content.ListBlogs)
		api.GET("/blogs/:id", optional, hb.Content.GetBlog)
		api.GET("/events", hb.Content.ListEvents)
		api.GET("/events/:id", hb.Content.GetEvent)

		cart := api.Group("/cart", auth)
		cart.GET("", hb.Cart.Get)
		cart.DELETE("", hb.Cart.Clear)
		cart.POST("/items", hb.Cart.AddItem)
		cart.POST("/items/:id/increment", hb.Cart.Increment)
		cart.POST("/items/:id/decrement", hb.Cart.Decrement)
		cart.DELETE("/items/:id", hb.Cart.Remove)

		payment := api.Group("/payment", auth)
		payment.POST("/create-checkout", hb.Payments.CreateCheckout)
		payment.POST("/verify-checkout", hb.Payments.VerifyCheckout)

		orders := api.Group("/orders", auth)
		orders.GET("", hb.Payments.ListOrders)
		orders.GET("/:id", hb.Payments.GetOrder)
	}
}

// RegisterAuthRoutes registers customer account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)
		api.POST("/verify-email", hb.Auth.VerifyEmail)
		api.POST("/resend-verification", hb.Auth.ResendVerification)
		api.POST("/otp/send", hb.Auth.SendOTP)
		api.POST("/otp/verify", hb.Auth.VerifyOTP)

		protected := api.Group("", middleware.RequireAuth(opts.Tokens, opts.Revocations))
		protected.POST("/logout", hb.Auth.Logout)
		protected.GET("/profile", hb.Auth.Profile)
		protected.PATCH("/profile", hb.Auth.UpdateProfile)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/register", hb.Admin.Register)
		adminGroup.POST("/login", hb.Admin.Login)

		protected := adminGroup.Group("", middleware.RequireAuth(opts.Tokens, opts.Revocations), middleware.RequireAdmin())
		protected.GET("/profile", hb.Admin.Profile)
		protected.GET("/stats", hb.Stats.Dashboard)

		protected.GET("/products", hb.Content.ListProducts)
		protected.PATCH("/products/:id", hb.Content.UpdateProduct)
		protected.DELETE("/products/:id", hb.Content.DeleteProduct)

		protected.GET("/blogs", hb.Content.ListBlogs)
		protected.POST("/blogs", hb.Content.CreateBlog)
		protected.PATCH("/blogs/:id", hb.Content.UpdateBlog)
		protected.DELETE("/blogs/:id", hb.Content.DeleteBlog)

		protected.GET("/events", hb.Content.ListEvents)
		protected.POST("/events", hb.Content.CreateEvent)
		protected.PATCH("/events/:id", hb.Content.UpdateEvent)
		protected.DELETE("/events/:id", hb.Content.DeleteEvent)

		protected.GET("/orders", hb.Payments.ListAllOrders)
		protected.PATCH("/orders/:id", hb.Payments.UpdateOrderStatus)
	}
}

// RegisterHealthRoutes registers the health check and the metrics scrape endpoint.
func RegisterHealthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func corsConfig(origins string, production bool) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	var list []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			list = append(list, o)
		}
	}
	if len(list) == 0 || (len(list) == 1 && list[0] == "*") {
		if production {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg
		}
		// Credentials need the concrete origin echoed back.
		cfg.AllowOriginFunc = func(string) bool { return true }
		return cfg
	}
	cfg.AllowOrigins = list
	return cfg
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	r.Use(cors.New(corsConfig(opts.CORSOrigins, opts.Production)))
	r.Use(middleware.RequestLogger(), middleware.Metrics(), middleware.RateLimitMiddleware(opts.MaxRequestsPerMin))

	RegisterHealthRoutes(r, hb)
	RegisterSlotRoutes(r, hb, opts)
	RegisterEnquiryRoutes(r, hb, opts)
	RegisterShopRoutes(r, hb, opts)
	RegisterAuthRoutes(r, hb, opts)
	RegisterAdminRoutes(r, hb, opts)
}
