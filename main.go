package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"resonance/config"
	"resonance/cron"
	"resonance/database"
	"resonance/database/repository"
	"resonance/handlers"
	"resonance/metrics"
	"resonance/routes"
	"resonance/services/admin"
	"resonance/services/booking"
	"resonance/services/cart"
	"resonance/services/checkout"
	"resonance/services/content"
	"resonance/services/enquiry"
	"resonance/services/notification"
	"resonance/services/stats"
	"resonance/services/storage"
	"resonance/services/tasks"
	"resonance/services/user"
	"resonance/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	cfg := config.AppConfig
	metrics.Register()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	database.InitDB()
	repos := repository.NewRepositories(database.DB())
	if err := repos.EnsureIndexes(ctx); err != nil {
		logger.Fatal("main: failed to create indexes", zap.Error(err))
	}

	utils.InitRedis()
	cache := utils.GetCacheClient()
	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	tokens, err := utils.NewTokenManager(cfg.JWTSecret, tokenTTL)
	if err != nil {
		logger.Fatal("main: failed to initialize token manager", zap.Error(err))
	}
	revocations := utils.NewRevocationStore(cache)
	otps := utils.NewOTPStore(utils.GetOTPCacheClient(), utils.OTPTTL)

	stripe.Key = cfg.StripeKey

	media, err := storage.NewMediaStore(cfg)
	if err != nil {
		logger.Fatal("main: failed to initialize media storage", zap.Error(err))
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("main: unknown timezone, using UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.UTC
	}
	clock := booking.Clock{Location: loc}

	// Notifications go through the queue when it is enabled, otherwise inline.
	var notifier notification.Notifier = notification.LogNotifier{Logger: logger}
	switch {
	case cfg.SMTPHost != "":
		mailer, err := notification.NewMailNotifier(cfg)
		if err != nil {
			logger.Fatal("main: failed to initialize mail notifier", zap.Error(err))
		}
		notifier = mailer
	case config.IsProduction():
		logger.Fatal("main: SMTP_HOST must be set in production")
	default:
		logger.Warn("main: SMTP_HOST not set, notifications will only be logged")
	}
	var dispatcher notification.Dispatcher = notification.InlineDispatcher{Notifier: notifier}
	var worker *asynq.Server
	var queueClient *asynq.Client
	if cfg.QueueEnabled {
		queueClient = asynq.NewClient(cron.QueueRedisOpt())
		dispatcher = tasks.QueueDispatcher{Client: queueClient}
		worker = cron.InitNotificationWorker(ctx, notifier, logger)
	}

	// services.
	carts := &cart.Service{
		Persister: cart.NewRedisPersister(cache, tokenTTL),
		Tokens:    tokens,
		Products:  repos.Products,
	}
	pricing := checkout.PricingFromConfig(cfg)
	slotService := &booking.DefaultSlotService{Repo: repos.Slots, Clock: clock}
	bookingService := &booking.DefaultBookingService{
		Slots:      repos.Slots,
		Enquiries:  repos.Enquiries,
		Dispatcher: dispatcher,
		AdminEmail: cfg.NotifyAdminEmail,
		Clock:      clock,
	}
	enquiryService := enquiry.NewEnquiryService(repos.Enquiries)
	checkoutService := &checkout.DefaultCheckoutService{
		Orders:     repos.Orders,
		Products:   repos.Products,
		Provider:   checkout.StripeProvider{},
		Carts:      carts,
		Dispatcher: dispatcher,
		Pricing:    pricing,
		SuccessURL: cfg.CheckoutSuccessURL,
		CancelURL:  cfg.CheckoutCancelURL,
	}
	contentService := &content.DefaultContentService{
		Products: repos.Products,
		Blogs:    repos.Blogs,
		Events:   repos.Events,
		Media:    media,
	}
	userService := &user.DefaultUserService{
		Repo:       repos.Users,
		Tokens:     tokens,
		OTP:        otps,
		Revoker:    revocations,
		Dispatcher: dispatcher,
	}
	adminService := &admin.DefaultAdminService{
		Repo:            repos.Users,
		Tokens:          tokens,
		RegistrationKey: cfg.AdminRegistrationKey,
	}
	statsService := &stats.DefaultStatsService{
		Stats:    repos.Stats,
		Products: repos.Products,
		Blogs:    repos.Blogs,
		Events:   repos.Events,
		Users:    repos.Users,
	}

	redisClients := []*redis.Client{cache, utils.GetOTPCacheClient()}
	utils.StartHealthMonitor(ctx, 30*time.Second, database.MongoClient, redisClients)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Slots:     &handlers.SlotHandler{Slots: slotService, Clock: clock},
		Enquiries: &handlers.EnquiryHandler{Booking: bookingService, Enquiries: enquiryService},
		Cart:      &handlers.CartHandler{Carts: carts, Pricing: pricing},
		Payments:  &handlers.PaymentHandler{Checkout: checkoutService, Users: userService},
		Content:   &handlers.ContentHandler{Products: contentService, Blogs: contentService, Events: contentService},
		Auth:      &handlers.AuthHandler{Users: userService, Carts: carts, TokenTTL: tokenTTL},
		Admin:     &handlers.AdminHandler{Admins: adminService, TokenTTL: tokenTTL},
		Stats:     &handlers.StatsHandler{Stats: statsService},
		Health:    &handlers.HealthHandler{Status: utils.GetHealthStatus},
	}

	if config.IsProduction() && strings.TrimSpace(cfg.CORSOrigins) == "*" {
		logger.Warn("main: CORS_ORIGINS is \"*\" in production, cross-origin requests will not carry cookies")
	}

	router := gin.New()
	router.Use(utils.ErrorHandler())
	routes.RegisterRoutes(router, handlerBundle, routes.Options{
		Tokens:            tokens,
		Revocations:       revocations,
		CORSOrigins:       cfg.CORSOrigins,
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
		Production:        config.IsProduction(),
	})

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	if err := database.Disconnect(shutdownCtx); err != nil {
		logger.Warn("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
	_ = logger.Sync()
}
