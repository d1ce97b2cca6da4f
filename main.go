// File: decorhub/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"decorhub/config"
	"decorhub/cron"
	"decorhub/database"
	"decorhub/database/repository"
	"decorhub/events"
	"decorhub/handlers"
	"decorhub/middleware"
	"decorhub/models"
	"decorhub/routes"
	"decorhub/services/analytics"
	"decorhub/services/assignment"
	"decorhub/services/booking"
	"decorhub/services/catalog"
	"decorhub/services/decorator"
	"decorhub/services/guard"
	"decorhub/services/identity"
	"decorhub/services/payment"
	"decorhub/services/storage"
	"decorhub/services/tasks"
	"decorhub/services/user"
	"decorhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	utils.InitRedis()

	// Entity store.
	var (
		repos       *repository.Repositories
		mongoClient *mongo.Client
		tx          database.Transactor = database.NoopTransactor{}
	)
	if config.UsesMemoryStore() {
		logger.Warn("using the in-memory store; data is lost on restart")
		repos = repository.NewMemoryRepositories()
	} else {
		client, err := database.Connect(ctx, config.AppConfig.DatabaseURL)
		if err != nil {
			logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
		}
		mongoClient = client
		repos = repository.NewMongoRepositories(ctx, client.Database(config.AppConfig.DatabaseName))
		if config.AppConfig.MongoTransactions {
			tx = &database.MongoTransactor{Client: client}
		}
	}
	utils.StartHealthMonitor(ctx, utils.RedisClients(), mongoClient)

	verifier := newVerifier(ctx, logger)

	// Booking events.
	var publisher events.Publisher = events.NoopPublisher{}
	if brokers := splitList(config.AppConfig.KafkaBrokers); len(brokers) > 0 {
		publisher = events.NewKafkaPublisher(brokers, config.AppConfig.KafkaTopic, logger)
	}
	defer publisher.Close()

	// services.
	roleGuard := guard.NewRoleGuard(repos.Users)
	coordinator := assignment.NewCoordinator(repos.Decorators, logger)

	flow := models.FlowCheckout
	if strings.EqualFold(config.AppConfig.BookingPaymentFlow, string(models.FlowPrepaid)) {
		flow = models.FlowPrepaid
	}
	bookingService := &booking.LifecycleManager{
		Bookings:    repos.Bookings,
		Services:    repos.Services,
		Decorators:  repos.Decorators,
		Guard:       roleGuard,
		Coordinator: coordinator,
		Tx:          tx,
		Events:      publisher,
		Flow:        flow,
		Logger:      logger,
	}

	paymentService := &payment.Service{
		Bookings:  repos.Bookings,
		Payments:  repos.Payments,
		Processor: payment.NewStripeProcessor(config.AppConfig.StripeKey),
		Guard:     roleGuard,
		Tx:        tx,
		Events:    publisher,
		Settings: payment.Settings{
			Currency:      config.AppConfig.CheckoutCurrency,
			ClientDomain:  config.AppConfig.ClientDomain,
			RecordStatus:  config.AppConfig.PaymentRecordStatus,
			Timeout:       config.AppConfig.PaymentTimeout,
			WebhookSecret: config.AppConfig.StripeWebhookSecret,
		},
		Logger: logger,
	}

	catalogService := &catalog.Service{
		Repo:   repos.Services,
		Guard:  roleGuard,
		Cache:  utils.GetCacheClient(),
		Logger: logger,
	}

	decoratorService := &decorator.Service{
		Decorators:  repos.Decorators,
		Bookings:    repos.Bookings,
		Users:       repos.Users,
		Guard:       roleGuard,
		Coordinator: coordinator,
		Tx:          tx,
		Events:      publisher,
		Logger:      logger,
	}

	userService := &user.DefaultUserService{
		Repo:   repos.Users,
		Guard:  roleGuard,
		Logger: logger,
	}

	analyticsService := &analytics.Service{
		Repo:  repos.Analytics,
		Guard: roleGuard,
	}

	// Payment retry queue.
	queueClient := asynq.NewClient(cron.RedisOpt())
	defer queueClient.Close()
	queueInspector := asynq.NewInspector(cron.RedisOpt())
	defer queueInspector.Close()
	enqueuer := &tasks.AsynqEnqueuer{
		Client:    queueClient,
		Inspector: queueInspector,
		MaxRetry:  config.AppConfig.ReconcileMaxRetry,
	}

	worker, err := cron.StartReconcileWorker(paymentService, logger)
	if err != nil {
		logger.Warn("main: payment retries disabled", zap.Error(err))
	}

	var images storage.ImageStore
	cloudinaryStore, err := storage.NewCloudinaryStore(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	)
	if err != nil {
		logger.Fatal("main: failed to initialize cloudinary storage service", zap.Error(err))
	}
	if cloudinaryStore != nil {
		images = cloudinaryStore
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Verifier:  verifier,
		Guard:     roleGuard,
		Booking:   handlers.NewBookingHandler(bookingService),
		Payment:   handlers.NewPaymentHandler(paymentService, enqueuer),
		Catalog:   handlers.NewCatalogHandler(catalogService),
		Decorator: handlers.NewDecoratorHandler(decoratorService),
		User:      handlers.NewUserHandler(userService),
		Admin:     handlers.NewAdminHandler(analyticsService),
		Storage:   handlers.NewStorageHandler(images),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if proxies := splitList(config.AppConfig.TrustedProxies); len(proxies) > 0 {
		if err := router.SetTrustedProxies(proxies); err != nil {
			logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
		}
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	stop()
	if mongoClient != nil {
		_ = mongoClient.Disconnect(shutdownCtx)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// newVerifier picks the identity provider and fronts it with the token cache.
func newVerifier(ctx context.Context, logger *zap.Logger) identity.Verifier {
	var inner identity.Verifier
	switch strings.ToLower(config.AppConfig.AuthProvider) {
	case "jwt":
		v, err := identity.NewJWTVerifier(config.AppConfig.JWTSecret)
		if err != nil {
			logger.Fatal("main: failed to initialize JWT verifier", zap.Error(err))
		}
		inner = v
	default:
		v, err := identity.NewFirebaseVerifier(ctx, config.AppConfig.FirebaseCredentialsFile)
		if err != nil {
			logger.Fatal("main: failed to initialize firebase", zap.Error(err))
		}
		inner = v
	}
	return identity.NewCachedVerifier(inner, utils.GetAuthCacheClient(), config.AppConfig.AuthCacheTTL, logger)
}

// splitList accepts a list setting either as a list or as one comma-separated value.
func splitList(raw []string) []string {
	var out []string
	for _, entry := range raw {
		for _, b := range strings.Split(entry, ",") {
			if b = strings.TrimSpace(b); b != "" {
				out = append(out, b)
			}
		}
	}
	return out
}
