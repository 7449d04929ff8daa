package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonbook/config"
	"salonbook/cron"
	"salonbook/database"
	salonRepo "salonbook/database/repository/salon"
	"salonbook/handlers"
	"salonbook/models"
	"salonbook/routes"
	"salonbook/services/booking"
	"salonbook/services/events"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func salonSettings() models.SalonSettings {
	days, err := config.AppConfig.WorkingDays()
	if err != nil {
		utils.GetLogger().Fatal("main: invalid SALON_WORKING_DAYS", zap.Error(err))
	}
	return models.SalonSettings{
		OpenTime:          config.AppConfig.SalonOpenTime,
		CloseTime:         config.AppConfig.SalonCloseTime,
		WorkingDays:       days,
		DefaultCommission: config.AppConfig.SalonDefaultCommission,
	}
}

// openRepository picks the persistence backend from STORAGE_BACKEND. The
// memory backend has no repository.
func openRepository(ctx context.Context, logger *zap.Logger) salonRepo.Repository {
	switch config.AppConfig.StorageBackend {
	case "mongo":
		database.InitDB()
		repo := salonRepo.NewMongoSalonRepo(database.Database())
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Fatal("main: failed to ensure indexes", zap.Error(err))
		}
		return repo
	case "file":
		return salonRepo.NewFileSalonRepo(config.AppConfig.DataDir)
	case "memory", "":
		return nil
	default:
		logger.Fatal("main: unknown STORAGE_BACKEND", zap.String("backend", config.AppConfig.StorageBackend))
		return nil
	}
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := events.NewBus()

	var locker booking.Locker
	if config.AppConfig.BookingLockBackend == "redis" {
		locker = booking.NewRedisLocker(utils.GetLockClient())
	}

	svc := booking.NewDefaultBookingService(bus, utils.SystemClock{}, salonSettings(), locker, logger)
	svc.RetouchThreshold = config.AppConfig.RetouchThresholdDays

	// Load first, then subscribe, so the initial load is not echoed back.
	if repo := openRepository(ctx, logger); repo != nil {
		snap, err := repo.Load(ctx)
		if err != nil {
			logger.Fatal("main: failed to load salon data", zap.Error(err))
		}
		svc.Load(snap)
		bus.Subscribe(salonRepo.Mirror(repo, logger))
		logger.Info("salon data loaded",
			zap.String("backend", config.AppConfig.StorageBackend),
			zap.Int("appointments", len(snap.Appointments)),
			zap.Int("clientPackages", len(snap.ClientPackages)))
	}

	if config.AppConfig.EventsRedisEnabled {
		pub := events.NewRedisPublisher(utils.GetEventsClient(), config.AppConfig.EventsChannel, logger)
		bus.Subscribe(pub.Handle)
	}

	if config.AppConfig.RetouchWorkerEnabled {
		queue := cron.NewQueueClient()
		defer queue.Close()
		worker := &cron.RetouchWorker{
			Alerts:    svc,
			Clients:   svc.Clients,
			Queue:     queue,
			Notifier:  cron.NewNotifier(ctx),
			Threshold: config.AppConfig.RetouchThresholdDays,
			Logger:    logger,
		}
		stop, err := worker.Start()
		if err != nil {
			logger.Fatal("main: failed to start retouch worker", zap.Error(err))
		}
		defer stop()
	}

	var mongoClient *mongo.Client
	if config.AppConfig.StorageBackend == "mongo" {
		mongoClient = database.MongoClient
	}
	utils.StartHealthMonitor(ctx, utils.RedisClients(), mongoClient)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(handlers.RequestLogger(logger))

	routes.RegisterRoutes(router, handlers.NewHandlerBundle(svc))

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
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
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(shutdownCtx)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
