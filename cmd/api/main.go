package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/campuscare/clinic-backend/internal/adapters/cache"
	"github.com/campuscare/clinic-backend/internal/adapters/database"
	"github.com/campuscare/clinic-backend/internal/adapters/events"
	"github.com/campuscare/clinic-backend/internal/api/handlers"
	"github.com/campuscare/clinic-backend/internal/api/middleware"
	"github.com/campuscare/clinic-backend/internal/api/routes"
	"github.com/campuscare/clinic-backend/internal/application/services"
	"github.com/campuscare/clinic-backend/internal/domain/providers"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
	"github.com/campuscare/clinic-backend/internal/infrastructure/clients/gemini"
	"github.com/campuscare/clinic-backend/internal/infrastructure/clients/postgres"
	"github.com/campuscare/clinic-backend/internal/infrastructure/clients/redis"
	"github.com/campuscare/clinic-backend/internal/infrastructure/documents"
	"github.com/campuscare/clinic-backend/internal/infrastructure/observability"
	"github.com/campuscare/clinic-backend/pkg/config"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Redis is optional: without it the API runs uncached and without
	// the event bus.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, continuing without cache and event bus")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized")
	}

	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
	}

	// Initialize adapters
	appointmentAdapter := database.NewAppointmentAdapter(pgClient)
	availabilityAdapter := database.NewAvailabilityAdapter(pgClient)
	bedAdapter := database.NewBedAdapter(pgClient)
	medicineRequestAdapter := database.NewMedicineRequestAdapter(pgClient)
	sickLeaveAdapter := database.NewSickLeaveAdapter(pgClient)
	visitAdapter := database.NewVisitAdapter(pgClient)
	prescriptionAdapter := database.NewPrescriptionAdapter(pgClient)
	notificationAdapter := database.NewNotificationAdapter(pgClient)
	broadcastAdapter := database.NewBroadcastAdapter(pgClient)
	studentAdapter := database.NewStudentAdapter(pgClient)
	staffAdapter := database.NewStaffAdapter(pgClient)
	scheduleAdapter := database.NewScheduleAdapter(pgClient)
	symptomCheckAdapter := database.NewSymptomCheckAdapter(pgClient)

	var medicineAdapter repositories.MedicineInventoryRepository = database.NewMedicineInventoryAdapter(pgClient)
	if cacheProvider != nil {
		medicineAdapter = database.NewCachedMedicineInventoryAdapter(medicineAdapter, cacheProvider)
		log.Info().Msg("medicine inventory adapter wrapped with caching layer")
	}

	// Remote triage is optional: without an API key the deterministic
	// local rule classifies symptoms.
	var triageProvider providers.TriageProvider
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set, symptom triage uses the local rule")
	} else {
		triageProvider = gemini.NewClient(&cfg.Gemini)
	}

	renderer := documents.NewPDFRenderer()

	// Initialize services
	notificationService := services.NewNotificationService(notificationAdapter, broadcastAdapter)
	schedulingService := services.NewSchedulingService(
		appointmentAdapter,
		availabilityAdapter,
		staffAdapter,
		notificationService,
		eventBus,
	)
	triageService := services.NewTriageService(symptomCheckAdapter, triageProvider)
	bedService := services.NewBedService(bedAdapter)
	inventoryService := services.NewInventoryService(
		medicineAdapter,
		medicineRequestAdapter,
		notificationService,
		eventBus,
	)
	sickLeaveService := services.NewSickLeaveService(
		sickLeaveAdapter,
		studentAdapter,
		renderer,
		notificationService,
	)
	visitService := services.NewVisitService(
		visitAdapter,
		prescriptionAdapter,
		studentAdapter,
		inventoryService,
		renderer,
	)
	directoryService := services.NewDirectoryService(studentAdapter, staffAdapter, scheduleAdapter)

	// The dispatcher turns scheduling events into student notifications
	var dispatcher *services.NotificationDispatcher
	if eventBus != nil {
		dispatcher = services.NewNotificationDispatcher(eventBus, notificationService)
		if err := dispatcher.Start(); err != nil {
			log.Warn().Err(err).Msg("failed to start notification dispatcher")
			dispatcher = nil
		} else {
			log.Info().Msg("notification dispatcher started")
		}
	}

	// Initialize handlers
	schedulingHandler := handlers.NewSchedulingHandler(schedulingService)
	triageHandler := handlers.NewTriageHandler(triageService)
	bedHandler := handlers.NewBedHandler(bedService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	sickLeaveHandler := handlers.NewSickLeaveHandler(sickLeaveService)
	visitHandler := handlers.NewVisitHandler(visitService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	directoryHandler := handlers.NewDirectoryHandler(directoryService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
	}

	router := routes.NewRouter(
		schedulingHandler,
		triageHandler,
		bedHandler,
		inventoryHandler,
		sickLeaveHandler,
		visitHandler,
		notificationHandler,
		directoryHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if dispatcher != nil {
		dispatcher.Stop()
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}
