package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	addBlockHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/add_block"
	approveRequestHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/approve_request"
	clearOverrideHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/clear_override"
	exportCalendarHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/export_calendar"
	getAvailabilityHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/get_availability"
	getBookableHoursHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/get_bookable_hours"
	getMyRequestsHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/get_my_requests"
	getRequestHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/get_request"
	getVenueRequestsHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/get_venue_requests"
	listBlocksHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/list_blocks"
	listOverridesHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/list_overrides"
	rejectRequestHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/reject_request"
	removeBlockHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/remove_block"
	setOverrideHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/set_override"
	submitRequestHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/submit_request"
	updateAvailabilityHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/update_availability"
	validateSelectionHandler "github.com/m04kA/SMC-VenueService/internal/api/handlers/validate_selection"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/config"
	"github.com/m04kA/SMC-VenueService/internal/infra/lock"
	availabilityRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/availability"
	blockRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/blockedslot"
	requestRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/eventrequest"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/integrations/notifier"
	availabilityService "github.com/m04kA/SMC-VenueService/internal/service/availability"
	requestsService "github.com/m04kA/SMC-VenueService/internal/service/requests"
	approveRequestUC "github.com/m04kA/SMC-VenueService/internal/usecase/approve_request"
	exportCalendarUC "github.com/m04kA/SMC-VenueService/internal/usecase/export_calendar"
	getBookableHoursUC "github.com/m04kA/SMC-VenueService/internal/usecase/get_bookable_hours"
	rejectRequestUC "github.com/m04kA/SMC-VenueService/internal/usecase/reject_request"
	submitRequestUC "github.com/m04kA/SMC-VenueService/internal/usecase/submit_request"
	validateSelectionUC "github.com/m04kA/SMC-VenueService/internal/usecase/validate_selection"
	"github.com/m04kA/SMC-VenueService/internal/worker/housekeeping"
	"github.com/m04kA/SMC-VenueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueService/pkg/logger"
	"github.com/m04kA/SMC-VenueService/pkg/metrics"
	"github.com/m04kA/SMC-VenueService/pkg/txmanager"
)

// statusPublisher общий интерфейс RabbitMQ и no-op публикации
type statusPublisher interface {
	PublishStatusChanged(ctx context.Context, event notifier.RequestStatusEvent) error
	Close() error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-VenueService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	if cfg.Metrics.Enabled {
		log.Info("Database metrics collection started")
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	venueRepository := venueRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	blockRepository := blockRepo.NewRepository(wrappedDB)
	requestRepository := requestRepo.NewRepository(wrappedDB)

	// Блокировка (venue, date) при одобрении заявок
	var locker lock.Locker
	switch cfg.Lock.Backend {
	case config.LockBackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancelPing()
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		locker = lock.NewRedisLocker(redisClient, time.Duration(cfg.Lock.TTLSeconds)*time.Second)
		log.Info("Approval lock backend: redis (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Lock.TTLSeconds)
	default:
		locker = lock.NewAdvisoryLocker()
		log.Info("Approval lock backend: postgres advisory locks")
	}

	// Публикация событий о статусе заявок
	var publisher statusPublisher = notifier.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		rabbit, err := notifier.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = rabbit
		log.Info("Request status events published to exchange=%s", cfg.RabbitMQ.Exchange)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		venueRepository,
		availabilityRepository,
		blockRepository,
		metricsCollector,
		log,
	)
	requestsSvc := requestsService.NewService(
		requestRepository,
		venueRepository,
		log,
	)

	// Инициализируем use cases
	getBookableHoursUseCase := getBookableHoursUC.NewUseCase(venueRepository, availabilitySvc, log)
	validateSelectionUseCase := validateSelectionUC.NewUseCase(venueRepository, availabilitySvc, log)
	exportCalendarUseCase := exportCalendarUC.NewUseCase(venueRepository, requestRepository, blockRepository, log)
	submitRequestUseCase := submitRequestUC.NewUseCase(requestRepository, venueRepository, availabilitySvc, log)
	approveRequestUseCase := approveRequestUC.NewUseCase(
		requestRepository,
		venueRepository,
		blockRepository,
		availabilitySvc,
		locker,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	rejectRequestUseCase := rejectRequestUC.NewUseCase(
		requestRepository,
		venueRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)

	// Фоновая очистка устаревших блокировок и переопределений
	var worker *housekeeping.Worker
	if cfg.Housekeeping.Enabled {
		worker = housekeeping.NewWorker(
			blockRepository,
			availabilityRepository,
			cfg.Housekeeping.Schedule,
			cfg.Housekeeping.RetentionDays,
			log,
		)
		if err := worker.Start(context.Background()); err != nil {
			log.Fatal("Failed to start housekeeping worker: %v", err)
		}
		log.Info("Housekeeping worker started (schedule=%q, retention=%d days)",
			cfg.Housekeeping.Schedule, cfg.Housekeeping.RetentionDays)
	}

	// Инициализируем handlers
	getBookableHours := getBookableHoursHandler.NewHandler(getBookableHoursUseCase, log)
	validateSelection := validateSelectionHandler.NewHandler(validateSelectionUseCase, log)
	exportCalendar := exportCalendarHandler.NewHandler(exportCalendarUseCase, log)

	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	listOverrides := listOverridesHandler.NewHandler(availabilitySvc, log)
	setOverride := setOverrideHandler.NewHandler(availabilitySvc, log)
	clearOverride := clearOverrideHandler.NewHandler(availabilitySvc, log)
	listBlocks := listBlocksHandler.NewHandler(availabilitySvc, log)
	addBlock := addBlockHandler.NewHandler(availabilitySvc, log)
	removeBlock := removeBlockHandler.NewHandler(availabilitySvc, log)

	submitRequest := submitRequestHandler.NewHandler(submitRequestUseCase, log)
	getRequest := getRequestHandler.NewHandler(requestsSvc, log)
	getMyRequests := getMyRequestsHandler.NewHandler(requestsSvc, log)
	getVenueRequests := getVenueRequestsHandler.NewHandler(requestsSvc, log)
	approveRequest := approveRequestHandler.NewHandler(approveRequestUseCase, log)
	rejectRequest := rejectRequestHandler.NewHandler(rejectRequestUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.HTTP.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.UserIDHeader},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.HTTP.RateLimitPerMinute > 0 {
		r.Use(httprate.LimitByIP(cfg.HTTP.RateLimitPerMinute, time.Minute))
		log.Info("Rate limit enabled: %d requests per minute per IP", cfg.HTTP.RateLimitPerMinute)
	}

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные часы площадки на дату
	api.HandleFunc("/venues/{venueId}/bookable-hours", getBookableHours.Handle).Methods(http.MethodGet)

	// Проверка выбора часов перед подачей заявки
	api.HandleFunc("/venues/{venueId}/selections/validate", validateSelection.Handle).Methods(http.MethodPost)

	// Календарь площадки в формате iCalendar
	api.HandleFunc("/venues/{venueId}/calendar.ics", exportCalendar.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Доступность площадки (для менеджеров) ---
	protected.HandleFunc("/venues/{venueId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/venues/{venueId}/availability", updateAvailability.Handle).Methods(http.MethodPut)

	protected.HandleFunc("/venues/{venueId}/overrides", listOverrides.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/venues/{venueId}/overrides/{date}", setOverride.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/venues/{venueId}/overrides/{date}", clearOverride.Handle).Methods(http.MethodDelete)

	protected.HandleFunc("/venues/{venueId}/blocks", listBlocks.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/venues/{venueId}/blocks", addBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/venues/{venueId}/blocks/{blockId}", removeBlock.Handle).Methods(http.MethodDelete)

	// Очередь заявок площадки
	protected.HandleFunc("/venues/{venueId}/event-requests", getVenueRequests.Handle).Methods(http.MethodGet)

	// --- Заявки артистов ---
	protected.HandleFunc("/event-requests", submitRequest.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/event-requests", getMyRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/event-requests/{requestId}", getRequest.Handle).Methods(http.MethodGet)

	// Решение менеджера по заявке
	protected.HandleFunc("/event-requests/{requestId}/approve", approveRequest.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/event-requests/{requestId}/reject", rejectRequest.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if worker != nil {
		worker.Stop()
		log.Info("Housekeeping worker stopped")
	}

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close publisher: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
