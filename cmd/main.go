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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authMeHandler "github.com/m04kA/SMC-ParkingDesk/internal/api/handlers/auth_me"
	billingJournalHandler "github.com/m04kA/SMC-ParkingDesk/internal/api/handlers/billing_journal"
	eventsHandler "github.com/m04kA/SMC-ParkingDesk/internal/api/handlers/events"
	exitTransactionHandler "github.com/m04kA/SMC-ParkingDesk/internal/api/handlers/exit_transaction"
	floorLayoutHandler "github.com/m04kA/SMC-ParkingDesk/internal/api/handlers/floor_layout"
	healthHandler "github.com/m04kA/SMC-ParkingDesk/internal/api/handlers/health"
	parkVehicleHandler "github.com/m04kA/SMC-ParkingDesk/internal/api/handlers/park_vehicle"
	parkingLotsHandler "github.com/m04kA/SMC-ParkingDesk/internal/api/handlers/parking_lots"
	pricingHealthHandler "github.com/m04kA/SMC-ParkingDesk/internal/api/handlers/pricing_health"
	pricingQuoteHandler "github.com/m04kA/SMC-ParkingDesk/internal/api/handlers/pricing_quote"
	recognizePlateHandler "github.com/m04kA/SMC-ParkingDesk/internal/api/handlers/recognize_plate"
	"github.com/m04kA/SMC-ParkingDesk/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingDesk/internal/config"
	"github.com/m04kA/SMC-ParkingDesk/internal/events"
	billingRepo "github.com/m04kA/SMC-ParkingDesk/internal/infra/storage/billing"
	"github.com/m04kA/SMC-ParkingDesk/internal/infra/storage/exittx"
	backendClient "github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
	ocrClient "github.com/m04kA/SMC-ParkingDesk/internal/integrations/ocr"
	pricingModelClient "github.com/m04kA/SMC-ParkingDesk/internal/integrations/pricingmodel"
	billingService "github.com/m04kA/SMC-ParkingDesk/internal/service/billing"
	parkingLotsService "github.com/m04kA/SMC-ParkingDesk/internal/service/parkinglots"
	pricingService "github.com/m04kA/SMC-ParkingDesk/internal/service/pricing"
	"github.com/m04kA/SMC-ParkingDesk/internal/session"
	exitVehicleUC "github.com/m04kA/SMC-ParkingDesk/internal/usecase/exit_vehicle"
	getFloorLayoutUC "github.com/m04kA/SMC-ParkingDesk/internal/usecase/get_floor_layout"
	parkVehicleUC "github.com/m04kA/SMC-ParkingDesk/internal/usecase/park_vehicle"
	recognizePlateUC "github.com/m04kA/SMC-ParkingDesk/internal/usecase/recognize_plate"
	"github.com/m04kA/SMC-ParkingDesk/internal/worker"
	"github.com/m04kA/SMC-ParkingDesk/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingDesk/pkg/logger"
	"github.com/m04kA/SMC-ParkingDesk/pkg/metrics"
)

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

	log.Info("Starting SMC-ParkingDesk...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Pricing.Location()
	if err != nil {
		log.Fatal("Invalid pricing timezone %q: %v", cfg.Pricing.Timezone, err)
	}

	// Инициализируем метрики (если включены). nil-коллектор безопасен во всех вызовах
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Журнал выездов живет в PostgreSQL и включается отдельно
	var (
		exitJournal    exitVehicleUC.JournalRepository
		journalReader  billingService.JournalRepository
		journalEnabled bool
	)

	if cfg.Database.Enabled {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		repo := billingRepo.NewRepository(wrappedDB)
		exitJournal = repo
		journalReader = repo
		journalEnabled = true
	} else {
		log.Warn("Database disabled, billing journal is not recorded")
	}

	// Инициализируем интеграционных клиентов
	tokens := session.ContextTokenSource{}
	backend := backendClient.NewClient(
		cfg.Backend.URL,
		time.Duration(cfg.Backend.Timeout)*time.Second,
		tokens,
		metricsCollector,
		log,
	)
	pricingModel := pricingModelClient.NewClient(
		cfg.Pricing.URL,
		time.Duration(cfg.Pricing.Timeout)*time.Second,
		metricsCollector,
	)
	ocr := ocrClient.NewClient(
		cfg.OCR.URL,
		time.Duration(cfg.OCR.Timeout)*time.Second,
		metricsCollector,
	)
	log.Info("Integration clients initialized (Backend=%s timeout=%ds, Pricing=%s timeout=%ds, OCR=%s timeout=%ds)",
		cfg.Backend.URL, cfg.Backend.Timeout, cfg.Pricing.URL, cfg.Pricing.Timeout, cfg.OCR.URL, cfg.OCR.Timeout)

	// Поток событий для экранов операторов
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()

	var (
		hub        *events.Hub
		exitEvents exitVehicleUC.EventPublisher
		parkEvents parkVehicleUC.EventPublisher
	)
	if cfg.Events.Enabled {
		hub = events.NewHub(log)
		go hub.Run(hubCtx)
		exitEvents = hub
		parkEvents = hub
		log.Info("Event stream enabled (allowed origins: %v)", cfg.Events.AllowedOrigins)
	}

	// Хранилище транзакций выезда
	transactions := exittx.NewStore(time.Duration(cfg.Billing.TransactionTTL) * time.Minute)

	// Инициализируем сервисы
	pricingSvc := pricingService.NewService(pricingModel, location, metricsCollector, log)
	parkingLotsSvc := parkingLotsService.NewService(backend, log)
	billingSvc := billingService.NewService(journalReader, log)

	// Инициализируем use cases
	exitVehicleUseCase := exitVehicleUC.NewUseCase(
		backend,
		pricingSvc,
		transactions,
		exitJournal,
		exitEvents,
		metricsCollector,
		exitVehicleUC.Options{RequoteOnExit: cfg.Billing.RequoteOnExit},
		log,
	)
	parkVehicleUseCase := parkVehicleUC.NewUseCase(backend, parkEvents, log)
	recognizePlateUseCase := recognizePlateUC.NewUseCase(ocr, log)
	getFloorLayoutUseCase := getFloorLayoutUC.NewUseCase(backend, log)

	// Фоновые задачи
	pricingProbe := worker.NewPricingHealthProbe(pricingSvc, time.Duration(cfg.Pricing.Timeout)*time.Second, log)
	scheduler := worker.NewScheduler(log)
	if err := scheduler.Add(cfg.Pricing.HealthCheckSpec, pricingProbe); err != nil {
		log.Fatal("Failed to schedule pricing health probe: %v", err)
	}
	if err := scheduler.Add(cfg.Billing.CleanupSpec, worker.NewTransactionSweeper(transactions, metricsCollector, log)); err != nil {
		log.Fatal("Failed to schedule transaction sweeper: %v", err)
	}
	scheduler.Start()
	log.Info("Scheduler started (pricing health: %s, cleanup: %s)", cfg.Pricing.HealthCheckSpec, cfg.Billing.CleanupSpec)

	// Инициализируем handlers
	health := healthHandler.NewHandler(transactions)
	authMe := authMeHandler.NewHandler(backend, log)
	parkVehicle := parkVehicleHandler.NewHandler(parkVehicleUseCase, log)
	exitTransaction := exitTransactionHandler.NewHandler(exitVehicleUseCase, log)
	pricingQuote := pricingQuoteHandler.NewHandler(pricingSvc, log)
	pricingHealth := pricingHealthHandler.NewHandler(pricingProbe, pricingSvc, log)
	recognizePlate := recognizePlateHandler.NewHandler(recognizePlateUseCase, cfg.OCR.MaxUploadBytes(), log)
	parkingLots := parkingLotsHandler.NewHandler(parkingLotsSvc, log)
	floorLayout := floorLayoutHandler.NewHandler(getFloorLayoutUseCase, log)
	billingJournal := billingJournalHandler.NewHandler(billingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без токена оператора)
	// ============================================================

	// Состояние модели ценообразования
	api.HandleFunc("/pricing/health", pricingHealth.Handle).Methods(http.MethodGet)

	// Websocket: браузер не передает Authorization при upgrade
	if cfg.Events.Enabled {
		stream := eventsHandler.NewHandler(hub, events.NewUpgrader(cfg.Events.AllowedOrigins), log)
		api.HandleFunc("/events", stream.Handle).Methods(http.MethodGet)
	}

	// ============================================================
	// PROTECTED ROUTES (bearer токен оператора)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(middleware.AuthOptions{
		RequireToken:  cfg.Auth.RequireToken,
		RejectExpired: cfg.Auth.RejectExpired,
	}, log))

	protected.HandleFunc("/auth/me", authMe.Handle).Methods(http.MethodGet)

	// --- Въезд и выезд ---
	protected.HandleFunc("/parking/entry", parkVehicle.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/exit/search", exitTransaction.Search).Methods(http.MethodPost)
	protected.HandleFunc("/exit/{transactionId}", exitTransaction.Get).Methods(http.MethodGet)
	protected.HandleFunc("/exit/{transactionId}/confirm", exitTransaction.Confirm).Methods(http.MethodPost)
	protected.HandleFunc("/exit/{transactionId}/reset", exitTransaction.Reset).Methods(http.MethodPost)

	// --- Цены и распознавание ---
	protected.HandleFunc("/pricing/quote", pricingQuote.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/ocr", recognizePlate.Handle).Methods(http.MethodPost)

	// --- Парковки и этажи ---
	protected.HandleFunc("/parking-lots", parkingLots.List).Methods(http.MethodGet)
	protected.HandleFunc("/parking-lots", parkingLots.Create).Methods(http.MethodPost)
	protected.HandleFunc("/parking-lots/floors", parkingLots.AddFloor).Methods(http.MethodPost)
	protected.HandleFunc("/parking-lots/{lotId}", parkingLots.Get).Methods(http.MethodGet)
	protected.HandleFunc("/parking-lots/{lotId}/floors", parkingLots.Floors).Methods(http.MethodGet)
	protected.HandleFunc("/floors/{floorId}/layout", floorLayout.Layout).Methods(http.MethodGet)
	protected.HandleFunc("/slots/{slotId}/label", floorLayout.SlotLabel).Methods(http.MethodGet)

	// --- Журнал счетов ---
	protected.HandleFunc("/billing/journal", billingJournal.Handle).Methods(http.MethodGet)
	if !journalEnabled {
		log.Info("Billing journal endpoint will answer 503 until the database is enabled")
	}

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

	scheduler.Stop(shutdownCtx)

	// Закрываем websocket соединения и останавливаем сбор метрик connection pool
	stopHub()
	close(stopMetricsCh)

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
