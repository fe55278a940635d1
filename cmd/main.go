package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	createBookingHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/get_available_slots"
	getFreeTablesHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/get_free_tables"
	getTableAvailabilityHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/get_table_availability"
	getVenueHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/get_venue"
	healthHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/health"
	refreshAvailabilityHandler "github.com/m04kA/SMC-TableBooking/internal/api/handlers/refresh_availability"
	"github.com/m04kA/SMC-TableBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TableBooking/internal/availability"
	"github.com/m04kA/SMC-TableBooking/internal/config"
	"github.com/m04kA/SMC-TableBooking/internal/infra/cache/snapshot"
	bookingRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/booking"
	eventRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/event"
	"github.com/m04kA/SMC-TableBooking/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-TableBooking/internal/integrations/broker"
	createBookingUC "github.com/m04kA/SMC-TableBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-TableBooking/internal/usecase/get_available_slots"
	getFreeTablesUC "github.com/m04kA/SMC-TableBooking/internal/usecase/get_free_tables"
	refreshAvailabilityUC "github.com/m04kA/SMC-TableBooking/internal/usecase/refresh_availability"
	"github.com/m04kA/SMC-TableBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBooking/pkg/logger"
	"github.com/m04kA/SMC-TableBooking/pkg/metrics"
	"github.com/m04kA/SMC-TableBooking/pkg/txmanager"
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

	// Идентификатор экземпляра: по нему потребитель брокера пропускает собственные события
	instanceID := uuid.NewString()
	log.Info("Starting SMC-TableBooking (instance=%s)...", instanceID)

	venue, err := cfg.Venue.Venue()
	if err != nil {
		log.Fatal("Invalid venue configuration: %v", err)
	}
	log.Info("Venue: %d tables, open %s-%s, horizon %d days",
		len(venue.Tables), venue.Open, venue.Close, venue.HorizonDays)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Источники занятости: postgres или внешний API
	var (
		bookingFeed  refreshAvailabilityUC.BookingFeed
		eventFeed    refreshAvailabilityUC.EventFeed
		bookingStore createBookingUC.BookingRepository
		txMgr        createBookingUC.TransactionManager
		pinger       healthHandler.Pinger
	)

	switch cfg.Feed.Source {
	case config.FeedSourceAPI:
		client := bookingapi.NewClient(cfg.Feed.APIURL, time.Duration(cfg.Feed.Timeout)*time.Second, log)
		bookingFeed, eventFeed, bookingStore = client, client, client
		txMgr = txmanager.Noop{}
		log.Info("Feed source: API %s (timeout=%ds)", cfg.Feed.APIURL, cfg.Feed.Timeout)

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.PingContext(ctx); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil)
		}

		bookings := bookingRepo.NewRepository(wrappedDB)
		bookingFeed, bookingStore = bookings, bookings
		eventFeed = eventRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		pinger = wrappedDB
	}

	// Кэш снимков (необязателен: при недоступности Redis источники читаются напрямую)
	var snapshotCache refreshAvailabilityUC.SnapshotCache
	if cfg.Redis.Enabled {
		redisClient, err := snapshot.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("Redis unavailable, snapshot cache disabled: %v", err)
		} else {
			defer redisClient.Close()
			snapshotCache = snapshot.NewCache(redisClient, cfg.Redis.SnapshotTTL())
			log.Info("Snapshot cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.SnapshotTTL())
		}
	}

	// Индекс занятости и его обновление
	indexStore := availability.NewStore()

	refreshUseCase := refreshAvailabilityUC.NewUseCase(
		bookingFeed,
		eventFeed,
		snapshotCache,
		indexStore,
		metricsCollector,
		venue.HorizonDays,
		log,
	)

	// Брокер: публикация новых бронирований и обновление индекса по чужим
	var publisher createBookingUC.EventPublisher
	if cfg.Broker.Enabled {
		p, err := broker.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange, instanceID, log)
		if err != nil {
			log.Warn("Broker unavailable, booking events disabled: %v", err)
		} else {
			defer p.Close()
			publisher = p.WithRecorder(metricsCollector)
			log.Info("Broker publisher enabled (exchange=%s)", cfg.Broker.Exchange)
		}

		if cfg.Broker.ConsumeRefresh {
			consumer := broker.NewConsumer(cfg.Broker.URL, cfg.Broker.Exchange, instanceID,
				func(ctx context.Context, event broker.BookingCreatedEvent) error {
					log.Info("Broker: booking_id=%d created by %s, refreshing availability", event.BookingID, event.Source)
					_, err := refreshUseCase.Execute(ctx, &refreshAvailabilityUC.Request{})
					if errors.Is(err, refreshAvailabilityUC.ErrSuperseded) {
						return nil
					}
					return err
				}, log).WithRecorder(metricsCollector)

			go func() {
				if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("Broker consumer stopped: %v", err)
				}
			}()
			log.Info("Broker consumer started (exchange=%s)", cfg.Broker.Exchange)
		}
	}

	// Периодическое обновление индекса, первое выполняется сразу
	go refreshUseCase.Run(ctx, cfg.Refresh.Interval())
	log.Info("Availability refresh started (interval=%s)", cfg.Refresh.Interval())

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingStore,
		indexStore,
		refreshUseCase,
		publisher,
		txMgr,
		venue,
		log,
	)
	getFreeTablesUseCase := getFreeTablesUC.NewUseCase(indexStore, venue, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(indexStore, venue, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getFreeTables := getFreeTablesHandler.NewHandler(getFreeTablesUseCase, log)
	getTableAvailability := getTableAvailabilityHandler.NewHandler(getFreeTablesUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getVenue := getVenueHandler.NewHandler(venue, indexStore, log)
	refreshAvailability := refreshAvailabilityHandler.NewHandler(refreshUseCase, log)
	health := healthHandler.NewHandler(indexStore, pinger, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Заведение ---
	api.HandleFunc("/venue", getVenue.Handle).Methods(http.MethodGet)

	// --- Доступность ---
	api.HandleFunc("/availability", getFreeTables.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/refresh", refreshAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/tables/{tableId}/availability", getTableAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

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

	// Останавливаем обновление индекса, потребителя брокера и сбор метрик пула
	cancel()
	close(stopMetricsCh)

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
