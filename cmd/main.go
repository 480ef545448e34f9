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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/deskhive/BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/deskhive/BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/deskhive/BookingService/internal/api/handlers/get_booking"
	getDayScheduleHandler "github.com/deskhive/BookingService/internal/api/handlers/get_day_schedule"
	getSlotOccupancyHandler "github.com/deskhive/BookingService/internal/api/handlers/get_slot_occupancy"
	getUserBookingsHandler "github.com/deskhive/BookingService/internal/api/handlers/get_user_bookings"
	getUserWaitlistHandler "github.com/deskhive/BookingService/internal/api/handlers/get_user_waitlist"
	getWaitlistPositionHandler "github.com/deskhive/BookingService/internal/api/handlers/get_waitlist_position"
	getWaitlistQueueHandler "github.com/deskhive/BookingService/internal/api/handlers/get_waitlist_queue"
	joinWaitlistHandler "github.com/deskhive/BookingService/internal/api/handlers/join_waitlist"
	leaveWaitlistHandler "github.com/deskhive/BookingService/internal/api/handlers/leave_waitlist"
	"github.com/deskhive/BookingService/internal/api/middleware"
	"github.com/deskhive/BookingService/internal/config"
	bookingRepo "github.com/deskhive/BookingService/internal/infra/storage/booking"
	waitlistRepo "github.com/deskhive/BookingService/internal/infra/storage/waitlist"
	catalogServiceClient "github.com/deskhive/BookingService/internal/integrations/catalogservice"
	identityServiceClient "github.com/deskhive/BookingService/internal/integrations/identityservice"
	bookingsService "github.com/deskhive/BookingService/internal/service/bookings"
	waitlistService "github.com/deskhive/BookingService/internal/service/waitlist"
	cancelBookingUC "github.com/deskhive/BookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/deskhive/BookingService/internal/usecase/create_booking"
	joinWaitlistUC "github.com/deskhive/BookingService/internal/usecase/join_waitlist"
	leaveWaitlistUC "github.com/deskhive/BookingService/internal/usecase/leave_waitlist"
	"github.com/deskhive/BookingService/pkg/dbmetrics"
	"github.com/deskhive/BookingService/pkg/logger"
	"github.com/deskhive/BookingService/pkg/metrics"
	"github.com/deskhive/BookingService/pkg/simpletxmanager"
	"github.com/deskhive/BookingService/pkg/txmanager"
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

	log.Info("Starting DeskHive BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, IdentityService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		waitlistRepository *waitlistRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB, metricsCollector)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db, metricsCollector)
	}

	// Инициализируем сервисы чтения
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogClient,
		identityClient,
		log,
		metricsCollector,
	)
	waitlistSvc := waitlistService.NewService(
		waitlistRepository,
		identityClient,
		log,
		metricsCollector,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		waitlistRepository,
		catalogClient,
		identityClient,
		txMgr,
		cfg.Booking.WindowDays,
		log,
		metricsCollector,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		waitlistRepository,
		identityClient,
		txMgr,
		log,
		metricsCollector,
	)
	joinWaitlistUseCase := joinWaitlistUC.NewUseCase(
		waitlistRepository,
		catalogClient,
		identityClient,
		txMgr,
		cfg.Booking.WindowDays,
		log,
		metricsCollector,
	)
	leaveWaitlistUseCase := leaveWaitlistUC.NewUseCase(
		waitlistRepository,
		identityClient,
		txMgr,
		log,
		metricsCollector,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(bookingSvc, log)
	getSlotOccupancy := getSlotOccupancyHandler.NewHandler(bookingSvc, log)
	joinWaitlist := joinWaitlistHandler.NewHandler(joinWaitlistUseCase, log)
	leaveWaitlist := leaveWaitlistHandler.NewHandler(leaveWaitlistUseCase, log)
	getWaitlistQueue := getWaitlistQueueHandler.NewHandler(waitlistSvc, log)
	getWaitlistPosition := getWaitlistPositionHandler.NewHandler(waitlistSvc, log)
	getUserWaitlist := getUserWaitlistHandler.NewHandler(waitlistSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозные middleware
	r.Use(middleware.RequestID)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		r.Use(limiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Запрос на бронирование: 201 allocated / 202 queued
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования (с промоушеном головы очереди)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Бронирования пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Расписание зоны на день
	protected.HandleFunc("/areas/{areaId}/schedule", getDaySchedule.Handle).Methods(http.MethodGet)

	// Занятость объекта на дату
	protected.HandleFunc("/objects/{objectId}/occupancy", getSlotOccupancy.Handle).Methods(http.MethodGet)

	// --- Очереди ожидания ---
	// Явная постановка в очередь зоны
	protected.HandleFunc("/waitlist", joinWaitlist.Handle).Methods(http.MethodPost)

	// Выход из очереди
	protected.HandleFunc("/waitlist/{entryId}", leaveWaitlist.Handle).Methods(http.MethodDelete)

	// Очередь зоны на дату (для администраторов)
	protected.HandleFunc("/areas/{areaId}/waitlist", getWaitlistQueue.Handle).Methods(http.MethodGet)

	// Позиция вызывающего в очереди зоны
	protected.HandleFunc("/areas/{areaId}/waitlist/position", getWaitlistPosition.Handle).Methods(http.MethodGet)

	// Все ожидающие записи вызывающего
	protected.HandleFunc("/users/me/waitlist", getUserWaitlist.Handle).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
