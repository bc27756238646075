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

	bookingMessagesHandler "github.com/m04kA/SC-BookingService/internal/api/handlers/booking_messages"
	createBookingHandler "github.com/m04kA/SC-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SC-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SC-BookingService/internal/api/handlers/get_booking"
	getOwnSalonHandler "github.com/m04kA/SC-BookingService/internal/api/handlers/get_own_salon"
	getSalonHandler "github.com/m04kA/SC-BookingService/internal/api/handlers/get_salon"
	getSalonBookingsHandler "github.com/m04kA/SC-BookingService/internal/api/handlers/get_salon_bookings"
	getUserBookingsHandler "github.com/m04kA/SC-BookingService/internal/api/handlers/get_user_bookings"
	listSalonsHandler "github.com/m04kA/SC-BookingService/internal/api/handlers/list_salons"
	updateBookingStatusHandler "github.com/m04kA/SC-BookingService/internal/api/handlers/update_booking_status"
	upsertSalonHandler "github.com/m04kA/SC-BookingService/internal/api/handlers/upsert_salon"
	verifySalonHandler "github.com/m04kA/SC-BookingService/internal/api/handlers/verify_salon"
	"github.com/m04kA/SC-BookingService/internal/api/middleware"
	"github.com/m04kA/SC-BookingService/internal/app"
	"github.com/m04kA/SC-BookingService/internal/auth"
	"github.com/m04kA/SC-BookingService/internal/config"
	bookingRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/booking"
	messageRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/message"
	salonRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/salon"
	userRepo "github.com/m04kA/SC-BookingService/internal/infra/storage/user"
	smsGateway "github.com/m04kA/SC-BookingService/internal/integrations/smsgateway"
	bookingsService "github.com/m04kA/SC-BookingService/internal/service/bookings"
	chatService "github.com/m04kA/SC-BookingService/internal/service/chat"
	salonsService "github.com/m04kA/SC-BookingService/internal/service/salons"
	createBookingUC "github.com/m04kA/SC-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SC-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SC-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SC-BookingService/pkg/logger"
	"github.com/m04kA/SC-BookingService/pkg/metrics"
	"github.com/m04kA/SC-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/SC-BookingService/pkg/txmanager"
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

	log.Info("Starting SC-BookingService...")
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

	// Применяем миграции (если включено)
	if cfg.Migrations.AutoApply {
		migrator, err := app.NewMigrator(db, cfg.Migrations.Dir)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Run(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		version, err := migrator.Version(context.Background())
		if err != nil {
			log.Fatal("Failed to read migrations version: %v", err)
		}
		log.Info("Database migrations applied, version=%d", version)
	}

	// Инициализируем SMS шлюз
	smsClient := smsGateway.NewClient(
		cfg.SMS.AccountSID,
		cfg.SMS.AuthToken,
		cfg.SMS.FromNumber,
		cfg.SMS.Enabled,
		log,
	)
	log.Info("SMS gateway initialized (enabled=%t)", cfg.SMS.Enabled)

	// Политика допуска владельцев салонов
	var ownerPolicy salonsService.OwnerPolicy
	if cfg.Auth.OwnerGateEnabled {
		ownerPolicy = auth.NewVerifiedEmailDomainPolicy(cfg.Auth.OwnerEmailDomain)
		log.Info("Owner gate enabled (domain=%s)", cfg.Auth.OwnerEmailDomain)
	} else {
		ownerPolicy = auth.AllowAllPolicy{}
		log.Info("Owner gate disabled, all verified accounts may register salons")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		salonRepository   *salonRepo.Repository
		messageRepository *messageRepo.Repository
		userRepository    *userRepo.Repository
	)

	var txMgr createBookingUC.TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		salonRepository = salonRepo.NewRepository(wrappedDB)
		messageRepository = messageRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		salonRepository = salonRepo.NewRepository(db)
		messageRepository = messageRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	salonsSvc := salonsService.NewService(
		salonRepository,
		userRepository,
		ownerPolicy,
		log,
	)
	bookingsSvc := bookingsService.NewService(
		bookingRepository,
		salonRepository,
		smsClient,
		ownerPolicy,
		log,
	)
	chatSvc := chatService.NewService(
		bookingRepository,
		messageRepository,
		userRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		salonRepository,
		userRepository,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		salonRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingsSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(bookingsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingsSvc, log)
	listSalons := listSalonsHandler.NewHandler(salonsSvc, log)
	getSalon := getSalonHandler.NewHandler(salonsSvc, log)
	getOwnSalon := getOwnSalonHandler.NewHandler(salonsSvc, log)
	upsertSalon := upsertSalonHandler.NewHandler(salonsSvc, log)
	verifySalon := verifySalonHandler.NewHandler(salonsSvc, log)
	bookingMessages := bookingMessagesHandler.NewHandler(chatSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// OWNER PROFILE (требует Bearer токен)
	// Регистрируется до /salons/{salonId}, чтобы "profile" не матчился как ID
	// ============================================================

	profile := api.PathPrefix("/salons/profile").Subrouter()
	profile.Use(middleware.Auth(cfg.Auth.JWTSecret, log))
	profile.HandleFunc("", upsertSalon.Handle).Methods(http.MethodPut)
	profile.HandleFunc("", getOwnSalon.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (пароль администратора)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Auth.AdminPasswordHash, log))

	// Все салоны с платёжными ссылками для ручной сверки
	admin.HandleFunc("/salons", verifySalon.HandleList).Methods(http.MethodGet)

	// Флаги верификации и оплаты
	admin.HandleFunc("/salons/{salonId}/authorization", verifySalon.HandleSetAuthorization).Methods(http.MethodPatch)
	admin.HandleFunc("/salons/{salonId}/payment", verifySalon.HandleSetPayment).Methods(http.MethodPatch)

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог публично видимых салонов
	api.HandleFunc("/salons", listSalons.Handle).Methods(http.MethodGet)

	// Доступные слоты салона на дату
	api.HandleFunc("/salons/{salonId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Публичная карточка салона
	api.HandleFunc("/salons/{salonId}", getSalon.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, log))

	// --- Бронирования ---
	// Создание заявки на бронирование
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Решение владельца и дальнейшие переходы статуса
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Бронирования салона (для владельца)
	protected.HandleFunc("/salons/{salonId}/bookings", getSalonBookings.Handle).Methods(http.MethodGet)

	// --- Чат по бронированию ---
	protected.HandleFunc("/bookings/{bookingId}/messages", bookingMessages.HandleSend).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/messages", bookingMessages.HandleList).Methods(http.MethodGet)

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
