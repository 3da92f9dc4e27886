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

	cancelBookingHandler "github.com/plindo/booking-service/internal/api/handlers/cancel_booking"
	cancelProductOrderHandler "github.com/plindo/booking-service/internal/api/handlers/cancel_product_order"
	createProductOrderHandler "github.com/plindo/booking-service/internal/api/handlers/create_product_order"
	createSlotBookingHandler "github.com/plindo/booking-service/internal/api/handlers/create_slot_booking"
	deletePartnerConfigHandler "github.com/plindo/booking-service/internal/api/handlers/delete_partner_config"
	getAvailableWindowsHandler "github.com/plindo/booking-service/internal/api/handlers/get_available_windows"
	getBookingHandler "github.com/plindo/booking-service/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/plindo/booking-service/internal/api/handlers/get_customer_bookings"
	getPartnerBookingsHandler "github.com/plindo/booking-service/internal/api/handlers/get_partner_bookings"
	getPartnerConfigHandler "github.com/plindo/booking-service/internal/api/handlers/get_partner_config"
	getPartnerOrdersHandler "github.com/plindo/booking-service/internal/api/handlers/get_partner_orders"
	getWeeklyAvailabilityHandler "github.com/plindo/booking-service/internal/api/handlers/get_weekly_availability"
	listPartnerConfigsHandler "github.com/plindo/booking-service/internal/api/handlers/list_partner_configs"
	openDisputeHandler "github.com/plindo/booking-service/internal/api/handlers/open_dispute"
	rateBookingHandler "github.com/plindo/booking-service/internal/api/handlers/rate_booking"
	refundBookingHandler "github.com/plindo/booking-service/internal/api/handlers/refund_booking"
	rescheduleBookingHandler "github.com/plindo/booking-service/internal/api/handlers/reschedule_booking"
	resolveDisputeHandler "github.com/plindo/booking-service/internal/api/handlers/resolve_dispute"
	respondDisputeHandler "github.com/plindo/booking-service/internal/api/handlers/respond_dispute"
	updateBookingStatusHandler "github.com/plindo/booking-service/internal/api/handlers/update_booking_status"
	updateOrderStatusHandler "github.com/plindo/booking-service/internal/api/handlers/update_order_status"
	updatePartnerConfigHandler "github.com/plindo/booking-service/internal/api/handlers/update_partner_config"
	updateWeeklyAvailabilityHandler "github.com/plindo/booking-service/internal/api/handlers/update_weekly_availability"
	"github.com/plindo/booking-service/internal/api/middleware"
	"github.com/plindo/booking-service/internal/config"
	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/internal/infra/migrator"
	availabilityRepo "github.com/plindo/booking-service/internal/infra/storage/availability"
	bookingRepo "github.com/plindo/booking-service/internal/infra/storage/booking"
	configRepo "github.com/plindo/booking-service/internal/infra/storage/config"
	disputeRepo "github.com/plindo/booking-service/internal/infra/storage/dispute"
	orderRepo "github.com/plindo/booking-service/internal/infra/storage/order"
	customerServiceClient "github.com/plindo/booking-service/internal/integrations/customerservice"
	partnerServiceClient "github.com/plindo/booking-service/internal/integrations/partnerservice"
	availabilityService "github.com/plindo/booking-service/internal/service/availability"
	bookingsService "github.com/plindo/booking-service/internal/service/bookings"
	configService "github.com/plindo/booking-service/internal/service/config"
	disputesService "github.com/plindo/booking-service/internal/service/disputes"
	ordersService "github.com/plindo/booking-service/internal/service/orders"
	createSlotBookingUC "github.com/plindo/booking-service/internal/usecase/create_slot_booking"
	getAvailableWindowsUC "github.com/plindo/booking-service/internal/usecase/get_available_windows"
	rescheduleBookingUC "github.com/plindo/booking-service/internal/usecase/reschedule_booking"
	"github.com/plindo/booking-service/pkg/dbmetrics"
	"github.com/plindo/booking-service/pkg/logger"
	"github.com/plindo/booking-service/pkg/metrics"
	"github.com/plindo/booking-service/pkg/simpletxmanager"
	"github.com/plindo/booking-service/pkg/txmanager"
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

	log.Info("Starting Plindo BookingService...")
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

	// Накатываем миграции (если включено)
	if cfg.Database.AutoMigrate {
		m := migrator.New(db, cfg.Database.MigrationsPath)
		if err := m.Up(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied (path=%s)", cfg.Database.MigrationsPath)
	}

	// Инициализируем интеграционных клиентов
	partnerClient := partnerServiceClient.NewClient(
		cfg.PartnerService.URL,
		time.Duration(cfg.PartnerService.Timeout)*time.Second,
		log,
	)
	customerClient := customerServiceClient.NewClient(
		cfg.CustomerService.URL,
		time.Duration(cfg.CustomerService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PartnerService=%s timeout=%ds, CustomerService=%s timeout=%ds)",
		cfg.PartnerService.URL, cfg.PartnerService.Timeout, cfg.CustomerService.URL, cfg.CustomerService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		configRepository       *configRepo.Repository
		orderRepository        *orderRepo.Repository
		disputeRepository      *disputeRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		orderRepository = orderRepo.NewRepository(wrappedDB)
		disputeRepository = disputeRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		orderRepository = orderRepo.NewRepository(db)
		disputeRepository = disputeRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Платформенные ставки комиссии по умолчанию
	defaultRates := domain.CommissionRates{
		CustomerPct: cfg.Commission.CustomerPct,
		PartnerPct:  cfg.Commission.PartnerPct,
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		configRepository,
		partnerClient,
		txMgr,
		cfg.Auth.AdminIDs,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		partnerClient,
		txMgr,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		partnerClient,
		log,
	)
	ordersSvc := ordersService.NewService(
		orderRepository,
		partnerClient,
		txMgr,
		log,
	)
	disputesSvc := disputesService.NewService(
		disputeRepository,
		bookingRepository,
		partnerClient,
		cfg.Auth.AdminIDs,
		log,
	)

	// Инициализируем use cases
	createSlotBookingUseCase := createSlotBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		configRepository,
		partnerClient,
		customerClient,
		txMgr,
		defaultRates,
		log,
	)
	getAvailableWindowsUseCase := getAvailableWindowsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		configRepository,
		partnerClient,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		configRepository,
		partnerClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createSlotBooking := createSlotBookingHandler.NewHandler(createSlotBookingUseCase, log)
	getAvailableWindows := getAvailableWindowsHandler.NewHandler(getAvailableWindowsUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	refundBooking := refundBookingHandler.NewHandler(bookingSvc, log)
	rateBooking := rateBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getPartnerBookings := getPartnerBookingsHandler.NewHandler(bookingSvc, log)
	getWeeklyAvailability := getWeeklyAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateWeeklyAvailability := updateWeeklyAvailabilityHandler.NewHandler(availabilitySvc, log)
	getPartnerConfig := getPartnerConfigHandler.NewHandler(configSvc, log)
	listPartnerConfigs := listPartnerConfigsHandler.NewHandler(configSvc, log)
	updatePartnerConfig := updatePartnerConfigHandler.NewHandler(configSvc, log)
	deletePartnerConfig := deletePartnerConfigHandler.NewHandler(configSvc, log)
	createProductOrder := createProductOrderHandler.NewHandler(ordersSvc, log)
	getPartnerOrders := getPartnerOrdersHandler.NewHandler(ordersSvc, log)
	updateOrderStatus := updateOrderStatusHandler.NewHandler(ordersSvc, log)
	cancelProductOrder := cancelProductOrderHandler.NewHandler(ordersSvc, log)
	openDispute := openDisputeHandler.NewHandler(disputesSvc, log)
	respondDispute := respondDisputeHandler.NewHandler(disputesSvc, log)
	resolveDispute := resolveDisputeHandler.NewHandler(disputesSvc, log)

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
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступных окон для бронирования
	api.HandleFunc("/partners/{partnerId}/available-windows",
		getAvailableWindows.Handle).Methods(http.MethodGet)

	// Недельное расписание партнера
	api.HandleFunc("/partners/{partnerId}/availability/weekly",
		getWeeklyAvailability.Handle).Methods(http.MethodGet)

	// Эффективная конфигурация бронирования партнера
	api.HandleFunc("/partners/{partnerId}/config",
		getPartnerConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createSlotBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Перевод бронирования по статусной машине
	protected.HandleFunc("/bookings/{bookingId}", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Возврат средств (только администратор)
	protected.HandleFunc("/bookings/{bookingId}/refund", refundBooking.Handle).Methods(http.MethodPost)

	// Перенос бронирования на другое время
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)

	// Оценка выполненного бронирования
	protected.HandleFunc("/bookings/{bookingId}/rate", rateBooking.Handle).Methods(http.MethodPost)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Управление партнером (для менеджеров) ---
	// Список бронирований партнера
	protected.HandleFunc("/partners/{partnerId}/bookings", getPartnerBookings.Handle).Methods(http.MethodGet)

	// Обновление недельного расписания
	protected.HandleFunc("/partners/{partnerId}/availability/weekly",
		updateWeeklyAvailability.Handle).Methods(http.MethodPut)

	// Конфигурации бронирования партнера
	protected.HandleFunc("/partners/{partnerId}/configs", listPartnerConfigs.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/partners/{partnerId}/config", updatePartnerConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/partners/{partnerId}/config/{configId}", deletePartnerConfig.Handle).Methods(http.MethodDelete)

	// --- Заказы товаров ---
	protected.HandleFunc("/product-orders", createProductOrder.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/partners/{partnerId}/product-orders", getPartnerOrders.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/product-orders/{orderId}/status", updateOrderStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/product-orders/{orderId}/cancel", cancelProductOrder.Handle).Methods(http.MethodPost)

	// --- Споры ---
	protected.HandleFunc("/bookings/{bookingId}/dispute", openDispute.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/disputes/{disputeId}/respond", respondDispute.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/disputes/{disputeId}/resolve", resolveDispute.Handle).Methods(http.MethodPost)

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
