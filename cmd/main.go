package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/complete_booking"
	confirmPaymentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	deleteSlotHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/delete_slot"
	deleteSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/delete_slots"
	generateSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/generate_slots"
	getAvailabilityHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking_stats"
	getDailyBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_daily_bookings"
	getSlotStatsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_slot_stats"
	listSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_slots"
	rescheduleBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/reschedule_booking"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	paymentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/payment"
	slotRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/mercadopago"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/stripepay"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	scheduleService "github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	cancelBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/cancel_booking"
	confirmPaymentUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	generateSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/generate_slots"
	rescheduleBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/reschedule_booking"
	resolveAvailabilityUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/resolve_availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/bookingcode"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
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

	log.Info("Starting SMC-SalonBooking...")

	closingTime, err := cfg.Scheduling.ClosingBound()
	if err != nil {
		log.Fatal("Invalid closing time: %v", err)
	}

	// Метрики: при выключенных nil-коллектор, все методы безопасны
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithRetryObserver(metricsCollector))

	// Инициализируем репозитории
	slotRepository := slotRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)

	// Уведомления о событиях бронирования
	var (
		sender      notifier.Sender
		kafkaSender *notifier.Kafka
	)
	notifyTimeout := time.Duration(cfg.Notifications.Timeout) * time.Second

	switch strings.ToLower(cfg.Notifications.Driver) {
	case config.NotifierWebhook:
		sender = notifier.NewWebhook(cfg.Notifications.WebhookURL, notifyTimeout)
		log.Info("Notifications: webhook %s", cfg.Notifications.WebhookURL)
	case config.NotifierKafka:
		kafkaSender = notifier.NewKafka(notifier.NewKafkaWriter(cfg.Notifications.KafkaBrokers, cfg.Notifications.KafkaTopic, notifyTimeout))
		sender = kafkaSender
		log.Info("Notifications: kafka topic=%s brokers=%v", cfg.Notifications.KafkaTopic, cfg.Notifications.KafkaBrokers)
	default:
		log.Info("Notifications: disabled, events are only logged")
	}
	bookingNotifier := notifier.New(sender, metricsCollector, log)

	// Провайдер платежей
	var verifier confirmPaymentUC.PaymentVerifier
	paymentsTimeout := time.Duration(cfg.Payments.Timeout) * time.Second

	switch strings.ToLower(cfg.Payments.Provider) {
	case config.PaymentProviderMercadoPago:
		verifier = mercadopago.NewClient(cfg.Payments.MercadoPagoURL, cfg.Payments.MercadoPagoToken, paymentsTimeout, log)
	case config.PaymentProviderStripe:
		verifier = stripepay.NewClient(cfg.Payments.StripeSecretKey, "", paymentsTimeout, log)
	}
	if verifier != nil {
		log.Info("Payments: provider=%s timeout=%ds", verifier.Provider(), cfg.Payments.Timeout)
	} else {
		log.Info("Payments: provider not configured, payment confirmation disabled")
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, paymentRepository, txMgr, metricsCollector, log)
	scheduleSvc := scheduleService.NewService(slotRepository, catalogRepository, cfg.Scheduling.MaxGenerationDays, log)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		catalogRepository,
		slotRepository,
		txMgr,
		metricsCollector,
		log,
		cfg.Scheduling.MaxGenerationDays,
	)
	resolveAvailabilityUseCase := resolveAvailabilityUC.NewUseCase(
		catalogRepository,
		slotRepository,
		bookingRepository,
		closingTime,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		catalogRepository,
		bookingcode.NewGenerator(),
		bookingNotifier,
		txMgr,
		metricsCollector,
		closingTime,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		bookingNotifier,
		txMgr,
		metricsCollector,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		bookingNotifier,
		txMgr,
		metricsCollector,
		closingTime,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(resolveAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)

	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	listSlots := listSlotsHandler.NewHandler(scheduleSvc, log)
	deleteSlots := deleteSlotsHandler.NewHandler(scheduleSvc, log)
	getSlotStats := getSlotStatsHandler.NewHandler(scheduleSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(scheduleSvc, log)
	getDailyBookings := getDailyBookingsHandler.NewHandler(bookingSvc, log)
	getBookingStats := getBookingStatsHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Invalid rate_limit.trusted_proxies: %v", err)
		}
		public.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, trustedProxies, log).Middleware())
		log.Info("Rate limit enabled: rps=%.1f burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Свободное время для набора услуг
	public.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	public.HandleFunc("/bookings/{code}", getBooking.Handle).Methods(http.MethodGet)
	public.HandleFunc("/bookings/{code}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	public.HandleFunc("/bookings/{code}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	if verifier != nil {
		confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
			bookingRepository,
			paymentRepository,
			verifier,
			bookingNotifier,
			txMgr,
			metricsCollector,
			log,
		)
		confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
		public.HandleFunc("/bookings/{code}/payments", confirmPayment.Handle).Methods(http.MethodPost)
	}

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminToken(cfg.Admin.Token, log))

	// --- Расписание мастеров ---
	admin.HandleFunc("/professionals/{professionalId}/slots/generate", generateSlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/professionals/{professionalId}/slots/stats", getSlotStats.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/professionals/{professionalId}/slots", listSlots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/professionals/{professionalId}/slots", deleteSlots.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

	// --- Записи салона ---
	admin.HandleFunc("/bookings", getDailyBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/stats", getBookingStats.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{code}/complete", completeBooking.Handle).Methods(http.MethodPatch)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if kafkaSender != nil {
		if err := kafkaSender.Close(); err != nil {
			log.Error("Failed to close kafka writer: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
