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

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBookingService/internal/api"
	cancelBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_booking"
	getCalendarHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_calendar"
	getDaySlotsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_day_slots"
	getMyBookingsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_my_bookings"
	getSlotPolicyHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_slot_policy"
	healthHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/list_bookings"
	transitionBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/transition_booking"
	updateSlotPolicyHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/update_slot_policy"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/config"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/cache"
	calendarCache "github.com/m04kA/SMC-SalonBookingService/internal/infra/cache/calendar"
	bookingRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/booking"
	slotPolicyRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/slotpolicy"
	userServiceClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SalonBookingService/internal/jobs"
	bookingsService "github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	calendarService "github.com/m04kA/SMC-SalonBookingService/internal/service/calendar"
	slotPolicyService "github.com/m04kA/SMC-SalonBookingService/internal/service/slotpolicy"
	createBookingUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
	getDaySlotsUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/metrics"
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

	log.Info("Starting SMC-SalonBookingService...")
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

	// Инициализируем репозитории (с метриками или без)
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	bookingRepository := bookingRepo.NewRepository(executor)
	policyRepository := slotPolicyRepo.NewRepository(executor)

	// Подключаемся к Redis (необязательно: без него кэш календаря выключен)
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = cache.Connect(context.Background(), cfg.Redis.URL)
		if err != nil {
			log.Error("Redis unavailable, calendar cache disabled: %v", err)
		} else {
			defer redisClient.Close()
			log.Info("Connected to Redis, calendar cache ttl=%ds", cfg.Redis.CalendarTTL)
		}
	}
	countsCache := calendarCache.NewCache(redisClient, cfg.Redis.CalendarTTLDuration(), log)

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем сервисы
	policySvc := slotPolicyService.NewService(policyRepository, cfg.Booking.SlotPolicy(), log)
	bookingSvc := bookingsService.NewService(bookingRepository, countsCache, metricsCollector, log)
	calendarSvc := calendarService.NewService(bookingRepository, countsCache, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		policySvc,
		userClient,
		countsCache,
		metricsCollector,
		log,
	)
	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(
		bookingRepository,
		policySvc,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	markDone := transitionBookingHandler.NewHandler(bookingSvc, domain.StatusCompleted, log)
	markConfirmed := transitionBookingHandler.NewHandler(bookingSvc, domain.StatusConfirmed, log)
	markCancelled := transitionBookingHandler.NewHandler(bookingSvc, domain.StatusCancelled, log)
	markRescheduled := transitionBookingHandler.NewHandler(bookingSvc, domain.StatusRescheduled, log)
	getCalendar := getCalendarHandler.NewHandler(calendarSvc, log)
	getDaySlots := getDaySlotsHandler.NewHandler(getDaySlotsUseCase, log)
	getSlotPolicy := getSlotPolicyHandler.NewHandler(policySvc, log)
	updateSlotPolicy := updateSlotPolicyHandler.NewHandler(policySvc, log)
	health := healthHandler.NewHandler(db, log)

	// Настраиваем middleware
	routerOpts := api.Options{
		Auth:   middleware.NewAuthenticator(cfg.Auth.JWTSecret, log),
		Logger: log,
	}

	if cfg.Metrics.Enabled {
		routerOpts.Metrics = metricsCollector
		routerOpts.MetricsPath = cfg.Metrics.Path
		routerOpts.MetricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	if cfg.RateLimit.Enabled {
		storeKind := cfg.RateLimit.Store
		if storeKind == config.RateLimitStoreRedis && redisClient == nil {
			log.Warn("Redis unavailable, guest rate limit falls back to memory store")
			storeKind = config.RateLimitStoreMemory
		}

		store, err := cache.NewLimiterStore(storeKind, redisClient)
		if err != nil {
			log.Fatal("Failed to create rate limit store: %v", err)
		}
		routerOpts.GuestLimit, err = middleware.GuestRateLimit(store, cfg.RateLimit.Rate, log)
		if err != nil {
			log.Fatal("Failed to configure guest rate limit: %v", err)
		}
		log.Info("Guest rate limit enabled: rate=%s, store=%s", cfg.RateLimit.Rate, storeKind)
	}

	// Настраиваем роутер
	r := api.NewRouter(api.Routes{
		Health:           health.Handle,
		CreateBooking:    createBooking.Handle,
		MyBookings:       getMyBookings.Handle,
		CancelMine:       cancelBooking.Handle,
		ListAll:          listBookings.HandleAll,
		ListToday:        listBookings.HandleToday,
		Search:           listBookings.HandleSearch,
		ListByDate:       listBookings.HandleByDate,
		ListRange:        listBookings.HandleRange,
		GetBooking:       getBooking.Handle,
		MarkDone:         markDone.Handle,
		MarkConfirmed:    markConfirmed.Handle,
		MarkCancelled:    markCancelled.Handle,
		MarkResched:      markRescheduled.Handle,
		CalendarCounts:   getCalendar.HandleCounts,
		CalendarEvents:   getCalendar.HandleEvents,
		CalendarMonthly:  getCalendar.HandleMonthly,
		DaySlots:         getDaySlots.Handle,
		GetSlotPolicy:    getSlotPolicy.Handle,
		UpdateSlotPolicy: updateSlotPolicy.Handle,
	}, routerOpts)

	// Периодические задачи
	scheduler := jobs.NewScheduler(log)
	if cfg.Jobs.TodaySpec != "" {
		todayJob := jobs.NewTodayBookingsJob(bookingRepository, metricsCollector, log)
		if err := scheduler.Register(jobs.TodayBookingsJobName, cfg.Jobs.TodaySpec, todayJob); err != nil {
			log.Fatal("Failed to schedule job: %v", err)
		}
		go todayJob.Run()
	}
	scheduler.Start()

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

	scheduler.Stop(shutdownCtx)
	log.Info("Scheduler stopped")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
