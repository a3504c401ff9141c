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
	"github.com/robfig/cron/v3"

	cancelVisitHandler "github.com/avolkov/PRS-VisitService/internal/api/handlers/cancel_visit"
	createAuthorizationHandler "github.com/avolkov/PRS-VisitService/internal/api/handlers/create_authorization"
	createVisitHandler "github.com/avolkov/PRS-VisitService/internal/api/handlers/create_visit"
	createWindowHandler "github.com/avolkov/PRS-VisitService/internal/api/handlers/create_window"
	deleteAuthorizationHandler "github.com/avolkov/PRS-VisitService/internal/api/handlers/delete_authorization"
	deleteWindowHandler "github.com/avolkov/PRS-VisitService/internal/api/handlers/delete_window"
	getAccessiblePropertiesHandler "github.com/avolkov/PRS-VisitService/internal/api/handlers/get_accessible_properties"
	getAuthorizationsHandler "github.com/avolkov/PRS-VisitService/internal/api/handlers/get_authorizations"
	getAvailableSlotsHandler "github.com/avolkov/PRS-VisitService/internal/api/handlers/get_available_slots"
	getPropertyVisitsHandler "github.com/avolkov/PRS-VisitService/internal/api/handlers/get_property_visits"
	getVisitHandler "github.com/avolkov/PRS-VisitService/internal/api/handlers/get_visit"
	getVisitorVisitsHandler "github.com/avolkov/PRS-VisitService/internal/api/handlers/get_visitor_visits"
	getWindowsHandler "github.com/avolkov/PRS-VisitService/internal/api/handlers/get_windows"
	rescheduleVisitHandler "github.com/avolkov/PRS-VisitService/internal/api/handlers/reschedule_visit"
	"github.com/avolkov/PRS-VisitService/internal/api/middleware"
	"github.com/avolkov/PRS-VisitService/internal/config"
	authRepo "github.com/avolkov/PRS-VisitService/internal/infra/storage/authorization"
	propertyRepo "github.com/avolkov/PRS-VisitService/internal/infra/storage/property"
	visitRepo "github.com/avolkov/PRS-VisitService/internal/infra/storage/visit"
	windowRepo "github.com/avolkov/PRS-VisitService/internal/infra/storage/window"
	notifyServiceClient "github.com/avolkov/PRS-VisitService/internal/integrations/notifyservice"
	scheduleService "github.com/avolkov/PRS-VisitService/internal/service/schedule"
	visitsService "github.com/avolkov/PRS-VisitService/internal/service/visits"
	cancelVisitUC "github.com/avolkov/PRS-VisitService/internal/usecase/cancel_visit"
	completeVisitsUC "github.com/avolkov/PRS-VisitService/internal/usecase/complete_visits"
	createVisitUC "github.com/avolkov/PRS-VisitService/internal/usecase/create_visit"
	getAvailableSlotsUC "github.com/avolkov/PRS-VisitService/internal/usecase/get_available_slots"
	rescheduleVisitUC "github.com/avolkov/PRS-VisitService/internal/usecase/reschedule_visit"
	"github.com/avolkov/PRS-VisitService/pkg/dbmetrics"
	"github.com/avolkov/PRS-VisitService/pkg/logger"
	"github.com/avolkov/PRS-VisitService/pkg/metrics"
	"github.com/avolkov/PRS-VisitService/pkg/simpletxmanager"
	"github.com/avolkov/PRS-VisitService/pkg/txmanager"
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

	log.Info("Starting PRS-VisitService...")
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

	// Инициализируем клиента NotifyService
	var notifyMetrics notifyServiceClient.MetricsObserver
	if cfg.Metrics.Enabled {
		notifyMetrics = metricsCollector
	}
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		notifyMetrics,
		log,
	)
	log.Info("NotifyService client initialized (url=%s, timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		visitRepository    *visitRepo.Repository
		windowRepository   *windowRepo.Repository
		propertyRepository *propertyRepo.Repository
		authRepository     *authRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		visitRepository = visitRepo.NewRepository(wrappedDB)
		windowRepository = windowRepo.NewRepository(wrappedDB)
		propertyRepository = propertyRepo.NewRepository(wrappedDB)
		authRepository = authRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		visitRepository = visitRepo.NewRepository(db)
		windowRepository = windowRepo.NewRepository(db)
		propertyRepository = propertyRepo.NewRepository(db)
		authRepository = authRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	visitsSvc := visitsService.NewService(
		visitRepository,
		propertyRepository,
		authRepository,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		windowRepository,
		authRepository,
		propertyRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		visitRepository,
		windowRepository,
		propertyRepository,
		authRepository,
		cfg.Visits.LookaheadDays,
		log,
	)

	createVisitUseCase := createVisitUC.NewUseCase(
		visitRepository,
		windowRepository,
		propertyRepository,
		authRepository,
		notifyClient,
		txMgr,
		log,
	)

	cancelVisitUseCase := cancelVisitUC.NewUseCase(
		visitRepository,
		propertyRepository,
		notifyClient,
		log,
	)

	rescheduleVisitUseCase := rescheduleVisitUC.NewUseCase(
		visitRepository,
		windowRepository,
		propertyRepository,
		notifyClient,
		txMgr,
		cfg.Visits.InheritCancellationCount,
		log,
	)

	completeVisitsUseCase := completeVisitsUC.NewUseCase(visitRepository, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createVisit := createVisitHandler.NewHandler(createVisitUseCase, log)
	cancelVisit := cancelVisitHandler.NewHandler(cancelVisitUseCase, log)
	rescheduleVisit := rescheduleVisitHandler.NewHandler(rescheduleVisitUseCase, log)
	getVisit := getVisitHandler.NewHandler(visitsSvc, log)
	getVisitorVisits := getVisitorVisitsHandler.NewHandler(visitsSvc, log)
	getAccessibleProperties := getAccessiblePropertiesHandler.NewHandler(visitsSvc, log)
	getPropertyVisits := getPropertyVisitsHandler.NewHandler(visitsSvc, log)
	createWindow := createWindowHandler.NewHandler(scheduleSvc, log)
	getWindows := getWindowsHandler.NewHandler(scheduleSvc, log)
	deleteWindow := deleteWindowHandler.NewHandler(scheduleSvc, log)
	createAuthorization := createAuthorizationHandler.NewHandler(scheduleSvc, log)
	getAuthorizations := getAuthorizationsHandler.NewHandler(scheduleSvc, log)
	deleteAuthorization := deleteAuthorizationHandler.NewHandler(scheduleSvc, log)

	// Запускаем фоновое завершение прошедших визитов
	var sweeper *cron.Cron
	if cfg.Sweeper.Enabled {
		sweeper = cron.New()
		_, err := sweeper.AddFunc(cfg.Sweeper.Schedule, func() {
			if _, err := completeVisitsUseCase.Execute(context.Background()); err != nil {
				log.Error("Sweeper run failed: %v", err)
			}
		})
		if err != nil {
			log.Fatal("Failed to schedule visit sweeper: %v", err)
		}
		sweeper.Start()
		log.Info("Visit sweeper started (schedule=%q)", cfg.Sweeper.Schedule)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// TOKEN ROUTES (access token в URL - владение токеном и есть доступ)
	// ============================================================

	api.HandleFunc("/visits/{accessToken}", getVisit.Handle).Methods(http.MethodGet)
	api.HandleFunc("/visits/{accessToken}/cancel", cancelVisit.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/visits/{accessToken}/reschedule", rescheduleVisit.Handle).Methods(http.MethodPatch)

	// ============================================================
	// VISITOR ROUTES (требуют X-Visitor-Phone header)
	// ============================================================

	visitor := api.PathPrefix("").Subrouter()
	visitor.Use(middleware.VisitorPhone)

	// Объекты, доступные заявителю
	visitor.HandleFunc("/properties", getAccessibleProperties.Handle).Methods(http.MethodGet)

	// Доступные слоты объекта
	visitor.HandleFunc("/properties/{propertyId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание визита
	visitor.HandleFunc("/visits", createVisit.Handle).Methods(http.MethodPost)

	// История визитов заявителя
	visitor.HandleFunc("/visits", getVisitorVisits.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-ID header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth)

	// Визиты объекта
	admin.HandleFunc("/properties/{propertyId}/visits", getPropertyVisits.Handle).Methods(http.MethodGet)

	// Окна доступности
	admin.HandleFunc("/properties/{propertyId}/windows", createWindow.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/properties/{propertyId}/windows", getWindows.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/properties/{propertyId}/windows/{windowId}", deleteWindow.Handle).Methods(http.MethodDelete)

	// Авторизации телефонов
	admin.HandleFunc("/properties/{propertyId}/authorizations", createAuthorization.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/properties/{propertyId}/authorizations", getAuthorizations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/properties/{propertyId}/authorizations/{authorizationId}",
		deleteAuthorization.Handle).Methods(http.MethodDelete)

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

	// Останавливаем фоновые задачи
	if sweeper != nil {
		sweeperCtx := sweeper.Stop()
		<-sweeperCtx.Done()
		log.Info("Visit sweeper stopped")
	}

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
