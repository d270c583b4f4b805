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

	approveGroupHandler "github.com/m04kA/UCR-ReservationService/internal/api/handlers/approve_group"
	approveReservationHandler "github.com/m04kA/UCR-ReservationService/internal/api/handlers/approve_reservation"
	auditLogsHandler "github.com/m04kA/UCR-ReservationService/internal/api/handlers/audit_logs"
	classroomsHandler "github.com/m04kA/UCR-ReservationService/internal/api/handlers/classrooms"
	feedbacksHandler "github.com/m04kA/UCR-ReservationService/internal/api/handlers/feedbacks"
	rejectGroupHandler "github.com/m04kA/UCR-ReservationService/internal/api/handlers/reject_group"
	reservationGroupsHandler "github.com/m04kA/UCR-ReservationService/internal/api/handlers/reservation_groups"
	reservationsHandler "github.com/m04kA/UCR-ReservationService/internal/api/handlers/reservations"
	submitReservationHandler "github.com/m04kA/UCR-ReservationService/internal/api/handlers/submit_reservation"
	termsHandler "github.com/m04kA/UCR-ReservationService/internal/api/handlers/terms"
	"github.com/m04kA/UCR-ReservationService/internal/api/middleware"
	"github.com/m04kA/UCR-ReservationService/internal/bootstrap"
	"github.com/m04kA/UCR-ReservationService/internal/config"
	auditlogRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/auditlog"
	classroomRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/classroom"
	feedbackRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/feedback"
	reservationRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/reservation"
	termRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/term"
	userRepo "github.com/m04kA/UCR-ReservationService/internal/infra/storage/user"
	holidayAPIClient "github.com/m04kA/UCR-ReservationService/internal/integrations/holidayapi"
	mailerClient "github.com/m04kA/UCR-ReservationService/internal/integrations/mailer"
	auditService "github.com/m04kA/UCR-ReservationService/internal/service/audit"
	classroomsService "github.com/m04kA/UCR-ReservationService/internal/service/classrooms"
	feedbackService "github.com/m04kA/UCR-ReservationService/internal/service/feedback"
	reservationsService "github.com/m04kA/UCR-ReservationService/internal/service/reservations"
	termsService "github.com/m04kA/UCR-ReservationService/internal/service/terms"
	approveGroupUC "github.com/m04kA/UCR-ReservationService/internal/usecase/approve_group"
	approveReservationUC "github.com/m04kA/UCR-ReservationService/internal/usecase/approve_reservation"
	rejectGroupUC "github.com/m04kA/UCR-ReservationService/internal/usecase/reject_group"
	submitReservationUC "github.com/m04kA/UCR-ReservationService/internal/usecase/submit_reservation"
	"github.com/m04kA/UCR-ReservationService/pkg/logger"
	"github.com/m04kA/UCR-ReservationService/pkg/metrics"
	"github.com/m04kA/UCR-ReservationService/pkg/txmanager"
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

	log.Info("Starting UCR-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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
	holidayClient := holidayAPIClient.NewClient(
		cfg.HolidayAPI.URL,
		cfg.HolidayAPI.CountryCode,
		time.Duration(cfg.HolidayAPI.Timeout)*time.Second,
		log,
	)
	mailer := mailerClient.NewClient(
		cfg.Smtp.Host,
		cfg.Smtp.Port,
		cfg.Smtp.Username,
		cfg.Smtp.Password,
		cfg.Smtp.From,
		log,
	)
	log.Info("Integration clients initialized (HolidayAPI=%s country=%s timeout=%ds, SMTP=%s:%d)",
		cfg.HolidayAPI.URL, cfg.HolidayAPI.CountryCode, cfg.HolidayAPI.Timeout, cfg.Smtp.Host, cfg.Smtp.Port)

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(db)
	classroomRepository := classroomRepo.NewRepository(db)
	termRepository := termRepo.NewRepository(db)
	feedbackRepository := feedbackRepo.NewRepository(db)
	auditlogRepository := auditlogRepo.NewRepository(db)
	userRepository := userRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)

	// Назначаем роли при старте: первый запуск делает администратором
	// пользователя из конфигурации
	if err := bootstrap.Run(context.Background(), userRepository, cfg.Bootstrap.AdminEmail, log); err != nil {
		log.Fatal("Bootstrap failed: %v", err)
	}

	// Инициализируем сервисы
	auditSvc := auditService.NewService(auditlogRepository, log)
	classroomsSvc := classroomsService.NewService(classroomRepository, log)
	termsSvc := termsService.NewService(termRepository, log)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		userRepository,
		classroomRepository,
		mailer,
		auditSvc,
		txMgr,
		log,
	)
	feedbackSvc := feedbackService.NewService(
		feedbackRepository,
		reservationRepository,
		classroomRepository,
		mailer,
		auditSvc,
		cfg.Smtp.AdminEmail,
		log,
	)

	// Инициализируем use cases
	submitReservationUseCase := submitReservationUC.NewUseCase(
		reservationRepository,
		classroomRepository,
		termRepository,
		userRepository,
		holidayClient,
		mailer,
		auditSvc,
		txMgr,
		cfg.Smtp.AdminEmail,
		log,
	)
	approveReservationUseCase := approveReservationUC.NewUseCase(
		reservationRepository,
		userRepository,
		classroomRepository,
		holidayClient,
		mailer,
		auditSvc,
		txMgr,
		log,
	)
	approveGroupUseCase := approveGroupUC.NewUseCase(
		reservationRepository,
		userRepository,
		classroomRepository,
		holidayClient,
		mailer,
		auditSvc,
		txMgr,
		log,
	)
	rejectGroupUseCase := rejectGroupUC.NewUseCase(
		reservationRepository,
		userRepository,
		classroomRepository,
		mailer,
		auditSvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	submitReservation := submitReservationHandler.NewHandler(submitReservationUseCase, log)
	approveReservation := approveReservationHandler.NewHandler(approveReservationUseCase, log)
	approveGroup := approveGroupHandler.NewHandler(approveGroupUseCase, log)
	rejectGroup := rejectGroupHandler.NewHandler(rejectGroupUseCase, log)
	reservationsH := reservationsHandler.NewHandler(reservationsSvc, log)
	reservationGroups := reservationGroupsHandler.NewHandler(reservationsSvc, log)
	classroomsH := classroomsHandler.NewHandler(classroomsSvc, log)
	termsH := termsHandler.NewHandler(termsSvc, log)
	feedbacksH := feedbacksHandler.NewHandler(feedbackSvc, log)
	auditLogs := auditLogsHandler.NewHandler(auditSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Справочники аудиторий и семестров доступны для чтения всем
	api.HandleFunc("/classrooms", classroomsH.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/classrooms/{classroomId}", classroomsH.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/terms", termsH.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/terms/{termId}", termsH.HandleGet).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Резервации ---
	protected.HandleFunc("/reservations", submitReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", reservationsH.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}", reservationsH.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}", reservationsH.HandleCancel).Methods(http.MethodDelete)

	// --- Группы повторяющихся заявок ---
	protected.HandleFunc("/reservation-groups", reservationGroups.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/reservation-groups/{anchorId:[0-9]+}", reservationGroups.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/reservation-groups/{anchorId:[0-9]+}", reservationGroups.HandleCancel).Methods(http.MethodDelete)

	// --- Отзывы ---
	protected.HandleFunc("/feedbacks", feedbacksH.HandleSubmit).Methods(http.MethodPost)
	protected.HandleFunc("/feedbacks/my", feedbacksH.HandleMine).Methods(http.MethodGet)
	protected.HandleFunc("/feedbacks/{feedbackId:[0-9]+}", feedbacksH.HandleEdit).Methods(http.MethodPut)
	protected.HandleFunc("/feedbacks/{feedbackId:[0-9]+}", feedbacksH.HandleDelete).Methods(http.MethodDelete)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-Role: admin)
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin)

	// --- Решения по заявкам ---
	admin.HandleFunc("/reservations/conflict-report", reservationsH.HandleConflictReport).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{reservationId:[0-9]+}/approve", approveReservation.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/reservations/{reservationId:[0-9]+}/reject", reservationsH.HandleReject).Methods(http.MethodPost)
	admin.HandleFunc("/reservation-groups/{anchorId:[0-9]+}/approve", approveGroup.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/reservation-groups/{anchorId:[0-9]+}/reject", rejectGroup.Handle).Methods(http.MethodPost)

	// --- Справочники ---
	admin.HandleFunc("/classrooms", classroomsH.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/classrooms/{classroomId}", classroomsH.HandleUpdate).Methods(http.MethodPatch)
	admin.HandleFunc("/classrooms/{classroomId}", classroomsH.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/terms", termsH.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/terms/{termId}", termsH.HandleUpdate).Methods(http.MethodPatch)
	admin.HandleFunc("/terms/{termId}", termsH.HandleDelete).Methods(http.MethodDelete)

	// --- Отзывы и журнал операций ---
	admin.HandleFunc("/feedbacks", feedbacksH.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/feedbacks/{feedbackId:[0-9]+}/read", feedbacksH.HandleMarkRead).Methods(http.MethodPatch)
	admin.HandleFunc("/audit-logs", auditLogs.HandleList).Methods(http.MethodGet)

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

	log.Info("Server stopped gracefully")
}
