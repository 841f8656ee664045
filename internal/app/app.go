package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"boardTracker/internal/config"
	"boardTracker/internal/handlers"
	"boardTracker/internal/logger"
	"boardTracker/internal/mail"
	"boardTracker/internal/middleware"
	"boardTracker/internal/push"
	"boardTracker/internal/repository/postgres"
	"boardTracker/internal/service"
	"boardTracker/internal/upload"
	"boardTracker/internal/worker"
	"boardTracker/internal/ws"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const migrationsDir = "internal/migrations"

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	storage   *postgres.Storage
	wsManager *ws.Manager
	worker    *worker.ReminderWorker
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

// Rollback откатывает миграции и выходит, сервер не запускается
func (a *App) Rollback(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	defer logger.Sync()

	storage, err := postgres.New(ctx, a.config.Database)
	if err != nil {
		return fmt.Errorf("подключение к базе: %w", err)
	}
	defer storage.Close()

	return storage.Down(ctx, migrationsDir)
}

func (a *App) Init(ctx context.Context) error {

	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	storage, err := postgres.New(ctx, a.config.Database)
	if err != nil {
		return fmt.Errorf("подключение к базе: %w", err)
	}
	a.storage = storage

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Закрытие соединений с базой...")
		storage.Close()
	})

	if err := storage.Migrate(ctx, migrationsDir); err != nil {
		return fmt.Errorf("применение миграций: %w", err)
	}

	secret := []byte(a.config.Auth.JWTSecret)

	a.wsManager = ws.NewManager(secret)

	mailService := mail.NewService(
		a.config.Mail.Host,
		a.config.Mail.Port,
		a.config.Mail.Email,
		a.config.Mail.Password,
		a.config.Mail.Send,
	)

	pushSender := push.NewSender(
		a.config.Push.PublicVapidKey,
		a.config.Push.PrivateVapidKey,
		a.config.Mail.Email,
	)

	taskService := service.NewTaskService(storage)
	boardService := service.NewBoardService(storage)
	labelService := service.NewLabelService(storage)
	notificationService := service.NewNotificationService(storage, a.wsManager, pushSender)
	authService := service.NewAuthService(storage, mailService, secret, a.config.Auth.TokenTTL, a.config.Server.WebServiceURL)
	reportService := service.NewReportService(storage, storage, storage)

	uploadsDir := a.config.Uploads.Dir
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	uploadService := service.NewUploadService(upload.NewStore(uploadsDir))

	var interval *time.Duration
	if a.config.Worker.Interval > 0 {
		interval = &a.config.Worker.Interval
	}
	a.worker = worker.NewReminderWorker(storage, &notificationService, interval, a.config.Worker.BatchSize)

	a.router = a.buildRouter(
		handlers.NewAuthHandler(&authService),
		handlers.NewBoardHandler(&boardService),
		handlers.NewLabelHandler(&labelService),
		handlers.NewTaskHandler(&taskService),
		handlers.NewNotificationHandler(&notificationService),
		handlers.NewReportHandler(&reportService),
		handlers.NewUploadHandler(&uploadService),
		handlers.NewHealthHandler(storage),
	)

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return nil
}

func (a *App) buildRouter(
	authHandler handlers.AuthHandler,
	boardHandler handlers.BoardHandler,
	labelHandler handlers.LabelHandler,
	taskHandler handlers.TaskHandler,
	notificationHandler handlers.NotificationHandler,
	reportHandler handlers.ReportHandler,
	uploadHandler handlers.UploadHandler,
	healthHandler handlers.HealthHandler,
) *chi.Mux {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "token"},
		AllowCredentials: true,
	}))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging)
	router.Use(middleware.RateLimit(300))

	router.Get("/health", healthHandler.HealthCheck)
	router.Get("/ws", a.wsManager.Handle)

	router.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Get("/renew", authHandler.RenewToken)
			r.Get("/validate-email/{token}", authHandler.ValidateEmail)
			r.Post("/change-password", authHandler.RequestPasswordChange)
			r.Post("/change-password/{token}", authHandler.ChangePassword)
		})

		api.Group(func(r chi.Router) {
			r.Use(middleware.Auth([]byte(a.config.Auth.JWTSecret)))

			r.Route("/boards", func(r chi.Router) {
				r.Get("/", boardHandler.GetBoards)
				r.Post("/", boardHandler.PostBoard)
				r.Get("/{id}", boardHandler.GetBoardByID)
				r.Put("/{id}", boardHandler.UpdateBoardByID)
				r.Delete("/{id}", boardHandler.DeleteBoardByID)
			})

			r.Route("/labels", func(r chi.Router) {
				r.Get("/", labelHandler.GetLabels)
				r.Post("/", labelHandler.PostLabel)
				r.Put("/{id}", labelHandler.UpdateLabelByID)
				r.Delete("/{id}", labelHandler.DeleteLabelByID)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.GetTasks)
				r.Post("/", taskHandler.PostTask)
				r.Get("/{id}", taskHandler.GetTaskByID)
				r.Put("/{id}", taskHandler.UpdateTaskByID)
				r.Delete("/{id}", taskHandler.DeleteTaskByID)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.GetNotifications)
				r.Put("/{id}", notificationHandler.MarkAsSeen)
				r.Post("/subscription", notificationHandler.Subscribe)
				r.Get("/check-subscription", notificationHandler.CheckSubscription)
			})

			r.Route("/uploads", func(r chi.Router) {
				r.Post("/single/{type}", uploadHandler.UploadSingle)
				r.Post("/multiple/{type}", uploadHandler.UploadMultiple)
			})

			r.Get("/reports", reportHandler.GetUserReport)
		})

		api.Get("/images/{type}/{img}", uploadHandler.GetImage)
	})

	return router
}

// Run блокируется до отмены контекста, затем гасит сервер и фоновые задачи
func (a *App) Run(ctx context.Context) error {
	workerCtx, stopWorker := context.WithCancel(ctx)
	go a.worker.Start(workerCtx)

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Остановка фонового воркера...")
		stopWorker()
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP: Сервер запущен на " + a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.Shutdown()
		return fmt.Errorf("запуск сервера: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP: Ошибка остановки сервера", err)
	}

	a.Shutdown()
	return nil
}

// Shutdown выполняет накопленные функции завершения в обратном порядке
func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
