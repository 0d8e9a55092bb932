package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/snipstash-backend/internal/config"
	"github.com/ignatzorin/snipstash-backend/internal/db"
	httpHandlers "github.com/ignatzorin/snipstash-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/snipstash-backend/internal/http/router"
	"github.com/ignatzorin/snipstash-backend/internal/logger"
	"github.com/ignatzorin/snipstash-backend/internal/mailer"
	"github.com/ignatzorin/snipstash-backend/internal/repository"
	"github.com/ignatzorin/snipstash-backend/internal/service"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.SessionTokenTTL)
	otpMailer := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	snippetRepo := repository.NewSnippetRepository(dbConn)
	blogRepo := repository.NewBlogRepository(dbConn)

	// Сервисы.
	authService := service.NewAuthService(userRepo, otpMailer, tokenManager, cfg.OTPTTL, cfg.OTPBypassCode)
	snippetService := service.NewSnippetService(snippetRepo)
	blogService := service.NewBlogService(blogRepo)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	snippetHandler := httpHandlers.NewSnippetHandler(snippetService)
	blogHandler := httpHandlers.NewBlogHandler(blogService)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, authHandler, snippetHandler, blogHandler, healthHandler, tokenManager, userRepo)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
