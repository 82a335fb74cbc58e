package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jobledger/jobledger-backend/internal/config"
	"github.com/jobledger/jobledger-backend/internal/db"
	httpHandlers "github.com/jobledger/jobledger-backend/internal/http/handlers"
	httpRouter "github.com/jobledger/jobledger-backend/internal/http/router"
	"github.com/jobledger/jobledger-backend/internal/ledger"
	"github.com/jobledger/jobledger-backend/internal/logger"
	"github.com/jobledger/jobledger-backend/internal/repository"
	"github.com/jobledger/jobledger-backend/internal/service"
	"github.com/jobledger/jobledger-backend/internal/storage"
	"github.com/jobledger/jobledger-backend/internal/ws"
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

	// Журнал событий опционален: без DATABASE_URL леджер работает полностью в памяти.
	var dbConn *sqlx.DB
	var journal *repository.EventJournal
	if cfg.DatabaseURL != "" {
		dbConn, err = db.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("main: ошибка подключения к базе: %v", err)
		}
		defer safeClose(dbConn)

		if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
			log.Fatalf("main: ошибка миграций: %v", err)
		}

		journal = repository.NewEventJournal(dbConn)
	} else {
		logger.Log.Warn("main: DATABASE_URL не задан, журнал событий отключён")
	}

	// Ядро леджера.
	clock := ledger.NewHeightClock(time.Unix(cfg.GenesisUnix, 0), cfg.HeightInterval)
	bank := ledger.NewMemoryBank()
	core := ledger.New(clock, bank, cfg.VaultID, cfg.AdminID, cfg.MinLeadTime)
	if journal != nil {
		core.SetRecorder(journal)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	avatarStorage, err := storage.NewAvatarStorage(cfg.AvatarStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Вебсокеты.
	hub := ws.NewHub(ctx)
	go hub.Run()
	core.SetNotifier(ws.NewLedgerNotifier(hub))

	// HTTP хэндлеры.
	jobHandler := httpHandlers.NewJobHandler(core, journal)
	bidHandler := httpHandlers.NewBidHandler(core)
	escrowHandler := httpHandlers.NewEscrowHandler(core)
	milestoneHandler := httpHandlers.NewMilestoneHandler(core)
	disputeHandler := httpHandlers.NewDisputeHandler(core)
	ratingHandler := httpHandlers.NewRatingHandler(core)
	profileHandler := httpHandlers.NewProfileHandler(core, avatarStorage)
	bankHandler := httpHandlers.NewBankHandler(bank)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, jobHandler, bidHandler, escrowHandler, milestoneHandler, disputeHandler, ratingHandler, profileHandler, bankHandler, wsHandler, healthHandler, tokenManager)

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
