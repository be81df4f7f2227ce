package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/myflowlab/stem-certification-quiz/internal/certificate"
	"github.com/myflowlab/stem-certification-quiz/internal/config"
	httpapi "github.com/myflowlab/stem-certification-quiz/internal/delivery/http"
	httpH "github.com/myflowlab/stem-certification-quiz/internal/delivery/http/handlers"
	httpMW "github.com/myflowlab/stem-certification-quiz/internal/delivery/http/middleware"
	"github.com/myflowlab/stem-certification-quiz/internal/delivery/http/token"
	"github.com/myflowlab/stem-certification-quiz/internal/delivery/telegram"
	"github.com/myflowlab/stem-certification-quiz/internal/infra/gcs"
	"github.com/myflowlab/stem-certification-quiz/internal/infra/memory"
	"github.com/myflowlab/stem-certification-quiz/internal/infra/postgres"
	"github.com/myflowlab/stem-certification-quiz/internal/infra/redis"
	"github.com/myflowlab/stem-certification-quiz/internal/infra/sheets"
	"github.com/myflowlab/stem-certification-quiz/internal/logger"
	"github.com/myflowlab/stem-certification-quiz/internal/repository"
	"github.com/myflowlab/stem-certification-quiz/internal/service"
	"github.com/myflowlab/stem-certification-quiz/internal/sheet"
	"github.com/myflowlab/stem-certification-quiz/internal/storage"
)

func main() {
	os.Exit(runMain())
}

// runMain returns the process exit code once every deferred cleanup has run.
func runMain() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("load config: %v", err)
		return 1
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Printf("create logger: %v", err)
		return 1
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Error("application stopped with error", zap.Error(err))
		return 1
	}
	lg.Info("shutdown complete")
	return 0
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	// Storage backends.
	store, closeStore, err := newTableStore(ctx, cfg)
	if err != nil {
		return err
	}
	closers = append(closers, closeStore)

	sessions, expirer, closeSessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	closers = append(closers, closeSessions)

	archive, closeArchive, err := newArchive(ctx, cfg)
	if err != nil {
		return err
	}
	closers = append(closers, closeArchive)

	lg.Info("backends ready",
		zap.String("storage", cfg.Storage.Backend),
		zap.String("session", cfg.Session.Backend),
		zap.String("archive", cfg.Archive.Backend),
	)

	// Initialize repositories and services.
	userRepo := repository.NewUserRepository(store)
	questionRepo := repository.NewQuestionRepository(store)
	accessCodeRepo := repository.NewAccessCodeRepository(store)

	passwordMode, err := service.ParsePasswordMode(cfg.Auth.PasswordMode)
	if err != nil {
		return err
	}

	authService := service.NewAuthService(userRepo, accessCodeRepo, service.AuthConfig{
		VerifyIdentity: cfg.Signup.VerifyIdentity,
		PasswordMode:   passwordMode,
		AdminUsername:  cfg.Admin.Username,
		AdminPassword:  cfg.Admin.Password,
	}, lg)
	quizService := service.NewQuizService(userRepo, questionRepo, sessions, lg)
	adminService := service.NewAdminService(userRepo, questionRepo, accessCodeRepo, lg)

	layout := certificate.DefaultLayout()
	layout.Program = cfg.Certificate.Program
	layout.Authority = cfg.Certificate.Authority
	layout.LeftLogo = cfg.Certificate.LeftLogo
	layout.RightLogo = cfg.Certificate.RightLogo
	generator := certificate.NewGenerator(layout, certificate.NewPDFRenderer(), cfg.Certificate.Seal)
	certService := service.NewCertificateService(userRepo, generator, archive, lg)

	// HTTP API.
	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Logger:             lg,
		CORSOrigins:        cfg.HTTP.CORSOrigins,
		AuthMiddleware:     httpMW.NewAuthMiddleware(lg, tokens),
		AuthHandler:        httpH.NewAuthHandler(authService, quizService, tokens, cfg.Env == "production", lg),
		QuizHandler:        httpH.NewQuizHandler(quizService),
		CertificateHandler: httpH.NewCertificateHandler(certService),
		AdminHandler:       httpH.NewAdminHandler(adminService, certService),
		HealthHandler:      httpH.NewHealthHandler(),
	})
	server := httpapi.NewServer(cfg.HTTP.Addr, router, cfg.HTTP.ShutdownTimeout, lg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(gctx) })

	// In-memory sessions are swept on a schedule; redis expires keys itself.
	if expirer != nil && cfg.Session.TTL > 0 {
		sweeper := service.NewSessionSweeper(expirer, cfg.Session.SweepSchedule, lg)
		g.Go(func() error { return sweeper.Start(gctx) })
	}

	// Telegram bot is optional.
	if cfg.TelegramAPIToken != "" {
		bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
		if err != nil {
			return fmt.Errorf("create telegram bot: %w", err)
		}
		bot.Debug = cfg.Env != "production"
		if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
			lg.Warn("failed to set bot commands", zap.Error(err))
		}
		lg.Info("telegram bot authorized", zap.String("account", bot.Self.UserName))

		handler := telegram.NewHandler(bot, lg, authService, quizService, certService)
		g.Go(func() error {
			defer bot.StopReceivingUpdates()
			return handler.Run(gctx)
		})
	} else {
		lg.Info("TELEGRAM_API_TOKEN not set, telegram bot disabled")
	}

	return g.Wait()
}

func newTableStore(ctx context.Context, cfg *config.Config) (sheet.Store, func(), error) {
	switch cfg.Storage.Backend {
	case "sheets":
		store, err := sheets.NewTableStore(ctx, sheets.Config{
			SpreadsheetID:   cfg.Storage.Sheets.SpreadsheetID,
			CredentialsFile: cfg.Storage.Sheets.CredentialsFile,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	case "postgres":
		dsn, err := cfg.Storage.DB.DSN()
		if err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.Storage.DB.MaxConnections),
			MaxConnLifetime: cfg.Storage.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewTableStore(pool, postgres.NewTransactor(pool))
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil

	default:
		return memory.NewTableStore(), func() {}, nil
	}
}

func newSessionStore(ctx context.Context, cfg *config.Config) (service.SessionStore, service.ExpiredSessionDeleter, func(), error) {
	if cfg.Session.Backend != "redis" {
		store := storage.NewQuizStorage(cfg.Session.TTL)
		return store, store, func() {}, nil
	}

	client, err := redis.NewClient(ctx, redis.Config{
		Addr:     cfg.Session.Redis.Addr,
		Password: cfg.Session.Redis.Password,
		DB:       cfg.Session.Redis.DB,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return redis.NewSessionStore(client, cfg.Session.TTL), nil, func() { _ = client.Close() }, nil
}

func newArchive(ctx context.Context, cfg *config.Config) (service.CertificateArchive, func(), error) {
	switch cfg.Archive.Backend {
	case "gcs":
		a, err := gcs.NewArchive(ctx, cfg.Archive.Bucket, cfg.Archive.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return a, func() { _ = a.Close() }, nil
	case "local":
		return storage.NewDirArchive(filepath.Clean(cfg.Archive.Dir)), func() {}, nil
	default:
		return storage.NopArchive{}, func() {}, nil
	}
}
