package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/config"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/medium"
	"github.com/MrSnakeDoc/linkvault/internal/notify"
	"github.com/MrSnakeDoc/linkvault/internal/redis"
	"github.com/MrSnakeDoc/linkvault/internal/scheduler"
	"github.com/MrSnakeDoc/linkvault/internal/store"
	"github.com/MrSnakeDoc/linkvault/internal/utils"
	"github.com/MrSnakeDoc/linkvault/internal/vault"
	"github.com/MrSnakeDoc/linkvault/internal/version"
	"github.com/MrSnakeDoc/linkvault/internal/view"
)

type App struct {
	cfg          *config.Config
	logger       logger.Logger
	server       *httpserver.Server
	medium       medium.Medium
	vault        *vault.Vault
	seedReloader *scheduler.SeedReloader
	backup       *scheduler.Backup
	gc           *scheduler.GarbageCollector
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Open the storage medium early - fail fast if unavailable
	m, err := openMedium(cfg, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to open %s storage: %v", cfg.Storage, err)
		os.Exit(1)
	}
	loggerClient.Info("storage initialized", logger.String("medium", m.Name()))

	st := store.New(m, cfg.KeyPrefix, loggerClient)
	v := vault.New(st, loggerClient, vault.Options{})

	renderer, err := view.NewRenderer()
	if err != nil {
		loggerClient.Errorf("Failed to load templates: %v", err)
		os.Exit(1)
	}

	// Seed import (if a seed file is configured)
	var seedReloader *scheduler.SeedReloader
	var seedReloadTrigger chan struct{}
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured, initializing seed reloader",
			logger.String("file", cfg.SeedFile),
			logger.String("email", cfg.SeedEmail))
		seedReloadTrigger = make(chan struct{}, 1)
		seedReloader = scheduler.NewSeedReloader(
			cfg.SeedFile,
			cfg.SeedEmail,
			v,
			loggerClient,
			cfg.SeedInterval,
			seedReloadTrigger,
		)
	}

	// Backups and their retention (if a backup dir is configured)
	var backup *scheduler.Backup
	var gc *scheduler.GarbageCollector
	if cfg.BackupDir != "" {
		backup = scheduler.NewBackup(v, cfg.BackupDir, loggerClient, cfg.BackupInterval)
		gc = scheduler.NewGarbageCollector(cfg.BackupDir, loggerClient, cfg.BackupInterval, cfg.BackupRetention)
	}

	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		Location:          cfg.Location,
		AllowedHosts:      cfg.AllowedHosts,
		AllowedCIDRS:      cfg.AllowedCIDRS,
		TrustProxy:        cfg.TrustProxy,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
		Vault:             v,
		Medium:            m,
		Board:             notify.NewBoard(notify.DefaultTTL, time.Now),
		Renderer:          renderer,
		SeedReloadTrigger: seedReloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:          cfg,
		logger:       loggerClient,
		server:       server,
		medium:       m,
		vault:        v,
		seedReloader: seedReloader,
		backup:       backup,
		gc:           gc,
	}
}

// openMedium selects the storage backend from the configuration.
func openMedium(cfg *config.Config, log logger.Logger) (medium.Medium, error) {
	switch cfg.Storage {
	case config.StorageRedis:
		client, err := redis.Connect(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, err
		}
		return medium.NewRedis(client), nil

	case config.StoragePebble:
		p, err := medium.OpenPebble(cfg.PebbleDir)
		if err != nil {
			return nil, err
		}
		return p, nil

	default:
		log.Warn("using in-memory storage, state is lost on restart")
		return medium.NewMemory(), nil
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting LinkVault v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Closed last, after the vault flushed its final mutation
	defer utils.MustClose(a.medium, a.medium.Name(), a.logger)

	// Load persisted state and start the event loop. The loop outlives ctx so that
	// requests still draining during shutdown can complete.
	if err := a.vault.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start vault: %w", err)
	}
	defer a.vault.Stop()

	if a.seedReloader != nil {
		if err := a.seedReloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start seed reloader: %w", err)
		}
		a.logger.Info("seed reloader started",
			logger.Duration("interval", a.cfg.SeedInterval))
	}

	if a.backup != nil {
		if err := a.backup.Start(ctx); err != nil {
			return fmt.Errorf("failed to start backups: %w", err)
		}
		if err := a.gc.Start(ctx); err != nil {
			return fmt.Errorf("failed to start garbage collector: %w", err)
		}
		a.logger.Info("backups started",
			logger.String("dir", a.cfg.BackupDir),
			logger.Duration("interval", a.cfg.BackupInterval),
			logger.Duration("retention", a.cfg.BackupRetention))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.seedReloader != nil {
		a.seedReloader.Stop()
	}
	if a.backup != nil {
		a.backup.Stop()
		a.gc.Stop()
	}

	// Stop accepting requests before the vault loop goes away
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ LinkVault stopped cleanly")
	return nil
}
