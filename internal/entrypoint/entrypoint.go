package entrypoint

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/events"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// newServer builds the HTTP server. Event streams end only when their change
// source closes, so streams is closed as soon as shutdown begins.
func newServer(addr string, handler http.Handler, streams io.Closer) *http.Server {
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}
	if streams != nil {
		srv.RegisterOnShutdown(func() {
			if err := streams.Close(); err != nil {
				log.Printf("Error closing event streams: %v", err)
			}
		})
	}
	return srv
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc, streams io.Closer) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := newServer(fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port), router, streams)

	go func() {
		fmt.Printf("Starting server at http://%s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the server so no new task starts mid-shutdown
	if onShutdown != nil {
		onShutdown(ctx)
	}

	// Not fatal: Run still closes the task queue and the database.
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
		return
	}

	log.Println("Server exiting")
}

// App is the wired catalogue: storage, notifications, audit trail and the
// service on top of them.
type App struct {
	DB        *database.Database
	Notifier  *events.Notifier
	Audit     *audit.Service
	Catalogue *services.CatalogueService
}

// NewApp opens the database at cfg.Database.Path and builds the catalogue
// service around it.
func NewApp(cfg *config.Config) (*App, error) {
	level := logger.Warn
	if cfg.Database.Debug {
		level = logger.Info
	}

	db, err := database.NewDatabaseWithLogLevel(cfg.Database.Path, level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	notifier := events.NewNotifier()
	auditService := audit.NewService(db.Audit())

	return &App{
		DB:        db,
		Notifier:  notifier,
		Audit:     auditService,
		Catalogue: services.NewCatalogueService(db.Books(), notifier, auditService),
	}, nil
}

// Close stops notifications and closes the database.
func (a *App) Close() error {
	if err := a.Notifier.Close(); err != nil {
		log.Printf("Error closing notifier: %v", err)
	}
	return a.DB.Close()
}

// NewTaskClient opens the task queue next to the catalogue database and
// registers the export and audit cleanup queues.
func NewTaskClient(cfg *config.Config, app *App) (*tasks.Client, error) {
	taskClient, err := tasks.NewClient(cfg.Database.Path, tasks.Config{
		Workers:         cfg.Tasks.Workers,
		ReleaseAfter:    cfg.Tasks.ReleaseAfter,
		CleanupInterval: cfg.Tasks.CleanupInterval,
	})
	if err != nil {
		return nil, err
	}

	taskClient.Register(
		tasks.NewExportCatalogueQueue(app.Catalogue, cfg.Export.Dir, app.Audit),
		tasks.NewCleanupAuditEventsQueue(app.Audit),
	)
	return taskClient, nil
}

// csrfSecret decodes the configured secret, or generates one that lasts
// until the next restart.
func csrfSecret(configured string) ([]byte, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret, nil
		}
		return []byte(configured), nil
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	log.Printf("Generated CSRF secret (set CSRF_SECRET to keep forms valid across restarts)")
	return secret, nil
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookshelf v%s", version)

	app, err := NewApp(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()
	log.Printf("Catalogue database: %s", cfg.Database.Path)
	if cfg.Global.ReadOnly {
		log.Printf("Read-only mode enabled - write operations will be blocked")
	}

	// Initialize task queue and scheduler if enabled
	var (
		taskClient     *tasks.Client
		taskCtxCancel  context.CancelFunc
		backups        *scheduler.BackupScheduler
		exportsQueue   http_controllers.ExportQueue
		backupStatus   http_controllers.BackupStatus
		backgroundDone = func(context.Context) {}
	)
	if cfg.Tasks.Enabled {
		taskClient, err = NewTaskClient(cfg, app)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()
		exportsQueue = taskClient

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		backups = scheduler.NewBackupScheduler(taskClient, scheduler.BackupConfig{
			Enabled:            cfg.Backup.Enabled,
			Schedule:           cfg.Backup.Schedule,
			Format:             cfg.Backup.Format,
			AuditRetentionDays: cfg.Audit.RetentionDays,
		})
		if err := backups.Start(taskCtx); err != nil {
			log.Fatalf("Failed to start backup scheduler: %v", err)
		}
		backupStatus = backups

		backgroundDone = func(ctx context.Context) {
			backups.Stop()
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	} else {
		log.Printf("Task queue disabled; exports and backups are unavailable")
	}

	sqlDB, err := app.DB.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := http_controllers.NewSessionManager(sqlDB, cfg.Session.Lifetime, cfg.Session.SecureCookies)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	secret, err := csrfSecret(cfg.Session.CSRFSecret)
	if err != nil {
		log.Fatalf("Failed to generate CSRF secret: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Catalogue:      app.Catalogue,
		Changes:        app.Notifier,
		Database:       app.DB,
		Audit:          app.Audit,
		Exports:        exportsQueue,
		Backups:        backupStatus,
		SessionManager: sessionManager,
		CSRFSecret:     secret,
		SecureCookies:  cfg.Session.SecureCookies,
		ReadOnly:       cfg.Global.ReadOnly,
		Version:        version,
	})

	Serve(router, cfg, backgroundDone, app.Notifier)
}
