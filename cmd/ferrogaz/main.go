// ferrogaz serves the FerroGaz corporate website and its dashboard API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ferrogaz/website/internal/analytics"
	"github.com/ferrogaz/website/internal/cache"
	"github.com/ferrogaz/website/internal/captcha"
	"github.com/ferrogaz/website/internal/config"
	"github.com/ferrogaz/website/internal/content"
	"github.com/ferrogaz/website/internal/geoip"
	"github.com/ferrogaz/website/internal/handler"
	"github.com/ferrogaz/website/internal/logging"
	"github.com/ferrogaz/website/internal/mailer"
	"github.com/ferrogaz/website/internal/middleware"
	"github.com/ferrogaz/website/internal/scheduler"
	"github.com/ferrogaz/website/internal/service"
	"github.com/ferrogaz/website/internal/session"
	"github.com/ferrogaz/website/internal/store"
	"github.com/ferrogaz/website/internal/transfer"
)

// Version information, injected at build time via ldflags.
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	importLegacy := flag.Bool("import-legacy", false,
		"Import users, orders, and contact messages from the old site (FG_LEGACY_MYSQL_DSN), then exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "ferrogaz - FerroGaz corporate website\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FG_SESSION_SECRET     Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FG_DB_PATH            SQLite database path (default: ./data/ferrogaz.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FG_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FG_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FG_UPLOADS_DIR        Media upload directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FG_REDIS_URL          Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FG_ANALYTICS_API_URL  External analytics provider URL (optional)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("ferrogaz %s (commit: %s)\n", appVersion, appGitCommit)
		os.Exit(0)
	}

	if err := run(*importLegacy); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(importLegacy bool) error {
	// Load .env if present (development).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.UploadsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// Upgrade the logger so WARN and ERROR records also land in the
	// dashboard event log.
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(logging.NewEventLogHandler(textHandler, db)))
	slog.Info("database ready")

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	if importLegacy {
		return runLegacyImport(ctx, cfg, db)
	}

	// Shared infrastructure.
	backend := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	})
	defer func() {
		if err := backend.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	geo := geoip.NewLookup()
	if cfg.GeoIPEnabled() {
		if err := geo.Init(cfg.GeoIPDBPath); err != nil {
			slog.Warn("geoip disabled", "error", err)
		}
	}

	var analyticsClient *analytics.Client
	if cfg.AnalyticsEnabled() {
		analyticsClient = analytics.NewClient(cfg.AnalyticsAPIURL, cfg.AnalyticsAPIKey, geo)
	}

	var verifier *captcha.Verifier
	if cfg.RecaptchaEnabled() {
		verifier = captcha.New(cfg.RecaptchaSecretKey)
	}

	site := content.SiteInfo{
		CompanyName: cfg.Site.CompanyName,
		Email:       cfg.Site.Email,
		Phone:       cfg.Site.Phone,
		Address:     cfg.Site.Address,
	}
	registry := content.NewRegistry(site)
	resolver := content.NewResolver(store.New(db), registry, cache.NewPageCache(backend))

	notifier := mailer.NewLogNotifier(slog.Default())
	orders := service.NewOrderService(db, notifier)
	media := service.NewMediaService(db, cfg.UploadsDir)
	contact := service.NewContactService(db, notifier)

	sessions := session.New(db, cfg.IsDevelopment())

	h := handler.New(handler.Config{
		DB:         db,
		Sessions:   sessions,
		Resolver:   resolver,
		Orders:     orders,
		Media:      media,
		Contact:    contact,
		Analytics:  analyticsClient,
		Captcha:    verifier,
		LoginGuard: middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig()),
		Cache:      backend,
		Site:       site,
		IsDev:      cfg.IsDevelopment(),
	})

	sched := scheduler.New(db, backend, analyticsClient, geo, slog.Default())
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr: cfg.ServerAddr(),
		Handler: h.Routes(handler.RouterConfig{
			SessionSecret: []byte(cfg.SessionSecret),
			UploadsDir:    cfg.UploadsDir,
			IsDev:         cfg.IsDevelopment(),
		}),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // allow large media uploads
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// runLegacyImport pulls data from the old site's MySQL database and exits.
func runLegacyImport(ctx context.Context, cfg *config.Config, db *sql.DB) error {
	if cfg.LegacyMySQLDSN == "" {
		return errors.New("FG_LEGACY_MYSQL_DSN is not set")
	}

	imp, err := transfer.NewImporter(cfg.LegacyMySQLDSN, db, slog.Default())
	if err != nil {
		return fmt.Errorf("connecting to legacy database: %w", err)
	}
	defer func() {
		if err := imp.Close(); err != nil {
			slog.Error("error closing legacy connection", "error", err)
		}
	}()

	res, err := imp.Run(ctx)
	if err != nil {
		return fmt.Errorf("legacy import: %w", err)
	}
	slog.Info("import complete",
		"users", res.Users, "orders", res.Orders, "contacts", res.Contacts, "skipped", res.Skipped)
	return nil
}
