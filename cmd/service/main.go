// service es el binario principal del API de Hero Threads.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/herothreads/api/internal/bootstrap"
	"github.com/herothreads/api/internal/cache"
	memcache "github.com/herothreads/api/internal/cache/memory"
	rediscache "github.com/herothreads/api/internal/cache/redis"
	"github.com/herothreads/api/internal/config"
	"github.com/herothreads/api/internal/email"
	accountsctl "github.com/herothreads/api/internal/http/controllers/accounts"
	authctl "github.com/herothreads/api/internal/http/controllers/auth"
	catalogctl "github.com/herothreads/api/internal/http/controllers/catalog"
	healthctl "github.com/herothreads/api/internal/http/controllers/health"
	sessionctl "github.com/herothreads/api/internal/http/controllers/session"
	"github.com/herothreads/api/internal/http/router"
	accountssvc "github.com/herothreads/api/internal/http/services/accounts"
	authsvc "github.com/herothreads/api/internal/http/services/auth"
	catalogsvc "github.com/herothreads/api/internal/http/services/catalog"
	sessionsvc "github.com/herothreads/api/internal/http/services/session"
	"github.com/herothreads/api/internal/jwt"
	"github.com/herothreads/api/internal/metrics"
	"github.com/herothreads/api/internal/oauth/google"
	"github.com/herothreads/api/internal/observability/logger"
	"github.com/herothreads/api/internal/rate"
	"github.com/herothreads/api/internal/store"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "service:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var configPath string
	flag.StringVar(&configPath, "config", defaultConfigPath(), "ruta al config YAML (opcional)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "herothreads-api",
		Version:     version,
	})
	defer func() { _ = logger.Sync() }()

	log := logger.L()
	log.Info("starting service", logger.String("env", cfg.App.Env), logger.String("addr", cfg.Server.Addr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage
	var storeCfg store.Config
	storeCfg.Driver = cfg.Storage.Driver
	storeCfg.Mongo.URI = cfg.Storage.Mongo.URI
	storeCfg.Mongo.Database = cfg.Storage.Mongo.Database
	repo, err := store.Open(ctx, storeCfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = repo.Close(context.Background()) }()
	log.Info("store ready", logger.Driver(storeCfg.Driver))

	// Cache (state de OAuth y rate limiting)
	var kv cache.Client
	if cfg.Cache.Kind == "redis" {
		kv = rediscache.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB, cfg.Cache.Redis.Prefix)
		if err := kv.Ping(ctx); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
	} else {
		kv = memcache.New(config.Dur(cfg.Cache.Memory.DefaultTTL, 10*time.Minute))
	}
	defer func() { _ = kv.Close() }()

	// Admin sembrado como cuenta real
	if err := bootstrap.EnsureAdmin(ctx, repo.Accounts(), bootstrap.AdminConfig{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Name:     cfg.Admin.Name,
	}); err != nil {
		return err
	}

	// Email
	var sender email.Sender
	if cfg.SMTPConfigured() {
		s := email.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password)
		s.TLSMode = cfg.SMTP.TLS
		s.InsecureSkipVerify = cfg.SMTP.InsecureSkipVerify
		sender = s
	} else {
		log.Warn("smtp not configured, emails will be logged only")
	}
	mailer := email.NewService(sender, cfg.Email.BaseURL)

	// Sesiones
	issuer, err := jwt.NewIssuer([]byte(cfg.Session.JWTSecret), "herothreads-api", config.Dur(cfg.Session.TokenTTL, 24*time.Hour))
	if err != nil {
		return fmt.Errorf("session issuer: %w", err)
	}

	// Google OAuth
	gp := cfg.Providers.Google
	googleClient := google.New(gp.ClientID, gp.ClientSecret, gp.RedirectURL, gp.Scopes)
	if !googleClient.Enabled() {
		log.Warn("google oauth not configured")
	}

	// Rate limiting
	var loginLimiter, forgotLimiter rate.Limiter
	if cfg.Rate.Enabled {
		loginWindow := config.Dur(cfg.Rate.Login.Window, time.Minute)
		forgotWindow := config.Dur(cfg.Rate.Forgot.Window, 10*time.Minute)
		if rc, ok := kv.(*rediscache.Client); ok {
			loginLimiter = rate.NewRedisLimiter(rc.Raw(), "rl:", cfg.Rate.Login.Limit, loginWindow)
			forgotLimiter = rate.NewRedisLimiter(rc.Raw(), "rl:", cfg.Rate.Forgot.Limit, forgotWindow)
		} else {
			loginLimiter = rate.NewMemoryLimiter(cfg.Rate.Login.Limit, loginWindow)
			forgotLimiter = rate.NewMemoryLimiter(cfg.Rate.Forgot.Limit, forgotWindow)
		}
	}

	if err := metrics.Register(nil); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	// Services
	authService := authsvc.New(authsvc.Config{
		Accounts:  repo.Accounts(),
		Mail:      mailer,
		Google:    googleClient,
		Sessions:  issuer,
		State:     kv,
		VerifyTTL: config.Dur(cfg.Auth.VerifyTTL, 24*time.Hour),
		ResetTTL:  config.Dur(cfg.Auth.ResetTTL, time.Hour),
		StateTTL:  config.Dur(gp.StateTTL, 10*time.Minute),
	})
	sessionService := sessionsvc.New(repo.Accounts(), config.Dur(cfg.Session.IdleTimeout, 15*time.Minute))
	catalogService := catalogsvc.New(repo.Products(), repo.Sales())
	accountsService := accountssvc.New(repo.Accounts())

	handler := router.New(router.Deps{
		Auth:          authctl.New(authService),
		Session:       sessionctl.New(sessionService),
		Catalog:       catalogctl.New(catalogService),
		Accounts:      accountsctl.New(accountsService),
		Health:        healthctl.New(repo, version),
		Sessions:      issuer,
		LoginLimiter:  loginLimiter,
		ForgotLimiter: forgotLimiter,
		CORSOrigins:   cfg.Server.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func defaultConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	if _, err := os.Stat("configs/config.yaml"); err == nil {
		return "configs/config.yaml"
	}
	return ""
}
