package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-backend/internal/admin"
	"portfolio-backend/internal/auth"
	"portfolio-backend/internal/cache"
	"portfolio-backend/internal/certificates"
	"portfolio-backend/internal/clients"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/contact"
	"portfolio-backend/internal/content"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/notifications"
	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/schemas"
	"portfolio-backend/internal/site"
	"portfolio-backend/internal/validation"
	"portfolio-backend/internal/videos"
	"portfolio-backend/internal/warmer"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, closeStore, err := content.Open(ctx, cfg)
	if err != nil {
		logger.Error("content store connection failed", slog.String("backend", cfg.ContentBackend), slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("content store ready", slog.String("backend", cfg.ContentBackend))
	defer closeStore(context.Background())

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		defer redisCache.Close()
		cacheStore = redisCache
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "portfolio-backend",
		}
	}
	if cfg.AdminAPIKey == "" && jwtManager == nil {
		logger.Warn("admin auth not configured, write routes will answer 503")
	}

	var sender contact.Sender
	mailer := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.BrevoSandbox)
	if mailer == nil {
		logger.Info("brevo mailer disabled")
	} else {
		logger.Info("brevo mailer enabled", slog.String("sender", cfg.BrevoSenderEmail), slog.Bool("sandbox", cfg.BrevoSandbox))
		sender = mailer
	}

	val := validation.New()

	videoService := videos.NewService(store, cacheStore, cfg.CacheTTL(), val, logger)
	clientService := clients.NewService(store, cacheStore, cfg.CacheTTL(), val, logger)
	certificateService := certificates.NewService(store, cacheStore, cfg.CacheTTL(), val, logger)

	videoHandler := videos.NewHandler(videoService, val, logger)
	clientHandler := clients.NewHandler(clientService, val, logger)
	certificateHandler := certificates.NewHandler(certificateService, logger)
	contactHandler := contact.NewHandler(sender, cfg.ContactRecipient, val, logger)
	adminHandler := admin.NewHandler(admin.Credentials{User: cfg.AdminUser, PasswordHash: cfg.AdminPasswordHash}, jwtManager, cfg.CookieSecure, val, logger)
	schemaHandler := schemas.NewHandler()

	landing := site.NewHandler(portfolio.SourceFuncs{
		VideosFunc:       videoService.List,
		ClientsFunc:      clientService.List,
		CertificatesFunc: certificateService.List,
	}, cfg.ShowCertificates, logger)

	cacheWarmer, err := warmer.New(cfg.CacheWarmSchedule, cfg.Timezone, logger,
		warmer.List("videos", videoService.Warm),
		warmer.List("clients", clientService.Warm),
		warmer.List("certificates", certificateService.Warm),
	)
	if err != nil {
		logger.Error("cache warmer setup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cacheWarmer.Run(ctx)
	cacheWarmer.Start()
	defer cacheWarmer.Stop()

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigins))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	limits := newLimiters(cfg)
	requireAdmin := middleware.AdminAuth(cfg.AdminAPIKey, jwtManager)

	r.Get("/", landing.Index)

	r.Route("/api", func(api chi.Router) {
		api.Get("/videos", videoHandler.List)
		api.Get("/clients", clientHandler.List)
		api.Get("/certificates", certificateHandler.List)
		api.Get("/schemas", schemaHandler.List)
		api.Get("/schemas/{name}", schemaHandler.Get)
		api.With(limits.contact.Middleware).Post("/contact", contactHandler.Send)

		api.Group(func(protected chi.Router) {
			protected.Use(requireAdmin)
			protected.Post("/videos", videoHandler.Create)
			protected.Put("/videos", videoHandler.Update)
			protected.Delete("/videos/{id}", videoHandler.Delete)
			protected.Post("/clients", clientHandler.Create)
			protected.Delete("/clients/{id}", clientHandler.Delete)
		})

		api.Route("/admin", func(a chi.Router) {
			a.With(limits.login.Middleware).Post("/login", adminHandler.Login)
			a.Post("/refresh", adminHandler.Refresh)
			a.Post("/logout", adminHandler.Logout)
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
