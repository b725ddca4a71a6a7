package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/obsidian-storefront/api/routes"
	"github.com/angelmondragon/obsidian-storefront/api/views"
	"github.com/angelmondragon/obsidian-storefront/internal/cart"
	"github.com/angelmondragon/obsidian-storefront/internal/catalog"
	"github.com/angelmondragon/obsidian-storefront/internal/shipping"
	"github.com/angelmondragon/obsidian-storefront/pkg/config"
	"github.com/angelmondragon/obsidian-storefront/pkg/logger"
	"github.com/angelmondragon/obsidian-storefront/pkg/metrics"
	"github.com/angelmondragon/obsidian-storefront/pkg/redis"
	"github.com/angelmondragon/obsidian-storefront/pkg/shopify"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "web"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "web",
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Info(ctx, "redis not configured, add-to-cart rate limiting disabled")
	}

	gateway := shopify.NewClient(shopify.Config{
		StoreDomain: cfg.Shopify.StoreDomain,
		AccessToken: cfg.Shopify.AccessToken,
		APIVersion:  cfg.Shopify.APIVersion,
		Timeout:     cfg.Shopify.RequestTimeout,
	}, shopify.WithMetrics(metrics.NewUpstreamMetrics(registry)), shopify.WithLogger(logg))
	if err := gateway.Ready(); err != nil {
		// Pages render setup instructions until the store is configured.
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "shopify storefront not configured")
	}

	catalogService, err := catalog.NewService(gateway, catalog.Options{
		PageSize:    cfg.Catalog.PageSize,
		StoreDomain: cfg.Shopify.StoreDomain,
	})
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	resolver, err := cart.NewResolver(gateway, cart.CookieOptions{
		Name:   cfg.Cart.CookieName,
		Secure: cfg.Cart.CookieSecure,
	})
	if err != nil {
		logg.Error(ctx, "failed to create cart resolver", err)
		os.Exit(1)
	}

	renderer, err := views.New(views.Site{
		Name:         cfg.Site.Name,
		Description:  cfg.Site.Description,
		Announcement: cfg.Site.Announcement,
	}, logg)
	if err != nil {
		logg.Error(ctx, "failed to parse templates", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			registry,
			metrics.NewHTTPMetrics(registry),
			gateway,
			redisClient,
			catalogService,
			resolver,
			shipping.NewTable(cfg.Site.FreeShipping()),
			renderer,
		),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting storefront server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(ctx, "storefront server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	logg.Info(ctx, "shutting down storefront server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
}
