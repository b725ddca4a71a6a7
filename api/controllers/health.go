package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/obsidian-storefront/api/responses"
	"github.com/angelmondragon/obsidian-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/obsidian-storefront/pkg/errors"
	"github.com/angelmondragon/obsidian-storefront/pkg/logger"
)

const (
	envHeader        = "X-Storefront-Env"
	readinessTimeout = 2 * time.Second
)

// ReadinessChecker reports whether the storefront gateway can serve requests.
type ReadinessChecker interface {
	Ready() error
}

// Pinger is satisfied by the Redis client.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady fails when the gateway is unconfigured or the optional Redis
// dependency does not answer a ping.
func HealthReady(cfg *config.Config, gateway ReadinessChecker, cache Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		ctx := r.Context()

		if err := gateway.Ready(); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status := map[string]string{"status": "ready", "shopify": "configured", "redis": "disabled"}
		if cache != nil {
			pingCtx, cancel := context.WithTimeout(ctx, readinessTimeout)
			defer cancel()
			if err := cache.Ping(pingCtx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
			status["redis"] = "ok"
		}
		responses.WriteSuccess(w, status)
	}
}
