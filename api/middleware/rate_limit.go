package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/obsidian-storefront/pkg/errors"
	"github.com/angelmondragon/obsidian-storefront/pkg/logger"
)

// RateLimitStore counts hits in fixed windows.
type RateLimitStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimitPolicy defines the throttling parameters for a traffic surface.
type RateLimitPolicy struct {
	name       string
	window     time.Duration
	limit      int
	trustProxy bool
}

// NewRateLimitPolicy builds a per-client-IP policy with the supplied window and limit.
func NewRateLimitPolicy(name string, window time.Duration, limit int) RateLimitPolicy {
	return RateLimitPolicy{
		name:   strings.ToLower(strings.TrimSpace(name)),
		window: window,
		limit:  limit,
	}
}

// TrustProxyHeaders makes the policy key clients by X-Forwarded-For and
// X-Real-IP. Without it only the connection address counts, so a client
// cannot mint a fresh window by sending its own header.
func (p RateLimitPolicy) TrustProxyHeaders(trust bool) RateLimitPolicy {
	p.trustProxy = trust
	return p
}

func (p RateLimitPolicy) enabled() bool {
	return p.window > 0 && p.limit > 0
}

func (p RateLimitPolicy) normalizedName() string {
	if p.name == "" {
		return "default"
	}
	return p.name
}

func (p RateLimitPolicy) scope(ip string) string {
	if ip == "" {
		return ""
	}
	return p.normalizedName() + ":" + ip
}

// RateLimit enforces a per-IP counter. With no store it is a no-op, and a
// store failure lets the request through rather than blocking shoppers.
func RateLimit(policy RateLimitPolicy, store RateLimitStore, logg *logger.Logger, writeErr ErrorWriter) func(http.Handler) http.Handler {
	writeErr = orJSON(writeErr, logg)
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r, policy.trustProxy)
			scope := policy.scope(ip)
			if scope == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed, count, err := store.FixedWindowAllow(ctx, scope, int64(policy.limit), policy.window)
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "error", err.Error()), "rate_limit.store_unavailable")
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"policy":         policy.normalizedName(),
						"ip":             ip,
						"attempts":       count,
						"limit":          policy.limit,
						"window_seconds": int(policy.window.Seconds()),
					})
					logg.Warn(logCtx, "rate_limit.blocked")
				}
				w.Header().Set("Retry-After", retryAfter(policy.window))
				writeErr(ctx, w, pkgerrors.New(pkgerrors.CodeRateLimit, "Too many cart updates. Please wait a moment and try again."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func retryAfter(window time.Duration) string {
	seconds := int(window.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}

func clientIP(r *http.Request, trustProxy bool) string {
	if r == nil {
		return ""
	}
	if trustProxy {
		if header := r.Header.Get("X-Forwarded-For"); header != "" {
			for _, part := range strings.Split(header, ",") {
				if ip := strings.TrimSpace(part); ip != "" {
					return ip
				}
			}
		}
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
