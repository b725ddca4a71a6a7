package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/obsidian-storefront/api/controllers"
	"github.com/angelmondragon/obsidian-storefront/api/middleware"
	"github.com/angelmondragon/obsidian-storefront/api/views"
	"github.com/angelmondragon/obsidian-storefront/internal/cart"
	"github.com/angelmondragon/obsidian-storefront/internal/catalog"
	"github.com/angelmondragon/obsidian-storefront/internal/shipping"
	"github.com/angelmondragon/obsidian-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/obsidian-storefront/pkg/errors"
	"github.com/angelmondragon/obsidian-storefront/pkg/logger"
	"github.com/angelmondragon/obsidian-storefront/pkg/metrics"
	"github.com/angelmondragon/obsidian-storefront/pkg/redis"
)

const addToCartPolicy = "add_to_cart"

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	gateway controllers.ReadinessChecker,
	redisClient *redis.Client,
	catalogService catalog.Service,
	cartResolver cart.Resolver,
	shippingTable shipping.Table,
	renderer *views.Renderer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg, renderer.WriteError),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
	)

	// Redis is optional; keep the interfaces nil when it is absent.
	var (
		limiter middleware.RateLimitStore
		pinger  controllers.Pinger
	)
	if redisClient != nil {
		limiter = redisClient
		pinger = redisClient
	}
	addPolicy := middleware.NewRateLimitPolicy(addToCartPolicy, cfg.RateLimit.AddToCartWindow, cfg.RateLimit.AddToCartLimit).
		TrustProxyHeaders(cfg.RateLimit.TrustProxyHeaders)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		renderer.WriteError(req.Context(), w, pkgerrors.New(pkgerrors.CodeNotFound, "Page not found."))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, gateway, pinger, logg))
	})
	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Get("/", controllers.CatalogPage(catalogService, renderer))
	r.Get("/product/{handle}", controllers.ProductPage(catalogService, renderer))
	r.Get("/cart", controllers.CartPage(cartResolver, shippingTable, renderer))
	r.With(middleware.RateLimit(addPolicy, limiter, logg, renderer.WriteError)).
		Post("/cart/add", controllers.AddToCartForm(cartResolver, shippingTable, renderer))

	r.Route("/api/v1", func(r chi.Router) {
		jsonErrors := middleware.JSONErrors(logg)
		r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
		r.Use(middleware.Recoverer(logg, jsonErrors))
		r.NotFound(func(w http.ResponseWriter, req *http.Request) {
			jsonErrors(req.Context(), w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
		})

		r.Get("/products", controllers.ListProducts(catalogService, logg))
		r.Get("/products/{handle}", controllers.GetProduct(catalogService, logg))
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(cartResolver, logg))
			r.With(middleware.RateLimit(addPolicy, limiter, logg, jsonErrors)).
				Post("/lines", controllers.AddCartLine(cartResolver, logg))
		})
		r.Get("/shipping/options", controllers.ShippingOptions(shippingTable))
	})

	return r
}
