package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DefaultAPIVersion = "2024-07"
	DefaultSiteName   = "Obsidian Cult Merch"
	DefaultCartCookie = "sf_cart_id"
)

const (
	EnvAppEnv           = "STOREFRONT_APP_ENV"
	EnvPort             = "STOREFRONT_APP_PORT"
	EnvLogLevel         = "STOREFRONT_LOG_LEVEL"
	EnvLogFormat        = "LOG_FORMAT"
	EnvStoreDomain      = "SHOPIFY_STORE_DOMAIN"
	EnvStorefrontToken  = "SHOPIFY_STOREFRONT_TOKEN"
	EnvAPIVersion       = "SHOPIFY_API_VERSION"
	EnvRequestTimeout   = "SHOPIFY_REQUEST_TIMEOUT"
	EnvSiteName         = "SITE_NAME"
	EnvSiteDescription  = "SITE_DESCRIPTION"
	EnvFreeShipping     = "STOREFRONT_FREE_SHIPPING_THRESHOLD"
	EnvCatalogPageSize  = "STOREFRONT_CATALOG_PAGE_SIZE"
	EnvCartCookieName   = "STOREFRONT_CART_COOKIE_NAME"
	EnvCartCookieSecure = "STOREFRONT_CART_COOKIE_SECURE"
	EnvRedisURL         = "STOREFRONT_REDIS_URL"
	EnvAddToCartWindow  = "STOREFRONT_ADD_TO_CART_WINDOW"
	EnvAddToCartLimit   = "STOREFRONT_ADD_TO_CART_LIMIT"
	EnvTrustProxy       = "STOREFRONT_TRUST_PROXY_HEADERS"
	EnvCORSOrigins      = "STOREFRONT_CORS_ORIGINS"
)

const (
	defaultFreeShipping = "150"
	defaultPageSize     = 24
)

type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Shopify   ShopifyConfig
	Site      SiteConfig
	Catalog   CatalogConfig
	Cart      CartConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `envconfig:"STOREFRONT_HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"STOREFRONT_HTTP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"STOREFRONT_HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"STOREFRONT_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

// ShopifyConfig holds the Storefront API connection settings. Missing domain or
// token is not a load error; the gateway reports it per call.
type ShopifyConfig struct {
	StoreDomain    string        `envconfig:"SHOPIFY_STORE_DOMAIN"`
	AccessToken    string        `envconfig:"SHOPIFY_STOREFRONT_TOKEN"`
	APIVersion     string        `envconfig:"SHOPIFY_API_VERSION" default:"2024-07"`
	RequestTimeout time.Duration `envconfig:"SHOPIFY_REQUEST_TIMEOUT" default:"10s"`
}

type SiteConfig struct {
	Name                  string `envconfig:"SITE_NAME" default:"Obsidian Cult Merch"`
	Description           string `envconfig:"SITE_DESCRIPTION" default:"Black & death metal shirts and longsleeves"`
	Announcement          string `envconfig:"STOREFRONT_ANNOUNCEMENT" default:"Free shipping on orders over $150"`
	FreeShippingThreshold string `envconfig:"STOREFRONT_FREE_SHIPPING_THRESHOLD" default:"150"`
}

// FreeShipping returns the parsed free-shipping threshold.
func (s SiteConfig) FreeShipping() decimal.Decimal {
	value, err := decimal.NewFromString(strings.TrimSpace(s.FreeShippingThreshold))
	if err != nil {
		return decimal.RequireFromString(defaultFreeShipping)
	}
	return value
}

type CatalogConfig struct {
	PageSize int `envconfig:"STOREFRONT_CATALOG_PAGE_SIZE" default:"24"`
}

type CartConfig struct {
	CookieName   string `envconfig:"STOREFRONT_CART_COOKIE_NAME" default:"sf_cart_id"`
	CookieSecure bool   `envconfig:"STOREFRONT_CART_COOKIE_SECURE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether a Redis URL was supplied.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type RateLimitConfig struct {
	AddToCartWindow time.Duration `envconfig:"STOREFRONT_ADD_TO_CART_WINDOW" default:"1m"`
	AddToCartLimit  int           `envconfig:"STOREFRONT_ADD_TO_CART_LIMIT" default:"30"`

	// Only enable behind a proxy that overwrites X-Forwarded-For.
	TrustProxyHeaders bool `envconfig:"STOREFRONT_TRUST_PROXY_HEADERS" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOREFRONT_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (c *Config) normalize() error {
	c.Shopify.StoreDomain = normalizeDomain(c.Shopify.StoreDomain)
	c.Shopify.AccessToken = strings.TrimSpace(c.Shopify.AccessToken)
	if strings.TrimSpace(c.Shopify.APIVersion) == "" {
		c.Shopify.APIVersion = DefaultAPIVersion
	}
	if strings.TrimSpace(c.Site.Name) == "" {
		c.Site.Name = DefaultSiteName
	}
	if c.Catalog.PageSize <= 0 {
		c.Catalog.PageSize = defaultPageSize
	}
	if strings.TrimSpace(c.Cart.CookieName) == "" {
		c.Cart.CookieName = DefaultCartCookie
	}
	if _, err := decimal.NewFromString(strings.TrimSpace(c.Site.FreeShippingThreshold)); err != nil {
		return fmt.Errorf("%s must be a decimal amount: %w", EnvFreeShipping, err)
	}
	return nil
}

// normalizeDomain strips a scheme or trailing path so both "shop.myshopify.com"
// and "https://shop.myshopify.com/" resolve to the bare host.
func normalizeDomain(raw string) string {
	domain := strings.TrimSpace(raw)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	if idx := strings.Index(domain, "/"); idx >= 0 {
		domain = domain[:idx]
	}
	return domain
}
