package shopify

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"
)

const (
	// DefaultAPIVersion is the Storefront API version used when none is configured.
	DefaultAPIVersion = "2024-07"

	defaultTimeout = 10 * time.Second
	tokenHeader    = "X-Shopify-Storefront-Access-Token"
)

var (
	ErrMissingStoreDomain = errors.New("shopify store domain is not set")
	ErrMissingAccessToken = errors.New("shopify storefront access token is not set")
)

// Config carries everything the gateway needs to reach one storefront.
type Config struct {
	StoreDomain string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
}

// Validate reports every missing required setting at once.
func (c Config) Validate() error {
	var err error
	if strings.TrimSpace(c.StoreDomain) == "" {
		err = multierr.Append(err, ErrMissingStoreDomain)
	}
	if strings.TrimSpace(c.AccessToken) == "" {
		err = multierr.Append(err, ErrMissingAccessToken)
	}
	return err
}

// Endpoint returns the GraphQL URL for the configured store and API version.
func (c Config) Endpoint() string {
	version := strings.TrimSpace(c.APIVersion)
	if version == "" {
		version = DefaultAPIVersion
	}
	return fmt.Sprintf("https://%s/api/%s/graphql.json", strings.TrimSpace(c.StoreDomain), version)
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}
