package shopify

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Khan/genqlient/graphql"
	"github.com/angelmondragon/obsidian-storefront/pkg/logger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	outcomeOK        = "ok"
	outcomeError     = "error"
	outcomeMalformed = "malformed"
)

// Recorder receives one observation per remote operation.
type Recorder interface {
	ObserveUpstream(operation, outcome string, duration time.Duration)
}

// Client is the Storefront API gateway. It holds no state between calls.
type Client struct {
	endpoint   string
	token      string
	configErr  error
	httpClient *http.Client
	gql        graphql.Client
	metrics    Recorder
	logg       *logger.Logger
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default instrumented HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithEndpoint points the client at a different GraphQL URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

func WithMetrics(recorder Recorder) Option {
	return func(c *Client) {
		c.metrics = recorder
	}
}

func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		c.logg = logg
	}
}

// NewClient builds a gateway for cfg. A client with missing settings is still
// returned; every operation on it fails with a not-configured error.
func NewClient(cfg Config, opts ...Option) *Client {
	client := &Client{
		endpoint:  cfg.Endpoint(),
		token:     strings.TrimSpace(cfg.AccessToken),
		configErr: cfg.Validate(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{
			Timeout:   cfg.timeout(),
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	client.gql = graphql.NewClient(client.endpoint, &tokenDoer{
		token:  client.token,
		client: client.httpClient,
	})
	return client
}

// Ready returns the not-configured error when the store domain or token is missing.
func (c *Client) Ready() error {
	if c == nil {
		return notConfigured(ErrMissingStoreDomain)
	}
	if c.configErr != nil {
		return notConfigured(c.configErr)
	}
	return nil
}

func (c *Client) execute(ctx context.Context, op, query string, vars map[string]any, data any) error {
	if err := c.Ready(); err != nil {
		return err
	}

	ctx = c.logg.WithOperation(ctx, op)
	start := time.Now()

	req := &graphql.Request{
		OpName:    op,
		Query:     query,
		Variables: vars,
	}
	resp := &graphql.Response{Data: data}

	outcome := outcomeOK
	err := c.gql.MakeRequest(ctx, req, resp)
	if err != nil {
		outcome = outcomeError
		err = upstream(op, err)
	} else if verr := validate.Struct(data); verr != nil {
		outcome = outcomeMalformed
		err = malformed(op, verr)
	}

	elapsed := time.Since(start)
	if c.metrics != nil {
		c.metrics.ObserveUpstream(op, outcome, elapsed)
	}

	ctx = c.logg.WithFields(ctx, map[string]any{
		"outcome":     outcome,
		"duration_ms": elapsed.Milliseconds(),
	})
	if err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "shopify.request_failed")
		return err
	}
	c.logg.Debug(ctx, "shopify.request")
	return nil
}

type tokenDoer struct {
	token  string
	client *http.Client
}

func (d *tokenDoer) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set(tokenHeader, d.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return d.client.Do(req)
}
