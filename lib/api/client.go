package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ether/etherpad-go-client/lib/hooks"
	"github.com/ether/etherpad-go-client/lib/utils"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const DefaultTimeout = 30 * time.Second

// Client is a connection to one Etherpad instance. The base URL, API key and
// API version never change after construction; use a new Client to switch them.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	version    string
	httpClient *http.Client
	logger     *zap.SugaredLogger
	hooks      *hooks.Hook
	metrics    *Metrics
	clock      func() time.Time
}

type clientConfig struct {
	APIVersion         string        `validate:"omitempty"`
	Timeout            time.Duration `validate:"gte=0"`
	CAFile             string        `validate:"omitempty,file"`
	InsecureSkipVerify bool
	HTTPClient         *http.Client              `validate:"-"`
	OAuth2             *clientcredentials.Config `validate:"-"`
	Logger             *zap.SugaredLogger        `validate:"-"`
	Hooks              *hooks.Hook               `validate:"-"`
	Metrics            *Metrics                  `validate:"-"`
	Clock              func() time.Time          `validate:"-"`

	locateTrustStore func() string
}

type Option func(*clientConfig)

// WithAPIVersion pins the API version. Defaults to the newest supported version.
func WithAPIVersion(version string) Option {
	return func(c *clientConfig) { c.APIVersion = version }
}

// WithTimeout bounds every request. Zero keeps DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) { c.Timeout = timeout }
}

// WithHTTPClient replaces the HTTP client. TLS and timeout options are ignored when set.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *clientConfig) { c.HTTPClient = httpClient }
}

func WithCAFile(path string) Option {
	return func(c *clientConfig) { c.CAFile = path }
}

func WithInsecureSkipVerify(skip bool) Option {
	return func(c *clientConfig) { c.InsecureSkipVerify = skip }
}

// WithOAuth2 authenticates requests with a bearer token obtained through the
// client credentials grant, in addition to the API key if one is set.
func WithOAuth2(cfg *clientcredentials.Config) Option {
	return func(c *clientConfig) { c.OAuth2 = cfg }
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *clientConfig) { c.Logger = logger }
}

func WithHooks(h *hooks.Hook) Option {
	return func(c *clientConfig) { c.Hooks = h }
}

func WithMetrics(m *Metrics) Option {
	return func(c *clientConfig) { c.Metrics = m }
}

// WithClock replaces time.Now for session expiry computations.
func WithClock(clock func() time.Time) Option {
	return func(c *clientConfig) { c.Clock = clock }
}

var optionValidator = validator.New(validator.WithRequiredStructEnabled())

// NewClient connects to the instance at hostOrAlias ("http://host:9001",
// "local", "public" or a bare port number).
func NewClient(hostOrAlias string, apiKey string, opts ...Option) (*Client, error) {
	baseURL, err := ResolveHost(hostOrAlias)
	if err != nil {
		return nil, err
	}

	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := optionValidator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid client options: %w", err)
	}

	apiKey = utils.TrimAPIKey(apiKey)
	if apiKey == "" && cfg.OAuth2 == nil {
		return nil, fmt.Errorf("an api key or oauth2 credentials are required")
	}

	version := cfg.APIVersion
	if version == "" {
		version = utils.LatestAPIVersion()
	}
	if !utils.IsSupportedAPIVersion(version) {
		return nil, fmt.Errorf("API version %s is not supported", version)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	hook := cfg.Hooks
	if hook == nil {
		hook = hooks.NewHook()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	httpClient, err := newHTTPClient(baseURL, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		version:    version,
		httpClient: httpClient,
		logger:     logger,
		hooks:      hook,
		metrics:    cfg.Metrics,
		clock:      clock,
	}, nil
}

// NewClientFromReader reads the API key once from r, e.g. an opened APIKEY.txt.
func NewClientFromReader(hostOrAlias string, r io.Reader, opts ...Option) (*Client, error) {
	key, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading api key: %w", err)
	}
	return NewClient(hostOrAlias, string(key), opts...)
}

func newHTTPClient(baseURL *url.URL, cfg *clientConfig, logger *zap.SugaredLogger) (*http.Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	base := cfg.HTTPClient
	if base == nil {
		tlsConfig, err := buildTLSConfig(baseURL, cfg, logger)
		if err != nil {
			return nil, err
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = tlsConfig
		base = &http.Client{
			Timeout:   timeout,
			Transport: transport,
		}
	}

	if cfg.OAuth2 == nil {
		return base, nil
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	authenticated := cfg.OAuth2.Client(ctx)
	authenticated.Timeout = base.Timeout
	return authenticated, nil
}

// WithVersion returns a copy of the client speaking another API version.
func (c *Client) WithVersion(version string) (*Client, error) {
	if !utils.IsSupportedAPIVersion(version) {
		return nil, fmt.Errorf("API version %s is not supported", version)
	}
	clone := *c
	clone.version = version
	return &clone, nil
}

// Negotiate asks the server for its current API version and returns a copy of
// the client using the newest version both sides understand.
func (c *Client) Negotiate(ctx context.Context) (*Client, error) {
	current, err := c.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	version, err := utils.HighestCommonVersion(current)
	if err != nil {
		return nil, err
	}
	c.logger.Debugf("negotiated api version %s (server %s)", version, current)
	return c.WithVersion(version)
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) APIKey() string {
	return c.apiKey
}

func (c *Client) Version() string {
	return c.version
}

// Secure reports whether the connection uses HTTPS.
func (c *Client) Secure() bool {
	return c.baseURL.Scheme == "https" || c.baseURL.Port() == "443"
}

func (c *Client) Now() time.Time {
	return c.clock()
}

func (c *Client) Logger() *zap.SugaredLogger {
	return c.logger
}

func (c *Client) Hooks() *hooks.Hook {
	return c.hooks
}
