package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ether/etherpad-go-client/lib/api"
	"github.com/ether/etherpad-go-client/lib/utils"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	URL                   = "url"
	APIKey                = "apiKey"
	APIKeyFile            = "apiKeyFile"
	APIVersion            = "apiVersion"
	Timeout               = "timeout"
	TLSCAFile             = "tls.caFile"
	TLSInsecureSkipVerify = "tls.insecureSkipVerify"
	OAuthTokenURL         = "oauth.tokenUrl"
	OAuthClientID         = "oauth.clientId"
	OAuthClientSecret     = "oauth.clientSecret"
	OAuthScopes           = "oauth.scopes"
	LogLevel              = "logLevel"
)

// AutoAPIVersion asks the server for its current version and picks the
// highest one both sides support.
const AutoAPIVersion = "auto"

type TLSSettings struct {
	CAFile             string `validate:"omitempty,file"`
	InsecureSkipVerify bool
}

type OAuthSettings struct {
	TokenURL     string `validate:"omitempty,url"`
	ClientID     string `validate:"required_with=TokenURL"`
	ClientSecret string `validate:"required_with=TokenURL"`
	Scopes       []string
}

func (o OAuthSettings) Enabled() bool {
	return o.TokenURL != ""
}

type Settings struct {
	URL        string        `validate:"required"`
	APIKey     string        `validate:"-"`
	APIKeyFile string        `validate:"omitempty,file"`
	APIVersion string        `validate:"required,apiversion"`
	Timeout    time.Duration `validate:"gt=0"`
	TLS        TLSSettings
	OAuth      OAuthSettings
	LogLevel   string `validate:"oneof=DEBUG INFO WARN WARNING ERROR"`
}

var ErrNoCredentials = errors.New("either apiKey, apiKeyFile or oauth.tokenUrl must be set")

var settingsValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("apiversion", func(fl validator.FieldLevel) bool {
		version := fl.Field().String()
		return version == AutoAPIVersion || utils.IsSupportedAPIVersion(version)
	})
	return v
}

func (s *Settings) Validate() error {
	if err := settingsValidator.Struct(s); err != nil {
		return err
	}
	if s.APIKey == "" && s.APIKeyFile == "" && !s.OAuth.Enabled() {
		return ErrNoCredentials
	}
	return nil
}

// ResolveAPIKey returns the configured key. An inline apiKey wins over apiKeyFile.
func (s *Settings) ResolveAPIKey() (string, error) {
	if s.APIKey != "" || s.APIKeyFile == "" {
		return utils.TrimAPIKey(s.APIKey), nil
	}
	content, err := os.ReadFile(s.APIKeyFile)
	if err != nil {
		return "", fmt.Errorf("reading api key file: %w", err)
	}
	return utils.TrimAPIKey(string(content)), nil
}

func (s *Settings) ClientOptions(logger *zap.SugaredLogger) []api.Option {
	opts := []api.Option{
		api.WithTimeout(s.Timeout),
		api.WithInsecureSkipVerify(s.TLS.InsecureSkipVerify),
	}
	if s.APIVersion != AutoAPIVersion {
		opts = append(opts, api.WithAPIVersion(s.APIVersion))
	}
	if s.TLS.CAFile != "" {
		opts = append(opts, api.WithCAFile(s.TLS.CAFile))
	}
	if s.OAuth.Enabled() {
		opts = append(opts, api.WithOAuth2(&clientcredentials.Config{
			ClientID:     s.OAuth.ClientID,
			ClientSecret: s.OAuth.ClientSecret,
			TokenURL:     s.OAuth.TokenURL,
			Scopes:       s.OAuth.Scopes,
		}))
	}
	if logger != nil {
		opts = append(opts, api.WithLogger(logger))
	}
	return opts
}

// NewClient validates the settings and connects. With apiVersion "auto" the
// version is negotiated with the server before the client is returned.
func (s *Settings) NewClient(ctx context.Context, logger *zap.SugaredLogger, extra ...api.Option) (*api.Client, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	key, err := s.ResolveAPIKey()
	if err != nil {
		return nil, err
	}
	client, err := api.NewClient(s.URL, key, append(s.ClientOptions(logger), extra...)...)
	if err != nil {
		return nil, err
	}
	if s.APIVersion != AutoAPIVersion {
		return client, nil
	}
	return client.Negotiate(ctx)
}

func normalizeLogLevel(level string) string {
	level = strings.ToUpper(strings.TrimSpace(level))
	if level == "" {
		return "INFO"
	}
	return level
}
