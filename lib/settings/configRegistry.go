package settings

import (
	"strings"

	"github.com/ether/etherpad-go-client/lib/api"
	"github.com/ether/etherpad-go-client/lib/utils"
	"github.com/spf13/viper"
)

type ConfigKey struct {
	Key         string
	Default     any
	Description string
	Secret      bool
}

const envPrefix = "ETHERPAD"

func EnvVar(key string) string {
	return envPrefix + "_" + strings.ToUpper(
		strings.ReplaceAll(key, ".", "_"),
	)
}

var Registry = []ConfigKey{
	// ---------------------------------------------------------------------
	// Connection
	// ---------------------------------------------------------------------
	{Key: URL, Default: "http://localhost:9001", Description: "Etherpad base URL, \"local\", \"public\" or a port"},
	{Key: APIKey, Default: "", Description: "API key (contents of APIKEY.txt)", Secret: true},
	{Key: APIKeyFile, Default: "", Description: "File holding the API key"},
	{
		Key:         APIVersion,
		Default:     utils.LatestAPIVersion(),
		Description: "API version, \"auto\" negotiates with the server",
	},
	{Key: Timeout, Default: api.DefaultTimeout.String(), Description: "Request timeout"},

	// ---------------------------------------------------------------------
	// TLS
	// ---------------------------------------------------------------------
	{Key: TLSCAFile, Default: "", Description: "PEM bundle used to verify the server"},
	{Key: TLSInsecureSkipVerify, Default: false, Description: "Skip certificate verification"},

	// ---------------------------------------------------------------------
	// OAuth2 client credentials
	// ---------------------------------------------------------------------
	{Key: OAuthTokenURL, Default: "", Description: "Token endpoint, enables OAuth2 when set"},
	{Key: OAuthClientID, Default: "", Description: "OAuth2 client id"},
	{Key: OAuthClientSecret, Default: "", Description: "OAuth2 client secret", Secret: true},
	{Key: OAuthScopes, Default: []string{}, Description: "OAuth2 scopes"},

	// ---------------------------------------------------------------------
	// Misc
	// ---------------------------------------------------------------------
	{Key: LogLevel, Default: "INFO", Description: "DEBUG, INFO, WARN or ERROR"},
}

func LookupKey(key string) (ConfigKey, bool) {
	for _, c := range Registry {
		if strings.EqualFold(c.Key, key) {
			return c, true
		}
	}
	return ConfigKey{}, false
}

func applyRegistryDefaults(v *viper.Viper) {
	for _, c := range Registry {
		v.SetDefault(c.Key, c.Default)
	}
}
