package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const configName = "etherpad-client"

// NewViper returns a viper instance with the registry defaults, the
// ETHERPAD_ environment overrides and the default search paths.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("json")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "etherpad"))
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	applyRegistryDefaults(v)
	return v
}

// Load reads configFile, or searches the default paths when it is empty.
// A missing file is only an error when it was named explicitly.
func Load(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func Decode(v *viper.Viper) *Settings {
	return &Settings{
		URL:        v.GetString(URL),
		APIKey:     v.GetString(APIKey),
		APIKeyFile: v.GetString(APIKeyFile),
		APIVersion: v.GetString(APIVersion),
		Timeout:    v.GetDuration(Timeout),
		TLS: TLSSettings{
			CAFile:             v.GetString(TLSCAFile),
			InsecureSkipVerify: v.GetBool(TLSInsecureSkipVerify),
		},
		OAuth: OAuthSettings{
			TokenURL:     v.GetString(OAuthTokenURL),
			ClientID:     v.GetString(OAuthClientID),
			ClientSecret: v.GetString(OAuthClientSecret),
			Scopes:       v.GetStringSlice(OAuthScopes),
		},
		LogLevel: normalizeLogLevel(v.GetString(LogLevel)),
	}
}

func ReadConfig(configFile string) (*Settings, error) {
	v := NewViper()
	if err := Load(v, configFile); err != nil {
		return nil, err
	}
	return Decode(v), nil
}
