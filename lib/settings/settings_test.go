package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ether/etherpad-go-client/lib/test/testutils"
	"github.com/ether/etherpad-go-client/lib/utils"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "etherpad-client.json")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	return file
}

func TestDefaultsAreApplied(t *testing.T) {
	isolate(t)

	cfg, err := ReadConfig("")
	require.NoError(t, err)

	require.Equal(t, "http://localhost:9001", cfg.URL)
	require.Equal(t, utils.LatestAPIVersion(), cfg.APIVersion)
	require.Equal(t, 30*time.Second, cfg.Timeout)
	require.Equal(t, "INFO", cfg.LogLevel)
	require.False(t, cfg.TLS.InsecureSkipVerify)
	require.False(t, cfg.OAuth.Enabled())
}

func TestEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("ETHERPAD_URL", "https://pads.example.org")
	t.Setenv("ETHERPAD_APIKEY", "secret")
	t.Setenv("ETHERPAD_TIMEOUT", "5s")
	t.Setenv("ETHERPAD_TLS_INSECURESKIPVERIFY", "true")
	t.Setenv("ETHERPAD_LOGLEVEL", "debug")

	cfg, err := ReadConfig("")
	require.NoError(t, err)
	require.Equal(t, "https://pads.example.org", cfg.URL)
	require.Equal(t, "secret", cfg.APIKey)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.True(t, cfg.TLS.InsecureSkipVerify)
	require.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestConfigFile(t *testing.T) {
	isolate(t)
	file := writeConfig(t, `{
  "url": "public",
  "apiKey": "from-file",
  "apiVersion": "1.2.12",
  "oauth": {"tokenUrl": "https://auth.example.org/token", "clientId": "cli", "clientSecret": "s3", "scopes": ["pads", "admin"]}
}`)

	cfg, err := ReadConfig(file)
	require.NoError(t, err)
	want := &Settings{
		URL:        "public",
		APIKey:     "from-file",
		APIVersion: "1.2.12",
		Timeout:    30 * time.Second,
		OAuth: OAuthSettings{
			TokenURL:     "https://auth.example.org/token",
			ClientID:     "cli",
			ClientSecret: "s3",
			Scopes:       []string{"pads", "admin"},
		},
		LogLevel: "INFO",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, cfg.Validate())
}

func TestExplicitConfigFileMustExist(t *testing.T) {
	isolate(t)
	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Settings {
		return &Settings{
			URL:        "local",
			APIKey:     "key",
			APIVersion: "1.2.15",
			Timeout:    time.Second,
			LogLevel:   "INFO",
		}
	}

	testCases := []struct {
		name   string
		mutate func(s *Settings)
		ok     bool
	}{
		{name: "valid", mutate: func(s *Settings) {}, ok: true},
		{name: "auto version", mutate: func(s *Settings) { s.APIVersion = AutoAPIVersion }, ok: true},
		{name: "unsupported version", mutate: func(s *Settings) { s.APIVersion = "9.9" }},
		{name: "missing url", mutate: func(s *Settings) { s.URL = "" }},
		{name: "zero timeout", mutate: func(s *Settings) { s.Timeout = 0 }},
		{name: "unknown log level", mutate: func(s *Settings) { s.LogLevel = "CHATTY" }},
		{name: "missing key file", mutate: func(s *Settings) { s.APIKey = ""; s.APIKeyFile = "/does/not/exist" }},
		{name: "oauth without secret", mutate: func(s *Settings) {
			s.OAuth = OAuthSettings{TokenURL: "https://auth.example.org/token", ClientID: "cli"}
		}},
		{name: "oauth replaces key", mutate: func(s *Settings) {
			s.APIKey = ""
			s.OAuth = OAuthSettings{TokenURL: "https://auth.example.org/token", ClientID: "cli", ClientSecret: "s"}
		}, ok: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := valid()
			tc.mutate(s)
			err := s.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}

	noCredentials := valid()
	noCredentials.APIKey = ""
	assert.ErrorIs(t, noCredentials.Validate(), ErrNoCredentials)
}

func TestResolveAPIKeyFromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "APIKEY.txt")
	require.NoError(t, os.WriteFile(file, []byte("  abc123\n"), 0o600))

	s := &Settings{APIKeyFile: file}
	key, err := s.ResolveAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "abc123", key)

	s.APIKey = "inline"
	key, err = s.ResolveAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "inline", key)
}

func TestNewClient(t *testing.T) {
	ts := testutils.NewTestServer(t)
	ts.SetCurrentVersion("1.2.12")

	s := &Settings{
		URL:        ts.URL,
		APIKey:     ts.APIKey,
		APIVersion: "1.2.8",
		Timeout:    time.Second,
		LogLevel:   "INFO",
	}
	client, err := s.NewClient(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "1.2.8", client.Version())
	assert.Empty(t, ts.Requests())

	s.APIVersion = AutoAPIVersion
	client, err = s.NewClient(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "1.2.12", client.Version())

	s.APIKey = ""
	_, err = s.NewClient(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestConfigCommands(t *testing.T) {
	isolate(t)
	t.Setenv("ETHERPAD_APIKEY", "topsecret")
	v := NewViper()
	require.NoError(t, Load(v, ""))

	var show bytes.Buffer
	ConfigShow(&show, v)
	assert.Contains(t, show.String(), "ETHERPAD_TLS_CAFILE")
	assert.Contains(t, show.String(), maskedValue)
	assert.NotContains(t, show.String(), "topsecret")

	var env bytes.Buffer
	ConfigEnv(&env)
	assert.Contains(t, env.String(), "ETHERPAD_OAUTH_CLIENTSECRET")

	var got bytes.Buffer
	require.NoError(t, ConfigGet(&got, v, "apikey"))
	assert.Equal(t, "topsecret\n", got.String())
	assert.Error(t, ConfigGet(&got, v, "port"))
}

func TestConfigInitRoundTrips(t *testing.T) {
	isolate(t)
	var out bytes.Buffer
	require.NoError(t, ConfigInit(&out))

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &parsed))
	assert.Contains(t, parsed, "tls")
	assert.Contains(t, parsed, "oauth")

	file := writeConfig(t, out.String())
	v := viper.New()
	applyRegistryDefaults(v)
	require.NoError(t, Load(v, file))
	cfg := Decode(v)
	assert.Equal(t, "http://localhost:9001", cfg.URL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}
