package testutils

import (
	"testing"

	"github.com/ether/etherpad-go-client/lib/api"
	"github.com/ether/etherpad-go-client/lib/models"
	"github.com/stretchr/testify/require"
)

type TestRunConfig struct {
	Name string
	Test func(t *testing.T, ts *TestServer)
}

// TestServerHandler runs every registered test against a fresh fake server.
type TestServerHandler struct {
	t     *testing.T
	tests []TestRunConfig
}

func NewTestServerHandler(t *testing.T) *TestServerHandler {
	return &TestServerHandler{t: t}
}

func (h *TestServerHandler) AddTests(testConfs ...TestRunConfig) {
	h.tests = append(h.tests, testConfs...)
}

func (h *TestServerHandler) StartTestServerHandler() {
	for _, testConf := range h.tests {
		h.t.Run(testConf.Name, func(t *testing.T) {
			t.Parallel()
			testConf.Test(t, NewTestServer(t))
		})
	}
}

// Client returns a client for the fake server. opts are applied after the defaults.
func (ts *TestServer) Client(t *testing.T, opts ...api.Option) *api.Client {
	t.Helper()
	client, err := api.NewClient(ts.URL, ts.APIKey, opts...)
	require.NoError(t, err)
	return client
}

func (ts *TestServer) Instance(t *testing.T, opts ...api.Option) *models.Instance {
	t.Helper()
	return models.NewInstance(ts.Client(t, opts...))
}
