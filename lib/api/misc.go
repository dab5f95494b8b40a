package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"time"

	apiErrors "github.com/ether/etherpad-go-client/lib/api/errors"
	"github.com/ether/etherpad-go-client/lib/api/stats"
	"github.com/google/uuid"
)

// CheckToken succeeds when the server accepts the configured credentials.
func (c *Client) CheckToken(ctx context.Context) error {
	return c.call(ctx, OpCheckToken, Params{}, nil)
}

func (c *Client) ListAllPads(ctx context.Context) ([]string, error) {
	var resp PadIDsResponse
	if err := c.call(ctx, OpListAllPads, Params{}, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.PadIDs), nil
}

func (c *Client) GetStats(ctx context.Context) (Stats, error) {
	var resp Stats
	if err := c.call(ctx, OpGetStats, Params{}, &resp); err != nil {
		return Stats{}, err
	}
	return resp, nil
}

// Do calls any operation of the table by name and returns the raw data
// payload. Parameters are validated exactly like the typed methods do.
func (c *Client) Do(ctx context.Context, operation string, params Params) (json.RawMessage, error) {
	op, ok := LookupOperation(operation)
	if !ok {
		return nil, fmt.Errorf("%s: %w", operation, apiErrors.ErrUnknownOperation)
	}
	if params == nil {
		params = Params{}
	}
	var data json.RawMessage
	if err := c.call(ctx, op, params, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// CurrentVersion asks GET /api for the newest version the server speaks.
// The answer is plain JSON without the usual envelope.
func (c *Client) CurrentVersion(ctx context.Context) (string, error) {
	var resp CurrentVersionResponse
	if err := c.getPlain(ctx, "api", "currentVersion", &resp); err != nil {
		return "", err
	}
	if resp.CurrentVersion == "" {
		return "", &apiErrors.ProtocolError{Operation: "currentVersion", StatusCode: http.StatusOK, Body: "missing currentVersion"}
	}
	return resp.CurrentVersion, nil
}

// Health fetches the server's health report. A failing server answers 503
// with a valid report, which is returned without error.
func (c *Client) Health(ctx context.Context) (stats.HealthResponse, error) {
	var resp stats.HealthResponse
	if err := c.getPlain(ctx, "health", "health", &resp); err != nil {
		return stats.HealthResponse{}, err
	}
	return resp, nil
}

func (c *Client) getPlain(ctx context.Context, endpoint, operation string, out any) error {
	urlPath := path.Join("/", c.baseURL.Path, endpoint)
	statusCode, body, err := c.send(ctx, http.MethodGet, urlPath, nil, uuid.NewString())
	if err != nil {
		target := *c.baseURL
		target.Path = urlPath
		return &apiErrors.TransportError{Operation: operation, URL: target.String(), Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &apiErrors.ProtocolError{Operation: operation, StatusCode: statusCode, Body: string(body), Err: err}
	}
	return nil
}

// TokenChecker reports whether the server accepts the client's credentials.
type TokenChecker struct {
	Client *Client
}

func (t TokenChecker) Name() string {
	return "apikey"
}

func (t TokenChecker) Check(ctx context.Context) stats.Check {
	if err := t.Client.CheckToken(ctx); err != nil {
		return stats.Check{
			Status:    stats.StatusFail,
			Component: t.Client.BaseURL(),
			Output:    err.Error(),
		}
	}
	return stats.Check{
		Status:     stats.StatusPass,
		Component:  t.Client.BaseURL(),
		Observed:   "ok",
		ObservedAt: t.Client.Now().UTC().Format(time.RFC3339),
	}
}

// StatsChecker turns getStats into an observed value.
type StatsChecker struct {
	Client *Client
}

func (s StatsChecker) Name() string {
	return "pads"
}

func (s StatsChecker) Check(ctx context.Context) stats.Check {
	padStats, err := s.Client.GetStats(ctx)
	if err != nil {
		return stats.Check{Status: stats.StatusWarn, Output: err.Error()}
	}
	if padStats.TotalPads < 0 {
		return stats.Check{Status: stats.StatusFail, Output: "invalid pad count"}
	}
	return stats.Check{Status: stats.StatusPass, Observed: padStats.TotalActivePads}
}
