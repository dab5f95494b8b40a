package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	apiErrors "github.com/ether/etherpad-go-client/lib/api/errors"
	"github.com/ether/etherpad-go-client/lib/hooks"
	"github.com/ether/etherpad-go-client/lib/hooks/events"
	"github.com/ether/etherpad-go-client/lib/utils"
	"github.com/google/uuid"
)

const (
	userAgent       = "etherpad-go-client"
	requestIDHeader = "X-Request-Id"
	maxResponseSize = 32 << 20
)

// call performs one API operation. Parameters are checked against the
// operation table before any network I/O. No request is ever retried.
func (c *Client) call(ctx context.Context, op Operation, params Params, out any) error {
	if err := c.checkCall(op, params); err != nil {
		return err
	}

	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}
	values.Set("apikey", c.apiKey)

	callCtx := &events.CallContext{
		RequestID: uuid.NewString(),
		Operation: op.Name,
		Verb:      op.Verb,
		Version:   c.version,
		Started:   time.Now(),
		Code:      -1,
	}
	c.hooks.ExecuteHooks(hooks.BeforeCallString, callCtx)

	statusCode, body, err := c.send(ctx, op.Verb, c.operationPath(op), values, callCtx.RequestID)
	if err != nil {
		err = &apiErrors.TransportError{Operation: op.Name, URL: c.redactedURL(op), Err: err}
		return c.finishCall(callCtx, "transport", err)
	}

	data, err := parseEnvelope(op.Name, statusCode, body)
	if err != nil {
		if code, ok := apiErrors.CodeOf(err); ok {
			callCtx.Code = int(code)
			return c.finishCall(callCtx, codeLabel(int(code)), err)
		}
		return c.finishCall(callCtx, "protocol", err)
	}
	callCtx.Code = int(apiErrors.CodeOK)

	if err := decodeData(op.Name, statusCode, data, out); err != nil {
		return c.finishCall(callCtx, "protocol", err)
	}
	return c.finishCall(callCtx, codeLabel(callCtx.Code), nil)
}

func (c *Client) finishCall(callCtx *events.CallContext, label string, err error) error {
	callCtx.Duration = time.Since(callCtx.Started)
	callCtx.Err = err
	c.metrics.observe(callCtx.Operation, label, callCtx.Duration)

	if err != nil {
		c.logger.Debugw("api call failed",
			"operation", callCtx.Operation,
			"verb", callCtx.Verb,
			"code", callCtx.Code,
			"duration", callCtx.Duration,
			"requestId", callCtx.RequestID,
			"error", err,
		)
		c.hooks.ExecuteHooks(hooks.CallErrorString, callCtx)
	} else {
		c.logger.Debugw("api call",
			"operation", callCtx.Operation,
			"verb", callCtx.Verb,
			"code", callCtx.Code,
			"duration", callCtx.Duration,
			"requestId", callCtx.RequestID,
		)
	}
	c.hooks.ExecuteHooks(hooks.AfterCallString, callCtx)
	return err
}

func (c *Client) checkCall(op Operation, params Params) error {
	supported, err := utils.VersionAtLeast(c.version, op.Since)
	if err != nil {
		return err
	}
	if !supported {
		return fmt.Errorf("%s requires api version %s, client uses %s: %w", op.Name, op.Since, c.version, apiErrors.ErrUnsupportedOperation)
	}

	for _, required := range op.Required {
		if _, ok := params[required]; !ok {
			return fmt.Errorf("%s: %s: %w", op.Name, required, apiErrors.ErrMissingParameter)
		}
	}

	unknown := make([]string, 0)
	for key := range params {
		if !op.accepts(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%s: %s: %w", op.Name, strings.Join(unknown, ", "), apiErrors.ErrUnknownParameter)
	}
	return nil
}

func (c *Client) operationPath(op Operation) string {
	return path.Join("/", c.baseURL.Path, "api", c.version, op.Name)
}

// redactedURL is used in errors and logs; it never contains the api key.
func (c *Client) redactedURL(op Operation) string {
	u := *c.baseURL
	u.Path = c.operationPath(op)
	return u.String()
}

// send issues the request and returns status and body whatever the status is.
func (c *Client) send(ctx context.Context, verb string, urlPath string, values url.Values, requestID string) (int, []byte, error) {
	target := *c.baseURL
	target.Path = urlPath

	var body io.Reader
	if verb == http.MethodGet {
		target.RawQuery = values.Encode()
	} else if values != nil {
		body = strings.NewReader(values.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, verb, target.String(), body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if requestID != "" {
		req.Header.Set(requestIDHeader, requestID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, raw, nil
}
