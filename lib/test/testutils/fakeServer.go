package testutils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ether/etherpad-go-client/lib/api/stats"
	"github.com/ether/etherpad-go-client/lib/utils"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
)

// Request is one API call as the fake server received it.
type Request struct {
	Verb          string
	Version       string
	Operation     string
	Params        map[string]string
	RequestID     string
	ContentType   string
	Authorization string
}

// Fault replaces the next answer to an operation with a raw response.
type Fault struct {
	Status int
	Body   string
}

// apiFailure carries a non-zero envelope code.
type apiFailure struct {
	code    int
	message string
}

func (f *apiFailure) Error() string { return f.message }

func internalError(message string) error {
	return &apiFailure{code: 2, message: message}
}

// TestServer is an in-process Etherpad HTTP API backed by a MemoryStore.
type TestServer struct {
	*httptest.Server
	App   *fiber.App
	Store *MemoryStore

	APIKey string

	mu               sync.Mutex
	currentVersion   string
	legacyChatFields bool
	keyedPadIDs      bool
	healthStatus     stats.HealthStatus
	requests         []Request
	faults           map[string]Fault
}

// NewTestServer starts a fake server that is closed when the test ends.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	ts := newTestServer(time.Now)
	t.Cleanup(ts.Close)
	return ts
}

// NewTestServerWithClock lets the server judge session validity by clock.
func NewTestServerWithClock(t *testing.T, clock func() time.Time) *TestServer {
	t.Helper()
	ts := newTestServer(clock)
	t.Cleanup(ts.Close)
	return ts
}

func newTestServer(clock func() time.Time) *TestServer {
	ts := &TestServer{
		Store:          NewMemoryStore(clock),
		APIKey:         utils.RandomString(32),
		currentVersion: utils.LatestAPIVersion(),
		healthStatus:   stats.StatusPass,
		faults:         map[string]Fault{},
	}

	app := fiber.New(fiber.Config{
		Immutable:             true,
		DisableStartupMessage: true,
	})
	app.Get("/api", ts.handleCurrentVersion)
	app.Get("/health", ts.handleHealth)
	app.All("/api/:version/:method", ts.handleAPI)

	ts.App = app
	ts.Server = httptest.NewServer(adaptor.FiberApp(app))
	return ts
}

// SetCurrentVersion changes the version GET /api reports.
func (ts *TestServer) SetCurrentVersion(version string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.currentVersion = version
}

// SetLegacyChatFields makes chat messages carry userId/userName instead of
// authorId/displayName.
func (ts *TestServer) SetLegacyChatFields(legacy bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.legacyChatFields = legacy
}

// SetKeyedPadIDs makes pad listings an object keyed by pad ID.
func (ts *TestServer) SetKeyedPadIDs(keyed bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.keyedPadIDs = keyed
}

func (ts *TestServer) SetHealthStatus(status stats.HealthStatus) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.healthStatus = status
}

func (ts *TestServer) flags() (legacyChat bool, keyedPadIDs bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.legacyChatFields, ts.keyedPadIDs
}

// Requests returns the calls received so far.
func (ts *TestServer) Requests() []Request {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]Request{}, ts.requests...)
}

// LastRequest returns the most recent call. ok is false before the first one.
func (ts *TestServer) LastRequest() (Request, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if len(ts.requests) == 0 {
		return Request{}, false
	}
	return ts.requests[len(ts.requests)-1], true
}

// RequestsFor returns the calls of one operation.
func (ts *TestServer) RequestsFor(operation string) []Request {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	matching := make([]Request, 0)
	for _, req := range ts.requests {
		if req.Operation == operation {
			matching = append(matching, req)
		}
	}
	return matching
}

// InjectFault makes the next call of operation answer with fault.
func (ts *TestServer) InjectFault(operation string, fault Fault) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.faults[operation] = fault
}

func (ts *TestServer) takeFault(operation string) (Fault, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	fault, ok := ts.faults[operation]
	if ok {
		delete(ts.faults, operation)
	}
	return fault, ok
}

func (ts *TestServer) record(req Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.requests = append(ts.requests, req)
}

func (ts *TestServer) handleCurrentVersion(c *fiber.Ctx) error {
	ts.mu.Lock()
	version := ts.currentVersion
	ts.mu.Unlock()
	return c.JSON(fiber.Map{"currentVersion": version})
}

func (ts *TestServer) handleHealth(c *fiber.Ctx) error {
	ts.mu.Lock()
	healthStatus := ts.healthStatus
	ts.mu.Unlock()

	resp := stats.HealthResponse{
		Status:    healthStatus,
		Version:   "2.2.7",
		ReleaseID: "2.2.7",
		ServiceID: "etherpad-api",
		Checks: map[string][]stats.Check{
			"database": {{Status: healthStatus, Observed: "ok"}},
		},
	}
	status := fiber.StatusOK
	if healthStatus == stats.StatusFail {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}

func (ts *TestServer) handleAPI(c *fiber.Ctx) error {
	params := map[string]string{}
	c.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
		params[string(key)] = string(value)
	})
	if c.Method() == http.MethodPost {
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			params[string(key)] = string(value)
		})
	}

	req := Request{
		Verb:          c.Method(),
		Version:       c.Params("version"),
		Operation:     c.Params("method"),
		Params:        params,
		RequestID:     c.Get("X-Request-Id"),
		ContentType:   c.Get(fiber.HeaderContentType),
		Authorization: c.Get(fiber.HeaderAuthorization),
	}
	ts.record(req)

	if fault, ok := ts.takeFault(req.Operation); ok {
		status := fault.Status
		if status == 0 {
			status = fiber.StatusOK
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(status).SendString(fault.Body)
	}

	if params["apikey"] != ts.APIKey {
		return respond(c, 4, "no or wrong API Key", nil)
	}
	if !utils.IsSupportedAPIVersion(req.Version) {
		return respond(c, 3, "no such api version", nil)
	}
	op, ok := fakeOperations[req.Operation]
	if !ok {
		return respond(c, 3, "no such function", nil)
	}
	if supported, err := utils.VersionAtLeast(req.Version, op.since); err != nil || !supported {
		return respond(c, 3, "no such function", nil)
	}
	delete(params, "apikey")

	ts.Store.mu.Lock()
	data, err := op.handle(ts, apiArgs(params))
	ts.Store.mu.Unlock()

	if err != nil {
		var failure *apiFailure
		if errors.As(err, &failure) {
			return respond(c, failure.code, failure.message, nil)
		}
		return respond(c, 1, err.Error(), nil)
	}
	return respond(c, 0, "ok", data)
}

var statusByCode = map[int]int{
	0: fiber.StatusOK,
	1: fiber.StatusBadRequest,
	2: fiber.StatusInternalServerError,
	3: fiber.StatusNotFound,
	4: fiber.StatusUnauthorized,
}

func respond(c *fiber.Ctx, code int, message string, data any) error {
	return c.Status(statusByCode[code]).JSON(fiber.Map{
		"code":    code,
		"message": message,
		"data":    data,
	})
}
