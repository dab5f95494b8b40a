package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	apiErrors "github.com/ether/etherpad-go-client/lib/api/errors"
	"github.com/ether/etherpad-go-client/lib/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	out string
	err error
}

func run(ts *testutils.TestServer, stdin string, args ...string) result {
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--url", ts.URL, "--apikey", ts.APIKey, "--config", ""}, args...))
	err := root.Execute()
	return result{out: out.String(), err: err}
}

func mustRun(t *testing.T, ts *testutils.TestServer, args ...string) string {
	t.Helper()
	res := run(ts, "", args...)
	require.NoError(t, res.err)
	return res.out
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    map[string]string
		wantErr bool
	}{
		{name: "no arguments", args: []string{}, want: map[string]string{}},
		{name: "pairs", args: []string{"padID=p1", "text=a=b"}, want: map[string]string{"padID": "p1", "text": "a=b"}},
		{name: "empty value", args: []string{"text="}, want: map[string]string{"text": ""}},
		{name: "missing equals", args: []string{"padID"}, wantErr: true},
		{name: "missing key", args: []string{"=p1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := parseParams(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, map[string]string(params))
		})
	}
}

func TestCommands(t *testing.T) {
	handler := testutils.NewTestServerHandler(t)
	handler.AddTests(
		testutils.TestRunConfig{Name: "Pad text commands", Test: testPadTextCommands},
		testutils.TestRunConfig{Name: "Pad revisions and pinned reads", Test: testPadRevisionCommands},
		testutils.TestRunConfig{Name: "Group pad info", Test: testGroupPadInfo},
		testutils.TestRunConfig{Name: "Authors and sessions", Test: testAuthorAndSessionCommands},
		testutils.TestRunConfig{Name: "Generic call", Test: testCallCommand},
		testutils.TestRunConfig{Name: "Version", Test: testVersionCommand},
		testutils.TestRunConfig{Name: "Health", Test: testHealthCommand},
	)
	handler.StartTestServerHandler()
}

func testPadTextCommands(t *testing.T, ts *testutils.TestServer) {
	assert.Equal(t, "p1\n", mustRun(t, ts, "pad", "create", "p1", "--text", "hello"))
	assert.Equal(t, "hello\n", mustRun(t, ts, "pad", "get", "p1"))

	mustRun(t, ts, "pad", "append", "p1", " world")
	assert.Equal(t, "hello world\n", mustRun(t, ts, "pad", "get", "p1"))

	res := run(ts, "from stdin\n", "pad", "set", "p1", "-")
	require.NoError(t, res.err)
	text, ok := ts.Store.PadText("p1")
	require.True(t, ok)
	assert.Equal(t, "from stdin\n", text)

	mustRun(t, ts, "pad", "set", "p1", "<p>rich</p>", "--html")
	assert.Contains(t, mustRun(t, ts, "pad", "html", "p1"), "rich")

	assert.Equal(t, "true\n", mustRun(t, ts, "pad", "exists", "p1"))
	mustRun(t, ts, "pad", "delete", "p1")
	_, ok = ts.Store.PadText("p1")
	assert.False(t, ok)
	assert.Equal(t, "false\n", mustRun(t, ts, "pad", "exists", "p1"))

	res = run(ts, "", "pad", "get", "p1")
	assert.True(t, apiErrors.IsNotFound(res.err))
}

func testPadRevisionCommands(t *testing.T, ts *testutils.TestServer) {
	mustRun(t, ts, "pad", "create", "p1", "--text", "first")
	mustRun(t, ts, "pad", "set", "p1", "second")

	var revs []int
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, ts, "pad", "revisions", "p1")), &revs))
	assert.Equal(t, []int{0, 1}, revs)

	assert.Equal(t, "first\n", mustRun(t, ts, "pad", "get", "p1", "--rev", "0"))

	res := run(ts, "", "pad", "get", "p1", "--rev", "-1")
	assert.Error(t, res.err)
	assert.Len(t, ts.RequestsFor("getText"), 1)

	roID := strings.TrimSpace(mustRun(t, ts, "pad", "readonly", "p1"))
	assert.True(t, strings.HasPrefix(roID, "r."))
}

func testGroupPadInfo(t *testing.T, ts *testutils.TestServer) {
	groupID := strings.TrimSpace(mustRun(t, ts, "group", "create", "--mapper", "team-7"))
	assert.Equal(t, groupID+"\n", mustRun(t, ts, "group", "create", "--mapper", "team-7"))

	padID := groupID + "$notes"
	assert.Equal(t, padID+"\n", mustRun(t, ts, "pad", "create", padID))

	var ids []string
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, ts, "group", "pads", groupID)), &ids))
	assert.Equal(t, []string{padID}, ids)

	var info padInfo
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, ts, "pad", "info", padID)), &info))
	assert.Equal(t, padID, info.PadID)
	assert.Equal(t, groupID, info.GroupID)
	assert.Equal(t, 0, info.HeadRevision)
	require.NotNil(t, info.Public)
	assert.False(t, *info.Public)
	require.NotNil(t, info.PasswordProtected)
	assert.False(t, *info.PasswordProtected)

	mustRun(t, ts, "pad", "create", "standalone")
	info = padInfo{}
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, ts, "pad", "info", "standalone")), &info))
	assert.Empty(t, info.GroupID)
	assert.Nil(t, info.Public)
}

func testAuthorAndSessionCommands(t *testing.T, ts *testutils.TestServer) {
	authorID := strings.TrimSpace(mustRun(t, ts, "author", "create", "--name", "Ada"))
	groupID := strings.TrimSpace(mustRun(t, ts, "group", "create"))

	var created sessionOutput
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, ts, "session", "create", groupID, authorID, "30")), &created))
	assert.NotEmpty(t, created.SessionID)
	assert.Equal(t, groupID, created.GroupID)
	assert.Equal(t, authorID, created.AuthorID)

	var info sessionOutput
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, ts, "session", "info", created.SessionID)), &info))
	assert.Equal(t, created, info)

	res := run(ts, "", "session", "create", groupID, authorID, "soon")
	assert.Error(t, res.err)
	assert.Equal(t, 1, ts.Store.SessionCount())

	assert.Equal(t, "\"Ada\"\n", mustRun(t, ts, "call", "getAuthorName", "authorID="+authorID))
}

func testCallCommand(t *testing.T, ts *testutils.TestServer) {
	mustRun(t, ts, "call", "createPad", "padID=p1", "text=via call")
	assert.Equal(t, "null\n", mustRun(t, ts, "call", "setText", "padID=p1", "text=changed"))

	out := mustRun(t, ts, "call", "getText", "padID=p1")
	var data struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	assert.Equal(t, "changed\n", data.Text)

	res := run(ts, "", "call", "noSuchOperation")
	assert.True(t, errors.Is(res.err, apiErrors.ErrUnknownOperation))

	res = run(ts, "", "call", "getText", "padID")
	assert.Error(t, res.err)
	assert.Empty(t, ts.RequestsFor("noSuchOperation"))
}

func testVersionCommand(t *testing.T, ts *testutils.TestServer) {
	ts.SetCurrentVersion("1.2.14")
	var out versionOutput
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, ts, "version", "--api-version", "1.2.8")), &out))
	assert.Equal(t, "1.2.14", out.ServerVersion)
	assert.Equal(t, "1.2.8", out.APIVersion)
	assert.NotEmpty(t, out.Client)

	require.NoError(t, json.Unmarshal([]byte(mustRun(t, ts, "version", "--api-version", "auto")), &out))
	assert.Equal(t, "1.2.14", out.APIVersion)
}

func testHealthCommand(t *testing.T, ts *testutils.TestServer) {
	out := mustRun(t, ts, "health")
	assert.Contains(t, out, `"status": "pass"`)

	res := run(ts, "", "health", "--apikey", "wrong")
	assert.ErrorIs(t, res.err, errUnhealthy)
	assert.Contains(t, res.err.Error(), "apikey")
	assert.Contains(t, res.out, `"status": "fail"`)
}

func TestConfigCommands(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ETHERPAD_APIKEY", "from-env")

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "get", "apiKey"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "from-env\n", out.String())

	root = NewRootCmd()
	out.Reset()
	root.SetOut(&out)
	root.SetArgs([]string{"config", "get", "apiKey", "--apikey", "from-flag"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "from-flag\n", out.String())

	root = NewRootCmd()
	out.Reset()
	root.SetOut(&out)
	root.SetArgs([]string{"config", "show"})
	require.NoError(t, root.Execute())
	assert.NotContains(t, out.String(), "from-env")

	root = NewRootCmd()
	out.Reset()
	root.SetOut(&out)
	root.SetArgs([]string{"config", "init"})
	require.NoError(t, root.Execute())
	assert.True(t, json.Valid(out.Bytes()))
}
