package models

import (
	"context"
	"strings"
	"testing"

	"github.com/ether/etherpad-go-client/lib/api"
	apiErrors "github.com/ether/etherpad-go-client/lib/api/errors"
	"github.com/ether/etherpad-go-client/lib/api/stats"
	"github.com/ether/etherpad-go-client/lib/models"
	"github.com/ether/etherpad-go-client/lib/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstance(t *testing.T) {
	handler := testutils.NewTestServerHandler(t)
	handler.AddTests(
		testutils.TestRunConfig{Name: "Pad is get or create", Test: testPadGetOrCreate},
		testutils.TestRunConfig{Name: "CreatePad propagates already exists", Test: testCreatePadAlreadyExists},
		testutils.TestRunConfig{Name: "GetPad does no I/O", Test: testGetPadNoIO},
		testutils.TestRunConfig{Name: "Pad names with $ are rejected locally", Test: testInvalidPadName},
		testutils.TestRunConfig{Name: "Instance creates group pads from full IDs", Test: testInstanceCreatesGroupPad},
		testutils.TestRunConfig{Name: "Group and author mappers", Test: testMappers},
		testutils.TestRunConfig{Name: "Listings", Test: testListings},
		testutils.TestRunConfig{Name: "Health", Test: testHealth},
	)
	handler.StartTestServerHandler()
}

func testPadGetOrCreate(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	instance := ts.Instance(t)

	pad, err := instance.Pad(ctx, "p1", models.WithText("Hello"))
	require.NoError(t, err)
	text, err := pad.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello\n", text)

	again, err := instance.Pad(ctx, "p1", models.WithText("ignored"))
	require.NoError(t, err)
	assert.Equal(t, pad.ID(), again.ID())
	text, err = again.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello\n", text)

	ts.InjectFault("createPad", testutils.Fault{Status: 401, Body: `{"code":4,"message":"no or wrong API Key","data":null}`})
	_, err = instance.Pad(ctx, "p2")
	var keyErr *apiErrors.InvalidAPIKeyError
	assert.ErrorAs(t, err, &keyErr)
}

func testCreatePadAlreadyExists(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	instance := ts.Instance(t)

	_, err := instance.CreatePad(ctx, "p1")
	require.NoError(t, err)
	_, err = instance.CreatePad(ctx, "p1")
	assert.True(t, apiErrors.IsAlreadyExists(err))
	assert.EqualError(t, err, "padID does already exist")
}

func testGetPadNoIO(t *testing.T, ts *testutils.TestServer) {
	instance := ts.Instance(t)

	pad := instance.GetPad("does-not-exist")
	assert.Equal(t, "does-not-exist", pad.ID())
	assert.Equal(t, "does-not-exist", pad.Name())
	assert.Nil(t, pad.Group())
	assert.Empty(t, ts.Requests())

	_, err := pad.Text(context.Background())
	assert.True(t, apiErrors.IsNotFound(err))
}

func testInvalidPadName(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	instance := ts.Instance(t)

	_, err := instance.Pad(ctx, "foo$bar")
	assert.ErrorIs(t, err, apiErrors.ErrInvalidPadName)

	group, err := instance.CreateGroup(ctx)
	require.NoError(t, err)
	_, err = group.CreatePad(ctx, "a$b")
	assert.ErrorIs(t, err, apiErrors.ErrInvalidPadName)
	assert.Len(t, ts.Requests(), 1)
}

func testInstanceCreatesGroupPad(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	instance := ts.Instance(t)
	group, err := instance.CreateGroup(ctx)
	require.NoError(t, err)

	pad, err := instance.CreatePad(ctx, group.ID()+"$notes")
	require.NoError(t, err)
	assert.Equal(t, group.ID(), pad.GroupID())
	assert.Equal(t, "notes", pad.Name())
	require.NotNil(t, pad.Group())
	assert.Equal(t, group.ID(), pad.Group().ID())
	assert.Len(t, ts.RequestsFor("createGroupPad"), 1)
}

func testMappers(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	instance := ts.Instance(t)
	mapper := testutils.GenerateMapper()

	first, err := instance.Group(ctx, mapper)
	require.NoError(t, err)
	second, err := instance.Group(ctx, mapper)
	require.NoError(t, err)
	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, mapper, first.Mapper())

	name := testutils.GenerateAuthorName()
	author, err := instance.Author(ctx, mapper, models.WithName(name))
	require.NoError(t, err)
	same, err := instance.Author(ctx, mapper)
	require.NoError(t, err)
	assert.Equal(t, author.ID(), same.ID())

	got, err := same.Name(ctx)
	require.NoError(t, err)
	assert.Equal(t, name, got)
	_, err = same.Name(ctx)
	require.NoError(t, err)
	assert.Len(t, ts.RequestsFor("getAuthorName"), 1)

	fresh, err := instance.CreateAuthor(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, author.ID(), fresh.ID())
	assert.True(t, strings.HasPrefix(fresh.ID(), "a."))
	assert.Equal(t, fresh.ID(), instance.GetAuthor(fresh.ID()).ID())
}

func testListings(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	instance := ts.Instance(t)

	_, err := instance.Pad(ctx, "standalone")
	require.NoError(t, err)
	group, err := instance.CreateGroup(ctx)
	require.NoError(t, err)
	_, err = group.Pad(ctx, "inside")
	require.NoError(t, err)

	padIDs, err := instance.PadIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"standalone", group.ID() + "$inside"}, padIDs)

	groupIDs, err := instance.GroupIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{group.ID()}, groupIDs)

	padStats, err := instance.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, api.Stats{TotalPads: 2}, padStats)

	assert.False(t, instance.Secure())
	assert.Equal(t, ts.APIKey, instance.APIKey())
}

func testHealth(t *testing.T, ts *testutils.TestServer) {
	instance := ts.Instance(t)

	health, err := instance.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats.StatusPass, health.Status)
	assert.Contains(t, health.Checks, "apikey")
	assert.Contains(t, health.Checks, "pads")
	assert.Contains(t, health.Checks, "server:database")
	assert.Equal(t, "2.2.7", health.Version)

	wrongKey, err := models.Connect(ts.URL, "wrong")
	require.NoError(t, err)
	health, err = wrongKey.Health(context.Background())
	require.NoError(t, err)
	assert.False(t, health.Healthy())
	assert.Contains(t, health.Failed(), "apikey")
}

func TestConnectWithKeyFile(t *testing.T) {
	ts := testutils.NewTestServer(t)

	instance, err := models.ConnectWithKeyFile(ts.URL, strings.NewReader(ts.APIKey+"\n"))
	require.NoError(t, err)
	assert.Equal(t, ts.APIKey, instance.APIKey())
	assert.NoError(t, instance.Client().CheckToken(context.Background()))
}
