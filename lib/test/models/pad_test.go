package models

import (
	"context"
	"testing"
	"time"

	"github.com/ether/etherpad-go-client/lib/models"
	"github.com/ether/etherpad-go-client/lib/test/testutils"
	"github.com/ether/etherpad-go-client/lib/test/testutils/general"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPad(t *testing.T) {
	handler := testutils.NewTestServerHandler(t)
	handler.AddTests(
		testutils.TestRunConfig{Name: "Revisions are inclusive", Test: testRevisionsInclusive},
		testutils.TestRunConfig{Name: "Pinned revision", Test: testPinnedRevision},
		testutils.TestRunConfig{Name: "Text and HTML", Test: testTextAndHTML},
		testutils.TestRunConfig{Name: "Read only ID is memoized", Test: testReadOnlyIDMemoized},
		testutils.TestRunConfig{Name: "Public and private never diverge", Test: testPublicPrivate},
		testutils.TestRunConfig{Name: "Password", Test: testPassword},
		testutils.TestRunConfig{Name: "Authors of a pad", Test: testPadAuthors},
		testutils.TestRunConfig{Name: "Saved revisions", Test: testSavedRevisions},
		testutils.TestRunConfig{Name: "Copy, move and delete", Test: testCopyMoveDelete},
		testutils.TestRunConfig{Name: "Exists", Test: testPadExists},
		testutils.TestRunConfig{Name: "Users and messages", Test: testUsersAndMessages},
	)
	handler.StartTestServerHandler()
}

func testRevisionsInclusive(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	pad, err := ts.Instance(t).Pad(ctx, "p1", models.WithText("r0"))
	require.NoError(t, err)
	for i := 1; i <= 3; i++ {
		require.NoError(t, pad.SetText(ctx, general.RandomInlineString(12)))
	}

	numbers, err := pad.RevisionNumbers(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]int{0, 1, 2, 3}, numbers); diff != "" {
		t.Errorf("revision numbers mismatch (-want +got):\n%s", diff)
	}

	revisions, err := pad.Revisions(ctx)
	require.NoError(t, err)
	require.Len(t, revisions, 4)
	for i, rev := range revisions {
		require.NotNil(t, rev.Rev())
		assert.Equal(t, i, *rev.Rev())
	}
	first, err := revisions[0].Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "r0\n", first)
}

func testPinnedRevision(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	instance := ts.Instance(t)
	pad, err := instance.Pad(ctx, "p1", models.WithText("first"))
	require.NoError(t, err)
	require.NoError(t, pad.SetText(ctx, "second"))

	pinned := instance.GetPad("p1", models.AtRevision(0))
	text, err := pinned.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first\n", text)

	text, err = pinned.TextAt(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "second\n", text)

	html, err := pinned.HTMLAt(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, html, "second")

	head, err := pad.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second\n", head)
}

func testTextAndHTML(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	pad, err := ts.Instance(t).Pad(ctx, "p1")
	require.NoError(t, err)

	text, err := pad.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutils.DefaultPadText, text)

	body := general.RandomMultiline(5, 20)
	require.NoError(t, pad.SetText(ctx, body))
	stored, ok := ts.Store.PadText("p1")
	require.True(t, ok)
	text, err = pad.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, text)
	assert.True(t, len(text) > 0 && text[len(text)-1] == '\n')

	require.NoError(t, pad.SetHTML(ctx, "<p>Hello <b>bold</b> world</p>"))
	text, err = pad.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello bold world\n", text)

	html, err := pad.HTML(ctx)
	require.NoError(t, err)
	assert.Contains(t, html, "Hello bold world")

	require.NoError(t, pad.AppendText(ctx, "!", nil))
	text, err = pad.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello bold world!\n", text)
}

func testReadOnlyIDMemoized(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	pad, err := ts.Instance(t).Pad(ctx, "p1")
	require.NoError(t, err)

	first, err := pad.ReadOnlyID(ctx)
	require.NoError(t, err)
	second, err := pad.ReadOnlyID(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, ts.RequestsFor("getReadOnlyID"), 1)
}

func testPublicPrivate(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	group, err := ts.Instance(t).CreateGroup(ctx)
	require.NoError(t, err)
	pad, err := group.Pad(ctx, "p1")
	require.NoError(t, err)

	for _, public := range []bool{true, false, true} {
		require.NoError(t, pad.SetPublic(ctx, public))
		gotPublic, err := pad.Public(ctx)
		require.NoError(t, err)
		gotPrivate, err := pad.Private(ctx)
		require.NoError(t, err)
		assert.Equal(t, public, gotPublic)
		assert.Equal(t, !gotPublic, gotPrivate)
	}

	require.NoError(t, pad.SetPrivate(ctx, true))
	public, err := pad.Public(ctx)
	require.NoError(t, err)
	assert.False(t, public)

	standalone, err := ts.Instance(t).Pad(ctx, "standalone")
	require.NoError(t, err)
	_, err = standalone.Public(ctx)
	assert.EqualError(t, err, "You can only get/set the publicStatus of pads that belong to a group")
}

func testPassword(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	group, err := ts.Instance(t).CreateGroup(ctx)
	require.NoError(t, err)
	pad, err := group.Pad(ctx, "p1")
	require.NoError(t, err)

	protected, err := pad.PasswordProtected(ctx)
	require.NoError(t, err)
	assert.False(t, protected)

	require.NoError(t, pad.SetPassword(ctx, "s3cret"))
	protected, err = pad.PasswordProtected(ctx)
	require.NoError(t, err)
	assert.True(t, protected)
}

func testPadAuthors(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	instance := ts.Instance(t)
	pad, err := instance.Pad(ctx, "p1")
	require.NoError(t, err)
	author, err := instance.CreateAuthor(ctx, models.WithName("Ada"))
	require.NoError(t, err)

	require.NoError(t, pad.AppendText(ctx, "by ada", author))
	ids, err := pad.AuthorIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{author.ID()}, ids)

	authors, err := pad.Authors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	name, err := authors[0].Name(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)

	padIDs, err := author.PadIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, padIDs)
	pads, err := author.Pads(ctx)
	require.NoError(t, err)
	require.Len(t, pads, 1)
	assert.Equal(t, "p1", pads[0].ID())

	edited, err := pad.LastEdited(ctx)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), edited, time.Minute)
}

func testSavedRevisions(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	pad, err := ts.Instance(t).Pad(ctx, "p1", models.WithText("a"))
	require.NoError(t, err)
	require.NoError(t, pad.SetText(ctx, "b"))

	require.NoError(t, pad.SaveRevision(ctx, nil))
	count, err := pad.SavedRevisionsCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	saved, err := pad.SavedRevisions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, saved)

	require.NoError(t, pad.RestoreRevision(ctx, 0))
	text, err := pad.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a\n", text)

	changeset, err := pad.Changeset(ctx, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, changeset)
}

func testCopyMoveDelete(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	instance := ts.Instance(t)
	pad, err := instance.Pad(ctx, "p1", models.WithText("content"))
	require.NoError(t, err)

	copied, err := pad.CopyTo(ctx, "p2", false)
	require.NoError(t, err)
	text, err := copied.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "content\n", text)

	_, err = pad.CopyTo(ctx, "p2", false)
	assert.Error(t, err)
	flat, err := pad.CopyWithoutHistoryTo(ctx, "p2", true)
	require.NoError(t, err)
	assert.Equal(t, "p2", flat.ID())

	moved, err := pad.MoveTo(ctx, "p3", false)
	require.NoError(t, err)
	assert.Equal(t, "p3", moved.ID())

	require.NoError(t, moved.Delete(ctx))
	_, ok := ts.Store.PadText("p3")
	assert.False(t, ok)
}

func testPadExists(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	instance := ts.Instance(t)

	exists, err := instance.GetPad("p1").Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	pad, err := instance.Pad(ctx, "p1")
	require.NoError(t, err)
	exists, err = pad.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	ts.InjectFault("getRevisionsCount", testutils.Fault{Status: 500, Body: `{"code":2,"message":"internal error","data":null}`})
	_, err = pad.Exists(ctx)
	assert.EqualError(t, err, "internal error")
}

func testUsersAndMessages(t *testing.T, ts *testutils.TestServer) {
	ctx := context.Background()
	pad, err := ts.Instance(t).Pad(ctx, "p1")
	require.NoError(t, err)

	users, err := pad.Users(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
	count, err := pad.UserCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, pad.SendMessage(ctx, "reload"))
	req, _ := ts.LastRequest()
	assert.Equal(t, "reload", req.Params["msg"])
}
