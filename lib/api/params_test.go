package api

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParamsOmitNilOptionals(t *testing.T) {
	text := "Hello"
	rev := 3
	got := Params{"padID": "p1"}.
		SetOptional("text", &text).
		SetOptional("name", nil).
		SetOptionalInt("rev", &rev).
		SetOptionalInt("start", nil).
		SetOptionalBool("force", nil).
		SetOptionalInt64("time", nil).
		SetBool("publicStatus", false)

	want := Params{"padID": "p1", "text": "Hello", "rev": "3", "publicStatus": "false"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestOperationTable(t *testing.T) {
	for name, op := range Operations {
		if op.Name != name {
			t.Errorf("operation %s indexed as %s", op.Name, name)
		}
		if op.Verb != "GET" && op.Verb != "POST" {
			t.Errorf("%s has verb %s", name, op.Verb)
		}
	}
	if OpGetText.Verb != "GET" || OpSetText.Verb != "POST" || OpCreateGroup.Verb != "POST" || OpListPads.Verb != "GET" {
		t.Error("verbs of the core operations changed")
	}
	if _, ok := LookupOperation("doesNotExist"); ok {
		t.Error("unknown operation found")
	}
}

func TestOperationTableRows(t *testing.T) {
	want := []Operation{
		{Name: "createGroup", Verb: http.MethodPost, Required: nil, Optional: nil, Since: "1"},
		{Name: "createGroupIfNotExistsFor", Verb: http.MethodPost, Required: params("groupMapper"), Optional: nil, Since: "1"},
		{Name: "deleteGroup", Verb: http.MethodPost, Required: params("groupID"), Optional: nil, Since: "1"},
		{Name: "listPads", Verb: http.MethodGet, Required: params("groupID"), Optional: nil, Since: "1"},
		{Name: "createGroupPad", Verb: http.MethodPost, Required: params("groupID", "padName"), Optional: params("text"), Since: "1"},
		{Name: "listAllGroups", Verb: http.MethodGet, Required: nil, Optional: nil, Since: "1.1"},
		{Name: "createAuthor", Verb: http.MethodPost, Required: nil, Optional: params("name"), Since: "1"},
		{Name: "createAuthorIfNotExistsFor", Verb: http.MethodPost, Required: params("authorMapper"), Optional: params("name"), Since: "1"},
		{Name: "listPadsOfAuthor", Verb: http.MethodGet, Required: params("authorID"), Optional: nil, Since: "1"},
		{Name: "getAuthorName", Verb: http.MethodGet, Required: params("authorID"), Optional: nil, Since: "1.1"},
		{Name: "createSession", Verb: http.MethodPost, Required: params("groupID", "authorID", "validUntil"), Optional: nil, Since: "1"},
		{Name: "deleteSession", Verb: http.MethodPost, Required: params("sessionID"), Optional: nil, Since: "1"},
		{Name: "getSessionInfo", Verb: http.MethodGet, Required: params("sessionID"), Optional: nil, Since: "1"},
		{Name: "listSessionsOfGroup", Verb: http.MethodGet, Required: params("groupID"), Optional: nil, Since: "1"},
		{Name: "listSessionsOfAuthor", Verb: http.MethodGet, Required: params("authorID"), Optional: nil, Since: "1"},
		{Name: "getText", Verb: http.MethodGet, Required: params("padID"), Optional: params("rev"), Since: "1"},
		{Name: "getHTML", Verb: http.MethodGet, Required: params("padID"), Optional: params("rev"), Since: "1"},
		{Name: "setText", Verb: http.MethodPost, Required: params("padID", "text"), Optional: nil, Since: "1"},
		{Name: "setHTML", Verb: http.MethodPost, Required: params("padID", "html"), Optional: nil, Since: "1"},
		{Name: "appendText", Verb: http.MethodPost, Required: params("padID", "text"), Optional: params("authorId"), Since: "1.2.13"},
		{Name: "createPad", Verb: http.MethodPost, Required: params("padID"), Optional: params("text"), Since: "1"},
		{Name: "getRevisionsCount", Verb: http.MethodGet, Required: params("padID"), Optional: nil, Since: "1"},
		{Name: "padUsersCount", Verb: http.MethodGet, Required: params("padID"), Optional: nil, Since: "1"},
		{Name: "getLastEdited", Verb: http.MethodGet, Required: params("padID"), Optional: nil, Since: "1"},
		{Name: "getReadOnlyID", Verb: http.MethodGet, Required: params("padID"), Optional: nil, Since: "1"},
		{Name: "listAuthorsOfPad", Verb: http.MethodGet, Required: params("padID"), Optional: nil, Since: "1"},
		{Name: "getPublicStatus", Verb: http.MethodGet, Required: params("padID"), Optional: nil, Since: "1"},
		{Name: "isPasswordProtected", Verb: http.MethodGet, Required: params("padID"), Optional: nil, Since: "1"},
		{Name: "deletePad", Verb: http.MethodPost, Required: params("padID"), Optional: nil, Since: "1"},
		{Name: "setPublicStatus", Verb: http.MethodPost, Required: params("padID", "publicStatus"), Optional: nil, Since: "1"},
		{Name: "setPassword", Verb: http.MethodPost, Required: params("padID", "password"), Optional: nil, Since: "1"},
		{Name: "padUsers", Verb: http.MethodGet, Required: params("padID"), Optional: nil, Since: "1.1"},
		{Name: "sendClientsMessage", Verb: http.MethodPost, Required: params("padID", "msg"), Optional: nil, Since: "1.1"},
		{Name: "checkToken", Verb: http.MethodGet, Required: nil, Optional: nil, Since: "1.2"},
		{Name: "listAllPads", Verb: http.MethodGet, Required: nil, Optional: nil, Since: "1.2.1"},
		{Name: "getChatHistory", Verb: http.MethodGet, Required: params("padID"), Optional: params("start", "end"), Since: "1.2.7"},
		{Name: "getChatHead", Verb: http.MethodGet, Required: params("padID"), Optional: nil, Since: "1.2.7"},
		{Name: "createDiffHTML", Verb: http.MethodGet, Required: params("padID", "startRev", "endRev"), Optional: nil, Since: "1.2.7"},
		{Name: "getRevisionChangeset", Verb: http.MethodGet, Required: params("padID"), Optional: params("rev"), Since: "1.2.8"},
		{Name: "copyPad", Verb: http.MethodPost, Required: params("sourceID", "destinationID"), Optional: params("force"), Since: "1.2.8"},
		{Name: "movePad", Verb: http.MethodPost, Required: params("sourceID", "destinationID"), Optional: params("force"), Since: "1.2.8"},
		{Name: "getPadID", Verb: http.MethodGet, Required: params("roID"), Optional: nil, Since: "1.2.10"},
		{Name: "saveRevision", Verb: http.MethodPost, Required: params("padID"), Optional: params("rev"), Since: "1.2.11"},
		{Name: "getSavedRevisionsCount", Verb: http.MethodGet, Required: params("padID"), Optional: nil, Since: "1.2.11"},
		{Name: "listSavedRevisions", Verb: http.MethodGet, Required: params("padID"), Optional: nil, Since: "1.2.11"},
		{Name: "restoreRevision", Verb: http.MethodPost, Required: params("padID", "rev"), Optional: nil, Since: "1.2.11"},
		{Name: "appendChatMessage", Verb: http.MethodPost, Required: params("padID", "text", "authorID"), Optional: params("time"), Since: "1.2.12"},
		{Name: "getStats", Verb: http.MethodGet, Required: nil, Optional: nil, Since: "1.2.14"},
		{Name: "copyPadWithoutHistory", Verb: http.MethodPost, Required: params("sourceID", "destinationID"), Optional: params("force"), Since: "1.2.15"},
	}
	if len(want) != len(Operations) {
		t.Errorf("table has %d operations, want %d", len(Operations), len(want))
	}
	for _, w := range want {
		got, ok := LookupOperation(w.Name)
		if !ok {
			t.Errorf("%s missing", w.Name)
			continue
		}
		if diff := cmp.Diff(w, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", w.Name, diff)
		}
	}
}
