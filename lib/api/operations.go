package api

import "net/http"

// Operation describes one remote API method: its verb, the parameters it
// accepts and the API version that introduced it.
type Operation struct {
	Name     string
	Verb     string
	Required []string
	Optional []string
	Since    string
}

func (o Operation) accepts(param string) bool {
	for _, p := range o.Required {
		if p == param {
			return true
		}
	}
	for _, p := range o.Optional {
		if p == param {
			return true
		}
	}
	return false
}

func get(name, since string, required []string, optional ...string) Operation {
	return Operation{Name: name, Verb: http.MethodGet, Required: required, Optional: optional, Since: since}
}

func post(name, since string, required []string, optional ...string) Operation {
	return Operation{Name: name, Verb: http.MethodPost, Required: required, Optional: optional, Since: since}
}

func params(names ...string) []string { return names }

// Groups
var (
	OpCreateGroup               = post("createGroup", "1", nil)
	OpCreateGroupIfNotExistsFor = post("createGroupIfNotExistsFor", "1", params("groupMapper"))
	OpDeleteGroup               = post("deleteGroup", "1", params("groupID"))
	OpListPads                  = get("listPads", "1", params("groupID"))
	OpCreateGroupPad            = post("createGroupPad", "1", params("groupID", "padName"), "text")
	OpListAllGroups             = get("listAllGroups", "1.1", nil)
)

// Authors
var (
	OpCreateAuthor               = post("createAuthor", "1", nil, "name")
	OpCreateAuthorIfNotExistsFor = post("createAuthorIfNotExistsFor", "1", params("authorMapper"), "name")
	OpListPadsOfAuthor           = get("listPadsOfAuthor", "1", params("authorID"))
	OpGetAuthorName              = get("getAuthorName", "1.1", params("authorID"))
)

// Sessions
var (
	OpCreateSession        = post("createSession", "1", params("groupID", "authorID", "validUntil"))
	OpDeleteSession        = post("deleteSession", "1", params("sessionID"))
	OpGetSessionInfo       = get("getSessionInfo", "1", params("sessionID"))
	OpListSessionsOfGroup  = get("listSessionsOfGroup", "1", params("groupID"))
	OpListSessionsOfAuthor = get("listSessionsOfAuthor", "1", params("authorID"))
)

// Pad content
var (
	OpGetText    = get("getText", "1", params("padID"), "rev")
	OpSetText    = post("setText", "1", params("padID", "text"))
	OpAppendText = post("appendText", "1.2.13", params("padID", "text"), "authorId")
	OpGetHTML    = get("getHTML", "1", params("padID"), "rev")
	OpSetHTML    = post("setHTML", "1", params("padID", "html"))
)

// Chat
var (
	OpGetChatHistory    = get("getChatHistory", "1.2.7", params("padID"), "start", "end")
	OpGetChatHead       = get("getChatHead", "1.2.7", params("padID"))
	OpAppendChatMessage = post("appendChatMessage", "1.2.12", params("padID", "text", "authorID"), "time")
)

// Pads
var (
	OpCreatePad              = post("createPad", "1", params("padID"), "text")
	OpGetRevisionsCount      = get("getRevisionsCount", "1", params("padID"))
	OpGetSavedRevisionsCount = get("getSavedRevisionsCount", "1.2.11", params("padID"))
	OpListSavedRevisions     = get("listSavedRevisions", "1.2.11", params("padID"))
	OpSaveRevision           = post("saveRevision", "1.2.11", params("padID"), "rev")
	OpPadUsersCount          = get("padUsersCount", "1", params("padID"))
	OpPadUsers               = get("padUsers", "1.1", params("padID"))
	OpDeletePad              = post("deletePad", "1", params("padID"))
	OpCopyPad                = post("copyPad", "1.2.8", params("sourceID", "destinationID"), "force")
	OpCopyPadWithoutHistory  = post("copyPadWithoutHistory", "1.2.15", params("sourceID", "destinationID"), "force")
	OpMovePad                = post("movePad", "1.2.8", params("sourceID", "destinationID"), "force")
	OpGetReadOnlyID          = get("getReadOnlyID", "1", params("padID"))
	OpGetPadID               = get("getPadID", "1.2.10", params("roID"))
	OpSetPublicStatus        = post("setPublicStatus", "1", params("padID", "publicStatus"))
	OpGetPublicStatus        = get("getPublicStatus", "1", params("padID"))
	OpSetPassword            = post("setPassword", "1", params("padID", "password"))
	OpIsPasswordProtected    = get("isPasswordProtected", "1", params("padID"))
	OpListAuthorsOfPad       = get("listAuthorsOfPad", "1", params("padID"))
	OpGetLastEdited          = get("getLastEdited", "1", params("padID"))
	OpSendClientsMessage     = post("sendClientsMessage", "1.1", params("padID", "msg"))
	OpCreateDiffHTML         = get("createDiffHTML", "1.2.7", params("padID", "startRev", "endRev"))
	OpGetRevisionChangeset   = get("getRevisionChangeset", "1.2.8", params("padID"), "rev")
	OpRestoreRevision        = post("restoreRevision", "1.2.11", params("padID", "rev"))
	OpListAllPads            = get("listAllPads", "1.2.1", nil)
)

// Instance
var (
	OpCheckToken = get("checkToken", "1.2", nil)
	OpGetStats   = get("getStats", "1.2.14", nil)
)

// Operations indexes every known operation by name.
var Operations = indexOperations(
	OpCreateGroup, OpCreateGroupIfNotExistsFor, OpDeleteGroup, OpListPads, OpCreateGroupPad, OpListAllGroups,
	OpCreateAuthor, OpCreateAuthorIfNotExistsFor, OpListPadsOfAuthor, OpGetAuthorName,
	OpCreateSession, OpDeleteSession, OpGetSessionInfo, OpListSessionsOfGroup, OpListSessionsOfAuthor,
	OpGetText, OpSetText, OpAppendText, OpGetHTML, OpSetHTML,
	OpGetChatHistory, OpGetChatHead, OpAppendChatMessage,
	OpCreatePad, OpGetRevisionsCount, OpGetSavedRevisionsCount, OpListSavedRevisions, OpSaveRevision,
	OpPadUsersCount, OpPadUsers, OpDeletePad, OpCopyPad, OpCopyPadWithoutHistory, OpMovePad,
	OpGetReadOnlyID, OpGetPadID, OpSetPublicStatus, OpGetPublicStatus, OpSetPassword, OpIsPasswordProtected,
	OpListAuthorsOfPad, OpGetLastEdited, OpSendClientsMessage, OpCreateDiffHTML, OpGetRevisionChangeset,
	OpRestoreRevision, OpListAllPads,
	OpCheckToken, OpGetStats,
)

func indexOperations(ops ...Operation) map[string]Operation {
	index := make(map[string]Operation, len(ops))
	for _, op := range ops {
		index[op.Name] = op
	}
	return index
}

func LookupOperation(name string) (Operation, bool) {
	op, ok := Operations[name]
	return op, ok
}
