package testutils

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ether/etherpad-go-client/lib/utils"
)

type apiArgs map[string]string

func (a apiArgs) require(name string) (string, error) {
	value, ok := a[name]
	if !ok {
		return "", fmt.Errorf("%s is required", name)
	}
	return value, nil
}

func (a apiArgs) optional(name string) *string {
	value, ok := a[name]
	if !ok {
		return nil
	}
	return &value
}

func (a apiArgs) optionalInt(name string) (*int, error) {
	value, ok := a[name]
	if !ok {
		return nil, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%s is not a number", name)
	}
	return &parsed, nil
}

func (a apiArgs) requireInt(name string) (int, error) {
	if _, err := a.require(name); err != nil {
		return 0, err
	}
	value, err := a.optionalInt(name)
	if err != nil {
		return 0, err
	}
	return *value, nil
}

func (a apiArgs) optionalBool(name string) (bool, error) {
	value, ok := a[name]
	if !ok {
		return false, nil
	}
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%s must be a boolean", name)
}

type fakeOperation struct {
	since  string
	handle func(ts *TestServer, args apiArgs) (any, error)
}

var fakeOperations map[string]fakeOperation

func init() {
	fakeOperations = map[string]fakeOperation{
		"createGroup":                {"1", createGroup},
		"createGroupIfNotExistsFor":  {"1", createGroupIfNotExistsFor},
		"deleteGroup":                {"1", deleteGroup},
		"listPads":                   {"1", listPads},
		"createGroupPad":             {"1", createGroupPad},
		"listAllGroups":              {"1.1", listAllGroups},
		"createAuthor":               {"1", createAuthor},
		"createAuthorIfNotExistsFor": {"1", createAuthorIfNotExistsFor},
		"listPadsOfAuthor":           {"1", listPadsOfAuthor},
		"getAuthorName":              {"1.1", getAuthorName},
		"createSession":              {"1", createSession},
		"deleteSession":              {"1", deleteSession},
		"getSessionInfo":             {"1", getSessionInfo},
		"listSessionsOfGroup":        {"1", listSessionsOfGroup},
		"listSessionsOfAuthor":       {"1", listSessionsOfAuthor},
		"getText":                    {"1", getText},
		"setText":                    {"1", setText},
		"appendText":                 {"1.2.13", appendText},
		"getHTML":                    {"1", getHTML},
		"setHTML":                    {"1", setHTML},
		"getChatHistory":             {"1.2.7", getChatHistory},
		"getChatHead":                {"1.2.7", getChatHead},
		"appendChatMessage":          {"1.2.12", appendChatMessage},
		"createPad":                  {"1", createPad},
		"getRevisionsCount":          {"1", getRevisionsCount},
		"getSavedRevisionsCount":     {"1.2.11", getSavedRevisionsCount},
		"listSavedRevisions":         {"1.2.11", listSavedRevisions},
		"saveRevision":               {"1.2.11", saveRevision},
		"padUsersCount":              {"1", padUsersCount},
		"padUsers":                   {"1.1", padUsers},
		"deletePad":                  {"1", deletePad},
		"copyPad":                    {"1.2.8", copyPadHandler(true, false)},
		"copyPadWithoutHistory":      {"1.2.15", copyPadHandler(false, false)},
		"movePad":                    {"1.2.8", copyPadHandler(true, true)},
		"getReadOnlyID":              {"1", getReadOnlyID},
		"getPadID":                   {"1.2.10", getPadID},
		"setPublicStatus":            {"1", setPublicStatus},
		"getPublicStatus":            {"1", getPublicStatus},
		"setPassword":                {"1", setPassword},
		"isPasswordProtected":        {"1", isPasswordProtected},
		"listAuthorsOfPad":           {"1", listAuthorsOfPad},
		"getLastEdited":              {"1", getLastEdited},
		"sendClientsMessage":         {"1.1", sendClientsMessage},
		"createDiffHTML":             {"1.2.7", createDiffHTML},
		"getRevisionChangeset":       {"1.2.8", getRevisionChangeset},
		"restoreRevision":            {"1.2.11", restoreRevision},
		"listAllPads":                {"1.2.1", listAllPads},
		"checkToken":                 {"1.2", checkToken},
		"getStats":                   {"1.2.14", getStats},
	}
}

func (ts *TestServer) padIDList(ids []string) any {
	if _, keyed := ts.flags(); !keyed {
		return map[string]any{"padIDs": ids}
	}
	keyed := make(map[string]any, len(ids))
	for _, id := range ids {
		keyed[id] = nil
	}
	return map[string]any{"padIDs": keyed}
}

func sessionMap(sessions map[string]storedSession) any {
	if len(sessions) == 0 {
		return nil
	}
	result := make(map[string]any, len(sessions))
	for id, session := range sessions {
		result[id] = map[string]any{
			"groupID":    session.GroupID,
			"authorID":   session.AuthorID,
			"validUntil": session.ValidUntil,
		}
	}
	return result
}

func padArg(ts *TestServer, args apiArgs) (*storedPad, error) {
	padID, err := args.require("padID")
	if err != nil {
		return nil, err
	}
	return ts.Store.getPad(padID)
}

// Groups

func createGroup(ts *TestServer, _ apiArgs) (any, error) {
	return map[string]any{"groupID": ts.Store.createGroup()}, nil
}

func createGroupIfNotExistsFor(ts *TestServer, args apiArgs) (any, error) {
	mapper, err := args.require("groupMapper")
	if err != nil {
		return nil, err
	}
	groupID, ok := ts.Store.groupMapper[mapper]
	if !ok {
		groupID = ts.Store.createGroup()
		ts.Store.groupMapper[mapper] = groupID
	}
	return map[string]any{"groupID": groupID}, nil
}

func deleteGroup(ts *TestServer, args apiArgs) (any, error) {
	groupID, err := args.require("groupID")
	if err != nil {
		return nil, err
	}
	return nil, ts.Store.deleteGroup(groupID)
}

func listPads(ts *TestServer, args apiArgs) (any, error) {
	groupID, err := args.require("groupID")
	if err != nil {
		return nil, err
	}
	if !ts.Store.groupExists(groupID) {
		return nil, errGroupNotFound
	}
	ids := ts.Store.padIDs(func(pad *storedPad) bool {
		return utils.GroupIDOf(pad.ID) == groupID
	})
	return ts.padIDList(ids), nil
}

func createGroupPad(ts *TestServer, args apiArgs) (any, error) {
	groupID, err := args.require("groupID")
	if err != nil {
		return nil, err
	}
	padName, err := args.require("padName")
	if err != nil {
		return nil, err
	}
	if !ts.Store.groupExists(groupID) {
		return nil, errGroupNotFound
	}
	if strings.Contains(padName, utils.GroupPadSeparator) {
		return nil, errors.New("padName contains invalid characters")
	}
	padID := groupID + utils.GroupPadSeparator + padName
	if err := ts.Store.createPad(padID, args.optional("text"), ""); err != nil {
		return nil, err
	}
	return map[string]any{"padID": padID}, nil
}

func listAllGroups(ts *TestServer, _ apiArgs) (any, error) {
	ids := make([]string, 0, len(ts.Store.groupStore))
	for id := range ts.Store.groupStore {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return map[string]any{"groupIDs": ids}, nil
}

// Authors

func createAuthor(ts *TestServer, args apiArgs) (any, error) {
	return map[string]any{"authorID": ts.Store.createAuthor(args.optional("name"))}, nil
}

func createAuthorIfNotExistsFor(ts *TestServer, args apiArgs) (any, error) {
	mapper, err := args.require("authorMapper")
	if err != nil {
		return nil, err
	}
	name := args.optional("name")
	authorID, ok := ts.Store.authorMapper[mapper]
	if !ok {
		authorID = ts.Store.createAuthor(name)
		ts.Store.authorMapper[mapper] = authorID
	} else if name != nil {
		ts.Store.authorStore[authorID] = *name
	}
	return map[string]any{"authorID": authorID}, nil
}

func listPadsOfAuthor(ts *TestServer, args apiArgs) (any, error) {
	authorID, err := args.require("authorID")
	if err != nil {
		return nil, err
	}
	if !ts.Store.authorExists(authorID) {
		return nil, errAuthorNotFound
	}
	ids := ts.Store.padIDs(func(pad *storedPad) bool {
		for _, id := range authorsOfRevisions(pad.Revisions) {
			if id == authorID {
				return true
			}
		}
		return false
	})
	return ts.padIDList(ids), nil
}

func getAuthorName(ts *TestServer, args apiArgs) (any, error) {
	authorID, err := args.require("authorID")
	if err != nil {
		return nil, err
	}
	name, ok := ts.Store.authorStore[authorID]
	if !ok {
		return nil, errAuthorNotFound
	}
	return name, nil
}

// Sessions

func createSession(ts *TestServer, args apiArgs) (any, error) {
	groupID, err := args.require("groupID")
	if err != nil {
		return nil, err
	}
	authorID, err := args.require("authorID")
	if err != nil {
		return nil, err
	}
	rawValidUntil, err := args.require("validUntil")
	if err != nil {
		return nil, err
	}
	validUntil, err := strconv.ParseInt(rawValidUntil, 10, 64)
	if err != nil {
		return nil, errors.New("validUntil is not a number")
	}
	if validUntil < 0 {
		return nil, errors.New("validUntil is a negative number")
	}
	if validUntil < ts.Store.clock().Unix() {
		return nil, errors.New("validUntil is in the past")
	}
	if !ts.Store.groupExists(groupID) {
		return nil, errGroupNotFound
	}
	if !ts.Store.authorExists(authorID) {
		return nil, errAuthorNotFound
	}
	sessionID := "s." + utils.RandomString(8)
	ts.Store.sessionStore[sessionID] = storedSession{GroupID: groupID, AuthorID: authorID, ValidUntil: validUntil}
	return map[string]any{"sessionID": sessionID}, nil
}

func deleteSession(ts *TestServer, args apiArgs) (any, error) {
	sessionID, err := args.require("sessionID")
	if err != nil {
		return nil, err
	}
	if _, ok := ts.Store.sessionStore[sessionID]; !ok {
		return nil, errSessionNotFound
	}
	delete(ts.Store.sessionStore, sessionID)
	return nil, nil
}

func getSessionInfo(ts *TestServer, args apiArgs) (any, error) {
	sessionID, err := args.require("sessionID")
	if err != nil {
		return nil, err
	}
	session, ok := ts.Store.sessionStore[sessionID]
	if !ok {
		return nil, errSessionNotFound
	}
	return map[string]any{
		"groupID":    session.GroupID,
		"authorID":   session.AuthorID,
		"validUntil": session.ValidUntil,
	}, nil
}

func listSessionsOfGroup(ts *TestServer, args apiArgs) (any, error) {
	groupID, err := args.require("groupID")
	if err != nil {
		return nil, err
	}
	if !ts.Store.groupExists(groupID) {
		return nil, errGroupNotFound
	}
	return sessionMap(ts.Store.sessionsWhere(func(s storedSession) bool { return s.GroupID == groupID })), nil
}

func listSessionsOfAuthor(ts *TestServer, args apiArgs) (any, error) {
	authorID, err := args.require("authorID")
	if err != nil {
		return nil, err
	}
	if !ts.Store.authorExists(authorID) {
		return nil, errAuthorNotFound
	}
	return sessionMap(ts.Store.sessionsWhere(func(s storedSession) bool { return s.AuthorID == authorID })), nil
}

// Pad content

func getText(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	rev, err := args.optionalInt("rev")
	if err != nil {
		return nil, err
	}
	text, err := ts.Store.revisionText(pad, rev)
	if err != nil {
		return nil, err
	}
	return map[string]any{"text": text}, nil
}

func setText(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	text, err := args.require("text")
	if err != nil {
		return nil, err
	}
	ts.Store.addRevision(pad, text, "")
	return nil, nil
}

func appendText(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	text, err := args.require("text")
	if err != nil {
		return nil, err
	}
	authorID := ""
	if id := args.optional("authorId"); id != nil {
		authorID = *id
	}
	ts.Store.addRevision(pad, strings.TrimSuffix(pad.text(), "\n")+text, authorID)
	return nil, nil
}

func getHTML(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	rev, err := args.optionalInt("rev")
	if err != nil {
		return nil, err
	}
	text, err := ts.Store.revisionText(pad, rev)
	if err != nil {
		return nil, err
	}
	return map[string]any{"html": renderHTML(text)}, nil
}

func setHTML(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	source, err := args.require("html")
	if err != nil {
		return nil, err
	}
	text, err := textFromHTML(source)
	if err != nil {
		return nil, err
	}
	ts.Store.addRevision(pad, text, "")
	return nil, nil
}

// Chat

func (ts *TestServer) chatJSON(msg storedChatMessage) map[string]any {
	name := ts.Store.authorStore[msg.AuthorID]
	if legacy, _ := ts.flags(); legacy {
		return map[string]any{"text": msg.Text, "userId": msg.AuthorID, "time": msg.Time, "userName": name}
	}
	return map[string]any{"text": msg.Text, "authorId": msg.AuthorID, "time": msg.Time, "displayName": name}
}

func getChatHistory(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	start, err := args.optionalInt("start")
	if err != nil {
		return nil, err
	}
	end, err := args.optionalInt("end")
	if err != nil {
		return nil, err
	}
	if (start == nil) != (end == nil) {
		return nil, errors.New("start and end must both be set or both be omitted")
	}
	from, to := 0, len(pad.Chat)-1
	if start != nil {
		if *start > *end {
			return nil, errors.New("start is higher than end")
		}
		if *start < 0 || *end > len(pad.Chat)-1 {
			return nil, errors.New("end is higher than the current chatHead")
		}
		from, to = *start, *end
	}
	messages := make([]map[string]any, 0)
	for i := from; i <= to; i++ {
		messages = append(messages, ts.chatJSON(pad.Chat[i]))
	}
	return map[string]any{"messages": messages}, nil
}

func getChatHead(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	return map[string]any{"chatHead": len(pad.Chat) - 1}, nil
}

func appendChatMessage(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	text, err := args.require("text")
	if err != nil {
		return nil, err
	}
	authorID, err := args.require("authorID")
	if err != nil {
		return nil, err
	}
	at := ts.Store.now()
	if raw := args.optional("time"); raw != nil {
		parsed, err := strconv.ParseInt(*raw, 10, 64)
		if err != nil {
			return nil, errors.New("time is not a number")
		}
		at = parsed
	}
	pad.Chat = append(pad.Chat, storedChatMessage{Text: text, AuthorID: authorID, Time: at})
	return nil, nil
}

// Pads

func createPad(ts *TestServer, args apiArgs) (any, error) {
	padID, err := args.require("padID")
	if err != nil {
		return nil, err
	}
	if strings.Contains(padID, utils.GroupPadSeparator) {
		return nil, errors.New("createPad can't create group pads")
	}
	return nil, ts.Store.createPad(padID, args.optional("text"), "")
}

func getRevisionsCount(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	return map[string]any{"revisions": pad.head()}, nil
}

func getSavedRevisionsCount(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	return map[string]any{"savedRevisions": len(pad.SavedRevisions)}, nil
}

func listSavedRevisions(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	return map[string]any{"savedRevisions": pad.SavedRevisions}, nil
}

func saveRevision(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	rev, err := args.optionalInt("rev")
	if err != nil {
		return nil, err
	}
	target := pad.head()
	if rev != nil {
		if *rev > pad.head() {
			return nil, errRevTooHigh
		}
		target = *rev
	}
	pad.SavedRevisions = append(pad.SavedRevisions, target)
	return nil, nil
}

func padUsersCount(ts *TestServer, args apiArgs) (any, error) {
	if _, err := padArg(ts, args); err != nil {
		return nil, err
	}
	return map[string]any{"padUsersCount": 0}, nil
}

func padUsers(ts *TestServer, args apiArgs) (any, error) {
	if _, err := padArg(ts, args); err != nil {
		return nil, err
	}
	return map[string]any{"padUsers": []any{}}, nil
}

func deletePad(ts *TestServer, args apiArgs) (any, error) {
	padID, err := args.require("padID")
	if err != nil {
		return nil, err
	}
	return nil, ts.Store.deletePad(padID)
}

func copyPadHandler(withHistory, move bool) func(ts *TestServer, args apiArgs) (any, error) {
	return func(ts *TestServer, args apiArgs) (any, error) {
		sourceID, err := args.require("sourceID")
		if err != nil {
			return nil, err
		}
		destinationID, err := args.require("destinationID")
		if err != nil {
			return nil, err
		}
		force, err := args.optionalBool("force")
		if err != nil {
			return nil, err
		}
		if err := ts.Store.copyPad(sourceID, destinationID, force, withHistory); err != nil {
			return nil, err
		}
		if move {
			if err := ts.Store.deletePad(sourceID); err != nil {
				return nil, internalError(err.Error())
			}
		}
		return map[string]any{"padID": destinationID}, nil
	}
}

func getReadOnlyID(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	return map[string]any{"readOnlyID": ts.Store.readOnlyID(pad)}, nil
}

func getPadID(ts *TestServer, args apiArgs) (any, error) {
	roID, err := args.require("roID")
	if err != nil {
		return nil, err
	}
	padID, ok := ts.Store.readonly2Pad[roID]
	if !ok {
		return nil, errors.New("padID does not exist")
	}
	return map[string]any{"padID": padID}, nil
}

func groupPadArg(ts *TestServer, args apiArgs, notGroupPad error) (*storedPad, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	if utils.GroupIDOf(pad.ID) == "" {
		return nil, notGroupPad
	}
	return pad, nil
}

func setPublicStatus(ts *TestServer, args apiArgs) (any, error) {
	pad, err := groupPadArg(ts, args, errNotGroupPad)
	if err != nil {
		return nil, err
	}
	if _, err := args.require("publicStatus"); err != nil {
		return nil, err
	}
	public, err := args.optionalBool("publicStatus")
	if err != nil {
		return nil, err
	}
	pad.PublicStatus = public
	return nil, nil
}

func getPublicStatus(ts *TestServer, args apiArgs) (any, error) {
	pad, err := groupPadArg(ts, args, errNotGroupPad)
	if err != nil {
		return nil, err
	}
	return map[string]any{"publicStatus": pad.PublicStatus}, nil
}

func setPassword(ts *TestServer, args apiArgs) (any, error) {
	pad, err := groupPadArg(ts, args, errNotGroupPadPass)
	if err != nil {
		return nil, err
	}
	password, err := args.require("password")
	if err != nil {
		return nil, err
	}
	pad.Password = password
	return nil, nil
}

func isPasswordProtected(ts *TestServer, args apiArgs) (any, error) {
	pad, err := groupPadArg(ts, args, errNotGroupPadPass)
	if err != nil {
		return nil, err
	}
	return map[string]any{"isPasswordProtected": pad.Password != ""}, nil
}

func listAuthorsOfPad(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	return map[string]any{"authorIDs": authorsOfRevisions(pad.Revisions)}, nil
}

func getLastEdited(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	return map[string]any{"lastEdited": pad.Revisions[pad.head()].Timestamp}, nil
}

func sendClientsMessage(ts *TestServer, args apiArgs) (any, error) {
	if _, err := padArg(ts, args); err != nil {
		return nil, err
	}
	if _, err := args.require("msg"); err != nil {
		return nil, err
	}
	return nil, nil
}

func revisionBounds(pad *storedPad, args apiArgs) (int, int, error) {
	startRev, err := args.requireInt("startRev")
	if err != nil {
		return 0, 0, err
	}
	endRev, err := args.requireInt("endRev")
	if err != nil {
		return 0, 0, err
	}
	if startRev < 0 || endRev > pad.head() || startRev > endRev {
		return 0, 0, errors.New("rev is higher than the head revision of the pad")
	}
	return startRev, endRev, nil
}

func createDiffHTML(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	startRev, endRev, err := revisionBounds(pad, args)
	if err != nil {
		return nil, err
	}
	before := pad.Revisions[startRev].Text
	after := pad.Revisions[endRev].Text
	return map[string]any{
		"html":    renderDiffHTML(before, after),
		"authors": authorsOfRevisions(pad.Revisions[startRev+1 : endRev+1]),
	}, nil
}

func getRevisionChangeset(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	rev, err := args.optionalInt("rev")
	if err != nil {
		return nil, err
	}
	target := pad.head()
	if rev != nil {
		if *rev > pad.head() {
			return nil, errRevTooHigh
		}
		target = *rev
	}
	oldLen := 1
	if target > 0 {
		oldLen = len(pad.Revisions[target-1].Text)
	}
	text := pad.Revisions[target].Text
	return fmt.Sprintf("Z:%s>%s|%s+%s$%s",
		strconv.FormatInt(int64(oldLen), 36),
		strconv.FormatInt(int64(len(text)-oldLen+1), 36),
		strconv.FormatInt(int64(strings.Count(text, "\n")), 36),
		strconv.FormatInt(int64(len(text)), 36),
		text,
	), nil
}

func restoreRevision(ts *TestServer, args apiArgs) (any, error) {
	pad, err := padArg(ts, args)
	if err != nil {
		return nil, err
	}
	rev, err := args.requireInt("rev")
	if err != nil {
		return nil, err
	}
	text, err := ts.Store.revisionText(pad, &rev)
	if err != nil {
		return nil, err
	}
	ts.Store.addRevision(pad, text, "")
	return nil, nil
}

func listAllPads(ts *TestServer, _ apiArgs) (any, error) {
	return ts.padIDList(ts.Store.padIDs(nil)), nil
}

func checkToken(_ *TestServer, _ apiArgs) (any, error) {
	return nil, nil
}

func getStats(ts *TestServer, _ apiArgs) (any, error) {
	return map[string]any{
		"totalPads":       len(ts.Store.padStore),
		"totalSessions":   len(ts.Store.sessionStore),
		"totalActivePads": 0,
	}, nil
}
