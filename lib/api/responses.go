package api

import (
	"encoding/json"
	"fmt"
	"sort"
)

type GroupIDResponse struct {
	GroupID string `json:"groupID"`
}

type GroupIDsResponse struct {
	GroupIDs []string `json:"groupIDs"`
}

type AuthorIDResponse struct {
	AuthorID string `json:"authorID"`
}

type SessionIDResponse struct {
	SessionID string `json:"sessionID"`
}

// PadIDResponse represents the response with a pad ID
type PadIDResponse struct {
	PadID string `json:"padID"`
}

// ReadOnlyIDResponse represents the response with a read-only ID
type ReadOnlyIDResponse struct {
	ReadOnlyID string `json:"readOnlyID"`
}

// PadIDList decodes "padIDs" whether the server sends an array or, like
// old releases did, an object keyed by pad ID.
type PadIDList []string

func (l *PadIDList) UnmarshalJSON(data []byte) error {
	if isNullData(data) {
		*l = PadIDList{}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(data, &keyed); err != nil {
		return fmt.Errorf("padIDs is neither an array nor an object: %w", err)
	}
	ids := make([]string, 0, len(keyed))
	for id := range keyed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	*l = ids
	return nil
}

type PadIDsResponse struct {
	PadIDs PadIDList `json:"padIDs"`
}

// AuthorName is the data of getAuthorName, which is a bare string on most
// releases and {"authorName": ...} on some.
type AuthorName string

func (n *AuthorName) UnmarshalJSON(data []byte) error {
	if isNullData(data) {
		*n = ""
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*n = AuthorName(name)
		return nil
	}
	var wrapped struct {
		AuthorName *string `json:"authorName"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.AuthorName != nil {
		*n = AuthorName(*wrapped.AuthorName)
	}
	return nil
}

type SessionInfo struct {
	GroupID    string `json:"groupID"`
	AuthorID   string `json:"authorID"`
	ValidUntil int64  `json:"validUntil"`
}

// SessionInfos maps session IDs to their info. Servers answer null for an
// owner without sessions.
type SessionInfos map[string]SessionInfo

func (s *SessionInfos) UnmarshalJSON(data []byte) error {
	*s = SessionInfos{}
	if isNullData(data) {
		return nil
	}
	var raw map[string]*SessionInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for id, info := range raw {
		if info == nil {
			(*s)[id] = SessionInfo{}
			continue
		}
		(*s)[id] = *info
	}
	return nil
}

// IDs returns the session IDs in a stable order.
func (s SessionInfos) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type TextResponse struct {
	Text string `json:"text"`
}

type HTMLResponse struct {
	HTML string `json:"html"`
}

type RevisionsCountResponse struct {
	Revisions int `json:"revisions"`
}

type SavedRevisionsCountResponse struct {
	SavedRevisions int `json:"savedRevisions"`
}

type SavedRevisionsResponse struct {
	SavedRevisions []int `json:"savedRevisions"`
}

type PadUsersCountResponse struct {
	PadUsersCount int `json:"padUsersCount"`
}

// PadUser is a user currently connected to a pad.
type PadUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ColorID   any    `json:"colorId"`
	Timestamp int64  `json:"timestamp"`
}

type PadUsersResponse struct {
	PadUsers []PadUser `json:"padUsers"`
}

// PublicStatusResponse represents the response with public status
type PublicStatusResponse struct {
	PublicStatus bool `json:"publicStatus"`
}

type PasswordProtectedResponse struct {
	IsPasswordProtected bool `json:"isPasswordProtected"`
}

// AuthorsResponse represents the response with author IDs
type AuthorsResponse struct {
	AuthorIDs []string `json:"authorIDs"`
}

type LastEditedResponse struct {
	LastEdited int64 `json:"lastEdited"`
}

// ChatHeadResponse represents the response with chat head
type ChatHeadResponse struct {
	ChatHead int `json:"chatHead"`
}

// DiffHTMLResponse represents the response with diff HTML
type DiffHTMLResponse struct {
	HTML    string   `json:"html"`
	Authors []string `json:"authors"`
}

// ChatMessageData is one chat line. Time is in milliseconds since the epoch.
type ChatMessageData struct {
	Text        string  `json:"text"`
	AuthorID    *string `json:"authorId"`
	Time        *int64  `json:"time"`
	DisplayName *string `json:"displayName"`
}

func (c *ChatMessageData) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.FromObject(raw)
	return nil
}

// FromObject reads both the current field names and the legacy
// userId/userName ones.
func (c *ChatMessageData) FromObject(obj map[string]any) {
	if text, ok := obj["text"].(string); ok {
		c.Text = text
	}
	if authorID, ok := firstString(obj, "authorId", "userId"); ok {
		c.AuthorID = &authorID
	}
	if name, ok := firstString(obj, "displayName", "userName"); ok {
		c.DisplayName = &name
	}
	if t, ok := obj["time"].(float64); ok {
		ms := int64(t)
		c.Time = &ms
	}
}

func firstString(obj map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if value, ok := obj[key].(string); ok {
			return value, true
		}
	}
	return "", false
}

type ChatHistoryResponse struct {
	Messages []ChatMessageData `json:"messages"`
}

// Stats is the instance wide usage reported by getStats.
type Stats struct {
	TotalPads       int `json:"totalPads"`
	TotalSessions   int `json:"totalSessions"`
	TotalActivePads int `json:"totalActivePads"`
}

type CurrentVersionResponse struct {
	CurrentVersion string `json:"currentVersion"`
}
