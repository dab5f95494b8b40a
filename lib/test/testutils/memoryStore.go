package testutils

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ether/etherpad-go-client/lib/utils"
)

// DefaultPadText is the text of pads created without one.
const DefaultPadText = "Welcome to Etherpad!\n\nThis pad text is synchronized as you type, so that everyone viewing this page sees the same text.\n"

var (
	errPadExists       = errors.New("padID does already exist")
	errPadNotFound     = errors.New("padID does not exist")
	errGroupNotFound   = errors.New("groupID does not exist")
	errAuthorNotFound  = errors.New("authorID does not exist")
	errSessionNotFound = errors.New("sessionID does not exist")
	errRevTooHigh      = errors.New("rev is higher than the head revision of the pad")
	errNotGroupPad     = errors.New("You can only get/set the publicStatus of pads that belong to a group")
	errNotGroupPadPass = errors.New("You can only get/set the password of pads that belong to a group")
)

type storedRevision struct {
	Text      string
	AuthorID  string
	Timestamp int64
}

type storedChatMessage struct {
	Text     string
	AuthorID string
	Time     int64
}

type storedPad struct {
	ID             string
	Revisions      []storedRevision
	SavedRevisions []int
	Chat           []storedChatMessage
	PublicStatus   bool
	Password       string
	ReadOnlyID     string
}

func (p *storedPad) head() int {
	return len(p.Revisions) - 1
}

func (p *storedPad) text() string {
	return p.Revisions[p.head()].Text
}

type storedSession struct {
	GroupID    string
	AuthorID   string
	ValidUntil int64
}

// MemoryStore is the state of the fake server. All methods are safe for
// concurrent use.
type MemoryStore struct {
	mu           sync.Mutex
	clock        func() time.Time
	padStore     map[string]*storedPad
	authorStore  map[string]string
	groupStore   map[string]struct{}
	groupMapper  map[string]string
	authorMapper map[string]string
	readonly2Pad map[string]string
	sessionStore map[string]storedSession
}

func NewMemoryStore(clock func() time.Time) *MemoryStore {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryStore{
		clock:        clock,
		padStore:     map[string]*storedPad{},
		authorStore:  map[string]string{},
		groupStore:   map[string]struct{}{},
		groupMapper:  map[string]string{},
		authorMapper: map[string]string{},
		readonly2Pad: map[string]string{},
		sessionStore: map[string]storedSession{},
	}
}

func ensureTrailingNewline(text string) string {
	if strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}

func (m *MemoryStore) now() int64 {
	return m.clock().UnixMilli()
}

func (m *MemoryStore) getPad(padID string) (*storedPad, error) {
	pad, ok := m.padStore[padID]
	if !ok {
		return nil, errPadNotFound
	}
	return pad, nil
}

func (m *MemoryStore) createPad(padID string, text *string, authorID string) error {
	if _, ok := m.padStore[padID]; ok {
		return errPadExists
	}
	initial := DefaultPadText
	if text != nil {
		initial = *text
	}
	m.padStore[padID] = &storedPad{
		ID: padID,
		Revisions: []storedRevision{{
			Text:      ensureTrailingNewline(initial),
			AuthorID:  authorID,
			Timestamp: m.now(),
		}},
		SavedRevisions: []int{},
	}
	return nil
}

func (m *MemoryStore) addRevision(pad *storedPad, text, authorID string) {
	pad.Revisions = append(pad.Revisions, storedRevision{
		Text:      ensureTrailingNewline(text),
		AuthorID:  authorID,
		Timestamp: m.now(),
	})
}

func (m *MemoryStore) revisionText(pad *storedPad, rev *int) (string, error) {
	if rev == nil {
		return pad.text(), nil
	}
	if *rev > pad.head() {
		return "", errRevTooHigh
	}
	if *rev < 0 {
		return "", errors.New("rev is not a positive number")
	}
	return pad.Revisions[*rev].Text, nil
}

func (m *MemoryStore) deletePad(padID string) error {
	pad, err := m.getPad(padID)
	if err != nil {
		return err
	}
	if pad.ReadOnlyID != "" {
		delete(m.readonly2Pad, pad.ReadOnlyID)
	}
	delete(m.padStore, padID)
	return nil
}

func (m *MemoryStore) copyPad(sourceID, destinationID string, force bool, withHistory bool) error {
	source, err := m.getPad(sourceID)
	if err != nil {
		return err
	}
	if groupID := utils.GroupIDOf(destinationID); groupID != "" {
		if _, ok := m.groupStore[groupID]; !ok {
			return errGroupNotFound
		}
	}
	if _, exists := m.padStore[destinationID]; exists {
		if !force {
			return errors.New("destinationID does already exist")
		}
		_ = m.deletePad(destinationID)
	}

	copied := &storedPad{
		ID:             destinationID,
		SavedRevisions: []int{},
		PublicStatus:   source.PublicStatus,
		Password:       source.Password,
	}
	if withHistory {
		copied.Revisions = append([]storedRevision{}, source.Revisions...)
		copied.SavedRevisions = append(copied.SavedRevisions, source.SavedRevisions...)
		copied.Chat = append([]storedChatMessage{}, source.Chat...)
	} else {
		copied.Revisions = []storedRevision{{Text: source.text(), Timestamp: m.now()}}
	}
	m.padStore[destinationID] = copied
	return nil
}

func (m *MemoryStore) readOnlyID(pad *storedPad) string {
	if pad.ReadOnlyID == "" {
		pad.ReadOnlyID = "r." + utils.RandomString(16)
		m.readonly2Pad[pad.ReadOnlyID] = pad.ID
	}
	return pad.ReadOnlyID
}

func (m *MemoryStore) createGroup() string {
	groupID := "g." + utils.RandomString(8)
	m.groupStore[groupID] = struct{}{}
	return groupID
}

func (m *MemoryStore) groupExists(groupID string) bool {
	_, ok := m.groupStore[groupID]
	return ok
}

func (m *MemoryStore) deleteGroup(groupID string) error {
	if !m.groupExists(groupID) {
		return errGroupNotFound
	}
	for padID := range m.padStore {
		if utils.GroupIDOf(padID) == groupID {
			_ = m.deletePad(padID)
		}
	}
	for sessionID, session := range m.sessionStore {
		if session.GroupID == groupID {
			delete(m.sessionStore, sessionID)
		}
	}
	for mapper, mapped := range m.groupMapper {
		if mapped == groupID {
			delete(m.groupMapper, mapper)
		}
	}
	delete(m.groupStore, groupID)
	return nil
}

func (m *MemoryStore) createAuthor(name *string) string {
	authorID := "a." + utils.RandomString(8)
	m.authorStore[authorID] = ""
	if name != nil {
		m.authorStore[authorID] = *name
	}
	return authorID
}

func (m *MemoryStore) authorExists(authorID string) bool {
	_, ok := m.authorStore[authorID]
	return ok
}

func (m *MemoryStore) padIDs(filter func(*storedPad) bool) []string {
	ids := make([]string, 0)
	for id, pad := range m.padStore {
		if filter == nil || filter(pad) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (m *MemoryStore) sessionsWhere(match func(storedSession) bool) map[string]storedSession {
	sessions := map[string]storedSession{}
	for id, session := range m.sessionStore {
		if match(session) {
			sessions[id] = session
		}
	}
	return sessions
}

func authorsOfRevisions(revisions []storedRevision) []string {
	seen := map[string]struct{}{}
	authors := make([]string, 0)
	for _, rev := range revisions {
		if rev.AuthorID == "" {
			continue
		}
		if _, ok := seen[rev.AuthorID]; ok {
			continue
		}
		seen[rev.AuthorID] = struct{}{}
		authors = append(authors, rev.AuthorID)
	}
	return authors
}

// PadText returns the head text of a pad, for assertions.
func (m *MemoryStore) PadText(padID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pad, ok := m.padStore[padID]
	if !ok {
		return "", false
	}
	return pad.text(), true
}

// SessionCount returns the number of stored sessions, for assertions.
func (m *MemoryStore) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessionStore)
}

// HasGroup reports whether a group exists, for assertions.
func (m *MemoryStore) HasGroup(groupID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.groupExists(groupID)
}
