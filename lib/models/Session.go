package models

import (
	"context"
	"sync"

	"github.com/ether/etherpad-go-client/lib/api"
)

// Session grants an author access to the pads of a group until ValidUntil.
type Session struct {
	client *api.Client
	id     string

	mu   sync.Mutex
	info *api.SessionInfo
}

func newSession(client *api.Client, id string, info *api.SessionInfo) *Session {
	return &Session{client: client, id: id, info: info}
}

func createSession(ctx context.Context, client *api.Client, groupID, authorID string, minutes int) (*Session, error) {
	validUntil := api.ValidUntil(client.Now(), minutes)
	id, err := client.CreateSession(ctx, groupID, authorID, validUntil)
	if err != nil {
		return nil, err
	}
	return newSession(client, id, &api.SessionInfo{
		GroupID:    groupID,
		AuthorID:   authorID,
		ValidUntil: validUntil,
	}), nil
}

func sessionsOf(client *api.Client, infos api.SessionInfos) []*Session {
	sessions := make([]*Session, 0, len(infos))
	for _, id := range infos.IDs() {
		info := infos[id]
		sessions = append(sessions, newSession(client, id, &info))
	}
	return sessions
}

func (s *Session) ID() string {
	return s.id
}

// Info is fetched once unless the session came from a listing.
func (s *Session) Info(ctx context.Context) (api.SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.info != nil {
		return *s.info, nil
	}
	info, err := s.client.GetSessionInfo(ctx, s.id)
	if err != nil {
		return api.SessionInfo{}, err
	}
	s.info = &info
	return info, nil
}

func (s *Session) GroupID(ctx context.Context) (string, error) {
	info, err := s.Info(ctx)
	return info.GroupID, err
}

func (s *Session) Group(ctx context.Context) (*Group, error) {
	groupID, err := s.GroupID(ctx)
	if err != nil {
		return nil, err
	}
	return newGroup(s.client, groupID, ""), nil
}

func (s *Session) AuthorID(ctx context.Context) (string, error) {
	info, err := s.Info(ctx)
	return info.AuthorID, err
}

func (s *Session) Author(ctx context.Context) (*Author, error) {
	authorID, err := s.AuthorID(ctx)
	if err != nil {
		return nil, err
	}
	return newAuthor(s.client, authorID, ""), nil
}

// ValidUntil is a unix timestamp in seconds.
func (s *Session) ValidUntil(ctx context.Context) (int64, error) {
	info, err := s.Info(ctx)
	return info.ValidUntil, err
}

// Valid compares ValidUntil with the client's clock. Clock skew between
// client and server is not corrected.
func (s *Session) Valid(ctx context.Context) (bool, error) {
	validUntil, err := s.ValidUntil(ctx)
	if err != nil {
		return false, err
	}
	return validUntil > s.client.Now().Unix(), nil
}

func (s *Session) Expired(ctx context.Context) (bool, error) {
	valid, err := s.Valid(ctx)
	if err != nil {
		return false, err
	}
	return !valid, nil
}

func (s *Session) Delete(ctx context.Context) error {
	return s.client.DeleteSession(ctx, s.id)
}
