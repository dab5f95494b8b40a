package models

import (
	"context"
	"fmt"
	"sync"

	"github.com/ether/etherpad-go-client/lib/api"
	apiErrors "github.com/ether/etherpad-go-client/lib/api/errors"
)

type Author struct {
	client *api.Client
	id     string
	mapper string

	mu      sync.Mutex
	name    string
	hasName bool
}

func newAuthor(client *api.Client, id, mapper string) *Author {
	return &Author{client: client, id: id, mapper: mapper}
}

func createAuthor(ctx context.Context, client *api.Client, opts []CreateOption) (*Author, error) {
	o := collectCreateOptions(opts)
	var (
		id  string
		err error
	)
	if o.mapper != "" {
		id, err = client.CreateAuthorIfNotExistsFor(ctx, o.mapper, o.name)
	} else {
		id, err = client.CreateAuthor(ctx, o.name)
	}
	if err != nil {
		return nil, err
	}
	author := newAuthor(client, id, o.mapper)
	if o.name != nil {
		author.name = *o.name
		author.hasName = true
	}
	return author, nil
}

func authorsOf(client *api.Client, ids []string) []*Author {
	authors := make([]*Author, len(ids))
	for i, id := range ids {
		authors[i] = newAuthor(client, id, "")
	}
	return authors
}

func (a *Author) ID() string {
	return a.id
}

func (a *Author) Mapper() string {
	return a.mapper
}

// Name is fetched once per handle.
func (a *Author) Name(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.hasName {
		return a.name, nil
	}
	name, err := a.client.GetAuthorName(ctx, a.id)
	if err != nil {
		return "", err
	}
	a.name = name
	a.hasName = true
	return name, nil
}

func (a *Author) PadIDs(ctx context.Context) ([]string, error) {
	return a.client.ListPadsOfAuthor(ctx, a.id)
}

func (a *Author) Pads(ctx context.Context) ([]*Pad, error) {
	ids, err := a.PadIDs(ctx)
	if err != nil {
		return nil, err
	}
	pads := make([]*Pad, len(ids))
	for i, id := range ids {
		pads[i] = newPad(a.client, id, nil, nil)
	}
	return pads, nil
}

func (a *Author) CreateSession(ctx context.Context, group *Group, minutes int) (*Session, error) {
	if group == nil {
		return nil, fmt.Errorf("createSession: groupID: %w", apiErrors.ErrMissingParameter)
	}
	return createSession(ctx, a.client, group.id, a.id, minutes)
}

func (a *Author) SessionIDs(ctx context.Context) ([]string, error) {
	infos, err := a.client.ListSessionsOfAuthor(ctx, a.id)
	if err != nil {
		return nil, err
	}
	return infos.IDs(), nil
}

func (a *Author) Sessions(ctx context.Context) ([]*Session, error) {
	infos, err := a.client.ListSessionsOfAuthor(ctx, a.id)
	if err != nil {
		return nil, err
	}
	return sessionsOf(a.client, infos), nil
}
