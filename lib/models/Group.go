package models

import (
	"context"
	"fmt"

	"github.com/ether/etherpad-go-client/lib/api"
	apiErrors "github.com/ether/etherpad-go-client/lib/api/errors"
	"github.com/ether/etherpad-go-client/lib/utils"
)

// Group owns group pads and the sessions giving authors access to them.
type Group struct {
	padded
	id     string
	mapper string
}

func newGroup(client *api.Client, id, mapper string) *Group {
	g := &Group{id: id, mapper: mapper}
	g.padded = padded{client: client, group: g}
	return g
}

func createGroup(ctx context.Context, client *api.Client, opts []CreateOption) (*Group, error) {
	o := collectCreateOptions(opts)
	var (
		id  string
		err error
	)
	if o.mapper != "" {
		id, err = client.CreateGroupIfNotExistsFor(ctx, o.mapper)
	} else {
		id, err = client.CreateGroup(ctx)
	}
	if err != nil {
		return nil, err
	}
	return newGroup(client, id, o.mapper), nil
}

func (g *Group) ID() string {
	return g.id
}

// Mapper is the mapper the group was looked up by, "" when unknown.
func (g *Group) Mapper() string {
	return g.mapper
}

// PadIDs returns the full IDs of the group's pads.
func (g *Group) PadIDs(ctx context.Context) ([]string, error) {
	return g.client.ListPads(ctx, g.id)
}

// PadNames returns the pad IDs with the group prefix removed.
func (g *Group) PadNames(ctx context.Context) ([]string, error) {
	ids, err := g.PadIDs(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = utils.DegroupPadID(id)
	}
	return names, nil
}

func (g *Group) Pads(ctx context.Context) ([]*Pad, error) {
	ids, err := g.PadIDs(ctx)
	if err != nil {
		return nil, err
	}
	pads := make([]*Pad, len(ids))
	for i, id := range ids {
		pads[i] = newPad(g.client, id, g, nil)
	}
	return pads, nil
}

// CreateSession gives author access to the group's pads for the given minutes.
func (g *Group) CreateSession(ctx context.Context, author *Author, minutes int) (*Session, error) {
	if author == nil {
		return nil, fmt.Errorf("createSession: authorID: %w", apiErrors.ErrMissingParameter)
	}
	return createSession(ctx, g.client, g.id, author.id, minutes)
}

func (g *Group) SessionIDs(ctx context.Context) ([]string, error) {
	infos, err := g.client.ListSessionsOfGroup(ctx, g.id)
	if err != nil {
		return nil, err
	}
	return infos.IDs(), nil
}

func (g *Group) Sessions(ctx context.Context) ([]*Session, error) {
	infos, err := g.client.ListSessionsOfGroup(ctx, g.id)
	if err != nil {
		return nil, err
	}
	return sessionsOf(g.client, infos), nil
}

// Delete removes the group with all its pads and sessions.
func (g *Group) Delete(ctx context.Context) error {
	return g.client.DeleteGroup(ctx, g.id)
}
