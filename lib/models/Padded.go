package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/ether/etherpad-go-client/lib/api"
	apiErrors "github.com/ether/etherpad-go-client/lib/api/errors"
	"github.com/ether/etherpad-go-client/lib/utils"
)

// Padded is implemented by everything that can hold pads: the Instance for
// standalone pads and a Group for group pads.
type Padded interface {
	// Pad returns the pad, creating it first when it does not exist yet.
	Pad(ctx context.Context, id string, opts ...PadOption) (*Pad, error)
	// GetPad wraps the pad without a network call. The pad is assumed to exist.
	GetPad(id string, opts ...PadOption) *Pad
	// CreatePad creates the pad and fails if it already exists.
	CreatePad(ctx context.Context, id string, opts ...PadOption) (*Pad, error)
}

type padded struct {
	client *api.Client
	group  *Group
}

func (p padded) Pad(ctx context.Context, id string, opts ...PadOption) (*Pad, error) {
	pad, err := p.CreatePad(ctx, id, opts...)
	if err == nil {
		return pad, nil
	}
	if apiErrors.IsAlreadyExists(err) {
		return p.GetPad(id, opts...), nil
	}
	return nil, err
}

func (p padded) GetPad(id string, opts ...PadOption) *Pad {
	o := collectPadOptions(opts)
	return newPad(p.client, p.padID(id), p.group, o.rev)
}

func (p padded) CreatePad(ctx context.Context, id string, opts ...PadOption) (*Pad, error) {
	o := collectPadOptions(opts)
	padID := p.padID(id)

	groupID := utils.GroupIDOf(padID)
	if groupID == "" {
		if strings.Contains(padID, utils.GroupPadSeparator) {
			return nil, fmt.Errorf("%q: %w", padID, apiErrors.ErrInvalidPadName)
		}
		if err := p.client.CreatePad(ctx, padID, o.text); err != nil {
			return nil, err
		}
		return newPad(p.client, padID, p.group, o.rev), nil
	}

	name := utils.DegroupPadID(padID)
	if strings.Contains(name, utils.GroupPadSeparator) {
		return nil, fmt.Errorf("%q: %w", name, apiErrors.ErrInvalidPadName)
	}
	created, err := p.client.CreateGroupPad(ctx, groupID, name, o.text)
	if err != nil {
		return nil, err
	}
	if created != "" {
		padID = created
	}
	return newPad(p.client, padID, p.group, o.rev), nil
}

// padID composes the effective ID: group pads get the group prefix, an
// Instance passes IDs through as given.
func (p padded) padID(id string) string {
	if p.group == nil {
		return id
	}
	return utils.ComposePadID(p.group.id, id)
}
