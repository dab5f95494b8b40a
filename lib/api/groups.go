package api

import (
	"context"
	"fmt"

	apiErrors "github.com/ether/etherpad-go-client/lib/api/errors"
	"github.com/ether/etherpad-go-client/lib/utils"
)

func (c *Client) CreateGroup(ctx context.Context) (string, error) {
	var resp GroupIDResponse
	if err := c.call(ctx, OpCreateGroup, Params{}, &resp); err != nil {
		return "", err
	}
	return resp.GroupID, nil
}

// CreateGroupIfNotExistsFor returns the group mapped to groupMapper, creating
// it on first use. Repeated calls with the same mapper return the same ID.
func (c *Client) CreateGroupIfNotExistsFor(ctx context.Context, groupMapper string) (string, error) {
	var resp GroupIDResponse
	if err := c.call(ctx, OpCreateGroupIfNotExistsFor, Params{"groupMapper": groupMapper}, &resp); err != nil {
		return "", err
	}
	return resp.GroupID, nil
}

// DeleteGroup deletes the group together with its pads and sessions.
func (c *Client) DeleteGroup(ctx context.Context, groupID string) error {
	return c.call(ctx, OpDeleteGroup, Params{"groupID": groupID}, nil)
}

// ListPads returns the full IDs (groupID$name) of the pads of a group.
func (c *Client) ListPads(ctx context.Context, groupID string) ([]string, error) {
	var resp PadIDsResponse
	if err := c.call(ctx, OpListPads, Params{"groupID": groupID}, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.PadIDs), nil
}

func (c *Client) CreateGroupPad(ctx context.Context, groupID, padName string, text *string) (string, error) {
	if !utils.IsValidGroupID(groupID) {
		return "", fmt.Errorf("createGroupPad: %q: %w", groupID, apiErrors.ErrInvalidGroupID)
	}
	params := Params{"groupID": groupID, "padName": padName}.SetOptional("text", text)
	var resp PadIDResponse
	if err := c.call(ctx, OpCreateGroupPad, params, &resp); err != nil {
		return "", err
	}
	return resp.PadID, nil
}

func (c *Client) ListAllGroups(ctx context.Context) ([]string, error) {
	var resp GroupIDsResponse
	if err := c.call(ctx, OpListAllGroups, Params{}, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.GroupIDs), nil
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
