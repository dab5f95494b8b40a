package api

import (
	"context"
)

func (c *Client) CreateAuthor(ctx context.Context, name *string) (string, error) {
	var resp AuthorIDResponse
	if err := c.call(ctx, OpCreateAuthor, Params{}.SetOptional("name", name), &resp); err != nil {
		return "", err
	}
	return resp.AuthorID, nil
}

// CreateAuthorIfNotExistsFor returns the author mapped to authorMapper,
// creating it on first use. A non-nil name also renames an existing author.
func (c *Client) CreateAuthorIfNotExistsFor(ctx context.Context, authorMapper string, name *string) (string, error) {
	params := Params{"authorMapper": authorMapper}.SetOptional("name", name)
	var resp AuthorIDResponse
	if err := c.call(ctx, OpCreateAuthorIfNotExistsFor, params, &resp); err != nil {
		return "", err
	}
	return resp.AuthorID, nil
}

func (c *Client) ListPadsOfAuthor(ctx context.Context, authorID string) ([]string, error) {
	var resp PadIDsResponse
	if err := c.call(ctx, OpListPadsOfAuthor, Params{"authorID": authorID}, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.PadIDs), nil
}

func (c *Client) GetAuthorName(ctx context.Context, authorID string) (string, error) {
	var name AuthorName
	if err := c.call(ctx, OpGetAuthorName, Params{"authorID": authorID}, &name); err != nil {
		return "", err
	}
	return string(name), nil
}
