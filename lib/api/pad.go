package api

import (
	"context"
	"fmt"
	"strconv"
	"time"

	apiErrors "github.com/ether/etherpad-go-client/lib/api/errors"
	"github.com/ether/etherpad-go-client/lib/utils"
)

// CreatePad creates a pad outside of any group. Pad IDs containing '$' are
// reserved for group pads and are rejected by the server.
func (c *Client) CreatePad(ctx context.Context, padID string, text *string) error {
	return c.call(ctx, OpCreatePad, Params{"padID": padID}.SetOptional("text", text), nil)
}

func (c *Client) DeletePad(ctx context.Context, padID string) error {
	return c.call(ctx, OpDeletePad, Params{"padID": padID}, nil)
}

// GetText returns the text at rev, or at the head revision when rev is nil.
// The trailing newline the server appends is kept.
func (c *Client) GetText(ctx context.Context, padID string, rev *int) (string, error) {
	var resp TextResponse
	if err := c.call(ctx, OpGetText, Params{"padID": padID}.SetOptionalInt("rev", rev), &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (c *Client) SetText(ctx context.Context, padID, text string) error {
	return c.call(ctx, OpSetText, Params{"padID": padID, "text": text}, nil)
}

// AppendText adds text at the end of the pad, attributed to authorID when set.
func (c *Client) AppendText(ctx context.Context, padID, text string, authorID *string) error {
	params := Params{"padID": padID, "text": text}.SetOptional("authorId", authorID)
	return c.call(ctx, OpAppendText, params, nil)
}

func (c *Client) GetHTML(ctx context.Context, padID string, rev *int) (string, error) {
	var resp HTMLResponse
	if err := c.call(ctx, OpGetHTML, Params{"padID": padID}.SetOptionalInt("rev", rev), &resp); err != nil {
		return "", err
	}
	return resp.HTML, nil
}

func (c *Client) SetHTML(ctx context.Context, padID, html string) error {
	return c.call(ctx, OpSetHTML, Params{"padID": padID, "html": html}, nil)
}

// GetRevisionsCount returns the head revision number. Valid revisions are 0..count.
func (c *Client) GetRevisionsCount(ctx context.Context, padID string) (int, error) {
	var resp RevisionsCountResponse
	if err := c.call(ctx, OpGetRevisionsCount, Params{"padID": padID}, &resp); err != nil {
		return 0, err
	}
	return resp.Revisions, nil
}

func (c *Client) GetSavedRevisionsCount(ctx context.Context, padID string) (int, error) {
	var resp SavedRevisionsCountResponse
	if err := c.call(ctx, OpGetSavedRevisionsCount, Params{"padID": padID}, &resp); err != nil {
		return 0, err
	}
	return resp.SavedRevisions, nil
}

func (c *Client) ListSavedRevisions(ctx context.Context, padID string) ([]int, error) {
	var resp SavedRevisionsResponse
	if err := c.call(ctx, OpListSavedRevisions, Params{"padID": padID}, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.SavedRevisions), nil
}

// SaveRevision marks rev, or the head revision when rev is nil, as saved.
func (c *Client) SaveRevision(ctx context.Context, padID string, rev *int) error {
	return c.call(ctx, OpSaveRevision, Params{"padID": padID}.SetOptionalInt("rev", rev), nil)
}

func (c *Client) RestoreRevision(ctx context.Context, padID string, rev int) error {
	return c.call(ctx, OpRestoreRevision, Params{"padID": padID}.SetInt("rev", rev), nil)
}

func (c *Client) PadUsersCount(ctx context.Context, padID string) (int, error) {
	var resp PadUsersCountResponse
	if err := c.call(ctx, OpPadUsersCount, Params{"padID": padID}, &resp); err != nil {
		return 0, err
	}
	return resp.PadUsersCount, nil
}

func (c *Client) PadUsers(ctx context.Context, padID string) ([]PadUser, error) {
	var resp PadUsersResponse
	if err := c.call(ctx, OpPadUsers, Params{"padID": padID}, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.PadUsers), nil
}

func (c *Client) CopyPad(ctx context.Context, sourceID, destinationID string, force *bool) error {
	params := Params{"sourceID": sourceID, "destinationID": destinationID}.SetOptionalBool("force", force)
	return c.call(ctx, OpCopyPad, params, nil)
}

// CopyPadWithoutHistory copies only the current content of a pad.
func (c *Client) CopyPadWithoutHistory(ctx context.Context, sourceID, destinationID string, force *bool) error {
	params := Params{"sourceID": sourceID, "destinationID": destinationID}.SetOptionalBool("force", force)
	return c.call(ctx, OpCopyPadWithoutHistory, params, nil)
}

func (c *Client) MovePad(ctx context.Context, sourceID, destinationID string, force *bool) error {
	params := Params{"sourceID": sourceID, "destinationID": destinationID}.SetOptionalBool("force", force)
	return c.call(ctx, OpMovePad, params, nil)
}

func (c *Client) GetReadOnlyID(ctx context.Context, padID string) (string, error) {
	var resp ReadOnlyIDResponse
	if err := c.call(ctx, OpGetReadOnlyID, Params{"padID": padID}, &resp); err != nil {
		return "", err
	}
	return resp.ReadOnlyID, nil
}

// GetPadID resolves a read only ID (r.xxx) back to its pad ID.
func (c *Client) GetPadID(ctx context.Context, readOnlyID string) (string, error) {
	if !utils.IsReadOnlyID(readOnlyID) {
		return "", fmt.Errorf("getPadID: %q: %w", readOnlyID, apiErrors.ErrInvalidReadOnlyID)
	}
	var resp PadIDResponse
	if err := c.call(ctx, OpGetPadID, Params{"roID": readOnlyID}, &resp); err != nil {
		return "", err
	}
	return resp.PadID, nil
}

// SetPublicStatus only has an effect on group pads.
func (c *Client) SetPublicStatus(ctx context.Context, padID string, public bool) error {
	return c.call(ctx, OpSetPublicStatus, Params{"padID": padID}.SetBool("publicStatus", public), nil)
}

func (c *Client) GetPublicStatus(ctx context.Context, padID string) (bool, error) {
	var resp PublicStatusResponse
	if err := c.call(ctx, OpGetPublicStatus, Params{"padID": padID}, &resp); err != nil {
		return false, err
	}
	return resp.PublicStatus, nil
}

func (c *Client) SetPassword(ctx context.Context, padID, password string) error {
	return c.call(ctx, OpSetPassword, Params{"padID": padID, "password": password}, nil)
}

func (c *Client) IsPasswordProtected(ctx context.Context, padID string) (bool, error) {
	var resp PasswordProtectedResponse
	if err := c.call(ctx, OpIsPasswordProtected, Params{"padID": padID}, &resp); err != nil {
		return false, err
	}
	return resp.IsPasswordProtected, nil
}

func (c *Client) ListAuthorsOfPad(ctx context.Context, padID string) ([]string, error) {
	var resp AuthorsResponse
	if err := c.call(ctx, OpListAuthorsOfPad, Params{"padID": padID}, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.AuthorIDs), nil
}

// GetLastEdited returns the time of the last edit. The server reports milliseconds.
func (c *Client) GetLastEdited(ctx context.Context, padID string) (time.Time, error) {
	var resp LastEditedResponse
	if err := c.call(ctx, OpGetLastEdited, Params{"padID": padID}, &resp); err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(resp.LastEdited), nil
}

// SendClientsMessage broadcasts msg to every client connected to the pad.
func (c *Client) SendClientsMessage(ctx context.Context, padID, msg string) error {
	return c.call(ctx, OpSendClientsMessage, Params{"padID": padID, "msg": msg}, nil)
}

func (c *Client) CreateDiffHTML(ctx context.Context, padID string, startRev, endRev int) (DiffHTMLResponse, error) {
	params := Params{"padID": padID, "startRev": strconv.Itoa(startRev), "endRev": strconv.Itoa(endRev)}
	var resp DiffHTMLResponse
	if err := c.call(ctx, OpCreateDiffHTML, params, &resp); err != nil {
		return DiffHTMLResponse{}, err
	}
	resp.Authors = nonNil(resp.Authors)
	return resp, nil
}

// GetRevisionChangeset returns the serialized changeset of rev, or of the head revision.
func (c *Client) GetRevisionChangeset(ctx context.Context, padID string, rev *int) (string, error) {
	var changeset string
	if err := c.call(ctx, OpGetRevisionChangeset, Params{"padID": padID}.SetOptionalInt("rev", rev), &changeset); err != nil {
		return "", err
	}
	return changeset, nil
}
