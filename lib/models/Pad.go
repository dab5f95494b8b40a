package models

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ether/etherpad-go-client/lib/api"
	apiErrors "github.com/ether/etherpad-go-client/lib/api/errors"
	"github.com/ether/etherpad-go-client/lib/utils"
)

// Pad is a handle on a pad of the server. Writes take effect immediately;
// nothing is cached except the read only ID.
type Pad struct {
	client  *api.Client
	id      string
	groupID string
	group   *Group
	rev     *int

	mu         sync.Mutex
	readOnlyID string
}

func newPad(client *api.Client, id string, group *Group, rev *int) *Pad {
	p := &Pad{
		client:  client,
		id:      id,
		groupID: utils.GroupIDOf(id),
		group:   group,
		rev:     rev,
	}
	if group != nil && p.groupID != group.id {
		p.group = nil
	}
	return p
}

// ID is the effective ID, groupID$name for group pads.
func (p *Pad) ID() string {
	return p.id
}

// Name is the ID without its group prefix.
func (p *Pad) Name() string {
	return utils.DegroupPadID(p.id)
}

func (p *Pad) GroupID() string {
	return p.groupID
}

// Group returns the owning group, nil for standalone pads.
func (p *Pad) Group() *Group {
	if p.groupID == "" {
		return nil
	}
	if p.group == nil {
		p.group = newGroup(p.client, p.groupID, "")
	}
	return p.group
}

// Rev is the revision the pad was pinned to, nil for the head revision.
func (p *Pad) Rev() *int {
	return p.rev
}

func (p *Pad) Text(ctx context.Context) (string, error) {
	return p.client.GetText(ctx, p.id, p.rev)
}

func (p *Pad) TextAt(ctx context.Context, rev int) (string, error) {
	return p.client.GetText(ctx, p.id, &rev)
}

func (p *Pad) SetText(ctx context.Context, text string) error {
	return p.client.SetText(ctx, p.id, text)
}

// AppendText adds text at the end of the pad, attributed to author when not nil.
func (p *Pad) AppendText(ctx context.Context, text string, author *Author) error {
	var authorID *string
	if author != nil {
		authorID = &author.id
	}
	return p.client.AppendText(ctx, p.id, text, authorID)
}

func (p *Pad) HTML(ctx context.Context) (string, error) {
	return p.client.GetHTML(ctx, p.id, p.rev)
}

func (p *Pad) HTMLAt(ctx context.Context, rev int) (string, error) {
	return p.client.GetHTML(ctx, p.id, &rev)
}

func (p *Pad) SetHTML(ctx context.Context, html string) error {
	return p.client.SetHTML(ctx, p.id, html)
}

// RevisionNumbers returns every valid revision, 0 up to and including the head.
func (p *Pad) RevisionNumbers(ctx context.Context) ([]int, error) {
	head, err := p.client.GetRevisionsCount(ctx, p.id)
	if err != nil {
		return nil, err
	}
	return utils.RevisionRange(head), nil
}

// Revisions returns one pinned pad per revision, oldest first.
func (p *Pad) Revisions(ctx context.Context) ([]*Pad, error) {
	revs, err := p.RevisionNumbers(ctx)
	if err != nil {
		return nil, err
	}
	pads := make([]*Pad, len(revs))
	for i, rev := range revs {
		pads[i] = newPad(p.client, p.id, p.group, &rev)
	}
	return pads, nil
}

// Diff compares startRev with endRev, or with the head revision when endRev is nil.
func (p *Pad) Diff(ctx context.Context, startRev int, endRev *int) (*Diff, error) {
	return newDiff(ctx, p, startRev, endRev)
}

func (p *Pad) Changeset(ctx context.Context, rev *int) (string, error) {
	return p.client.GetRevisionChangeset(ctx, p.id, rev)
}

func (p *Pad) Users(ctx context.Context) ([]api.PadUser, error) {
	return p.client.PadUsers(ctx, p.id)
}

func (p *Pad) UserCount(ctx context.Context) (int, error) {
	return p.client.PadUsersCount(ctx, p.id)
}

// ReadOnlyID is fetched once per handle.
func (p *Pad) ReadOnlyID(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.readOnlyID != "" {
		return p.readOnlyID, nil
	}
	id, err := p.client.GetReadOnlyID(ctx, p.id)
	if err != nil {
		return "", err
	}
	p.readOnlyID = id
	return id, nil
}

func (p *Pad) LastEdited(ctx context.Context) (time.Time, error) {
	return p.client.GetLastEdited(ctx, p.id)
}

func (p *Pad) AuthorIDs(ctx context.Context) ([]string, error) {
	return p.client.ListAuthorsOfPad(ctx, p.id)
}

func (p *Pad) Authors(ctx context.Context) ([]*Author, error) {
	ids, err := p.AuthorIDs(ctx)
	if err != nil {
		return nil, err
	}
	return authorsOf(p.client, ids), nil
}

// ChatMessages returns the chat between start and end (inclusive), or the
// whole chat when both are nil.
func (p *Pad) ChatMessages(ctx context.Context, start, end *int) ([]*ChatMessage, error) {
	messages, err := p.client.GetChatHistory(ctx, p.id, start, end)
	if err != nil {
		return nil, err
	}
	result := make([]*ChatMessage, len(messages))
	for i, msg := range messages {
		result[i] = newChatMessage(p.client, p.id, msg)
	}
	return result, nil
}

// ChatSize is the number of chat messages.
func (p *Pad) ChatSize(ctx context.Context) (int, error) {
	head, err := p.client.GetChatHead(ctx, p.id)
	if err != nil {
		return 0, err
	}
	return head + 1, nil
}

// AppendChatMessage posts text as author. A zero at lets the server pick the time.
func (p *Pad) AppendChatMessage(ctx context.Context, text string, author *Author, at time.Time) error {
	if author == nil {
		return fmt.Errorf("appendChatMessage: authorID: %w", apiErrors.ErrMissingParameter)
	}
	var millis *int64
	if !at.IsZero() {
		ms := at.UnixMilli()
		millis = &ms
	}
	return p.client.AppendChatMessage(ctx, p.id, text, author.id, millis)
}

// Public only applies to group pads.
func (p *Pad) Public(ctx context.Context) (bool, error) {
	return p.client.GetPublicStatus(ctx, p.id)
}

func (p *Pad) SetPublic(ctx context.Context, public bool) error {
	return p.client.SetPublicStatus(ctx, p.id, public)
}

// Private is always the negation of Public.
func (p *Pad) Private(ctx context.Context) (bool, error) {
	public, err := p.Public(ctx)
	if err != nil {
		return false, err
	}
	return !public, nil
}

func (p *Pad) SetPrivate(ctx context.Context, private bool) error {
	return p.SetPublic(ctx, !private)
}

func (p *Pad) PasswordProtected(ctx context.Context) (bool, error) {
	return p.client.IsPasswordProtected(ctx, p.id)
}

// SetPassword protects a group pad. An empty password removes the protection.
func (p *Pad) SetPassword(ctx context.Context, password string) error {
	return p.client.SetPassword(ctx, p.id, password)
}

// SendMessage broadcasts a custom message to the connected clients.
func (p *Pad) SendMessage(ctx context.Context, msg string) error {
	return p.client.SendClientsMessage(ctx, p.id, msg)
}

func (p *Pad) SavedRevisionsCount(ctx context.Context) (int, error) {
	return p.client.GetSavedRevisionsCount(ctx, p.id)
}

func (p *Pad) SavedRevisions(ctx context.Context) ([]int, error) {
	return p.client.ListSavedRevisions(ctx, p.id)
}

func (p *Pad) SaveRevision(ctx context.Context, rev *int) error {
	return p.client.SaveRevision(ctx, p.id, rev)
}

// RestoreRevision makes rev the new head by adding a revision with its content.
func (p *Pad) RestoreRevision(ctx context.Context, rev int) error {
	return p.client.RestoreRevision(ctx, p.id, rev)
}

// CopyTo copies the pad including its history. force overwrites an existing destination.
func (p *Pad) CopyTo(ctx context.Context, destinationID string, force bool) (*Pad, error) {
	if err := p.client.CopyPad(ctx, p.id, destinationID, &force); err != nil {
		return nil, err
	}
	return newPad(p.client, destinationID, nil, nil), nil
}

func (p *Pad) CopyWithoutHistoryTo(ctx context.Context, destinationID string, force bool) (*Pad, error) {
	if err := p.client.CopyPadWithoutHistory(ctx, p.id, destinationID, &force); err != nil {
		return nil, err
	}
	return newPad(p.client, destinationID, nil, nil), nil
}

// MoveTo renames the pad. The receiver is stale afterwards; use the returned pad.
func (p *Pad) MoveTo(ctx context.Context, destinationID string, force bool) (*Pad, error) {
	if err := p.client.MovePad(ctx, p.id, destinationID, &force); err != nil {
		return nil, err
	}
	return newPad(p.client, destinationID, nil, nil), nil
}

// Exists reports whether the server knows the pad. Only a "does not exist"
// answer counts as absent; every other error is returned.
func (p *Pad) Exists(ctx context.Context) (bool, error) {
	if _, err := p.client.GetRevisionsCount(ctx, p.id); err != nil {
		if apiErrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (p *Pad) Delete(ctx context.Context) error {
	return p.client.DeletePad(ctx, p.id)
}
