package models

import (
	"context"
	"sync"

	"github.com/ether/etherpad-go-client/lib/api"
)

// Diff is the HTML rendering of the changes between two revisions of a pad.
type Diff struct {
	pad      *Pad
	startRev int
	endRev   int

	mu   sync.Mutex
	diff *api.DiffHTMLResponse
}

// newDiff resolves a nil endRev to the head revision right away, so the
// range stays fixed even if the pad is edited later.
func newDiff(ctx context.Context, pad *Pad, startRev int, endRev *int) (*Diff, error) {
	d := &Diff{pad: pad, startRev: startRev}
	if endRev != nil {
		d.endRev = *endRev
		return d, nil
	}
	revs, err := pad.RevisionNumbers(ctx)
	if err != nil {
		return nil, err
	}
	if len(revs) > 0 {
		d.endRev = revs[len(revs)-1]
	}
	return d, nil
}

func (d *Diff) Pad() *Pad {
	return d.pad
}

func (d *Diff) StartRev() int {
	return d.startRev
}

func (d *Diff) EndRev() int {
	return d.endRev
}

func (d *Diff) load(ctx context.Context) (api.DiffHTMLResponse, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.diff != nil {
		return *d.diff, nil
	}
	diff, err := d.pad.client.CreateDiffHTML(ctx, d.pad.id, d.startRev, d.endRev)
	if err != nil {
		return api.DiffHTMLResponse{}, err
	}
	d.diff = &diff
	return diff, nil
}

func (d *Diff) HTML(ctx context.Context) (string, error) {
	diff, err := d.load(ctx)
	return diff.HTML, err
}

func (d *Diff) AuthorIDs(ctx context.Context) ([]string, error) {
	diff, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	return diff.Authors, nil
}

func (d *Diff) Authors(ctx context.Context) ([]*Author, error) {
	ids, err := d.AuthorIDs(ctx)
	if err != nil {
		return nil, err
	}
	return authorsOf(d.pad.client, ids), nil
}
