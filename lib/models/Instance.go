package models

import (
	"context"
	"io"

	"github.com/ether/etherpad-go-client/lib/api"
	"github.com/ether/etherpad-go-client/lib/api/stats"
)

// Instance is the entry point to an Etherpad server. It holds standalone pads
// directly and creates groups, authors and sessions.
type Instance struct {
	padded
}

// Connect resolves hostOrAlias ("local", "public", a port or a URL) and
// returns an Instance talking to it.
func Connect(hostOrAlias, apiKey string, opts ...api.Option) (*Instance, error) {
	client, err := api.NewClient(hostOrAlias, apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return NewInstance(client), nil
}

// ConnectWithKeyFile reads the API key from r, typically the server's APIKEY.txt.
func ConnectWithKeyFile(hostOrAlias string, r io.Reader, opts ...api.Option) (*Instance, error) {
	client, err := api.NewClientFromReader(hostOrAlias, r, opts...)
	if err != nil {
		return nil, err
	}
	return NewInstance(client), nil
}

func NewInstance(client *api.Client) *Instance {
	return &Instance{padded: padded{client: client}}
}

func (i *Instance) Client() *api.Client {
	return i.client
}

// Group returns the group mapped to mapper, creating it on first use.
func (i *Instance) Group(ctx context.Context, mapper string) (*Group, error) {
	return createGroup(ctx, i.client, []CreateOption{WithMapper(mapper)})
}

func (i *Instance) GetGroup(id string) *Group {
	return newGroup(i.client, id, "")
}

func (i *Instance) CreateGroup(ctx context.Context, opts ...CreateOption) (*Group, error) {
	return createGroup(ctx, i.client, opts)
}

// Author returns the author mapped to mapper, creating it on first use.
func (i *Instance) Author(ctx context.Context, mapper string, opts ...CreateOption) (*Author, error) {
	return createAuthor(ctx, i.client, append(opts, WithMapper(mapper)))
}

func (i *Instance) GetAuthor(id string) *Author {
	return newAuthor(i.client, id, "")
}

func (i *Instance) CreateAuthor(ctx context.Context, opts ...CreateOption) (*Author, error) {
	return createAuthor(ctx, i.client, opts)
}

// GetSession wraps an existing session; its info is fetched on first use.
func (i *Instance) GetSession(id string) *Session {
	return newSession(i.client, id, nil)
}

// PadIDs lists every pad of the server, group pads included.
func (i *Instance) PadIDs(ctx context.Context) ([]string, error) {
	return i.client.ListAllPads(ctx)
}

func (i *Instance) GroupIDs(ctx context.Context) ([]string, error) {
	return i.client.ListAllGroups(ctx)
}

func (i *Instance) Stats(ctx context.Context) (api.Stats, error) {
	return i.client.GetStats(ctx)
}

// Health combines the server's /health report with a check of the API key.
func (i *Instance) Health(ctx context.Context) (stats.HealthResponse, error) {
	local := stats.Aggregate(ctx, "etherpad-client", []stats.Checker{
		api.TokenChecker{Client: i.client},
		api.StatsChecker{Client: i.client},
	})
	remote, err := i.client.Health(ctx)
	if err != nil {
		return local, err
	}
	return local.Merge("server:", remote), nil
}

// Secure reports whether the connection uses HTTPS.
func (i *Instance) Secure() bool {
	return i.client.Secure()
}

func (i *Instance) APIKey() string {
	return i.client.APIKey()
}
