package models

type createOptions struct {
	mapper string
	name   *string
}

// CreateOption configures the creation of groups and authors.
type CreateOption func(*createOptions)

// WithMapper makes creation idempotent: the same mapper always yields the same entity.
func WithMapper(mapper string) CreateOption {
	return func(o *createOptions) { o.mapper = mapper }
}

// WithName sets an author's display name. Groups ignore it.
func WithName(name string) CreateOption {
	return func(o *createOptions) { o.name = &name }
}

type padOptions struct {
	text *string
	rev  *int
}

type PadOption func(*padOptions)

// WithText sets the initial text of a pad that gets created.
func WithText(text string) PadOption {
	return func(o *padOptions) { o.text = &text }
}

// AtRevision pins the pad to rev; Text and HTML then read that revision.
func AtRevision(rev int) PadOption {
	return func(o *padOptions) { o.rev = &rev }
}

func collectPadOptions(opts []PadOption) padOptions {
	var o padOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func collectCreateOptions(opts []CreateOption) createOptions {
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
