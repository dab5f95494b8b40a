package events

import "time"

// CallContext describes a single API call. Hooks receive the same pointer for
// the before and after events of a call.
type CallContext struct {
	RequestID string
	Operation string
	Verb      string
	Version   string
	Started   time.Time
	Duration  time.Duration
	// Code is the envelope code, -1 when no envelope was parsed.
	Code int
	Err  error
}
