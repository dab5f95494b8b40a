package hooks

import (
	"sync"

	"github.com/ether/etherpad-go-client/lib/hooks/events"
	uuid2 "github.com/google/uuid"
)

const (
	BeforeCallString = "beforeCall"
	AfterCallString  = "afterCall"
	CallErrorString  = "callError"
)

type Hook struct {
	mu    sync.RWMutex
	hooks map[string]map[string]func(ctx any)
}

func NewHook() *Hook {
	return &Hook{
		hooks: make(map[string]map[string]func(ctx any)),
	}
}

func (h *Hook) EnqueueBeforeCallHook(cb func(ctx *events.CallContext)) string {
	return h.EnqueueHook(BeforeCallString, func(ctx any) {
		if callCtx, ok := ctx.(*events.CallContext); ok {
			cb(callCtx)
		}
	})
}

func (h *Hook) EnqueueAfterCallHook(cb func(ctx *events.CallContext)) string {
	return h.EnqueueHook(AfterCallString, func(ctx any) {
		if callCtx, ok := ctx.(*events.CallContext); ok {
			cb(callCtx)
		}
	})
}

func (h *Hook) EnqueueCallErrorHook(cb func(ctx *events.CallContext)) string {
	return h.EnqueueHook(CallErrorString, func(ctx any) {
		if callCtx, ok := ctx.(*events.CallContext); ok {
			cb(callCtx)
		}
	})
}

func (h *Hook) EnqueueHook(key string, ctx func(ctx any)) string {
	var uuid = uuid2.New()
	h.mu.Lock()
	defer h.mu.Unlock()
	var _, ok = h.hooks[key]

	if !ok {
		h.hooks[key] = make(map[string]func(ctx any))
	}

	h.hooks[key][uuid.String()] = ctx

	return uuid.String()
}

func (h *Hook) DequeueHook(key, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.hooks[key], id)
}

func (h *Hook) ExecuteHooks(key string, ctx any) {
	h.mu.RLock()
	registered := make([]func(ctx any), 0, len(h.hooks[key]))
	for _, v := range h.hooks[key] {
		registered = append(registered, v)
	}
	h.mu.RUnlock()

	for _, v := range registered {
		v(ctx)
	}
}
