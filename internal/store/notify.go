package store

import "context"

type Op string

const (
	OpAdded    Op = "added"
	OpUpdated  Op = "updated"
	OpDeleted  Op = "deleted"
	OpImported Op = "imported"
)

// Change describes a completed mutation.
type Change struct {
	Op       Op
	IDs      []string
	Revision uint64
}

// Notifier is told about every mutation after it has been persisted.
// Implementations must not call back into the store.
type Notifier interface {
	Notify(ctx context.Context, c Change)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, c Change)

func (f NotifierFunc) Notify(ctx context.Context, c Change) { f(ctx, c) }

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Change) {}
