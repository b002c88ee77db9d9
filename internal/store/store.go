// Package store owns the authoritative in-memory transaction collection.
//
// Every mutation is written through to the persister before the mutating
// call returns, so the durable copy always matches the last completed
// mutation.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"expensetracker/internal/categories"
	"expensetracker/internal/core"
	"expensetracker/internal/log"
)

var (
	ErrNotFound   = errors.New("transaction not found")
	ErrValidation = errors.New("invalid transaction")
)

// Persister loads and saves the whole collection.
type Persister interface {
	Load(ctx context.Context) []core.Transaction
	Save(ctx context.Context, txs []core.Transaction)
}

type Store struct {
	mu       sync.RWMutex
	items    []core.Transaction
	revision uint64

	persist  Persister
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time
	newID    func() string
}

type Option func(*Store)

func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the default UUIDv4 generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func New(p Persister, opts ...Option) *Store {
	s := &Store{
		persist:  p,
		notifier: nopNotifier{},
		logger:   log.Default(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	s.logger = s.logger.WithComponent(log.ComponentStore)
	return s
}

// Hydrate replaces the collection with the persisted one and returns its
// size. It does not write back.
func (s *Store) Hydrate(ctx context.Context) int {
	txs := s.persist.Load(ctx)

	s.mu.Lock()
	s.items = slices.Clone(txs)
	s.revision++
	n := len(s.items)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Store hydrated", log.FieldCount, n)
	return n
}

func validate(d core.Draft) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if !categories.IsValid(d.Type, d.Category) {
		return fmt.Errorf("%w: %w: %q is not an %s category", ErrValidation, core.ErrInvalidCategory, d.Category, d.Type)
	}
	return nil
}

// Add assigns the draft a fresh id and creation time and prepends it.
func (s *Store) Add(ctx context.Context, d core.Draft) (core.Transaction, error) {
	d = d.Normalize()
	if err := validate(d); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	tx := core.Transaction{
		ID:        s.freshIDLocked(),
		CreatedAt: s.now().UnixMilli(),
	}.WithDraft(d)
	s.items = append([]core.Transaction{tx}, s.items...)
	rev := s.commitLocked(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Transaction added",
		log.NewFields().WithTransaction(tx.ID, string(tx.Type), tx.Amount.Cents, tx.Category).ToSlice()...)
	s.notifier.Notify(ctx, Change{Op: OpAdded, IDs: []string{tx.ID}, Revision: rev})
	return tx, nil
}

// Update replaces the stored transaction with the same id, keeping its
// creation time. An unknown id changes nothing and returns ErrNotFound.
func (s *Store) Update(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	d := tx.Draft().Normalize()
	if err := validate(d); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	i := s.indexLocked(tx.ID)
	if i < 0 {
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "Update of unknown transaction ignored", log.FieldTransactionID, tx.ID)
		return core.Transaction{}, fmt.Errorf("%w: %s", ErrNotFound, tx.ID)
	}
	updated := s.items[i].WithDraft(d)
	s.items = slices.Clone(s.items)
	s.items[i] = updated
	rev := s.commitLocked(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Transaction updated",
		log.NewFields().WithTransaction(updated.ID, string(updated.Type), updated.Amount.Cents, updated.Category).ToSlice()...)
	s.notifier.Notify(ctx, Change{Op: OpUpdated, IDs: []string{updated.ID}, Revision: rev})
	return updated, nil
}

// Delete removes the transaction with id and reports whether it existed.
// Deleting an unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.items = slices.Delete(slices.Clone(s.items), i, i+1)
	rev := s.commitLocked(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Transaction deleted", log.FieldTransactionID, id)
	s.notifier.Notify(ctx, Change{Op: OpDeleted, IDs: []string{id}, Revision: rev})
	return true
}

// Merge prepends imported transactions, keeping their order. Records whose
// id is already present (in the store or earlier in imported) are skipped.
// It returns the number of records added.
func (s *Store) Merge(ctx context.Context, imported []core.Transaction) int {
	s.mu.Lock()
	seen := make(map[string]struct{}, len(s.items)+len(imported))
	for _, t := range s.items {
		seen[t.ID] = struct{}{}
	}
	fresh := make([]core.Transaction, 0, len(imported))
	for _, t := range imported {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		fresh = append(fresh, t)
	}
	if len(fresh) == 0 {
		s.mu.Unlock()
		s.logger.InfoContext(ctx, "Import added nothing", log.FieldCount, len(imported))
		return 0
	}
	s.items = append(fresh, s.items...)
	rev := s.commitLocked(ctx)
	s.mu.Unlock()

	ids := make([]string, len(fresh))
	for i, t := range fresh {
		ids[i] = t.ID
	}
	s.logger.InfoContext(ctx, "Transactions imported",
		log.FieldCount, len(fresh), "skipped", len(imported)-len(fresh))
	s.notifier.Notify(ctx, Change{Op: OpImported, IDs: ids, Revision: rev})
	return len(fresh)
}

// FilterByCategory returns the transactions in category; an empty category
// returns the whole collection.
func (s *Store) FilterByCategory(category string) []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.FilterByCategory(s.items, category)
}

// All returns a copy of the collection in store order.
func (s *Store) All() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Snapshot returns a copy of the collection and the revision it belongs to.
func (s *Store) Snapshot() ([]core.Transaction, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items), s.revision
}

func (s *Store) Get(id string) (core.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.items[i], true
	}
	return core.Transaction{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Revision increases by one on every hydrate and mutation.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.items, func(t core.Transaction) bool { return t.ID == id })
}

func (s *Store) freshIDLocked() string {
	for {
		id := s.newID()
		if id != "" && s.indexLocked(id) < 0 {
			return id
		}
	}
}

// commitLocked bumps the revision and writes the collection through. The
// write ignores cancellation of ctx: once the in-memory mutation is applied
// the durable copy must follow it.
func (s *Store) commitLocked(ctx context.Context) uint64 {
	s.revision++
	s.persist.Save(context.WithoutCancel(ctx), slices.Clone(s.items))
	return s.revision
}
