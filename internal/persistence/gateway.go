// Package persistence moves the transaction collection between memory, the
// durable key/value store, and export files.
package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/storage/file"
)

// StorageKey is the fixed key the collection is stored under.
const StorageKey = "expense-tracker-transactions"

type Gateway struct {
	kv     KVStore
	key    string
	logger *log.Logger
	now    func() time.Time
}

type Option func(*Gateway)

// WithKey overrides StorageKey.
func WithKey(key string) Option {
	return func(g *Gateway) { g.key = key }
}

func WithLogger(l *log.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// WithClock sets the time source used for export filenames.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

func NewGateway(kv KVStore, opts ...Option) *Gateway {
	g := &Gateway{
		kv:     kv,
		key:    StorageKey,
		logger: log.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.WithComponent(log.ComponentPersistence)
	return g
}

// Load reads the stored collection. A missing key, a store failure or
// malformed data all yield an empty collection; failures are only logged.
func (g *Gateway) Load(ctx context.Context) []core.Transaction {
	raw, ok, err := g.kv.Get(ctx, g.key)
	if err != nil {
		log.LogError(ctx, g.logger, "Failed to load transactions", err, log.OpLoad, log.NewFields())
		return []core.Transaction{}
	}
	if !ok || len(bytes.TrimSpace(raw)) == 0 {
		return []core.Transaction{}
	}

	txs, err := Decode(raw)
	if err != nil {
		log.LogError(ctx, g.logger, "Stored transactions are malformed, starting empty", err, log.OpLoad,
			log.NewFields())
		return []core.Transaction{}
	}

	g.logger.DebugContext(ctx, "Transactions loaded", log.FieldKey, g.key, log.FieldCount, len(txs))
	return txs
}

// Save replaces the stored collection. Failures are logged and swallowed:
// persistence is best effort, with no retry.
func (g *Gateway) Save(ctx context.Context, txs []core.Transaction) {
	if txs == nil {
		txs = []core.Transaction{}
	}
	raw, err := json.Marshal(txs)
	if err != nil {
		log.LogError(ctx, g.logger, "Failed to encode transactions", err, log.OpSave, log.NewFields())
		return
	}
	if err := g.kv.Put(ctx, g.key, raw); err != nil {
		log.LogError(ctx, g.logger, "Failed to save transactions", err, log.OpSave,
			log.NewFields().WithComponent(log.ComponentStorage))
		return
	}
	g.logger.DebugContext(ctx, "Transactions saved", log.FieldKey, g.key, log.FieldCount, len(txs))
}

// ExportFilename is the download name for an export taken at t.
func ExportFilename(t time.Time) string {
	return "expense-tracker-" + t.UTC().Format(core.DateLayout) + ".json"
}

// Filename returns the export filename for the gateway's current date.
func (g *Gateway) Filename() string {
	return ExportFilename(g.now())
}

// Export writes txs to w as an indented JSON array.
func (g *Gateway) Export(w io.Writer, txs []core.Transaction) error {
	if txs == nil {
		txs = []core.Transaction{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(txs); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// ExportToFile writes the export into dir under ExportFilename and returns
// the file's path. An existing export from the same day is overwritten.
func (g *Gateway) ExportToFile(dir string, txs []core.Transaction) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, g.Filename())

	var buf bytes.Buffer
	if err := g.Export(&buf, txs); err != nil {
		return "", err
	}
	if err := file.WriteAtomic(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}

	g.logger.Info("Transactions exported", log.FieldFile, path, log.FieldCount, len(txs))
	return path, nil
}
