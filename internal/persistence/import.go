package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
)

var (
	// ErrInvalidData is returned for any import that is not a JSON array of
	// well-formed transactions. Nothing is imported when it is returned.
	ErrInvalidData = errors.New("invalid transaction data format")

	// ErrFileRead reports that the import source could not be read. It
	// wraps ErrInvalidData so callers can treat both the same way.
	ErrFileRead = fmt.Errorf("%w: failed to read file", ErrInvalidData)
)

// wireTransaction mirrors the stored object with every field optional, so
// missing and mistyped fields can be told apart from zero values.
type wireTransaction struct {
	ID          *string         `json:"id"`
	Type        *string         `json:"type"`
	Amount      json.RawMessage `json:"amount"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	Date        *string         `json:"date"`
	CreatedAt   *json.Number    `json:"createdAt"`
}

// Decode parses a JSON array of transactions. Every element must carry a
// string id, an income or expense type, a positive numeric amount, string
// description and category, and a YYYY-MM-DD date; createdAt is optional.
// A single bad element rejects the whole input.
func Decode(data []byte) ([]core.Transaction, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("%w: top-level value is not an array", ErrInvalidData)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	out := make([]core.Transaction, 0, len(elems))
	for i, raw := range elems {
		tx, err := decodeOne(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrInvalidData, i, err)
		}
		out = append(out, tx)
	}
	return out, nil
}

func decodeOne(raw json.RawMessage) (core.Transaction, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return core.Transaction{}, errors.New("not an object")
	}

	var w wireTransaction
	if err := json.Unmarshal(raw, &w); err != nil {
		return core.Transaction{}, err
	}

	switch {
	case w.ID == nil:
		return core.Transaction{}, errors.New("missing id")
	case w.Type == nil:
		return core.Transaction{}, errors.New("missing type")
	case w.Amount == nil:
		return core.Transaction{}, errors.New("missing amount")
	case w.Description == nil:
		return core.Transaction{}, errors.New("missing description")
	case w.Category == nil:
		return core.Transaction{}, errors.New("missing category")
	case w.Date == nil:
		return core.Transaction{}, errors.New("missing date")
	}

	tx := core.Transaction{
		ID:          *w.ID,
		Type:        core.TransactionType(*w.Type),
		Description: *w.Description,
		Category:    *w.Category,
	}
	if !tx.Type.Valid() {
		return core.Transaction{}, core.ErrInvalidType
	}
	if err := tx.Amount.UnmarshalJSON(w.Amount); err != nil {
		return core.Transaction{}, err
	}
	if err := tx.Amount.Validate(); err != nil {
		return core.Transaction{}, err
	}
	date, err := core.ParseDate(*w.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	tx.Date = date

	if w.CreatedAt != nil {
		f, err := w.CreatedAt.Float64()
		if err != nil {
			return core.Transaction{}, fmt.Errorf("createdAt: %v", err)
		}
		tx.CreatedAt = int64(f)
	}
	return tx, nil
}

// Import reads an export from r. Read failures return ErrFileRead; anything
// that fails validation returns ErrInvalidData. The gateway does not merge
// or deduplicate; that is up to the caller.
func (g *Gateway) Import(ctx context.Context, r io.Reader) ([]core.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		log.LogError(ctx, g.logger, "Failed to read import", err, log.OpImport, log.NewFields())
		return nil, fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	txs, err := Decode(data)
	if err != nil {
		g.logger.WarnContext(ctx, "Rejected import", log.FieldError, err.Error())
		return nil, err
	}

	g.logger.InfoContext(ctx, "Import parsed", log.FieldCount, len(txs))
	return txs, nil
}

// ImportFile imports the .json file at path.
func (g *Gateway) ImportFile(ctx context.Context, path string) ([]core.Transaction, error) {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return nil, fmt.Errorf("%w: %s is not a .json file", ErrInvalidData, filepath.Base(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	defer f.Close()

	return g.Import(ctx, f)
}
