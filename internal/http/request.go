package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"expensetracker/internal/core"
	"expensetracker/internal/persistence"
)

const (
	maxBodyBytes   = 64 << 10
	maxImportBytes = 10 << 20
)

var (
	errMalformedBody = errors.New("malformed request body")
	errBodyTooLarge  = errors.New("request body too large")
	errInvalidField  = errors.New("invalid field")
)

// transactionRequest is the body of POST and PUT on /api/transactions.
// Amount may be a JSON number or user-entered text such as "12,50".
type transactionRequest struct {
	Type        string          `json:"type"`
	Amount      json.RawMessage `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", errMalformedBody)
	}
	return nil
}

// Draft converts the request into a domain draft. Category membership is
// checked by the store.
func (req transactionRequest) Draft() (core.Draft, error) {
	typ, err := core.ParseTransactionType(req.Type)
	if err != nil {
		return core.Draft{}, fmt.Errorf("%w: type: %w", errInvalidField, err)
	}
	amount, err := parseAmountField(req.Amount)
	if err != nil {
		return core.Draft{}, fmt.Errorf("%w: amount: %w", errInvalidField, err)
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Draft{}, fmt.Errorf("%w: date: %w", errInvalidField, err)
	}
	return core.Draft{
		Type:        typ,
		Amount:      amount,
		Description: sanitizeInput(req.Description),
		Category:    sanitizeInput(req.Category),
		Date:        date,
	}, nil
}

func parseAmountField(raw json.RawMessage) (core.Money, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return core.Money{}, core.ErrInvalidAmount
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return core.Money{}, core.ErrInvalidAmount
		}
		return core.ParseAmount(s)
	}
	var m core.Money
	if err := m.UnmarshalJSON(raw); err != nil {
		return core.Money{}, err
	}
	return m, m.Validate()
}

// sanitizeInput trims s and drops control characters other than tab and
// newlines.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

// readBody reads at most limit bytes of the request body.
func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return data, nil
}

// readUpload reads the "file" part of a multipart import form.
func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: missing file part", errMalformedBody)
	}
	defer f.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".json") {
		return nil, fmt.Errorf("%w: %s is not a .json file", persistence.ErrInvalidData, header.Filename)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", persistence.ErrFileRead, err)
	}
	return data, nil
}
