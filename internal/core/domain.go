package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// DateLayout is the wire format of a transaction date.
const DateLayout = "2006-01-02"

const maxDescriptionLen = 200

type (
	TransactionType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Draft is a transaction as entered by the user, before the store
	// assigns its identity.
	Draft struct {
		Type        TransactionType
		Amount      Money
		Description string
		Category    string
		Date        Date
	}

	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Date        Date            `json:"date"`
		CreatedAt   int64           `json:"createdAt"` // Unix milliseconds
	}
)

var (
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrEmptyCategory      = errors.New("empty category")
	ErrInvalidCategory    = errors.New("category does not match transaction type")
	ErrInvalidDate        = errors.New("invalid date")
	ErrEmptyID            = errors.New("empty transaction id")
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// ParseTransactionType accepts "income" or "expense" in any case.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrInvalidType
	}
	return t, nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Draft) Validate() error {
	if !d.Type.Valid() {
		return ErrInvalidType
	}
	if err := d.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(d.Description)) == 0 {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(d.Description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrEmptyCategory
	}
	return d.Date.Validate()
}

// Normalize trims user-entered text fields.
func (d Draft) Normalize() Draft {
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.TrimSpace(d.Category)
	return d
}

// Draft returns the user-editable part of the transaction.
func (t Transaction) Draft() Draft {
	return Draft{
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description,
		Category:    t.Category,
		Date:        t.Date,
	}
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	return t.Draft().Validate()
}

// WithDraft returns a copy of t carrying the fields of d. Identity and
// creation time are kept.
func (t Transaction) WithDraft(d Draft) Transaction {
	t.Type = d.Type
	t.Amount = d.Amount
	t.Description = d.Description
	t.Category = d.Category
	t.Date = d.Date
	return t
}
