package amqp

import (
	"encoding/json"
	"errors"
	"time"
)

// Change operations carried by ChangeMessage.Op.
const (
	OpAdded    = "added"
	OpUpdated  = "updated"
	OpDeleted  = "deleted"
	OpImported = "imported"
)

var ErrInvalidMessage = errors.New("invalid change message")

// ChangeMessage announces a completed mutation of the transaction collection.
// It carries identifiers only; consumers read the data from their own store.
type ChangeMessage struct {
	Op             string    `json:"op"`
	TransactionIDs []string  `json:"transactionIds"`
	Count          int       `json:"count"`
	Revision       uint64    `json:"revision"`
	Timestamp      time.Time `json:"timestamp"`
}

func NewChangeMessage(op string, ids []string, revision uint64) *ChangeMessage {
	if ids == nil {
		ids = []string{}
	}
	return &ChangeMessage{
		Op:             op,
		TransactionIDs: ids,
		Count:          len(ids),
		Revision:       revision,
		Timestamp:      time.Now(),
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON decodes a message and rejects unknown operations.
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	switch msg.Op {
	case OpAdded, OpUpdated, OpDeleted, OpImported:
	default:
		return nil, ErrInvalidMessage
	}
	return &msg, nil
}
