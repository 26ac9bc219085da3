package amqp

import (
	"encoding/json"
	"time"
)

const (
	OpSync   Op = "sync"
	OpDelete Op = "delete"
)

// Op tells the worker what to do with the referenced transaction.
type Op string

// Message is a lightweight export instruction. It carries only the
// transaction id; the worker fetches the full record from the store.
type Message struct {
	Op            Op        `json:"op"`
	TransactionID string    `json:"transactionId"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewMessage(op Op, transactionID string) *Message {
	return &Message{
		Op:            op,
		TransactionID: transactionID,
		Timestamp:     time.Now(),
	}
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
