package amqp

import (
	"encoding/json"
	"errors"
	"time"
)

// ExpenseRecordedMessage announces a newly recorded expense.
// Only the ID travels; consumers load the full expense from the database.
type ExpenseRecordedMessage struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

var ErrMissingExpenseID = errors.New("message has no expense id")

func NewExpenseRecordedMessage(id string) *ExpenseRecordedMessage {
	return &ExpenseRecordedMessage{
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseRecordedMessageFromJSON decodes and validates a message body.
func ExpenseRecordedMessageFromJSON(data []byte) (*ExpenseRecordedMessage, error) {
	var msg ExpenseRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.ID == "" {
		return nil, ErrMissingExpenseID
	}
	return &msg, nil
}
