package amqp

import (
	"encoding/json"
	"time"

	"paytrack/internal/core"
)

// Event kinds carried on the payment event queue.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
	EventCleared = "cleared"
)

// PaymentEventMessage describes one payment change. The full payment
// snapshot travels with the message because the worker has no access to the
// server's data directory. Cleared events carry an empty payment.
type PaymentEventMessage struct {
	Kind      string       `json:"kind"`
	Payment   core.Payment `json:"payment"`
	Timestamp time.Time    `json:"timestamp"`
}

func NewPaymentEventMessage(kind string, p core.Payment) *PaymentEventMessage {
	return &PaymentEventMessage{
		Kind:      kind,
		Payment:   p,
		Timestamp: time.Now(),
	}
}

func (m *PaymentEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func PaymentEventMessageFromJSON(data []byte) (*PaymentEventMessage, error) {
	var msg PaymentEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
