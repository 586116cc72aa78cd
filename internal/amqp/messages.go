package amqp

import (
	"encoding/json"
	"time"

	"ledgerly/internal/core"
)

// ChangeMessage announces that a transaction row changed in the
// spreadsheet. It carries only identity, not row data; consumers re-fetch
// the authoritative state, which is the only consistency model the
// spreadsheet backend offers anyway.
type ChangeMessage struct {
	Kind      core.Kind `json:"kind"`
	Op        string    `json:"op"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(kind core.Kind, op, id string) *ChangeMessage {
	return &ChangeMessage{
		Kind:      kind,
		Op:        op,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
