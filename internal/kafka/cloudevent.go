package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CloudEvent is the JSON envelope used for all events on the wire.
type CloudEvent struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// NewCloudEvent wraps the given payload in a CloudEvent envelope.
func NewCloudEvent(source, eventType string, data interface{}) (*CloudEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return &CloudEvent{
		ID:     uuid.NewString(),
		Source: source,
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   raw,
	}, nil
}

// ParseCloudEvent decodes a CloudEvent envelope from raw message bytes.
func ParseCloudEvent(raw []byte) (CloudEvent, error) {
	var e CloudEvent
	if err := json.Unmarshal(raw, &e); err != nil {
		return CloudEvent{}, fmt.Errorf("failed to parse cloud event: %w", err)
	}
	return e, nil
}

// ParseData unmarshals the event payload into v.
func (e *CloudEvent) ParseData(v interface{}) error {
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("failed to parse event data: %w", err)
	}
	return nil
}
