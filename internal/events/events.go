package events

import (
	"encoding/json"
	"time"
)

// Event types published by the analytics store.
const (
	TypeSearchTracked  = "search.tracked"
	TypeShareTracked   = "share.tracked"
	TypeAnalyticsReset = "analytics.reset"
	TypePing           = "ping"
)

// Event is the envelope written to stream subscribers.
type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MakeEvent encodes an envelope. data that fails to marshal is dropped.
func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			raw = b
		}
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}

// Publisher accepts encoded events.
type Publisher interface {
	Publish(evt string)
}
