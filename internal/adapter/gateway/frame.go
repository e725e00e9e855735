package gateway

import "encoding/json"

// FrameType identifies the kind of frame sent over the WebSocket connection.
type FrameType string

const (
	FrameTypeRequest  FrameType = "request"
	FrameTypeResponse FrameType = "response"
	FrameTypeEvent    FrameType = "event"
)

// Frame is the envelope exchanged between client and server over WebSocket.
type Frame struct {
	Type    FrameType       `json:"type"`
	ID      uint64          `json:"id,omitempty"`       // request/response correlation ID
	Method  string          `json:"method,omitempty"`   // command name (request only)
	Event   string          `json:"event,omitempty"`    // event name (event only)
	EventID string          `json:"event_id,omitempty"` // bus event ID (event only)
	Payload json.RawMessage `json:"payload,omitempty"`  // command args, result, or event payload
	Error   string          `json:"error,omitempty"`    // error message (response only)
}
