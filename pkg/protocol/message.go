// Package protocol defines the JSON telemetry messages the engine publishes to
// dashboards and watchers.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Engine → client messages
	TypeFrame    MessageType = "frame"    // Per-frame interaction state
	TypePointer  MessageType = "pointer"  // Pointer press/release/click event
	TypeTeleport MessageType = "teleport" // Committed teleport
	TypeSession  MessageType = "session"  // Session started/ended

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// Vec3 is a position on the wire, [x, y, z] in metres.
type Vec3 [3]float64

// =============================================================================
// Engine → Client Message Types
// =============================================================================

// FrameData is the interaction state after one frame
type FrameData struct {
	Frame     uint64          `json:"frame"`
	Session   SessionData     `json:"session"`
	Camera    Vec3            `json:"camera"`
	Pointers  []PointerState  `json:"pointers,omitempty"`
	Teleports []TeleportState `json:"teleports,omitempty"`
}

// PointerState is one straight pointer
type PointerState struct {
	Device     int     `json:"device"`
	Handedness string  `json:"handedness"`
	Pressed    bool    `json:"pressed"`
	Target     string  `json:"target,omitempty"` // object handle
	Cursor     *Vec3   `json:"cursor,omitempty"` // nil when hidden
	RayLength  float64 `json:"ray_length"`
	RayVisible bool    `json:"ray_visible"`
	Color      string  `json:"color"` // hex, press colour while pressed
}

// TeleportState is one teleport arc
type TeleportState struct {
	Device     int     `json:"device"`
	State      string  `json:"state"` // "idle", "aiming"
	Visible    bool    `json:"visible"`
	Visibility float64 `json:"visibility"`
	Aim        Vec3    `json:"aim"`
	Cursor     *Vec3   `json:"cursor,omitempty"`
	Segment    int     `json:"segment,omitempty"`
}

// SessionData is the session state
type SessionData struct {
	Active           bool      `json:"active"`
	ID               string    `json:"id,omitempty"`
	ReferenceSpace   string    `json:"reference_space,omitempty"`
	FrameRates       []float64 `json:"frame_rates,omitempty"`
	HighestFrameRate float64   `json:"highest_frame_rate,omitempty"`
	TrackedImages    []int     `json:"tracked_images,omitempty"`
}

// PointerEventData is a pointer event
type PointerEventData struct {
	Device int    `json:"device"`
	Event  string `json:"event"`
	Object string `json:"object,omitempty"`
	Point  *Vec3  `json:"point,omitempty"`
}

// TeleportData is a committed teleport
type TeleportData struct {
	ID          string `json:"id"`
	Device      int    `json:"device"`
	Destination Vec3   `json:"destination"`
	Point       Vec3   `json:"point"`
	Object      string `json:"object"`
}

// =============================================================================
// Bidirectional Message Types
// =============================================================================

// PingData contains ping information
type PingData struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
}

// PongData contains pong response
type PongData struct {
	ID        string `json:"id"`
	PingTS    int64  `json:"ping_ts"`
	PongTS    int64  `json:"pong_ts"`
	LatencyMs int64  `json:"latency_ms"`
}

// NewPong answers a ping
func NewPong(ping PingData) (*Message, error) {
	now := time.Now().UnixMilli()
	return NewMessage(TypePong, PongData{
		ID:        ping.ID,
		PingTS:    ping.Timestamp,
		PongTS:    now,
		LatencyMs: now - ping.Timestamp,
	})
}
