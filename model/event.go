package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Location sources recorded on each persisted event.
const (
	LocationSourceDevice        = "device"
	LocationSourceServerDefault = "server-default"
)

// Event is a normalized, timestamped, location-resolved device report.
// Events are append-only: created on ingestion, immutable thereafter, never
// deleted by this system.
type Event struct {
	gorm.Model
	DeviceID       string         `json:"deviceId"`
	EventType      string         `json:"event"`
	DeviceTime     string         `json:"timestamp,omitempty"`
	ReceivedAt     time.Time      `json:"receivedAt"`
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	LocationSource string         `json:"locationSource"`
	Payload        datatypes.JSON `json:"payload,omitempty"`
}

// IsFall reports whether the event is the critical type that triggers an
// outbound alert. The comparison is case-insensitive.
func (e *Event) IsFall() bool {
	return strings.EqualFold(e.EventType, "fall")
}
