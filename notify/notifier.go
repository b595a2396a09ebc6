// Package notify formats and sends outbound alerts for critical events.
package notify

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/eppranavaudupa/smartBliendStick/model"
	"github.com/eppranavaudupa/smartBliendStick/util"
)

// Sender delivers a formatted alert message over an external notification
// channel. Implement this to add new channels (SMS, email, webhook, etc.).
type Sender interface {
	// Type returns the channel type this sender handles (e.g. "sms").
	Type() string
	// Send delivers the message body and returns the provider message id.
	Send(body string) (sid string, err error)
}

// Dispatcher decides how a critical event is announced. A nil sender means
// the notification channel is not configured: dispatch is skipped with a
// logged warning, never an error.
type Dispatcher struct {
	sender Sender
}

// NewDispatcher creates a Dispatcher around the given sender. sender may be
// nil when notification credentials are absent.
func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// DispatchAsync sends the alert for ev on a detached goroutine. The caller
// never waits on the outcome; send failures are observed only by the logging
// sink. There is no retry.
func (d *Dispatcher) DispatchAsync(ev model.Event) {
	go d.Dispatch(ev)
}

// Dispatch formats and sends the alert for ev synchronously. Exposed for
// tests; production ingestion always goes through DispatchAsync.
func (d *Dispatcher) Dispatch(ev model.Event) {
	msg := BuildAlertMessage(ev)

	if d.sender == nil {
		log.Println("notification channel not configured, skipping alert")
		util.LogAuditEvent(util.AuditEvent{
			EventType: util.EventAlertSkipped,
			DeviceID:  ev.DeviceID,
			Message:   "Notification channel not configured",
		})
		return
	}

	sid, err := d.sender.Send(msg)
	if err != nil {
		log.Printf("alert send failed: %v", err)
		util.LogAuditEvent(util.AuditEvent{
			EventType: util.EventAlertFailed,
			DeviceID:  ev.DeviceID,
			Message:   fmt.Sprintf("Alert send failed: %v", err),
		})
		return
	}

	log.Printf("alert sent, sid: %s", sid)
	util.LogAuditEvent(util.AuditEvent{
		EventType: util.EventAlertSent,
		DeviceID:  ev.DeviceID,
		Message:   fmt.Sprintf("Alert sent via %s, sid %s", d.sender.Type(), sid),
		Details:   map[string]interface{}{"sid": sid},
	})
}

// BuildAlertMessage constructs the human-readable alert text: device
// identifier (or "unknown"), event timestamp (device-supplied when present,
// else server-received time), and a map link to the resolved location.
func BuildAlertMessage(ev model.Event) string {
	deviceID := ev.DeviceID
	if deviceID == "" {
		deviceID = "unknown"
	}

	timestamp := ev.DeviceTime
	if timestamp == "" {
		timestamp = ev.ReceivedAt.Format(time.RFC3339)
	}

	return fmt.Sprintf("ALERT: Device %s reported a FALL!\nTime: %s\nLocation: %s",
		deviceID, timestamp, MapLink(ev.Latitude, ev.Longitude))
}

// MapLink builds a Google Maps URL for the given coordinates.
func MapLink(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%s,%s",
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lng, 'f', -1, 64))
}
