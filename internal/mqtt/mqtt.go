// Package mqtt provides MQTT telemetry publishing with abstraction for
// testing. Telemetry is observability only: nothing arrives over MQTT
// that could mutate countdown state.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sweeney/countdown-timer/internal/countdown"
)

// Topic is the MQTT topic for countdown cycle events.
const Topic = "home/countdown/timer/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "home/countdown/timer/system"

// Timer event types.
const (
	EventExpired       = "EXPIRED"        // countdown reached zero
	EventReload        = "RELOAD"         // finale finished, elapsed reloaded
	EventReset         = "RESET"          // button reloaded the countdown
	EventTargetChanged = "TARGET_CHANGED" // dial moved to a new ladder level
)

// TimerEvent is one countdown cycle event to be published.
type TimerEvent struct {
	Timestamp time.Time
	Type      string
	State     countdown.State
}

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a timer event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event TimerEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Countdown CountdownPayload `json:"countdown"`
}

// CountdownPayload contains the timer event details.
type CountdownPayload struct {
	Timestamp string          `json:"timestamp"`
	Event     string          `json:"event"`
	Elapsed   DurationPayload `json:"elapsed"`
	Target    DurationPayload `json:"target"`
}

// DurationPayload carries one duration both as raw seconds and as the
// clock string the display shows.
type DurationPayload struct {
	Seconds uint32 `json:"seconds"`
	Clock   string `json:"clock"`
}

func durationPayload(sec uint32) DurationPayload {
	d := countdown.Split(sec)
	return DurationPayload{
		Seconds: sec,
		Clock:   fmt.Sprintf("%02d:%02d:%02d", d.Hours, d.Minutes, d.Seconds),
	}
}

// FormatPayload creates the JSON payload for a timer event.
func FormatPayload(event TimerEvent) ([]byte, error) {
	payload := Payload{
		Countdown: CountdownPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Type,
			Elapsed:   durationPayload(event.State.Elapsed),
			Target:    durationPayload(event.State.Target),
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
