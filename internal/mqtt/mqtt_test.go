package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/countdown-timer/internal/countdown"
)

func TestFormatPayload(t *testing.T) {
	event := TimerEvent{
		Timestamp: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		Type:      EventExpired,
		State:     countdown.State{Elapsed: 0, Target: 180},
	}

	data, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("FormatPayload: %v", err)
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	c := payload.Countdown
	if c.Timestamp != "2026-03-15T10:30:00Z" {
		t.Errorf("timestamp: got %q", c.Timestamp)
	}
	if c.Event != "EXPIRED" {
		t.Errorf("event: got %q", c.Event)
	}
	if c.Elapsed.Seconds != 0 || c.Elapsed.Clock != "00:00:00" {
		t.Errorf("elapsed: got %+v", c.Elapsed)
	}
	if c.Target.Seconds != 180 || c.Target.Clock != "00:03:00" {
		t.Errorf("target: got %+v", c.Target)
	}
}

func TestFormatPayloadClockReduction(t *testing.T) {
	event := TimerEvent{
		Timestamp: time.Now(),
		Type:      EventTargetChanged,
		State:     countdown.State{Elapsed: 3661, Target: 1860},
	}

	data, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("FormatPayload: %v", err)
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Countdown.Elapsed.Clock != "01:01:01" {
		t.Errorf("elapsed clock: got %q, want 01:01:01", payload.Countdown.Elapsed.Clock)
	}
	if payload.Countdown.Target.Clock != "00:31:00" {
		t.Errorf("target clock: got %q, want 00:31:00", payload.Countdown.Target.Clock)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}

	var payload SystemPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.System.Event != "SHUTDOWN" {
		t.Errorf("event: got %q", payload.System.Event)
	}
	if payload.System.Reason != "SIGTERM" {
		t.Errorf("reason: got %q", payload.System.Reason)
	}
}

func TestFormatSystemPayloadOmitsEmptyReason(t *testing.T) {
	data, err := FormatSystemPayload(SystemEvent{
		Timestamp: time.Now(),
		Event:     "HEARTBEAT",
	})
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}

	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, present := raw["system"]["reason"]; present {
		t.Error("empty reason should be omitted")
	}
}

func TestFormatSystemPayloadRawPassthrough(t *testing.T) {
	raw := []byte(`{"status":{"event":"STARTUP"}}`)
	data, err := FormatSystemPayload(SystemEvent{RawPayload: raw})
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}
	if string(data) != string(raw) {
		t.Errorf("raw payload not passed through: got %s", data)
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()

	events := []TimerEvent{
		{Timestamp: time.Now(), Type: EventExpired, State: countdown.State{Target: 180}},
		{Timestamp: time.Now(), Type: EventReload, State: countdown.State{Elapsed: 180, Target: 180}},
	}
	for _, e := range events {
		if err := f.Publish(e); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	got := f.EventTypes()
	if len(got) != 2 || got[0] != "EXPIRED" || got[1] != "RELOAD" {
		t.Errorf("EventTypes = %v", got)
	}
	if len(f.Payloads) != 2 {
		t.Errorf("payloads = %d, want 2", len(f.Payloads))
	}
}

func TestFakePublisherError(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("broker down")

	if err := f.Publish(TimerEvent{Type: EventReset}); err == nil {
		t.Fatal("expected error")
	}
	if len(f.Events) != 0 {
		t.Error("failed publish should not record the event")
	}
}

func TestFakePublisherReset(t *testing.T) {
	f := NewFakePublisher()
	f.Publish(TimerEvent{Type: EventReset})
	f.PublishSystem(SystemEvent{Event: "STARTUP"})
	f.Connected = true

	f.Reset()
	if len(f.Events) != 0 || len(f.SystemEvents) != 0 || f.Connected {
		t.Error("Reset did not clear state")
	}
}
