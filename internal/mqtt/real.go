package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// replayCapacity bounds how many undelivered messages are held while the
// broker is unreachable. A full countdown cycle produces a handful of
// events, so this covers hours of outage.
const replayCapacity = 64

// RealPublisher publishes to an actual MQTT broker. Messages that cannot
// be delivered are queued and replayed when the connection comes back.
type RealPublisher struct {
	client paho.Client

	mu    sync.Mutex
	queue *replayQueue
}

// NewRealPublisher creates a publisher connected to the given broker.
func NewRealPublisher(broker string) (*RealPublisher, error) {
	p := &RealPublisher{
		queue: newReplayQueue(replayCapacity),
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("countdown-timer").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(p.onConnect)

	p.client = paho.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return p, nil
}

// Publish sends a timer event to the MQTT broker.
// QoS 0 (at-most-once), not retained.
func (p *RealPublisher) Publish(event TimerEvent) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	return p.send(Topic, payload, 0, false)
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
// QoS 1 (at-least-once) - shutdown events especially should be delivered.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return p.send(TopicSystem, payload, 1, event.Retained)
}

// send delivers one message, queueing it for replay if the broker is
// unreachable or the publish times out.
func (p *RealPublisher) send(topic string, payload []byte, qos byte, retained bool) error {
	if !p.client.IsConnected() {
		p.enqueue(topic, payload, qos, retained)
		return fmt.Errorf("not connected, queued for replay")
	}

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		p.enqueue(topic, payload, qos, retained)
		return fmt.Errorf("publish timeout, queued for replay")
	}
	if err := token.Error(); err != nil {
		p.enqueue(topic, payload, qos, retained)
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (p *RealPublisher) enqueue(topic string, payload []byte, qos byte, retained bool) {
	p.mu.Lock()
	p.queue.push(queuedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
	p.mu.Unlock()
}

// onConnect runs on the paho client goroutine after every (re)connect and
// replays anything queued while the broker was away.
func (p *RealPublisher) onConnect(client paho.Client) {
	p.mu.Lock()
	pending := p.queue.drain()
	p.mu.Unlock()

	if len(pending) == 0 {
		return
	}

	log.Printf("mqtt: connected, replaying %d queued messages", len(pending))
	for _, msg := range pending {
		token := client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
		if !token.WaitTimeout(5 * time.Second) {
			p.enqueue(msg.topic, msg.payload, msg.qos, msg.retained)
			return
		}
		if err := token.Error(); err != nil {
			log.Printf("mqtt: replay failed: %v", err)
			p.enqueue(msg.topic, msg.payload, msg.qos, msg.retained)
			return
		}
	}
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
