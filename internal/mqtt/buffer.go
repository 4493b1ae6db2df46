package mqtt

import "log"

// queuedMsg is a serialized MQTT message held for replay after the broker
// connection comes back.
type queuedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// replayQueue is a fixed-capacity FIFO of messages that could not be
// delivered. When full, the oldest message is overwritten: for telemetry,
// recent cycle events matter more than stale ones.
// Not safe for concurrent use — caller must synchronize.
type replayQueue struct {
	msgs    []queuedMsg
	next    int // next write position
	queued  int
	dropped bool // a message was overwritten since the last drain
}

func newReplayQueue(capacity int) *replayQueue {
	return &replayQueue{msgs: make([]queuedMsg, capacity)}
}

func (q *replayQueue) push(msg queuedMsg) {
	size := len(q.msgs)
	if q.queued == size {
		if !q.dropped {
			log.Printf("mqtt: replay queue full (%d messages), dropping oldest", size)
			q.dropped = true
		}
		// next already points at the oldest entry; queued stays at size.
		q.msgs[q.next] = msg
		q.next = (q.next + 1) % size
		return
	}
	q.msgs[q.next] = msg
	q.next = (q.next + 1) % size
	q.queued++
}

// drain removes and returns all queued messages, oldest first.
func (q *replayQueue) drain() []queuedMsg {
	if q.queued == 0 {
		return nil
	}

	size := len(q.msgs)
	out := make([]queuedMsg, q.queued)
	oldest := (q.next - q.queued + size) % size
	for i := range out {
		out[i] = q.msgs[(oldest+i)%size]
	}

	q.queued = 0
	q.next = 0
	q.dropped = false
	return out
}

func (q *replayQueue) len() int {
	return q.queued
}
