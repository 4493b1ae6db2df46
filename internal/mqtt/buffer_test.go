package mqtt

import (
	"fmt"
	"testing"
)

func msgN(n int) queuedMsg {
	return queuedMsg{topic: Topic, payload: []byte(fmt.Sprintf("msg-%d", n)), qos: 0}
}

func TestReplayQueueEmptyDrain(t *testing.T) {
	q := newReplayQueue(4)
	if got := q.drain(); got != nil {
		t.Errorf("drain of empty queue: got %v, want nil", got)
	}
	if q.len() != 0 {
		t.Errorf("len = %d, want 0", q.len())
	}
}

func TestReplayQueuePushDrainOrder(t *testing.T) {
	q := newReplayQueue(4)
	for i := 0; i < 3; i++ {
		q.push(msgN(i))
	}
	if q.len() != 3 {
		t.Fatalf("len = %d, want 3", q.len())
	}

	out := q.drain()
	if len(out) != 3 {
		t.Fatalf("drained %d, want 3", len(out))
	}
	for i, msg := range out {
		want := fmt.Sprintf("msg-%d", i)
		if string(msg.payload) != want {
			t.Errorf("message %d: got %q, want %q", i, msg.payload, want)
		}
	}

	if q.len() != 0 {
		t.Errorf("len after drain = %d, want 0", q.len())
	}
}

func TestReplayQueueOverflowDropsOldest(t *testing.T) {
	q := newReplayQueue(3)
	for i := 0; i < 5; i++ {
		q.push(msgN(i))
	}

	if q.len() != 3 {
		t.Fatalf("len = %d, want 3", q.len())
	}

	out := q.drain()
	want := []string{"msg-2", "msg-3", "msg-4"}
	for i, w := range want {
		if string(out[i].payload) != w {
			t.Errorf("message %d: got %q, want %q", i, out[i].payload, w)
		}
	}
}

func TestReplayQueueReuseAfterDrain(t *testing.T) {
	q := newReplayQueue(2)
	q.push(msgN(0))
	q.drain()

	q.push(msgN(1))
	q.push(msgN(2))
	out := q.drain()
	if len(out) != 2 {
		t.Fatalf("drained %d, want 2", len(out))
	}
	if string(out[0].payload) != "msg-1" || string(out[1].payload) != "msg-2" {
		t.Errorf("got %q, %q", out[0].payload, out[1].payload)
	}
}

func TestReplayQueuePreservesAttributes(t *testing.T) {
	q := newReplayQueue(2)
	q.push(queuedMsg{topic: TopicSystem, payload: []byte("x"), qos: 1, retained: true})

	out := q.drain()
	if out[0].topic != TopicSystem || out[0].qos != 1 || !out[0].retained {
		t.Errorf("attributes lost: %+v", out[0])
	}
}
