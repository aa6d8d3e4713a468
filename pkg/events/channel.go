package events

import (
	"sync"
	"time"
)

// Channel is a strictly-ordered, unbounded, single-producer/single-consumer
// event queue. The producer never blocks: buffering is unbounded so a slow
// (or absent) consumer cannot stall the session worker. Memory growth is
// bounded in practice by the small, finite number of events a run produces.
//
// Channel implements Sink, so a session's channel can be handed directly to
// the research runner as its event sink.
type Channel struct {
	mu   sync.Mutex
	buf  []Event
	wake chan struct{}
}

// NewChannel creates an empty event channel.
func NewChannel() *Channel {
	return &Channel{wake: make(chan struct{}, 1)}
}

// Publish appends an event to the queue and wakes a waiting receiver.
func (c *Channel) Publish(ev Event) {
	c.mu.Lock()
	c.buf = append(c.buf, ev)
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Receive pops the oldest event, waiting up to timeout for one to arrive.
// Returns ok=false on timeout; the caller decides whether that means a
// heartbeat or the end of the stream.
func (c *Channel) Receive(timeout time.Duration) (Event, bool) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		c.mu.Lock()
		if len(c.buf) > 0 {
			ev := c.buf[0]
			c.buf = c.buf[1:]
			c.mu.Unlock()
			return ev, true
		}
		c.mu.Unlock()

		select {
		case <-c.wake:
			// Retry the pop. A single wake token can race with an earlier
			// drain, so the loop re-checks the buffer rather than trusting it.
		case <-deadline.C:
			return Event{}, false
		}
	}
}

// Len reports the number of buffered events.
func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.buf)
}
