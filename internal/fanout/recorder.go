package fanout

import (
	"context"
	"sync"
)

// Delivery is one recorded push.
type Delivery struct {
	Channel string
	Event   Event
}

// Recorder keeps every pushed event in memory. Err, when set, is returned from Push
// after recording.
type Recorder struct {
	mu         sync.Mutex
	deliveries []Delivery
	Err        error
}

// Push records the event.
func (r *Recorder) Push(_ context.Context, channel string, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, Delivery{Channel: channel, Event: ev})
	return r.Err
}

// Deliveries returns a copy of what was pushed so far.
func (r *Recorder) Deliveries() []Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Delivery(nil), r.deliveries...)
}

// To returns the events pushed to channel.
func (r *Recorder) To(channel string) []Event {
	var out []Event
	for _, d := range r.Deliveries() {
		if d.Channel == channel {
			out = append(out, d.Event)
		}
	}
	return out
}
