package tractive

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"tractive2mqtt/dispatch"
)

// Event is a single status update read from the feed. The category
// decides which signal prefix and which id the event is dispatched on:
// hardware events are scoped to the tracker, activity and wellness
// events to the trackable.
type Event struct {
	Category    string                 `json:"category"`
	TrackerID   string                 `json:"tracker_id,omitempty"`
	TrackableID string                 `json:"trackable_id,omitempty"`
	Fields      map[string]interface{} `json:"fields"`
}

const (
	CategoryHardware = "hardware"
	CategoryActivity = "activity"
	CategoryWellness = "wellness"
)

// Feed is a Client that replays newline-delimited JSON events from a
// reader onto the dispatcher. It performs no network I/O.
type Feed struct {
	r          io.Reader
	dispatcher *dispatch.Dispatcher
	trackables []Trackable
}

func NewFeed(r io.Reader, dispatcher *dispatch.Dispatcher, trackables []Trackable) *Feed {
	return &Feed{
		r:          r,
		dispatcher: dispatcher,
		trackables: trackables,
	}
}

func (f *Feed) Trackables() []Trackable {
	return f.trackables
}

// Run reads events until the reader is exhausted or the context is
// cancelled. Malformed lines are logged and skipped. When the feed ends,
// the server-unavailable signal is sent so entities stop reporting stale
// state.
func (f *Feed) Run(ctx context.Context) error {
	defer f.dispatcher.Send(SignalServerUnavailable, nil)

	scanner := bufio.NewScanner(f.r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			log.Printf("skipping malformed feed line: %s", err)
			continue
		}
		if err := f.Dispatch(event); err != nil {
			log.Printf("skipping feed event: %s", err)
		}
	}
	return scanner.Err()
}

// Dispatch sends a single event on the signal derived from its category
// and scope id.
func (f *Feed) Dispatch(event Event) error {
	var signal string
	switch event.Category {
	case CategoryHardware:
		if event.TrackerID == "" {
			return fmt.Errorf("hardware event without tracker_id")
		}
		signal = fmt.Sprintf("%s-%s", SignalHardwareStatusUpdated, event.TrackerID)
	case CategoryActivity:
		if event.TrackableID == "" {
			return fmt.Errorf("activity event without trackable_id")
		}
		signal = fmt.Sprintf("%s-%s", SignalActivityStatusUpdated, event.TrackableID)
	case CategoryWellness:
		if event.TrackableID == "" {
			return fmt.Errorf("wellness event without trackable_id")
		}
		signal = fmt.Sprintf("%s-%s", SignalWellnessStatusUpdated, event.TrackableID)
	default:
		return fmt.Errorf("unknown event category %q", event.Category)
	}
	f.dispatcher.Send(signal, event.Fields)
	return nil
}
