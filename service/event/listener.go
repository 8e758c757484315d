package event

import (
	"fmt"
	"io"
	"sync"
)

// Listener is notified synchronously about every event, in emission order
type Listener func(event *Event)

// Multi fans an event out to all non nil listeners
func Multi(listeners ...Listener) Listener {
	return func(event *Event) {
		for _, listener := range listeners {
			if listener != nil {
				listener(event)
			}
		}
	}
}

// Printer writes one output line per event
type Printer struct {
	writer io.Writer
	err    error
}

// Listen writes the event line; the first write error is kept and stops output
func (p *Printer) Listen(event *Event) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.writer, event.String())
}

// Err returns the first write error
func (p *Printer) Err() error {
	return p.err
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{writer: w}
}

// Recorder collects events
type Recorder struct {
	events []*Event
	mux    sync.Mutex
}

// Listen records the event
func (r *Recorder) Listen(event *Event) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.events = append(r.events, event)
}

// Events returns recorded events
func (r *Recorder) Events() []*Event {
	r.mux.Lock()
	defer r.mux.Unlock()
	return append([]*Event(nil), r.events...)
}

// Lines returns recorded events as output lines
func (r *Recorder) Lines() []string {
	var ret []string
	for _, event := range r.Events() {
		ret = append(ret, event.String())
	}
	return ret
}

// Filter returns recorded events of the given type
func (r *Recorder) Filter(eventType Type) []*Event {
	var ret []*Event
	for _, event := range r.Events() {
		if event.Type == eventType {
			ret = append(ret, event)
		}
	}
	return ret
}
