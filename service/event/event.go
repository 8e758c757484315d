package event

import (
	"fmt"
	"strconv"
	"strings"
)

// Type represents an event type
type Type string

const (
	TypeReady           Type = "READY"
	TypeRunning         Type = "RUNNING"
	TypeFinished        Type = "FINISHED"
	TypeFinishedProcess Type = "FINISHED-PROCESS"
)

// Event represents a significant simulation event stamped with simulated time
type Event struct {
	Type          Type   `json:"type"`
	Time          int    `json:"time"`
	Name          string `json:"name"`
	Address       int    `json:"address"`
	Remaining     int    `json:"remaining"`
	ProcRemaining int    `json:"procRemaining"`
	Digest        string `json:"digest,omitempty"`
}

// String returns the event output line
func (e *Event) String() string {
	builder := strings.Builder{}
	builder.WriteString(strconv.Itoa(e.Time))
	builder.WriteByte(',')
	builder.WriteString(string(e.Type))
	builder.WriteString(",process_name=")
	builder.WriteString(e.Name)
	switch e.Type {
	case TypeReady:
		builder.WriteString(",assigned_at=")
		builder.WriteString(strconv.Itoa(e.Address))
	case TypeRunning:
		builder.WriteString(",remaining_time=")
		builder.WriteString(strconv.Itoa(e.Remaining))
	case TypeFinished:
		builder.WriteString(",proc_remaining=")
		builder.WriteString(strconv.Itoa(e.ProcRemaining))
	case TypeFinishedProcess:
		builder.WriteString(",sha=")
		builder.WriteString(e.Digest)
	default:
		return fmt.Sprintf("%v,%v,process_name=%v", e.Time, e.Type, e.Name)
	}
	return builder.String()
}

// NewReady creates a memory assignment event
func NewReady(time int, name string, address int) *Event {
	return &Event{Type: TypeReady, Time: time, Name: name, Address: address}
}

// NewRunning creates a dispatch event
func NewRunning(time int, name string, remaining int) *Event {
	return &Event{Type: TypeRunning, Time: time, Name: name, Remaining: remaining}
}

// NewFinished creates a completion event; procRemaining counts processes still waiting
func NewFinished(time int, name string, procRemaining int) *Event {
	return &Event{Type: TypeFinished, Time: time, Name: name, ProcRemaining: procRemaining}
}

// NewFinishedProcess creates a worker digest event
func NewFinishedProcess(time int, name string, digest string) *Event {
	return &Event{Type: TypeFinishedProcess, Time: time, Name: name, Digest: digest}
}
