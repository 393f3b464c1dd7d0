package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventTrain    EventType = "train"
	EventValidate EventType = "validate"
	EventGenerate EventType = "generate"
	EventRetry    EventType = "retry"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// TrainEvent is emitted once per trained symbol sequence.
type TrainEvent struct {
	EventBase
	Symbols  int  `json:"symbols"`
	Layers   int  `json:"layers"`
	Accepted bool `json:"accepted"`
}

// ValidateEvent is emitted once per validated symbol sequence.
type ValidateEvent struct {
	EventBase
	Accepted        bool `json:"accepted"`
	Index           int  `json:"index,omitempty"`
	InvalidEndState bool `json:"invalid_end_state,omitempty"`
}

// GenerateEvent is emitted when a generation operation completes.
type GenerateEvent struct {
	EventBase
	Operation string `json:"operation"`
	Length    int    `json:"length"`
	Err       error  `json:"-"`
}

// RetryEvent is emitted when a bounded construction restarts.
type RetryEvent struct {
	EventBase
	Operation string `json:"operation"`
	Attempt   int    `json:"attempt"`
	Err       error  `json:"-"`
}

// LifecycleHooks defines callbacks for automaton observability.
// Any field may be nil.
type LifecycleHooks struct {
	OnTrain    func(*TrainEvent)
	OnValidate func(*ValidateEvent)
	OnGenerate func(*GenerateEvent)
	OnRetry    func(*RetryEvent)
}

// NewEventBase stamps an event with the current time.
func NewEventBase(t EventType) EventBase {
	return EventBase{Timestamp: time.Now(), Type: t}
}
