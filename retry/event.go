package retry

import "time"

// EventType names a step of an executor run.
type EventType string

const (
	// EventAttemptStart fires before each attempt, after a credential is selected.
	EventAttemptStart EventType = "attempt_start"

	// EventAttemptFailed fires when the provider call fails, before classification decides what follows.
	EventAttemptFailed EventType = "attempt_failed"

	// EventRetrying fires after a credential failure, before the backoff wait.
	EventRetrying EventType = "retrying"

	// EventSuccess fires when the provider call returns a usable result.
	EventSuccess EventType = "success"

	// EventExhausted fires when every attempt failed on a credential error.
	EventExhausted EventType = "exhausted"
)

// Event reports one step of an executor run to an observer such as a
// progress display or a log drain.
type Event struct {
	Type EventType

	// RequestID correlates all events of one executor run.
	RequestID string

	// Action is the user action being performed, e.g. "generating images".
	Action string

	// Credential is the masked credential used by the attempt.
	Credential string

	// Attempt counts from 1.
	Attempt     int
	MaxAttempts int

	// Error is set for failed and exhausted events.
	Error error

	// Class is the classification of Error.
	Class Class

	// Delay is the backoff wait, set on EventRetrying.
	Delay time.Duration

	Timestamp time.Time
}

// Retryable indicates whether the event's error was classified as a
// credential failure.
func (e Event) Retryable() bool {
	return e.Class.Retryable()
}

// Emit stamps event and offers it to ch. A full or nil channel drops it.
func Emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
	}
}
