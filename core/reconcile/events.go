package reconcile

import "sync"

// EventKind tags the variant of an Event.
type EventKind int

const (
	// EventLog carries a diagnostic line for the log surface.
	EventLog EventKind = iota
	// EventProgress carries the completed fraction and a status text.
	EventProgress
	// EventResult carries one ArticleResult.
	EventResult
	// EventDone carries the final Summary; it is always the last event of
	// a run.
	EventDone
)

// Event is a single notification from the worker to the presentation layer.
// Exactly one of the payload fields is meaningful, selected by Kind.
type Event struct {
	Kind EventKind

	// Message is the log line (EventLog) or status text (EventProgress).
	Message string

	// Fraction is the completed share of the batch in [0, 1] (EventProgress).
	Fraction float64

	// Result is the article outcome (EventResult).
	Result *ArticleResult

	// Summary holds the final counts (EventDone).
	Summary *Summary
}

// Queue is the unbounded FIFO event stream between the single worker and the
// single consumer. Pushes never block; delivery order is emit order.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// NewQueue creates an empty event queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event. Safe for use while a consumer drains concurrently.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, e)
}

// Drain removes and returns every event queued so far, in emit order.
// Returns nil when the queue is empty.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}
