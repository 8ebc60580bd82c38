package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_DrainOrder(t *testing.T) {
	q := NewQueue()
	q.Push(Event{Kind: EventLog, Message: "first"})
	q.Push(Event{Kind: EventProgress, Fraction: 0.5})
	q.Push(Event{Kind: EventLog, Message: "second"})

	events := q.Drain()
	assert.Len(t, events, 3)
	assert.Equal(t, "first", events[0].Message)
	assert.Equal(t, EventProgress, events[1].Kind)
	assert.Equal(t, "second", events[2].Message)
}

func TestQueue_DrainEmpties(t *testing.T) {
	q := NewQueue()
	q.Push(Event{Kind: EventLog, Message: "once"})

	assert.Len(t, q.Drain(), 1)
	assert.Nil(t, q.Drain())

	q.Push(Event{Kind: EventLog, Message: "again"})
	assert.Len(t, q.Drain(), 1)
}
