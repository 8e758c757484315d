package queue

import (
	"fmt"
	"strings"
)

// Less reports whether a sorts before b
type Less[T any] func(a, b *T) bool

// Queue is an ordered queue of references
type Queue[T any] struct {
	name  string
	items []*T
}

// Name returns queue name
func (q *Queue[T]) Name() string {
	return q.name
}

// Len returns number of queued items
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Push appends an item to the back of the queue
func (q *Queue[T]) Push(item *T) {
	q.items = append(q.items, item)
}

// Insert places item before the first queued element it sorts strictly before,
// so equal elements keep their insertion order.
func (q *Queue[T]) Insert(item *T, less Less[T]) {
	index := len(q.items)
	for i, candidate := range q.items {
		if less(item, candidate) {
			index = i
			break
		}
	}
	q.items = append(q.items, nil)
	copy(q.items[index+1:], q.items[index:])
	q.items[index] = item
}

// Peek returns the front item or nil
func (q *Queue[T]) Peek() *T {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// Pop removes and returns the front item or nil
func (q *Queue[T]) Pop() *T {
	if len(q.items) == 0 {
		return nil
	}
	ret := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return ret
}

// Items returns a copy of queued items in order
func (q *Queue[T]) Items() []*T {
	return append([]*T(nil), q.items...)
}

func (q *Queue[T]) String() string {
	builder := strings.Builder{}
	builder.WriteString(q.name)
	builder.WriteString("[")
	for i, item := range q.items {
		if i > 0 {
			builder.WriteString(" ")
		}
		if stringer, ok := any(item).(fmt.Stringer); ok {
			builder.WriteString(stringer.String())
		} else {
			builder.WriteString(fmt.Sprintf("%v", *item))
		}
	}
	builder.WriteString("]")
	return builder.String()
}

// New creates an empty named queue
func New[T any](name string) *Queue[T] {
	return &Queue[T]{name: name}
}
