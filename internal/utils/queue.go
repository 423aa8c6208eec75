package utils

import "container/list"

// StringQueue is a FIFO of pending strings used by breadth-first walks.
type StringQueue struct {
	items *list.List
}

// NewStringQueue creates an empty queue.
func NewStringQueue() *StringQueue {
	return &StringQueue{items: list.New()}
}

// Push appends s to the back of the queue.
func (q *StringQueue) Push(s string) {
	q.items.PushBack(s)
}

// Pop removes and returns the front element.
// The second result is false when the queue is empty.
func (q *StringQueue) Pop() (string, bool) {
	front := q.items.Front()
	if front == nil {
		return "", false
	}
	return q.items.Remove(front).(string), true
}

// Len returns the number of queued strings.
func (q *StringQueue) Len() int {
	return q.items.Len()
}

// IsEmpty reports whether nothing is queued.
func (q *StringQueue) IsEmpty() bool {
	return q.items.Len() == 0
}
