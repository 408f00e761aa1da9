// Package input carries key events from the goroutine that reads the terminal
// to the game loop. Events travel through an unbounded FIFO so a burst of
// keys is never dropped or reordered, and a shared Signal tells the loop to
// stop.
package input

import (
	"sync"
	"sync/atomic"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Queue is an unbounded, ordered, multi-producer action queue.
// Push never blocks; TryPop never waits.
type Queue struct {
	mu    sync.Mutex
	items []core.Action
	head  int
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an action.
func (q *Queue) Push(a core.Action) {
	q.mu.Lock()
	q.items = append(q.items, a)
	q.mu.Unlock()
}

// TryPop removes and returns the oldest action.
// The bool is false when the queue is empty.
func (q *Queue) TryPop() (core.Action, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head >= len(q.items) {
		return core.ActionNone, false
	}
	a := q.items[q.head]
	q.head++

	// Reclaim the consumed prefix once it dominates the slice
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 64 && q.head*2 > len(q.items) {
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	return a, true
}

// Len returns the number of pending actions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Signal is a one-way termination flag shared between goroutines.
// sync/atomic operations are sequentially consistent, so a raise is visible
// to every later Raised call without further synchronization.
type Signal struct {
	raised atomic.Bool
}

// Raise sets the flag. Raising twice is harmless.
func (s *Signal) Raise() {
	s.raised.Store(true)
}

// Raised reports whether the flag has been set.
func (s *Signal) Raised() bool {
	return s.raised.Load()
}
