package app

import "sync"

// Queue hands work from other goroutines to the frame thread. Posted
// functions run in order at the start of the next frame.
type Queue struct {
	mu  sync.Mutex
	fns []func()
}

// Post schedules fn. It is safe to call from any goroutine.
func (q *Queue) Post(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.fns = append(q.fns, fn)
	q.mu.Unlock()
}

// Len is the number of pending functions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.fns)
}

// Drain runs everything posted so far and returns how many ran. Work posted
// while draining waits for the next call.
func (q *Queue) Drain() int {
	q.mu.Lock()
	fns := q.fns
	q.fns = nil
	q.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}
