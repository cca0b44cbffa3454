// Package pipeline implements the per-document extraction pipeline: a pool
// of page extractors feeding a single disk writer through an unbounded
// result queue.
package pipeline

import (
	"sync"

	"github.com/spherical/pdf-splitter/internal/domain"
)

// ResultQueue hands PageResults from many producers to one consumer. It is
// unbounded: Push never blocks, and a slow consumer grows memory instead of
// applying backpressure. A fresh queue is built for every document run.
type ResultQueue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	results  []domain.PageResult
	finished bool
}

// NewResultQueue creates an empty queue.
func NewResultQueue() *ResultQueue {
	q := &ResultQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push inserts a result and wakes one waiting consumer. Safe for concurrent
// use by any number of producers.
func (q *ResultQueue) Push(result domain.PageResult) {
	q.mu.Lock()
	q.results = append(q.results, result)
	q.mu.Unlock()
	q.cond.Signal()
}

// Pop blocks until a result is available or the queue is finished and
// drained. The second return value is false exactly when no further results
// will ever arrive; every subsequent call also returns false.
func (q *ResultQueue) Pop() (domain.PageResult, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.results) == 0 && !q.finished {
		q.cond.Wait()
	}
	if len(q.results) == 0 {
		return domain.PageResult{}, false
	}
	result := q.results[0]
	q.results = q.results[1:]
	return result, true
}

// Finish signals that no more results will be pushed and wakes all blocked
// consumers. Idempotent.
func (q *ResultQueue) Finish() {
	q.mu.Lock()
	q.finished = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Len returns the number of unconsumed results.
func (q *ResultQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.results)
}
