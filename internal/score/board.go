// Package score keeps the running score of a session.
package score

import "sync"

// Board counts points while a run is in progress and remembers the best run.
// It is safe for concurrent use so spectators can read it mid-tick.
type Board struct {
	mu       sync.RWMutex
	value    int
	best     int
	counting bool
}

// NewBoard returns an empty board that is not counting.
func NewBoard() *Board {
	return &Board{}
}

// Restart zeroes the current score. The best score is kept.
func (b *Board) Restart() {
	b.mu.Lock()
	b.value = 0
	b.mu.Unlock()
}

// StartCounting lets Add change the score.
func (b *Board) StartCounting() {
	b.mu.Lock()
	b.counting = true
	b.mu.Unlock()
}

// StopCounting freezes the score and folds it into the best score.
func (b *Board) StopCounting() {
	b.mu.Lock()
	b.counting = false
	if b.value > b.best {
		b.best = b.value
	}
	b.mu.Unlock()
}

// Add adds points while counting. Outside a run it is ignored.
func (b *Board) Add(points int) {
	b.mu.Lock()
	if b.counting {
		b.value += points
	}
	b.mu.Unlock()
}

// Counting reports whether Add currently has an effect.
func (b *Board) Counting() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.counting
}

// Value returns the current score.
func (b *Board) Value() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// Best returns the highest score reached by a finished run.
func (b *Board) Best() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.best
}
