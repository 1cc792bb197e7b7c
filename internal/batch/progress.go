package batch

import (
	"sync"
	"time"
)

const percentMultiplier = 100

// Progress tracks completed items. It is safe for concurrent use.
type Progress struct {
	mu             sync.RWMutex
	totalItems     int
	processedItems int
	startTime      time.Time
}

// NewProgress returns a tracker for totalItems items, started now.
func NewProgress(totalItems int) *Progress {
	return &Progress{totalItems: totalItems, startTime: time.Now()}
}

// AddProcessed records n completed items.
func (p *Progress) AddProcessed(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processedItems += n
}

// Snapshot returns a copy of the current state.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s := ProgressSnapshot{
		TotalItems:     p.totalItems,
		ProcessedItems: p.processedItems,
		ElapsedTime:    time.Since(p.startTime),
	}
	if p.totalItems > 0 {
		s.PercentComplete = float64(p.processedItems) / float64(p.totalItems) * percentMultiplier
	}
	return s
}

// ProgressSnapshot is an immutable view of a Progress.
type ProgressSnapshot struct {
	TotalItems      int
	ProcessedItems  int
	PercentComplete float64
	ElapsedTime     time.Duration
}

// IsComplete reports whether every item has been processed.
func (s ProgressSnapshot) IsComplete() bool {
	return s.ProcessedItems >= s.TotalItems
}
