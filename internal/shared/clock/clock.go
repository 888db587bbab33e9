// Package clock is the time source db.Store stamps created_at with.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time { return time.Now() }

// ManualClock only moves when told to. Tests hand it to db.WithClock so
// created_at values are known in advance.
type ManualClock struct {
	mu  sync.Mutex
	cur time.Time
}

func NewManualClock(at time.Time) *ManualClock { return &ManualClock{cur: at} }

func (m *ManualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

func (m *ManualClock) Set(at time.Time) {
	m.mu.Lock()
	m.cur = at
	m.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new reading.
func (m *ManualClock) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = m.cur.Add(d)
	return m.cur
}
