package clock

import (
	"sync"
	"time"
)

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// Real системные часы
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

// Manual часы с ручным управлением для тестов
type Manual struct {
	mu  sync.RWMutex
	now time.Time
}

func NewManual(now time.Time) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set переставляет часы на указанный момент
func (m *Manual) Set(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Advance сдвигает часы вперёд
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
