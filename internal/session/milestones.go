package session

import "sync"

// MilestoneTracker remembers which milestone keys were already announced in
// this session.
type MilestoneTracker struct {
	mu      sync.Mutex
	tracked map[string]struct{}
}

func NewMilestoneTracker() *MilestoneTracker {
	return &MilestoneTracker{tracked: make(map[string]struct{})}
}

// ShouldTrack returns true the first time key is seen and false afterwards.
func (m *MilestoneTracker) ShouldTrack(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tracked[key]; ok {
		return false
	}
	m.tracked[key] = struct{}{}
	return true
}

// HasTracked reports whether key was already announced.
func (m *MilestoneTracker) HasTracked(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tracked[key]
	return ok
}
