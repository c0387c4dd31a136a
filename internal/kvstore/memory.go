package kvstore

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

// Memory is an in-process Store for tests and single-node deployments.
type Memory struct {
	mu       sync.RWMutex
	blobs    map[string][]byte
	counters map[string]int64
	zsets    map[string]map[string]float64
	hashes   map[string]map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		blobs:    make(map[string][]byte),
		counters: make(map[string]int64),
		zsets:    make(map[string]map[string]float64),
		hashes:   make(map[string]map[string]string),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = slices.Clone(value)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	delete(m.counters, key)
	delete(m.zsets, key)
	delete(m.hashes, key)
	return nil
}

func (m *Memory) IncrBy(_ context.Context, key string, delta int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[key] += delta
	return m.counters[key], nil
}

func (m *Memory) IncrByMany(_ context.Context, deltas map[string]int64) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(deltas))
	for key, delta := range deltas {
		m.counters[key] += delta
		out[key] = m.counters[key]
	}
	return out, nil
}

func (m *Memory) GetCounter(_ context.Context, key string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[key], nil
}

func (m *Memory) ZAdd(_ context.Context, key, member string, score float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	z, ok := m.zsets[key]
	if !ok {
		z = make(map[string]float64)
		m.zsets[key] = z
	}
	z[member] = score
	return nil
}

func (m *Memory) ZRem(_ context.Context, key, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.zsets[key], member)
	return nil
}

func (m *Memory) ZRange(_ context.Context, key string, start, stop int64, desc bool) ([]domain.ScoredMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sorted := m.sorted(key)
	if desc {
		slices.Reverse(sorted)
	}
	from, to, ok := NormalizeRange(start, stop, int64(len(sorted)))
	if !ok {
		return []domain.ScoredMember{}, nil
	}
	return slices.Clone(sorted[from : to+1]), nil
}

func (m *Memory) ZCard(_ context.Context, key string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.zsets[key])), nil
}

func (m *Memory) ZRank(_ context.Context, key, member string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.zsets[key][member]; !ok {
		return 0, ErrNotFound
	}
	i := slices.IndexFunc(m.sorted(key), func(sm domain.ScoredMember) bool { return sm.Member == member })
	return int64(i), nil
}

func (m *Memory) ZRemRangeByRank(_ context.Context, key string, start, stop int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sorted := m.sorted(key)
	from, to, ok := NormalizeRange(start, stop, int64(len(sorted)))
	if !ok {
		return nil
	}
	for _, sm := range sorted[from : to+1] {
		delete(m.zsets[key], sm.Member)
	}
	return nil
}

func (m *Memory) HGet(_ context.Context, key, field string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.hashes[key][field]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) HSet(_ context.Context, key, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hash(key)[field] = value
	return nil
}

func (m *Memory) HSetNX(_ context.Context, key, field, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.hash(key)
	if _, exists := h[field]; exists {
		return false, nil
	}
	h[field] = value
	return true, nil
}

func (m *Memory) HGetAll(_ context.Context, key string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := maps.Clone(m.hashes[key])
	if out == nil {
		out = make(map[string]string)
	}
	return out, nil
}

func (m *Memory) HLen(_ context.Context, key string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.hashes[key])), nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }

// sorted returns the members of key ascending by score, then member.
// Callers hold m.mu.
func (m *Memory) sorted(key string) []domain.ScoredMember {
	z := m.zsets[key]
	out := make([]domain.ScoredMember, 0, len(z))
	for member, score := range z {
		out = append(out, domain.ScoredMember{Member: member, Score: score})
	}
	slices.SortFunc(out, func(a, b domain.ScoredMember) int {
		if c := cmp.Compare(a.Score, b.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Member, b.Member)
	})
	return out
}

func (m *Memory) hash(key string) map[string]string {
	h, ok := m.hashes[key]
	if !ok {
		h = make(map[string]string)
		m.hashes[key] = h
	}
	return h
}
