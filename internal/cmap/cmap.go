// Package cmap provides an integer-keyed map striped across independently
// locked shards. Striping keeps the critical section of a single slot update
// short, so many goroutines can accumulate into the map with little
// contention.
package cmap

import "sync"

type shard[V any] struct {
	mu   sync.Mutex
	part map[int]V
}

// Map is a concurrent map from int to V. The zero value is not usable; create
// one with New.
type Map[V any] struct {
	shards []shard[V]
}

// New creates a Map striped across shardCount shards.
func New[V any](shardCount int) *Map[V] {
	if shardCount <= 0 {
		shardCount = 1
	}
	m := &Map[V]{shards: make([]shard[V], shardCount)}
	for i := range m.shards {
		m.shards[i].part = make(map[int]V)
	}
	return m
}

func (m *Map[V]) shardFor(key int) *shard[V] {
	idx := key % len(m.shards)
	if idx < 0 {
		idx += len(m.shards)
	}
	return &m.shards[idx]
}

// Access holds one shard's lock and exposes the slot for a single key.
// Release must be called on every path once the slot is no longer needed.
type Access[V any] struct {
	// Ref points at the value slot for the key; writes through it are
	// visible to later accesses of the same key.
	Ref *V

	shard *shard[V]
	key   int
}

// Release writes the slot back and unlocks the shard.
func (a *Access[V]) Release() {
	a.shard.part[a.key] = *a.Ref
	a.shard.mu.Unlock()
}

// Access locks the shard owning key and returns an accessor for its slot,
// default-initializing the slot if the key is absent.
func (m *Map[V]) Access(key int) *Access[V] {
	s := m.shardFor(key)
	s.mu.Lock()
	v := s.part[key]
	return &Access[V]{Ref: &v, shard: s, key: key}
}

// Update applies fn to the slot for key under the shard lock.
func (m *Map[V]) Update(key int, fn func(*V)) {
	a := m.Access(key)
	fn(a.Ref)
	a.Release()
}

// Erase removes the entry for key and returns the number of entries removed.
func (m *Map[V]) Erase(key int) int {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.part[key]; !ok {
		return 0
	}
	delete(s.part, key)
	return 1
}

// Flatten locks each shard in turn and merges all entries into one map.
// Keys never collide across shards because of the shard function.
func (m *Map[V]) Flatten() map[int]V {
	result := make(map[int]V)
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.Lock()
		for k, v := range s.part {
			result[k] = v
		}
		s.mu.Unlock()
	}
	return result
}
