// Package keylock provides a striped mutex keyed by string. Operations
// sharing a key are serialized; operations on different keys proceed in
// parallel unless they happen to hash to the same shard.
package keylock

import (
	"hash/fnv"
	"sync"
)

const defaultShards = 64

// KeyedMutex maps keys onto a fixed set of mutex shards by consistent
// hashing, so lock state stays bounded regardless of key cardinality.
type KeyedMutex struct {
	shards []sync.Mutex
}

// New creates a KeyedMutex with numShards shards. If numShards <= 0,
// defaultShards is used.
func New(numShards int) *KeyedMutex {
	if numShards <= 0 {
		numShards = defaultShards
	}
	return &KeyedMutex{shards: make([]sync.Mutex, numShards)}
}

// Lock acquires the shard owning key and returns its unlock function.
//
//	defer locks.Lock(userID)()
func (m *KeyedMutex) Lock(key string) func() {
	shard := &m.shards[m.shardIndex(key)]
	shard.Lock()
	return shard.Unlock
}

// shardIndex maps a key deterministically to a shard index.
func (m *KeyedMutex) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(m.shards)
}
