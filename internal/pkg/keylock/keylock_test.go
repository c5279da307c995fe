package keylock

import (
	"sync"
	"testing"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	locks := New(8)

	const goroutines = 50
	counter := 0
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			unlock := locks.Lock("user_1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != goroutines {
		t.Fatalf("expected %d increments, got %d", goroutines, counter)
	}
}

func TestKeyedMutex_SameKeySameShard(t *testing.T) {
	locks := New(8)
	if locks.shardIndex("user_1") != locks.shardIndex("user_1") {
		t.Fatalf("shard index not deterministic")
	}
}

func TestKeyedMutex_DistinctKeysDoNotBlock(t *testing.T) {
	locks := New(64)

	unlockA := locks.Lock("a")
	defer unlockA()

	// Find a key on a different shard and confirm it can be taken while "a"
	// is held.
	for _, k := range []string{"b", "c", "d", "e", "f", "g"} {
		if locks.shardIndex(k) != locks.shardIndex("a") {
			unlock := locks.Lock(k)
			unlock()
			return
		}
	}
	t.Fatalf("no key hashed to a different shard")
}

func TestNew_DefaultShards(t *testing.T) {
	if got := len(New(0).shards); got != defaultShards {
		t.Fatalf("expected %d shards, got %d", defaultShards, got)
	}
}
