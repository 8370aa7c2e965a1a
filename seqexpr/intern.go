package seqexpr

import (
	"reflect"
	"sync"
)

// internTable maps an (alphabet type, content hash) pair to the bucket of
// distinct expressions sharing that hash, so structurally-equal expressions
// of the same alphabet type always resolve to the same Go value. It is the
// one piece of global, mutable state in the core, and is safe for
// concurrent construction from multiple Analyzer instances: an
// insert is a pure, idempotent, collision-tolerant append under a per-bucket
// lock.
var internTable sync.Map // internKey -> *internBucket

type internKey struct {
	alphabet reflect.Type
	hash     uint64
}

type internBucket struct {
	mu      sync.Mutex
	entries []any
}

// intern returns the canonical, shared instance of e: if a structurally
// equal expression was built before (for the same alphabet type), that
// earlier value is returned instead of e.
func intern[T comparable](e Expression[T]) Expression[T] {
	var zero T
	key := internKey{alphabet: reflect.TypeOf(zero), hash: e.hash()}
	bucketAny, _ := internTable.LoadOrStore(key, &internBucket{})
	bucket := bucketAny.(*internBucket)

	bucket.mu.Lock()
	defer bucket.mu.Unlock()
	for _, existing := range bucket.entries {
		ex := existing.(Expression[T])
		if ex.equalTo(e) {
			return ex
		}
	}
	bucket.entries = append(bucket.entries, e)
	return e
}
