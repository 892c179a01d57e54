package sigslot

import (
	"sync"

	"github.com/petermattis/goid"
)

// Per-goroutine emission context. Go has no thread-local storage, so the
// context lives in a sharded registry keyed by goroutine id; entries exist
// only while that goroutine has at least one emission or queued slot call on
// its stack, and are only ever read or written by their own goroutine (the
// shard lock guards the map, not the context fields).
type emissionContext struct {
	// current is the node of the slot executing on this goroutine, nil
	// between slot calls. Saved and restored around every slot call, so
	// nesting behaves like a stack.
	current *node

	// aborted is the innermost emission's abort flag. Each emission saves
	// the previous value on entry and restores it on exit.
	aborted bool

	// depth counts the scopes pinning this entry in the registry.
	depth int
}

const emissionShardCount = 64 // power of two

type emissionShard struct {
	mu sync.Mutex
	m  map[int64]*emissionContext
}

var emissionShards [emissionShardCount]emissionShard

func emissionShardFor(gid int64) *emissionShard {
	return &emissionShards[uint64(gid)&(emissionShardCount-1)]
}

// acquireEmissionContext returns the calling goroutine's context, creating
// it if needed, plus a release func that must be called when the scope that
// needed it unwinds. gid must be the caller's own goroutine id.
func acquireEmissionContext(gid int64) (*emissionContext, func()) {
	shard := emissionShardFor(gid)
	shard.mu.Lock()
	if shard.m == nil {
		shard.m = make(map[int64]*emissionContext)
	}
	ec := shard.m[gid]
	if ec == nil {
		ec = &emissionContext{}
		shard.m[gid] = ec
	}
	ec.depth++
	shard.mu.Unlock()

	return ec, func() {
		shard.mu.Lock()
		ec.depth--
		if ec.depth == 0 {
			delete(shard.m, gid)
		}
		shard.mu.Unlock()
	}
}

// lookupEmissionContext returns the calling goroutine's context, or nil if
// it has no emission in flight.
func lookupEmissionContext(gid int64) *emissionContext {
	shard := emissionShardFor(gid)
	shard.mu.Lock()
	ec := shard.m[gid]
	shard.mu.Unlock()
	return ec
}

// CurrentConnection returns a handle to the connection whose slot is
// currently executing on the calling goroutine, valid only from inside a
// slot. Outside a slot it returns the zero [Connection] (not an error), so
// the result's [Connection.IsConnected] is the cheap way to tell.
//
// The usual application is self-disconnect:
//
//	sig.Connect(func(struct{}) {
//		sigslot.CurrentConnection().Disconnect()
//	})
func CurrentConnection() Connection {
	if ec := lookupEmissionContext(goid.Get()); ec != nil && ec.current != nil {
		return Connection{n: ec.current}
	}
	return Connection{}
}

// AbortEmission stops the innermost emission in flight on the calling
// goroutine: slots not yet visited are skipped for this emission only, and
// remain connected for future emissions. Outer emissions of a nested chain
// are unaffected. A no-op outside a slot.
func AbortEmission() {
	if ec := lookupEmissionContext(goid.Get()); ec != nil {
		ec.aborted = true
	}
}
