package sigslot

import (
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/petermattis/goid"
)

// queuedCall is one packaged slot invocation, parked in the owner
// goroutine's bucket until drained by [DispatchQueuedCalls].
type queuedCall struct {
	// n is the connection being invoked. Connectivity and the blocked flag
	// are re-checked at execution time: a slot disconnected or blocked
	// after being enqueued does not run.
	n *node

	// run executes the slot, smuggling any result and error out through the
	// closure. It must not panic (slot panics are recovered inside).
	run func()

	// done is closed after run returns (or the call is skipped). Emitters
	// of value-returning signals wait on it; void emitters do not.
	done chan struct{}

	// ran reports whether run was actually executed. Written before done is
	// closed, read only after done is closed.
	ran bool

	// log carries the emitting signal's logger, for failures that cannot
	// reach the emitter (fire-and-forget calls).
	log *logiface.Logger[logiface.Event]
}

const dispatchShardCount = 16 // power of two

type dispatchShard struct {
	mu sync.Mutex
	m  map[int64][]*queuedCall
}

// dispatchQueue is the process-wide mailbox of pending queued calls, sharded
// by owner goroutine id. FIFO per owner.
var dispatchQueue [dispatchShardCount]dispatchShard

func dispatchShardFor(gid int64) *dispatchShard {
	return &dispatchQueue[uint64(gid)&(dispatchShardCount-1)]
}

// enqueueCall appends qc to the owner goroutine's bucket.
func enqueueCall(owner int64, qc *queuedCall) {
	shard := dispatchShardFor(owner)
	shard.mu.Lock()
	if shard.m == nil {
		shard.m = make(map[int64][]*queuedCall)
	}
	shard.m[owner] = append(shard.m[owner], qc)
	shard.mu.Unlock()
}

// takeQueuedCalls removes and returns the calling goroutine's bucket.
func takeQueuedCalls(gid int64) []*queuedCall {
	shard := dispatchShardFor(gid)
	shard.mu.Lock()
	calls := shard.m[gid]
	if calls != nil {
		delete(shard.m, gid)
	}
	shard.mu.Unlock()
	return calls
}

// DispatchQueuedCalls executes every queued slot call bound to the calling
// goroutine, in the order the calls were enqueued, and returns how many were
// dispatched (skipped calls count; they were consumed).
//
// A goroutine that owns queued connections must call this periodically; a
// long-lived worker typically alternates between its own work and a drain:
//
//	for {
//		select {
//		case <-work:
//			// ...
//		case <-tick:
//			sigslot.DispatchQueuedCalls()
//		}
//	}
//
// Calls enqueued while draining (including by the drained slots themselves)
// are left for the next drain, so a drain cannot livelock.
func DispatchQueuedCalls() int {
	gid := goid.Get()
	calls := takeQueuedCalls(gid)
	for _, qc := range calls {
		qc.execute(gid)
	}
	return len(calls)
}

// execute runs the packaged call on the owner goroutine. The connection's
// liveness is re-checked under its lock; the slot then runs with a
// connection scope pushed on this goroutine so [CurrentConnection] works
// from queued slots. The abort flag is saved and restored: a queued call is
// not an emission, so [AbortEmission] from inside one does not leak into
// whatever emission this goroutine may be nested in.
func (qc *queuedCall) execute(gid int64) {
	defer close(qc.done)

	n := qc.n
	if lk := n.lock; lk != nil {
		lk.mu.Lock()
		live := n.prev != nil && !n.blocked.Load()
		lk.mu.Unlock()
		if !live {
			return
		}
	}

	ec, release := acquireEmissionContext(gid)
	savedConn := ec.current
	savedAbort := ec.aborted
	ec.current = n
	defer func() {
		ec.current = savedConn
		ec.aborted = savedAbort
		release()
	}()

	qc.run()
	qc.ran = true
}
