package sigslot

import "sync"

// sharedLock is the lock object of a thread-safe signal. Connection nodes
// keep a reference to it, so handle operations keep a well-defined locking
// path even after the signal itself is unreachable.
type sharedLock struct {
	mu sync.Mutex
}

// Connection is a handle to the binding between a signal and one slot. It is
// copyable and comparable: copies share the same underlying connection, and
// == is identity of that binding. The zero value is an empty handle (not
// connected, every method a safe no-op).
//
// A Connection outlives the slot's list membership: after a disconnect, from
// any copy of the handle or from the signal side, the handle remains valid
// to query and permanently reports not-connected.
//
// Thread Safety: handles of thread-safe signals are safe for concurrent use
// from any goroutine; handles of single-threaded signals share the signal's
// confinement.
type Connection struct {
	n *node
}

// IsConnected reports whether the slot is still in its signal's list. Once
// false, it never becomes true again.
func (c Connection) IsConnected() bool {
	n := c.n
	if n == nil {
		return false
	}
	if lk := n.lock; lk != nil {
		lk.mu.Lock()
		defer lk.mu.Unlock()
	}
	return n.prev != nil
}

// IsBlocked reports whether the connection is currently blocked.
func (c Connection) IsBlocked() bool {
	return c.n != nil && c.n.blocked.Load()
}

// Block marks the connection blocked: emissions skip the slot without
// disconnecting it. On a thread-safe signal the signal's lock is taken, so
// the block orders against a concurrent emission deciding whether to visit
// the slot: once Block returns, no new visit of this slot can begin until it
// is unblocked (a visit already executing is not interrupted).
func (c Connection) Block() {
	n := c.n
	if n == nil {
		return
	}
	if lk := n.lock; lk != nil {
		lk.mu.Lock()
		defer lk.mu.Unlock()
	}
	n.blocked.Store(true)
}

// Unblock clears the blocked flag. Lock-free; an emission concurrent with
// Unblock may or may not visit the slot.
func (c Connection) Unblock() {
	if c.n != nil {
		c.n.blocked.Store(false)
	}
}

// Disconnect removes the slot from its signal's list. Idempotent. Safe to
// call from inside the slot itself (see [CurrentConnection]), from other
// slots of the same emission, and after the signal has been closed or
// collected. An emission that has not yet reached the slot will skip it.
func (c Connection) Disconnect() {
	n := c.n
	if n == nil {
		return
	}
	if lk := n.lock; lk != nil {
		lk.mu.Lock()
		defer lk.mu.Unlock()
	}
	n.unlink()
}

// ScopedConnection owns a [Connection] and disconnects it on [Close],
// typically via defer. Unlike Connection it is not meant to be copied; move
// ownership with [ScopedConnection.Release].
type ScopedConnection struct {
	c Connection
}

// NewScopedConnection wraps c in a scoped owner.
func NewScopedConnection(c Connection) *ScopedConnection {
	return &ScopedConnection{c: c}
}

// Connection returns the underlying handle without affecting ownership.
func (s *ScopedConnection) Connection() Connection {
	return s.c
}

// Release relinquishes ownership, returning the underlying handle. Close
// becomes a no-op.
func (s *ScopedConnection) Release() Connection {
	c := s.c
	s.c = Connection{}
	return c
}

// Close disconnects the owned connection, if any. Idempotent.
func (s *ScopedConnection) Close() error {
	s.c.Disconnect()
	s.c = Connection{}
	return nil
}

// ScopedConnectionContainer aggregates connections and disconnects them all
// on [ScopedConnectionContainer.Close]. The zero value is ready to use.
//
// Thread Safety: safe for concurrent use.
type ScopedConnectionContainer struct {
	mu     sync.Mutex
	conns  []Connection
	closed bool
}

// Add appends a connection to the container. A connection added after Close
// is disconnected immediately rather than leaked.
func (s *ScopedConnectionContainer) Add(c Connection) {
	s.mu.Lock()
	closed := s.closed
	if !closed {
		s.conns = append(s.conns, c)
	}
	s.mu.Unlock()
	if closed {
		c.Disconnect()
	}
}

// Close disconnects every contained connection. Idempotent.
func (s *ScopedConnectionContainer) Close() error {
	s.mu.Lock()
	conns := s.conns
	s.conns = nil
	s.closed = true
	s.mu.Unlock()
	for _, c := range conns {
		c.Disconnect()
	}
	return nil
}

// Len returns the number of contained connections (connected or not).
func (s *ScopedConnectionContainer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// TrackedReceiver is the capability a signal's ConnectTracked overload
// expects of a receiver: connections handed to it are disconnected when the
// receiver is torn down. [Trackable] is the ready-made implementation.
type TrackedReceiver interface {
	AddTrackedConnection(c Connection)
}

// Trackable is a mix-in for slot receivers. Embed it in the receiver type,
// connect with ConnectTracked (or register handles explicitly via
// [Trackable.AddTrackedConnection]), and call [Trackable.Close] when the
// receiver is torn down: every registered connection is disconnected, so the
// signal can never again invoke a slot bound to the dead receiver.
//
//	type Receiver struct {
//		sigslot.Trackable
//	}
//
//	r := &Receiver{}
//	sig.ConnectTracked(r, r.handle)
//	// ... later:
//	r.Close() // no slot of r runs again
type Trackable struct {
	container ScopedConnectionContainer
}

// AddTrackedConnection registers a connection to be disconnected when the
// receiver is closed.
func (t *Trackable) AddTrackedConnection(c Connection) {
	t.container.Add(c)
}

// Close disconnects every tracked connection. Idempotent.
func (t *Trackable) Close() error {
	return t.container.Close()
}

// ConnectionBlocker blocks a connection for a scope, with idempotent
// nesting: only the blocker that actually set the flag clears it on Close,
// so nested blockers compose without unblocking early.
type ConnectionBlocker struct {
	c   Connection
	set bool
}

// NewConnectionBlocker blocks c (if it was not already blocked) and returns
// the scoped blocker. Pair with a deferred Close.
func NewConnectionBlocker(c Connection) *ConnectionBlocker {
	b := &ConnectionBlocker{c: c}
	if !c.IsBlocked() {
		c.Block()
		b.set = true
	}
	return b
}

// Close unblocks the connection, but only if this blocker was the one to
// block it. Idempotent.
func (b *ConnectionBlocker) Close() error {
	if b.set {
		b.set = false
		b.c.Unblock()
	}
	return nil
}
