// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package sigslot

import "sync/atomic"

// node is one entry in a signal's connection list. It doubles as the target
// of [Connection] handles, so it carries everything a handle needs to operate
// after the owning signal is gone: the blocked flag and a shared reference to
// the signal's lock.
//
// List invariants:
//   - prev == nil encodes disconnected (sentinel heads aside); next stays
//     valid so an in-flight traversal can advance past a tombstone.
//   - A node reachable from the list head satisfies prev != nil.
//   - next is never nil for a node that was ever linked, except the tail
//     sentinel.
//
// prev and next are guarded by the signal's lock when one exists
// (single-threaded signals have none and rely on goroutine confinement).
type node struct {
	prev *node
	next *node

	// slot holds the type-erased callable: func(T) for Signal, func(T) R
	// for SignalR. Sentinels hold nil.
	slot any

	// lock is the shared lock of the owning signal, nil for single-threaded
	// signals. Held by the node so disconnecting through a handle remains
	// well-defined after the signal itself is unreachable.
	lock *sharedLock

	// owner is the goroutine id a queued connection is bound to, 0 meaning
	// any goroutine (direct execution on the emitter). Written once before
	// the node is linked.
	owner int64

	// id identifies the connection in log output.
	id uint64

	// signalID identifies the owning signal in log output.
	signalID uint64

	blocked atomic.Bool
}

// unlink removes n from its siblings and tombstones it. The forward link is
// preserved so traversals holding n can still advance. No-op for tombstones.
// Caller holds the signal lock, if any.
func (n *node) unlink() {
	if n.prev == nil {
		return
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev = nil
}

// connList is the stable doubly-linked list of connection nodes. Sentinel
// head and tail bound the live range; iteration starts at head.next and
// terminates on reaching &tail. Elements never move, and erasure of one
// element never invalidates a reference to another.
//
// The zero value is not usable; call init first. connList must not be copied
// after init (the sentinels are linked by address).
type connList struct {
	head node
	tail node
}

func (l *connList) init() {
	l.head.next = &l.tail
	l.tail.prev = &l.head
}

// insertBefore links n just before at. at must be linked (or the tail
// sentinel); n must be fresh.
func (l *connList) insertBefore(at, n *node) {
	n.prev = at.prev
	n.next = at
	at.prev.next = n
	at.prev = n
}

// pushFront links n as the first element.
func (l *connList) pushFront(n *node) {
	l.insertBefore(l.head.next, n)
}

// pushBack links n as the last element.
func (l *connList) pushBack(n *node) {
	l.insertBefore(&l.tail, n)
}

// erase tombstones n, preserving its forward link.
func (l *connList) erase(n *node) {
	n.unlink()
}

// eraseRange tombstones every node in [first, last), using the safe-erase
// idiom: the successor is captured before unlinking.
func (l *connList) eraseRange(first, last *node) {
	for cur := first; cur != last; {
		next := cur.next
		cur.unlink()
		cur = next
	}
}

// removeIf tombstones every node matching pred, returning the number
// removed.
func (l *connList) removeIf(pred func(*node) bool) int {
	var removed int
	for cur := l.head.next; cur != &l.tail; {
		next := cur.next
		if pred(cur) {
			cur.unlink()
			removed++
		}
		cur = next
	}
	return removed
}

// clear tombstones every node. Each cleared node's forward link is parked on
// the tail sentinel so a traversal suspended anywhere in the old chain
// converges to the end on its next advance.
func (l *connList) clear() {
	for cur := l.head.next; cur != &l.tail; {
		next := cur.next
		cur.prev = nil
		cur.next = &l.tail
		cur = next
	}
	l.head.next = &l.tail
	l.tail.prev = &l.head
}

// len counts the linked nodes. O(n); the list is expected to be short, and
// counting beats maintaining a counter that disconnect-via-handle (possibly
// after the signal is gone) would have to keep coherent.
func (l *connList) len() int {
	var n int
	for cur := l.head.next; cur != &l.tail; cur = cur.next {
		n++
	}
	return n
}

// empty reports whether no nodes are linked.
func (l *connList) empty() bool {
	return l.head.next == &l.tail
}

// front returns the first linked node, or nil.
func (l *connList) front() *node {
	if n := l.head.next; n != &l.tail {
		return n
	}
	return nil
}

// back returns the last linked node, or nil.
func (l *connList) back() *node {
	if n := l.tail.prev; n != &l.head {
		return n
	}
	return nil
}
