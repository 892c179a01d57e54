// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package sigslot

import (
	"sync/atomic"

	"github.com/joeycumines/logiface"
	"github.com/petermattis/goid"
)

// signalIDCounter hands out process-unique signal ids for log correlation.
var signalIDCounter atomic.Uint64

// signalBase is the untyped core shared by [Signal] and [SignalR]: the
// connection list, the lock policy, logging identity, and the emission
// engine. The typed wrappers contribute only the slot call itself.
type signalBase struct {
	list       connList
	lk         *sharedLock // nil => single-threaded
	logger     *logiface.Logger[logiface.Event]
	name       string
	id         uint64
	nextConnID atomic.Uint64
	blocked    atomic.Bool
	loggerSet  bool
}

func (s *signalBase) init(cfg *signalOptions) {
	s.list.init()
	if !cfg.singleThreaded {
		s.lk = &sharedLock{}
	}
	s.logger = cfg.logger
	s.loggerSet = cfg.loggerSet
	s.name = cfg.name
	s.id = signalIDCounter.Add(1)
}

// log resolves the effective logger: the per-signal override if one was
// configured, else the process default. May return nil (disabled).
func (s *signalBase) log() *logiface.Logger[logiface.Event] {
	if s.loggerSet {
		return s.logger
	}
	return defaultLogger()
}

// logb attaches the signal's identity fields to the already-started builder
// b. Nil-safe end to end.
func (s *signalBase) logb(b *logiface.Builder[logiface.Event]) *logiface.Builder[logiface.Event] {
	b = b.Uint64("signal", s.id)
	if s.name != "" {
		b = b.Str("signal_name", s.name)
	}
	return b
}

func (s *signalBase) lock() {
	if s.lk != nil {
		s.lk.mu.Lock()
	}
}

func (s *signalBase) unlock() {
	if s.lk != nil {
		s.lk.mu.Unlock()
	}
}

// connect links a new node carrying the type-erased slot. The typed
// wrappers have already rejected nil slots.
func (s *signalBase) connect(slot any, flags ConnectFlag) Connection {
	n := &node{
		slot:     slot,
		lock:     s.lk,
		id:       s.nextConnID.Add(1),
		signalID: s.id,
	}
	if flags.Has(QueuedConnection) && s.lk != nil {
		n.owner = goid.Get()
	}

	s.lock()
	if flags.Has(ConnectAsFirstSlot) {
		s.list.pushFront(n)
	} else {
		s.list.pushBack(n)
	}
	s.unlock()

	s.logb(s.log().Trace()).
		Uint64("conn", n.id).
		Stringer("flags", flags).
		Log("slot connected")

	return Connection{n: n}
}

// size counts connected slots.
func (s *signalBase) size() int {
	s.lock()
	defer s.unlock()
	return s.list.len()
}

// empty reports whether no slots are connected.
func (s *signalBase) empty() bool {
	s.lock()
	defer s.unlock()
	return s.list.empty()
}

// disconnectAll tombstones every slot.
func (s *signalBase) disconnectAll() {
	s.lock()
	s.list.clear()
	s.unlock()
	s.logb(s.log().Trace()).Log("all slots disconnected")
}

// emit is the emission engine. visit invokes a single node's slot (typed
// work supplied by the wrappers) and is called with the signal lock
// RELEASED, so slots may reentrantly connect, disconnect, block, and emit.
//
// The walk visits the connected, unblocked slots in insertion order.
// Tombstones are skipped but still advanced through (their forward link is
// preserved by the list), so a slot disconnecting itself, its peers, or the
// whole signal mid-emission never strands the cursor. A slot appended
// during the emission is visited, because the cursor re-reads next after
// every step; a slot prepended during the emission is behind the cursor
// and is not.
func (s *signalBase) emit(visit func(n *node) error) error {
	if s.blocked.Load() {
		return nil
	}

	// Cheap out before touching the emission context.
	s.lock()
	if s.list.empty() {
		s.unlock()
		return nil
	}
	s.unlock()

	gid := goid.Get()
	ec, release := acquireEmissionContext(gid)
	defer release()
	savedAbort := ec.aborted
	ec.aborted = false
	defer func() { ec.aborted = savedAbort }()

	var errs []error

	s.lock()
	end := &s.list.tail
	for cur := s.list.head.next; cur != end; cur = cur.next {
		if cur.prev == nil || cur.blocked.Load() {
			continue
		}

		savedConn := ec.current
		ec.current = cur
		s.unlock()

		err := visit(cur)

		s.lock()
		ec.current = savedConn
		if err != nil {
			errs = append(errs, err)
		}
		if ec.aborted {
			break
		}
	}
	s.unlock()

	if len(errs) > 0 {
		s.logb(s.log().Err()).
			Int("failed", len(errs)).
			Err(errs[0]).
			Log("emission completed with slot failures")
	}
	return slotError(errs)
}

// callSlot runs fn directly, converting a panic into a PanicError.
func callSlot[T, R any](fn func(T) R, arg T) (out R, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = PanicError{Value: v}
		}
	}()
	out = fn(arg)
	return
}

// runSlot executes one slot visit: directly on the calling goroutine, or
// packaged through the dispatch queue when the connection is bound to a
// different goroutine. ok reports whether out holds a collectible value;
// fire-and-forget and skipped calls yield ok == false with a nil error.
func runSlot[T, R any](s *signalBase, n *node, fn func(T) R, arg T, wait bool) (out R, ok bool, err error) {
	if n.owner != 0 && n.owner != goid.Get() {
		qc := &queuedCall{
			n:    n,
			done: make(chan struct{}),
			log:  s.log(),
		}
		if !wait {
			// Queued void: fire-and-forget. A failure can never reach the
			// emitter, so it is logged instead of silently dropped.
			qc.run = func() {
				if _, err := callSlot(fn, arg); err != nil {
					s.logb(qc.log.Err()).
						Uint64("conn", n.id).
						Err(err).
						Log("queued slot failed")
				}
			}
			enqueueCall(n.owner, qc)
			s.logb(s.log().Debug()).
				Uint64("conn", n.id).
				Int64("owner", n.owner).
				Log("queued slot call enqueued")
			return out, false, nil
		}

		qc.run = func() {
			out, err = callSlot(fn, arg)
		}
		enqueueCall(n.owner, qc)
		s.logb(s.log().Debug()).
			Uint64("conn", n.id).
			Int64("owner", n.owner).
			Log("queued slot call enqueued, waiting")
		<-qc.done
		return out, qc.ran && err == nil, err
	}

	out, err = callSlot(fn, arg)
	return out, err == nil, err
}

// --- Signal (void) ---

// Signal is a typed multicast dispatcher for slots with no return value.
// Instances must be created with [NewSignal] and must not be copied.
//
// Thread Safety: safe for concurrent use from any goroutine by default; see
// [WithSingleThreaded].
type Signal[T any] struct {
	base signalBase
}

// NewSignal creates a void signal for slots of type func(T).
func NewSignal[T any](opts ...SignalOption) (*Signal[T], error) {
	cfg, err := resolveSignalOptions(opts)
	if err != nil {
		return nil, err
	}
	s := &Signal[T]{}
	s.base.init(cfg)
	return s, nil
}

// Connect registers a slot and returns its [Connection] handle. A nil slot
// yields an empty handle. See [ConnectFlag] for queued and prepend
// behavior.
func (s *Signal[T]) Connect(slot func(T), flags ...ConnectFlag) Connection {
	if slot == nil {
		return Connection{}
	}
	return s.base.connect(slot, combineFlags(flags))
}

// ConnectTracked registers a slot on behalf of receiver r: the returned
// handle is also added to r's tracked connections, so closing r
// disconnects the slot. See [Trackable].
func (s *Signal[T]) ConnectTracked(r TrackedReceiver, slot func(T), flags ...ConnectFlag) Connection {
	c := s.Connect(slot, flags...)
	if r != nil && c.n != nil {
		r.AddTrackedConnection(c)
	}
	return c
}

// Emit invokes every connected, unblocked slot with arg, in insertion
// order. Slot panics are isolated and aggregated into the returned
// *[SlotError]; a nil return means every visited slot completed.
func (s *Signal[T]) Emit(arg T) error {
	return s.base.emit(func(n *node) error {
		fn := n.slot.(func(T))
		_, _, err := runSlot(&s.base, n, func(v T) struct{} {
			fn(v)
			return struct{}{}
		}, arg, false)
		return err
	})
}

// Size returns the number of connected slots.
func (s *Signal[T]) Size() int { return s.base.size() }

// Empty reports whether no slots are connected.
func (s *Signal[T]) Empty() bool { return s.base.empty() }

// Block suppresses emission entirely until [Signal.Unblock]: Emit becomes a
// no-op. Individual connections keep their own blocked flags.
func (s *Signal[T]) Block() { s.base.blocked.Store(true) }

// Unblock re-enables emission.
func (s *Signal[T]) Unblock() { s.base.blocked.Store(false) }

// Blocked reports whether the whole signal is blocked.
func (s *Signal[T]) Blocked() bool { return s.base.blocked.Load() }

// DisconnectAll disconnects every slot. Outstanding handles remain valid
// and report not-connected; an in-flight emission finishes its current slot
// and then observes the end of the list.
func (s *Signal[T]) DisconnectAll() { s.base.disconnectAll() }

// Close disconnects every slot. Equivalent to DisconnectAll, in the
// io.Closer shape so signals slot into deferred cleanup.
func (s *Signal[T]) Close() error {
	s.base.disconnectAll()
	return nil
}

// --- SignalR (value-returning) ---

// SignalR is a typed multicast dispatcher for slots returning R. Return
// values are aggregated by a [Collector]: the default (last value wins,
// optional result) via [SignalR.Invoke], or any other via [Collect].
// Instances must be created with [NewSignalR] and must not be copied.
//
// Thread Safety: safe for concurrent use from any goroutine by default; see
// [WithSingleThreaded].
type SignalR[T any, R any] struct {
	base signalBase
}

// NewSignalR creates a value-returning signal for slots of type func(T) R.
func NewSignalR[T any, R any](opts ...SignalOption) (*SignalR[T, R], error) {
	cfg, err := resolveSignalOptions(opts)
	if err != nil {
		return nil, err
	}
	s := &SignalR[T, R]{}
	s.base.init(cfg)
	return s, nil
}

// Connect registers a slot and returns its [Connection] handle. A nil slot
// yields an empty handle.
//
// A [QueuedConnection] slot executes on the connecting goroutine; because
// the signal returns a value, emitters on other goroutines block until the
// owner drains the call via [DispatchQueuedCalls], so the collector sees
// returns in emission order.
func (s *SignalR[T, R]) Connect(slot func(T) R, flags ...ConnectFlag) Connection {
	if slot == nil {
		return Connection{}
	}
	return s.base.connect(slot, combineFlags(flags))
}

// ConnectTracked registers a slot on behalf of receiver r: the returned
// handle is also added to r's tracked connections, so closing r
// disconnects the slot. See [Trackable].
func (s *SignalR[T, R]) ConnectTracked(r TrackedReceiver, slot func(T) R, flags ...ConnectFlag) Connection {
	c := s.Connect(slot, flags...)
	if r != nil && c.n != nil {
		r.AddTrackedConnection(c)
	}
	return c
}

// Invoke emits with the default collector: the last visited slot's return
// value, with ok false when no slot produced one (none connected, all
// blocked, or the emission aborted before any ran).
func (s *SignalR[T, R]) Invoke(arg T) (R, bool, error) {
	opt, err := Collect[T, R](s, NewLast[R](), arg)
	v, ok := opt.Get()
	return v, ok, err
}

// Emit invokes the slots and discards their return values.
func (s *SignalR[T, R]) Emit(arg T) error {
	_, _, err := s.Invoke(arg)
	return err
}

// Size returns the number of connected slots.
func (s *SignalR[T, R]) Size() int { return s.base.size() }

// Empty reports whether no slots are connected.
func (s *SignalR[T, R]) Empty() bool { return s.base.empty() }

// Block suppresses emission entirely until [SignalR.Unblock]: Invoke
// reports no value. Individual connections keep their own blocked flags.
func (s *SignalR[T, R]) Block() { s.base.blocked.Store(true) }

// Unblock re-enables emission.
func (s *SignalR[T, R]) Unblock() { s.base.blocked.Store(false) }

// Blocked reports whether the whole signal is blocked.
func (s *SignalR[T, R]) Blocked() bool { return s.base.blocked.Load() }

// DisconnectAll disconnects every slot. Outstanding handles remain valid
// and report not-connected.
func (s *SignalR[T, R]) DisconnectAll() { s.base.disconnectAll() }

// Close disconnects every slot.
func (s *SignalR[T, R]) Close() error {
	s.base.disconnectAll()
	return nil
}

// Collect emits sig with an explicit collector, overriding the default for
// this invocation only. Each successful slot return is passed to
// c.Collect in emission order; the collector's Result is returned alongside
// any aggregated slot failures.
//
// This is a free function because Go methods cannot introduce the
// collector's output type parameter.
func Collect[T, R, Out any](sig *SignalR[T, R], c Collector[R, Out], arg T) (Out, error) {
	err := sig.base.emit(func(n *node) error {
		fn := n.slot.(func(T) R)
		v, ok, err := runSlot(&sig.base, n, fn, arg, true)
		if ok {
			c.Collect(v)
		}
		return err
	})
	return c.Result(), err
}
