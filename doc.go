// Package sigslot provides an in-process signal/slot event dispatch
// primitive: a typed multicast caller (the signal) that invokes a dynamically
// managed list of callbacks (the slots), aggregates their return values
// through a pluggable collector, and stays well-defined when the slot list is
// mutated mid-emission.
//
// # Architecture
//
// The package is organized leaves-first:
//
//   - A stable doubly-linked connection list whose nodes remain addressable
//     and traversable across insertion and erasure of other nodes. Erasing a
//     node tombstones it (its back link is cleared, its forward link is
//     preserved) so an in-flight emission can always advance to a still-live
//     successor.
//   - [Connection], a copyable handle sharing ownership of one list node.
//     Handles outlive list membership: a handle to a disconnected node stays
//     valid to query forever, it just reports not-connected.
//   - The emission engine on [Signal] and [SignalR]: walk the list in
//     insertion order, skip disconnected and blocked nodes, call each slot
//     with the signal's lock released so slots may reentrantly connect,
//     disconnect, block, and emit, and route return values through a
//     [Collector].
//   - A per-goroutine emission context exposing [CurrentConnection] and
//     [AbortEmission] to the currently executing slot, plus a process-wide
//     dispatch queue ([DispatchQueuedCalls]) backing queued connections.
//
// # Signatures
//
// Go has no variadic type parameters, so signals are parameterized over a
// single argument type: [Signal] for slots with no return value, [SignalR]
// for slots returning a value. Signals carrying multiple arguments use a
// struct argument type. The [Connection] handle is deliberately untyped and
// shared by every signal instantiation.
//
// # Thread Safety
//
// Signals are thread-safe by default: connecting, disconnecting, blocking,
// and emitting may race freely from any goroutine, and slots are always
// invoked without the signal's lock held. [WithSingleThreaded] removes the
// lock entirely for signals confined to one goroutine; re-entrant emission
// remains safe in both modes.
//
// A queued connection ([QueuedConnection]) binds a slot to the goroutine
// that connected it. Emissions from other goroutines package the call into
// that goroutine's mailbox, which the owner drains with
// [DispatchQueuedCalls]. Value-returning emissions wait for the packaged
// result; void emissions are fire-and-forget.
//
// # Usage
//
//	sig, err := sigslot.NewSignal[string]()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer sig.Close()
//
//	conn := sig.Connect(func(msg string) {
//		fmt.Println("got:", msg)
//	})
//
//	_ = sig.Emit("hello")
//	conn.Disconnect()
//
// Slots can manage their own lifetime from inside an emission:
//
//	sig.Connect(func(string) {
//		sigslot.CurrentConnection().Disconnect() // fire exactly once
//	})
//	sig.Connect(func(string) {
//		sigslot.AbortEmission() // later slots are skipped this emission
//	})
//
// # Error Types
//
// A panicking slot never prevents its peers from running. Each recovered
// panic becomes a [PanicError]; at the end of the emission they surface as a
// single *[SlotError] aggregate (Go 1.20+ multi-error, compatible with
// [errors.Is] and [errors.As]). [Optional.MustGet] on an empty optional
// panics with [ErrBadOptionalAccess].
package sigslot
