package sigslot

import "strings"

// ConnectFlag is a bitset controlling how a slot is connected.
type ConnectFlag uint8

const (
	// DirectConnection requests execution on the emitting goroutine. This is
	// the default and exists so callers can be explicit.
	DirectConnection ConnectFlag = 1 << iota

	// QueuedConnection binds the slot to the connecting goroutine: emissions
	// from other goroutines enqueue the call into that goroutine's mailbox,
	// to be executed by [DispatchQueuedCalls]. Only meaningful on
	// thread-safe signals; single-threaded signals execute directly.
	QueuedConnection

	// ConnectAsFirstSlot prepends the slot instead of appending it. A slot
	// prepended during an emission is not visited by that emission.
	ConnectAsFirstSlot
)

// Has reports whether all bits of o are set in f.
func (f ConnectFlag) Has(o ConnectFlag) bool {
	return f&o == o
}

// String returns a "|"-separated representation of the set bits.
func (f ConnectFlag) String() string {
	if f == 0 {
		return "direct"
	}
	var parts []string
	if f.Has(DirectConnection) {
		parts = append(parts, "direct")
	}
	if f.Has(QueuedConnection) {
		parts = append(parts, "queued")
	}
	if f.Has(ConnectAsFirstSlot) {
		parts = append(parts, "first")
	}
	if len(parts) == 0 {
		return "invalid"
	}
	return strings.Join(parts, "|")
}

// combineFlags folds a variadic flag list into one bitset.
func combineFlags(flags []ConnectFlag) ConnectFlag {
	var f ConnectFlag
	for _, v := range flags {
		f |= v
	}
	return f
}
