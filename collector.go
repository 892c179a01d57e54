package sigslot

import "golang.org/x/exp/constraints"

// Optional is a minimal empty-or-value carrier, used as the result type of
// the value collectors and of [SignalR.Invoke] (an emission that ran no
// slots has no value to return).
type Optional[V any] struct {
	value V
	ok    bool
}

// Some returns an optional holding v.
func Some[V any](v V) Optional[V] {
	return Optional[V]{value: v, ok: true}
}

// None returns an empty optional.
func None[V any]() Optional[V] {
	return Optional[V]{}
}

// Get returns the contained value and whether one is present.
func (o Optional[V]) Get() (V, bool) {
	return o.value, o.ok
}

// MustGet returns the contained value, panicking with
// [ErrBadOptionalAccess] if the optional is empty.
func (o Optional[V]) MustGet() V {
	if !o.ok {
		panic(ErrBadOptionalAccess)
	}
	return o.value
}

// Or returns the contained value, or def if the optional is empty.
func (o Optional[V]) Or(def V) V {
	if o.ok {
		return o.value
	}
	return def
}

// IsSome reports whether a value is present.
func (o Optional[V]) IsSome() bool {
	return o.ok
}

// Collector aggregates the return values of the slots visited by one
// emission. Collect is called once per successful slot invocation, in
// emission order; Result is called once, after the emission completes.
//
// Collectors are not safe for concurrent use; use a fresh collector per
// emission.
type Collector[V any, Out any] interface {
	Collect(v V)
	Result() Out
}

// First keeps the first value seen.
type First[V any] struct {
	v  V
	ok bool
}

// NewFirst returns a collector keeping the first slot return value.
func NewFirst[V any]() *First[V] { return &First[V]{} }

func (c *First[V]) Collect(v V) {
	if !c.ok {
		c.v, c.ok = v, true
	}
}

func (c *First[V]) Result() Optional[V] {
	if !c.ok {
		return None[V]()
	}
	return Some(c.v)
}

// Last keeps the most recent value seen. This is the default collector of
// [SignalR.Invoke].
type Last[V any] struct {
	v  V
	ok bool
}

// NewLast returns a collector keeping the last slot return value.
func NewLast[V any]() *Last[V] { return &Last[V]{} }

func (c *Last[V]) Collect(v V) {
	c.v, c.ok = v, true
}

func (c *Last[V]) Result() Optional[V] {
	if !c.ok {
		return None[V]()
	}
	return Some(c.v)
}

// Min keeps the smallest value seen.
type Min[V constraints.Ordered] struct {
	v  V
	ok bool
}

// NewMin returns a collector keeping the minimum slot return value.
func NewMin[V constraints.Ordered]() *Min[V] { return &Min[V]{} }

func (c *Min[V]) Collect(v V) {
	if !c.ok || v < c.v {
		c.v, c.ok = v, true
	}
}

func (c *Min[V]) Result() Optional[V] {
	if !c.ok {
		return None[V]()
	}
	return Some(c.v)
}

// Max keeps the largest value seen.
type Max[V constraints.Ordered] struct {
	v  V
	ok bool
}

// NewMax returns a collector keeping the maximum slot return value.
func NewMax[V constraints.Ordered]() *Max[V] { return &Max[V]{} }

func (c *Max[V]) Collect(v V) {
	if !c.ok || v > c.v {
		c.v, c.ok = v, true
	}
}

func (c *Max[V]) Result() Optional[V] {
	if !c.ok {
		return None[V]()
	}
	return Some(c.v)
}

// Range accumulates every value seen, in emission order.
type Range[V any] struct {
	vs []V
}

// NewRange returns a collector accumulating all slot return values.
func NewRange[V any]() *Range[V] { return &Range[V]{} }

func (c *Range[V]) Collect(v V) {
	c.vs = append(c.vs, v)
}

func (c *Range[V]) Result() []V {
	return c.vs
}
