package sigslot_test

import (
	"fmt"

	sigslot "github.com/joeycumines/go-sigslot"
)

func ExampleSignal() {
	sig, err := sigslot.NewSignal[string]()
	if err != nil {
		panic(err)
	}
	defer sig.Close()

	sig.Connect(func(string) { fmt.Println("A") })
	sig.Connect(func(string) { fmt.Println("B") })

	_ = sig.Emit("event")
	// Output:
	// A
	// B
}

func ExampleSignalR_Invoke() {
	sig, err := sigslot.NewSignalR[int, int]()
	if err != nil {
		panic(err)
	}
	defer sig.Close()

	sig.Connect(func(x int) int { return x + 1 })

	v, ok, _ := sig.Invoke(41)
	fmt.Println(v, ok)
	// Output:
	// 42 true
}

func ExampleCurrentConnection() {
	sig, err := sigslot.NewSignal[struct{}]()
	if err != nil {
		panic(err)
	}
	defer sig.Close()

	sig.Connect(func(struct{}) {
		fmt.Println("once")
		sigslot.CurrentConnection().Disconnect()
	})

	for i := 0; i < 3; i++ {
		_ = sig.Emit(struct{}{})
	}
	// Output:
	// once
}

func ExampleAbortEmission() {
	sig, err := sigslot.NewSignal[struct{}]()
	if err != nil {
		panic(err)
	}
	defer sig.Close()

	sig.Connect(func(struct{}) {
		fmt.Println("first")
		sigslot.AbortEmission()
	})
	sig.Connect(func(struct{}) {
		fmt.Println("second")
	})

	_ = sig.Emit(struct{}{})
	// Output:
	// first
}

func ExampleCollect() {
	sig, err := sigslot.NewSignalR[int, int]()
	if err != nil {
		panic(err)
	}
	defer sig.Close()

	sig.Connect(func(x int) int { return x * 2 })
	sig.Connect(func(x int) int { return x * 3 })

	vs, _ := sigslot.Collect(sig, sigslot.NewRange[int](), 10)
	fmt.Println(vs)

	lo, _ := sigslot.Collect(sig, sigslot.NewMin[int](), 10)
	fmt.Println(lo.MustGet())
	// Output:
	// [20 30]
	// 20
}

func ExampleTrackable() {
	type receiver struct {
		sigslot.Trackable
	}

	sig, err := sigslot.NewSignal[string]()
	if err != nil {
		panic(err)
	}
	defer sig.Close()

	r := &receiver{}
	sig.ConnectTracked(r, func(msg string) { fmt.Println("got:", msg) })

	_ = sig.Emit("one")
	_ = r.Close() // tearing down the receiver disconnects its slots
	_ = sig.Emit("two")
	// Output:
	// got: one
}

func ExampleConnectionBlocker() {
	sig, err := sigslot.NewSignal[struct{}]()
	if err != nil {
		panic(err)
	}
	defer sig.Close()

	conn := sig.Connect(func(struct{}) { fmt.Println("slot") })

	func() {
		blocker := sigslot.NewConnectionBlocker(conn)
		defer blocker.Close()
		_ = sig.Emit(struct{}{}) // skipped while blocked
	}()

	_ = sig.Emit(struct{}{})
	// Output:
	// slot
}
