package middleware

import (
	"errors"
	"testing"

	"github.com/mobanhawi/tablekit/errs"
)

func TestMiddlewaresInvokedInListOrder(t *testing.T) {
	var order []string
	mws := []Middleware{
		func(ch Channel, ev Event, next Next) { order = append(order, "a"); next() },
		func(ch Channel, ev Event, next Next) { order = append(order, "b"); next() },
	}
	var terminalRan bool
	d := Compose(mws, func(ch Channel, ev Event) { order = append(order, "terminal"); terminalRan = true })

	if err := d("sort", "toggle"); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !terminalRan {
		t.Error("expected terminal to run")
	}
	want := []string{"a", "b", "terminal"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("got %v, want %v", order, want)
			break
		}
	}
}

func TestOmittingNextSkipsTerminal(t *testing.T) {
	mws := []Middleware{
		func(ch Channel, ev Event, next Next) { /* veto: never calls next */ },
	}
	ran := false
	d := Compose(mws, func(ch Channel, ev Event) { ran = true })
	if err := d("filter", nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if ran {
		t.Error("terminal should not run when a middleware omits next")
	}
}

func TestCallingNextTwiceIsStateMisuse(t *testing.T) {
	mws := []Middleware{
		func(ch Channel, ev Event, next Next) { next(); next() },
	}
	d := Compose(mws, func(ch Channel, ev Event) {})
	err := d("row", nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, errs.StateMisuse) {
		t.Errorf("expected StateMisuse, got %v", err)
	}
}

func TestNoMiddlewaresRunsTerminalDirectly(t *testing.T) {
	ran := false
	d := Compose(nil, func(ch Channel, ev Event) { ran = true })
	if err := d("sort", nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !ran {
		t.Error("expected terminal to run with an empty chain")
	}
}
