// Package middleware implements an event middleware chain: an
// ordered list of interceptors sitting in front of a terminal handler, used
// to observe or veto semantic events (sort toggled, filter changed, row
// expanded, ...) before they reach the table instance.
//
// Grounded on aster's Update(msg tea.Msg) dispatch in
// internal/ui/update.go, which routes one message through a chain of
// type-switched handlers before mutating model state; here the chain is
// explicit and host-supplied rather than compiled into a single switch.
package middleware

import "github.com/mobanhawi/tablekit/errs"

// Channel names the event's origin, e.g. "sort", "filter", "row".
type Channel string

// Event is an opaque payload describing what happened on a channel.
type Event any

// Next invokes the remainder of the chain. A middleware must call it at
// most once to pass control onward; omitting the call stops the chain
// short of the terminal handler.
type Next func()

// Middleware observes or vetoes one event. Call next to continue the
// chain; omit the call to stop propagation at this middleware.
type Middleware func(ch Channel, ev Event, next Next)

// Terminal is the handler invoked once the chain completes, if every
// middleware called next.
type Terminal func(ch Channel, ev Event)

// Dispatch sends one event through a composed chain.
type Dispatch func(ch Channel, ev Event) error

// Compose builds a Dispatch function that runs ev through middlewares in
// list order, then terminal if every middleware called next exactly once.
// Calling next twice within one middleware invocation returns
// a StateMisuse error instead of panicking or silently double-dispatching.
func Compose(middlewares []Middleware, terminal Terminal) Dispatch {
	return func(ch Channel, ev Event) error {
		var misuse error
		var step func(i int)
		step = func(i int) {
			if misuse != nil {
				return
			}
			if i >= len(middlewares) {
				if terminal != nil {
					terminal(ch, ev)
				}
				return
			}
			called := false
			middlewares[i](ch, ev, func() {
				if called {
					misuse = errs.New(errs.KindStateMisuse, "middleware.Dispatch", "next() called twice")
					return
				}
				called = true
				step(i + 1)
			})
		}
		step(0)
		return misuse
	}
}
