// Package host abstracts the editor moor is embedded in. The core only needs
// two lifecycle signals from the host: the user leaving a view and the
// process shutting down.
package host

// Host is implemented by editor adapters (see the nvimhost subpackage).
type Host interface {
	// OnViewLeft registers fn to run whenever the user leaves a buffer
	// or view.
	OnViewLeft(fn func()) error
	// OnExit registers fn to run while the host is shutting down. The host
	// must invoke fn before the shutdown handler returns, so pending state
	// can be flushed.
	OnExit(fn func()) error
}
