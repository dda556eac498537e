/*
Package loader loads catalog fonts into the runtime font registry.

A Client tracks a load state for every font identifier it has been asked
about:

    Unloaded ──start──▶ Loading ──success──▶ Loaded
                           │
                           └────failure──▶ Failed ──reload──▶ Loading

Loading is asynchronous. EnsureLoaded returns a promise, which clients call
later to receive the terminal state. Concurrent requests for the same font
attach to the load already in flight (single-flight per identifier); loads of
different fonts never wait for each other. Failures are not retried
automatically, but a failed font may be re-loaded explicitly.

The load state map is owned by the client. Every other component has
read-only access through State.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package loader

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontica.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("fontica.fonts")
}
