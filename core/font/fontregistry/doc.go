/*
Package fontregistry manages the runtime registry of loaded fonts.

The registry is append-only: once a font has been registered under an
identifier, it will neither be replaced nor removed for the lifetime of the
registry. Clients looking for a font not (yet) present will receive the
fallback font, together with an error.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontica.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontica.fonts")
}
