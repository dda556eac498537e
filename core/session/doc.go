/*
Package session holds the state of a font preview session.

A preview session lists one page of the font catalog at a time, filters it
by a search query and a category, and decides for every visible font
whether it covers the current preview text. Everything a session knows is
kept in an explicit Session value; there is no package level state.

Visible fonts are computed by Compute, which is a pure function of the
catalog page, the session parameters, the load states and the coverage
checker. Fonts become visible before they are loaded; their verdict is
Unknown until the font loader reports them as loaded.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package session

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontica.session'.
func tracer() tracing.Trace {
	return tracing.Select("fontica.session")
}
