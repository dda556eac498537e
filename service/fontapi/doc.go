/*
Package fontapi serves the font catalog over HTTP.

    GET /api/fonts?page=<int>&limit=<int>[&category=<c>&q=<text>&sort=name]

answers with a page of font records, 404 if the catalog is empty, 400 for
invalid paging and 500 if the catalog source cannot be enumerated. Font
files of a directory catalog are served below /fonts.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontapi

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontica.api'.
func tracer() tracing.Trace {
	return tracing.Select("fontica.api")
}
