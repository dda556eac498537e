/*
Package catalog turns a raw collection of font files into a paginated,
categorized listing.

A Source enumerates raw entries (file names plus resource locations). The
Indexer keeps entries with a recognized font file extension, derives a
stable identifier, a display name and a category for each font, merges
variants of the same typeface and finally filters and paginates the result.

Categories are assigned by an ordered table of keyword rules, see
CategoryRules. This is a heuristic standing in for metadata a font binary
would provide.

The indexer holds no mutable state. Concurrent listings are independent of
each other, sharing nothing but the read-only source.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package catalog

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontica.catalog'.
func tracer() tracing.Trace {
	return tracing.Select("fontica.catalog")
}
