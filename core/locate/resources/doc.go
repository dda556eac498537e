/*
Package resources fetches font resources for an application.

A font record of the catalog carries a resource URL. Fetchers resolve such
URLs to the binary data of a font. Supported schemes are http(s) and file.
Fetched resources may be cached in the user's cache directory, keyed by URL.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'fontica.resources'.
func tracer() tracing.Trace {
	return tracing.Select("fontica.resources")
}
