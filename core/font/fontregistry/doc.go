/*
Package fontregistry manages a registry for loaded bitmap fonts.

Fonts are stored under a normalized name, see NormalizeFontname. Parsing a
PFF2 font and packing its atlas is not free, so applications keep parsed
fonts in a registry, usually the application-wide GlobalRegistry.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'glyphatlas.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphatlas.fonts")
}
