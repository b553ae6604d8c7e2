/*
Package resources resolves bitmap font resources for an application.

As resource loading may be a time-consuming task, fonts are resolved in an
async/await fashion: ResolveFont returns a promise, which the client will
call later to receive the loaded font. The call to the promise-function
will then block until loading has completed.

Fonts are searched for in the following order:

▪︎ the application-wide font registry

▪︎ the font name taken as a file path

▪︎ directories listed in configuration key `pff2-path`

▪︎ GRUB's default font directories, unless `pff2-grub-dirs` is set to false

Configuration key `pff2-workers` sets the number of goroutines decoding
glyphs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'glyphatlas.resources'.
func tracer() tracing.Trace {
	return tracing.Select("glyphatlas.resources")
}
