/*
Package cfgpath provides a structured, type-safe representation for
addresses into a configuration tree, based on the canonical format
`a.b[0].c`.

A path is a sequence of segments. A key segment addresses a mapping entry
by name; an index segment addresses a sequence element by position. Index
segments render as `[n]` attached to the preceding text, so sequences of
sequences are addressable (`a[0][1]`).

This package centralizes all parsing and formatting of tree addresses,
which the rest of the module uses for interpolation references, cycle
bookkeeping, and error reporting.
*/
package cfgpath
