/*
Package loader turns serialized configuration files into the plain
mapping/sequence/scalar trees the engine consumes.

Loaders are external collaborators of the core: the engine itself never
touches the filesystem. Two formats are provided, YAML and HCL, selected
by file extension. Loading a directory merges the top-level keys of
every recognized file into one tree; duplicate top-level keys across
files are an error.

Both loaders normalize scalars to a single shape contract: integral
numbers become int, other numbers float64, and mappings always use
string keys. HCL variable traversals (`db.port`) and string templates
translate into the engine's `${...}` reference syntax, so references
work identically in both formats.
*/
package loader
