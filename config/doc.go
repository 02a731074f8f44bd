/*
Package config defines the shape contract for configuration trees and
classifies their nodes.

A configuration tree is built from exactly three node shapes: mappings
(map[string]any), sequences ([]any), and scalars (strings, numbers,
booleans, nil). Loaders that produce other shapes must normalize them
before handing the tree to the engine. Input trees are read-only; the
engine produces a parallel resolved tree and never mutates the caller's.

A mapping carrying the reserved target key is a directive: an instruction
to look up the named target in a registry and invoke it with the mapping's
remaining entries as arguments. The reserved key is an exact string token;
a mapping that uses it for an unrelated purpose is indistinguishable from
a directive, which is a documented limitation of the vocabulary rather
than a defect.
*/
package config
