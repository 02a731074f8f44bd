/*
Package engine implements the recursive instantiation engine.

One Instantiate call walks a classified configuration tree depth-first,
resolving interpolation references, recursively materializing nested
directives into argument values, and invoking each directive's registry
target with the assembled arguments. The walk is synchronous and owns an
ephemeral resolution context: the active path stack for cycle detection
and a per-call memo so every interpolation reference to the same tree
path shares one instantiated value.

Instantiation is all-or-nothing: any failure surfaces to the caller with
the tree path of the failing node attached, and no partial result is
returned. Directives marked partial resolve to a *Deferred, a bound call
that can be invoked later with the same resolved arguments.
*/
package engine
