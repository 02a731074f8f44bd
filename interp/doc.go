/*
Package interp resolves `${...}`-style interpolation references inside
scalar configuration strings.

A reference carries a cfgpath address (`${a.b[0]}`) and an optional
default separated by a colon (`${a.b:fallback}`). A string that consists
of exactly one reference is "pure" and resolves to the referenced value
with its type preserved; references embedded in surrounding text resolve
to their string representation. `$${` escapes a literal `${`.

References are checked against the caller-supplied variable set first and
the configuration tree second: explicit variables represent caller
overrides and take precedence. A reference whose target is itself a
reference is followed until a non-reference value is reached; revisiting
a path already on the active chain fails with CyclicReferenceError.
*/
package interp
