/*
Package registry provides the name-to-target lookup table used to resolve
directive targets during instantiation.

A Registry maps string names to constructible targets: plain functions,
*Factory values, or struct prototypes. It is an explicit object passed
into every entry point rather than an ambient singleton, so tests and
independent application instances can hold isolated registries. A
conventional process-wide instance can still be built once at startup.

Registration is expected at startup and is serialized; lookups are safe
for concurrent use afterwards. Re-registering an existing name is an
explicit choice: Register fails with DuplicateNameError, Override always
replaces.

Names that are not registered directly but look like dotted paths can be
resolved through the search path: an ordered list of aliased namespaces
consulted as a fallback, the closest Go analogue of resolving a name by
importing its module path.
*/
package registry
