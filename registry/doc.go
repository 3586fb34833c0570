/*
Package registry interns grammar external names.

A context-sensitive grammar needs to know, once and for all, the
complete set of externals it can ever produce: forbid-expectations
(§4.6 of the design) are indexed under "every external but one", so the
forward chart must be able to enumerate all of them. Registry is the
single place that assigns a stable serial id to each external the
first time it is seen and hands the same id back on every later lookup.

Adapted from gorgo's runtime.SymbolTable, which did the analogous job
for interpreter variable names; a chart parser has no variable scopes,
only a flat set of externals, so the scope-tree part of the original
was dropped and only the intern-and-assign-an-id behaviour survives.
*/
package registry
