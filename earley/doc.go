/*
Package earley implements the driver loop that turns a grammar.RuleSet
and an input string into a set of spanning derivations: predict, scan,
and completion, adapted to carry sibling context through every
generated match (see package match for the underlying algebra and
package chart for the indexes the driver consults and updates).

Build a Parser once from a rule set and call Parse as many times as
needed; each call is synchronous and owns its own chart pair, so
concurrent calls on the same Parser from different goroutines never
race with each other.
*/
package earley
