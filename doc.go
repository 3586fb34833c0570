/*
Package parakeet is the root of a context-sensitive chart parser.

Package structure:

■ grammar: terminal and substitution rules, left/right sibling
expectations, and the deduplicated, deterministically named RuleSet
built from them.

■ match: the match algebra — ForwardMatch (incomplete) and
CompleteMatch (complete), their canonical byte representations, and
the pure interactions over them (CanConcat, Settle, Feed, wrapping
history/span, cycle detection).

■ chart: the two deduplicating indexes a parse run builds incrementally,
CompleteChart and ForwardChart.

■ earley: the driver loop (predict/scan/complete) tying grammar, match
and chart together into Parser.Parse.

■ registry: a small name-interning helper grammar uses to collect every
declared external (the list chart indexes forbid-expectations under).

The root package itself carries no executable code.
*/
package parakeet
