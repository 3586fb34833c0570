/*
Package grammar defines the rules of a context-sensitive grammar.

Context-sensitive grammars have rules like

	b C a  →  b D E a

here represented as a substitution rule for C with children D, E, a
left expectation requiring a 'b' and a right expectation requiring an
'a'. The expectations are checked against neighbouring matches while
a parse runs: the left one when the rule is predicted after an
existing match (package earley), the right one when a match of the
rule is completed (package match). A rule

	NewSubstitutionRule("C", []string{"D", "E"}, WithLeft(Require("b")), WithRight(Require("a")))

produces matches that must sit between something external 'b' and
something external 'a' to ever become part of a larger, complete
derivation.

The other kind of rule is a terminal rule, matching directly against a
prefix of the input with a regular expression:

	NewTerminalRule("a", `a[^a]+a`)

A RuleSet collects rules built in any order, deduplicates them by
identity (ext, body, left, right), and assigns each a stable,
deterministic rule-name: a fixed-length big-endian byte string unique
within the set, used as the seed of every match's canonical
representation (package match).
*/
package grammar
