/*
Package match implements the match algebra of a context-sensitive chart
parse: the data model (ForwardMatch, CompleteMatch) and the pure
interactions over it (CanConcat, Settle, Feed, wrapping-history/span,
and the cycle check embedded in Feed's promotion step).

Context-sensitive grammars have rules like

	b C a  →  b D E a

so a substitution for C can fire only if it is preceded by a 'b' and
followed by an 'a'. As in Earley's algorithm, matches are built step by
step, left to right:

  - check if a match with external 'b' is present; if so, create an
    incomplete forward match *b(C → ·D E)&a, where '*b' is a reference
    to the left-brother (the complete match serving as left context)
    and '&a' is what the match still needs as right context once
    complete;
  - when a match for 'D' completes, and it can concatenate with 'b',
    advance to *b(C → D·E)&a;
  - when a match for 'E' completes and can concatenate with D, advance
    to *b(C → D E·)&a;
  - when a match for 'a' completes and can concatenate with E, produce
    the complete match *b((C → D E))*a: it spans where D starts to
    where E ends, and remembers that it needed b on the left and a on
    the right to come into being.

Matches are immutable once built; identity and hashing are derived
solely from three canonical byte strings computed at construction time
(crepr, lrepr, rrepr — see CompleteMatch/ForwardMatch), never from
object identity, so that the chart (package chart) can deduplicate
matches that were built independently but denote the same derivation.
*/
package match
