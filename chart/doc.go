/*
Package chart holds the two deduplicating indexes a parse run builds
up incrementally: CompleteChart (complete matches, keyed by start
position and external) and ForwardChart (forward matches, keyed by the
position and external they are currently awaiting).

Both charts dedupe by a match's canonical identity (crepr/lrepr/rrepr),
never by pointer: the same derivation predicted or scanned twice from
different driver paths collapses to one entry, which is what makes the
earley package's fixpoint terminate and stay confluent regardless of
processing order.

Storage is adapted from the teacher's use of github.com/emirpasic/gods
for its own state-set bookkeeping: each (position, external) bucket is
an ordered arraylist.List, and a flat hashset.Set over identity keys
backs the "have we seen this match before" check for both charts.
*/
package chart
