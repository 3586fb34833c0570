package match

import "errors"

// ErrPrecondition signals that a candidate Settle/Feed combination does
// not apply (mismatched external, positions that don't abut, an unmet
// expectation, a failed concatenation check, ...). It is not a bug: the
// driver (package earley) treats it as a silent "this candidate doesn't
// fire" signal (§7).
var ErrPrecondition = errors.New("match: precondition not met")

// ErrCyclic signals that a would-be complete match is a useless cyclic
// renaming of an earlier match along the same wrapping chain (§4.5).
var ErrCyclic = errors.New("match: cyclic renaming rejected")

// HistoryAtStart returns match, then match.First(), recursively, down
// to a terminal: the chain of nested leftmost descendants, newest
// (match itself) first.
func HistoryAtStart(m *CompleteMatch) []*CompleteMatch {
	out := []*CompleteMatch{m}
	for len(m.children) != 0 {
		m = m.First()
		out = append(out, m)
	}
	return out
}

// HistoryAtClose returns match, then match.Last(), recursively, down to
// a terminal: the chain of nested rightmost descendants, newest first.
func HistoryAtClose(m *CompleteMatch) []*CompleteMatch {
	out := []*CompleteMatch{m}
	for len(m.children) != 0 {
		m = m.Last()
		out = append(out, m)
	}
	return out
}

func identityEqual(a, b *CompleteMatch) bool {
	if a == nil || b == nil {
		return false
	}
	return a.key == b.key
}

func containsIdentity(list []*CompleteMatch, target *CompleteMatch) bool {
	if target == nil {
		return false
	}
	for _, m := range list {
		if m.key == target.key {
			return true
		}
	}
	return false
}

func indexOfIdentity(list []*CompleteMatch, target *CompleteMatch) int {
	for i, m := range list {
		if m.key == target.key {
			return i
		}
	}
	return -1
}

func maxIndexWhere(list []*CompleteMatch, pred func(*CompleteMatch) bool) int {
	best := -1
	for i, m := range list {
		if pred(m) {
			best = i
		}
	}
	return best
}

// CanConcat determines whether a complete match left, ending at some
// position p, may be immediately followed by a complete match right
// starting at p, given both may carry right/left context requirements
// (§4.1).
func CanConcat(left, right *CompleteMatch) bool {
	if left == nil || right == nil {
		return false
	}
	leftReq := left.rbro
	rightReq := right.lbro

	if leftReq == nil && rightReq == nil {
		return true
	}

	leftHistory := HistoryAtClose(left)
	rightHistory := HistoryAtStart(right)

	if leftReq == nil {
		return containsIdentity(leftHistory, rightReq)
	}
	if rightReq == nil {
		return containsIdentity(rightHistory, leftReq)
	}

	if containsIdentity(rightHistory, leftReq) && containsIdentity(leftHistory, rightReq) {
		leftOldest := maxIndexWhere(leftHistory, func(m *CompleteMatch) bool {
			return identityEqual(m.rbro, leftReq)
		})
		leftNeeded := indexOfIdentity(leftHistory, rightReq)
		rightOldest := maxIndexWhere(rightHistory, func(m *CompleteMatch) bool {
			return identityEqual(m.lbro, rightReq)
		})
		rightNeeded := indexOfIdentity(rightHistory, leftReq)

		if leftOldest < leftNeeded {
			return rightNeeded <= rightOldest
		}
		return rightOldest < rightNeeded
	}
	return false
}

// Side selects which part of a wrapping span to compute (§4.2).
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideBoth
)

// externalSet is a set of external names, compared by key membership.
type externalSet map[string]struct{}

func setsEqual(a, b externalSet) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// WrappingSpan returns a tuple (represented as a slice) of sets of
// externals, per §4.2: one central set holding the externals of cm's
// whole wrapping history, preceded by one such set per match along the
// chain of left-brothers and followed by one per match along the chain
// of right-brothers (as side selects). Two wrapping spans are equal iff
// they have the same length and each position's set is equal.
func WrappingSpan(cm *CompleteMatch, side Side) []externalSet {
	central := externalSet{}
	for _, w := range cm.WrappingHistory() {
		central[w.External()] = struct{}{}
	}

	var left, right []externalSet
	if side != SideRight && cm.lbro != nil {
		left = WrappingSpan(cm.lbro, SideLeft)
	}
	if side != SideLeft && cm.rbro != nil {
		right = WrappingSpan(cm.rbro, SideRight)
	}

	if side == SideNone {
		return []externalSet{central}
	}
	out := make([]externalSet, 0, len(left)+1+len(right))
	out = append(out, left...)
	out = append(out, central)
	out = append(out, right...)
	return out
}

// WrappingSpansEqual compares two wrapping spans tuple-wise.
func WrappingSpansEqual(a, b []externalSet) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !setsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Settle completes a forward match with no remaining awaited children
// by recording cm as its right-brother witness (§4.3).
func Settle(fm *ForwardMatch, cm *CompleteMatch) (*CompleteMatch, error) {
	if len(fm.Awaited()) != 0 {
		return nil, ErrPrecondition
	}
	exp := fm.Expectation()
	if exp == nil || !exp.Holds(cm.External()) {
		return nil, ErrPrecondition
	}
	if !CanConcat(fm.Last(), cm) {
		return nil, ErrPrecondition
	}
	// A CompleteMatch has no "upon" slot of its own (only ForwardMatch
	// does); the upon anchor only shapes a match's lrepr while it is
	// still a forward, so it is never folded in here.
	crepr, lrepr, rrepr := computeReprs(fm.name, fm.children, fm.lbro, nil, cm)
	return &CompleteMatch{
		core: core{
			rule: fm.rule, start: fm.start, close: fm.close, name: fm.name,
			children: fm.children, lbro: fm.lbro,
			crepr: crepr, lrepr: lrepr, rrepr: rrepr,
			key: identityKey(crepr, lrepr, rrepr),
		},
		rbro: cm,
	}, nil
}

// Feed advances a forward match by consuming an awaited child cm, and
// attempts promotion to a CompleteMatch when that empties the awaited
// list (§4.4, §4.5). The returned Match is either a *ForwardMatch (not
// yet complete, or complete but unpromotable for a reason other than a
// cycle) or a *CompleteMatch (successfully promoted).
func Feed(fm *ForwardMatch, cm *CompleteMatch) (Match, error) {
	awaited := fm.Awaited()
	if len(awaited) == 0 || awaited[0] != cm.External() || fm.close != cm.start {
		return nil, ErrPrecondition
	}

	leftBrother := fm.lbro
	if len(fm.children) > 0 {
		if !CanConcat(fm.Last(), cm) {
			return nil, ErrPrecondition
		}
	} else {
		if fm.upon != nil {
			if !containsIdentity(HistoryAtStart(cm), fm.upon) {
				return nil, ErrPrecondition
			}
		}
		if leftBrother != nil {
			if !CanConcat(leftBrother, cm) {
				return nil, ErrPrecondition
			}
		} else {
			leftBrother = cm.lbro
		}
	}

	children := make([]*CompleteMatch, len(fm.children)+1)
	copy(children, fm.children)
	children[len(fm.children)] = cm

	fed := &ForwardMatch{
		core: newCore(fm.rule, fm.start, cm.close, fm.name, children, leftBrother, fm.upon, nil),
		upon: fm.upon,
	}

	if len(fed.Awaited()) != 0 {
		return fed, nil
	}
	return promote(fed, cm)
}

// promote attempts to turn a fully-fed forward match into a complete
// match, applying the cycle check of §4.5 against the wrapping history
// of the just-fed child cm.
func promote(fed *ForwardMatch, cm *CompleteMatch) (Match, error) {
	rb := fed.Last().rbro
	rightExp := fed.SRule().Right
	if rightExp != nil {
		if rb == nil || !rightExp.Holds(rb.External()) {
			return fed, nil
		}
	}

	// As in Settle, the promoted CompleteMatch drops the upon anchor
	// from its lrepr: only ForwardMatch carries one.
	crepr, lrepr, rrepr := computeReprs(fed.name, fed.children, fed.lbro, nil, rb)
	newcm := &CompleteMatch{
		core: core{
			rule: fed.rule, start: fed.start, close: fed.close, name: fed.name,
			children: fed.children, lbro: fed.lbro,
			crepr: crepr, lrepr: lrepr, rrepr: rrepr,
			key: identityKey(crepr, lrepr, rrepr),
		},
		rbro: rb,
	}

	var prev *CompleteMatch
	for _, w := range cm.WrappingHistory() {
		if w.External() == newcm.External() {
			prev = w
			break
		}
	}
	if prev == nil {
		return newcm, nil
	}

	if WrappingSpansEqual(WrappingSpan(newcm, SideBoth), WrappingSpan(prev, SideBoth)) {
		return nil, ErrCyclic
	}

	if WrappingSpansEqual(WrappingSpan(newcm, SideNone), WrappingSpan(prev, SideNone)) {
		newOnLeft := (prev.lbro == nil && newcm.lbro != nil) ||
			(prev.lbro != nil &&
				!WrappingSpansEqual(WrappingSpan(prev, SideLeft), WrappingSpan(newcm, SideLeft)) &&
				!CanConcat(newcm.lbro, prev))
		newOnRight := (prev.rbro == nil && newcm.rbro != nil) ||
			(prev.rbro != nil &&
				!WrappingSpansEqual(WrappingSpan(prev, SideRight), WrappingSpan(newcm, SideRight)) &&
				!CanConcat(prev, newcm.rbro))

		if !newOnLeft && !newOnRight {
			return nil, ErrCyclic
		}
	}

	return newcm, nil
}
