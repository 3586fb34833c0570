package match

import (
	"testing"

	"github.com/yamatteo/parakeet/grammar"
)

func mustTerminal(t *testing.T, ext, pattern string) *grammar.TerminalRule {
	t.Helper()
	r, err := grammar.NewTerminalRule(ext, pattern)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestFromScanProducesDistinctNamesPerPosition(t *testing.T) {
	a := mustTerminal(t, "a", "a")
	input := "aa"
	m0, ok := FromScan(a, input, 0, []byte{0}, len(input))
	if !ok {
		t.Fatal("expected match at 0")
	}
	m1, ok := FromScan(a, input, 1, []byte{0}, len(input))
	if !ok {
		t.Fatal("expected match at 1")
	}
	if m0.IdentityKey() == m1.IdentityKey() {
		t.Fatalf("matches at different positions must have different identity")
	}
	if m0.Start() != 0 || m0.Close() != 1 {
		t.Fatalf("unexpected span for m0: [%d:%d]", m0.Start(), m0.Close())
	}
}

func TestFromScanNoMatch(t *testing.T) {
	a := mustTerminal(t, "a", "a")
	if _, ok := FromScan(a, "b", 0, []byte{0}, 1); ok {
		t.Fatalf("expected no match")
	}
}

func TestWrappingHistoryStopsAtNonUnit(t *testing.T) {
	a := mustTerminal(t, "a", "a")
	am, _ := FromScan(a, "a", 0, []byte{0}, 1)

	wrapRule, err := grammar.NewSubstitutionRule("W", []string{"a"})
	if err != nil {
		t.Fatal(err)
	}
	fm := FromRule(wrapRule, 0, []byte{1}, nil, nil)
	fed, err := Feed(fm, am)
	if err != nil {
		t.Fatal(err)
	}
	wm, ok := fed.(*CompleteMatch)
	if !ok {
		t.Fatalf("expected promotion to CompleteMatch, got %T", fed)
	}
	hist := wm.WrappingHistory()
	if len(hist) != 2 {
		t.Fatalf("expected wrapping history of length 2, got %d", len(hist))
	}
	if hist[0] != wm || hist[1] != am {
		t.Fatalf("unexpected wrapping history contents")
	}
}

func TestCanConcatNoContextAlwaysTrue(t *testing.T) {
	a := mustTerminal(t, "a", "a")
	m1, _ := FromScan(a, "ab", 0, []byte{0}, 2)
	m2, _ := FromScan(a, "ab", 1, []byte{0}, 2)
	if !CanConcat(m1, m2) {
		t.Fatalf("matches with no left/right requirement must always concatenate")
	}
}

func TestSettleRequiresExpectationHeld(t *testing.T) {
	a := mustTerminal(t, "a", "a")
	b := mustTerminal(t, "b", "b")
	am, _ := FromScan(a, "ab", 0, []byte{0}, 2)
	bm, _ := FromScan(b, "ab", 1, []byte{1}, 2)

	right := grammar.Require("b")
	rule, err := grammar.NewSubstitutionRule("S", []string{"a"}, grammar.WithRight(right))
	if err != nil {
		t.Fatal(err)
	}
	fm := FromRule(rule, 0, []byte{2}, nil, nil)
	fed, err := Feed(fm, am)
	if err != nil {
		t.Fatal(err)
	}
	pending, ok := fed.(*ForwardMatch)
	if !ok {
		t.Fatalf("expected a still-forward match awaiting right context, got %T", fed)
	}
	cm, err := Settle(pending, bm)
	if err != nil {
		t.Fatal(err)
	}
	if cm.RBro() != bm {
		t.Fatalf("expected rbro to be bm")
	}
	if cm.External() != "S" {
		t.Fatalf("unexpected external %q", cm.External())
	}
}

func TestSettleRejectsUnmetExpectation(t *testing.T) {
	a := mustTerminal(t, "a", "a")
	c := mustTerminal(t, "c", "c")
	am, _ := FromScan(a, "ac", 0, []byte{0}, 2)
	cm2, _ := FromScan(c, "ac", 1, []byte{1}, 2)

	right := grammar.Require("b")
	rule, _ := grammar.NewSubstitutionRule("S", []string{"a"}, grammar.WithRight(right))
	fm := FromRule(rule, 0, []byte{2}, nil, nil)
	fed, err := Feed(fm, am)
	if err != nil {
		t.Fatal(err)
	}
	pending := fed.(*ForwardMatch)
	if _, err := Settle(pending, cm2); err != ErrPrecondition {
		t.Fatalf("expected ErrPrecondition, got %v", err)
	}
}
