package match

import (
	"encoding/binary"

	"github.com/yamatteo/parakeet/grammar"
)

// Match is the common shape of ForwardMatch and CompleteMatch: every
// accessor a consumer needs to walk a derivation (§6.3 of the design).
type Match interface {
	Rule() grammar.Rule
	External() string
	Start() int
	Close() int
	Name() []byte
	Children() []*CompleteMatch
	LBro() *CompleteMatch
	CRepr() []byte
	LRepr() []byte
	RRepr() []byte
	IdentityKey() string
}

// core holds the fields shared by ForwardMatch and CompleteMatch.
type core struct {
	rule     grammar.Rule
	start    int
	close    int
	name     []byte
	children []*CompleteMatch
	lbro     *CompleteMatch

	crepr []byte
	lrepr []byte
	rrepr []byte
	key   string
}

func (c *core) Rule() grammar.Rule          { return c.rule }
func (c *core) External() string            { return c.rule.External() }
func (c *core) Start() int                  { return c.start }
func (c *core) Close() int                  { return c.close }
func (c *core) Name() []byte                { return c.name }
func (c *core) Children() []*CompleteMatch  { return c.children }
func (c *core) LBro() *CompleteMatch        { return c.lbro }
func (c *core) CRepr() []byte               { return c.crepr }
func (c *core) LRepr() []byte               { return c.lrepr }
func (c *core) RRepr() []byte               { return c.rrepr }
func (c *core) IdentityKey() string         { return c.key }

// First returns the leftmost child. Panics if there are none.
func (c *core) First() *CompleteMatch { return c.children[0] }

// Last returns the rightmost child. Panics if there are none.
func (c *core) Last() *CompleteMatch { return c.children[len(c.children)-1] }

// CompleteMatch is a match with all its children present, remembering
// the context (lbro/rbro) that witnessed its own construction.
type CompleteMatch struct {
	core
	rbro *CompleteMatch
}

// RBro returns the right-brother recorded at construction time, if any.
func (cm *CompleteMatch) RBro() *CompleteMatch { return cm.rbro }

// Depth reports the length of cm's wrapping history: 1 for a node with
// no single-child unit-renaming ancestry, more for each nested wrap.
func (cm *CompleteMatch) Depth() int { return len(cm.WrappingHistory()) }

// WrappingHistory returns cm, then cm.First(), recursively, while every
// node along the way has exactly one child (§4.2: a "wrapping match"
// is a pure unit-renaming). It stops at the first node with a
// different child count, or a terminal (no children).
func (cm *CompleteMatch) WrappingHistory() []*CompleteMatch {
	out := []*CompleteMatch{cm}
	cur := cm
	for len(cur.children) == 1 {
		cur = cur.children[0]
		out = append(out, cur)
	}
	return out
}

// ForwardMatch is an incomplete match: a rule body partially filled by
// already-complete children, awaiting the rest.
type ForwardMatch struct {
	core
	upon *CompleteMatch
}

// Upon returns the anchor a ForwardMatch must be built on top of, if any.
func (fm *ForwardMatch) Upon() *CompleteMatch { return fm.upon }

// SRule returns the substitution rule driving this forward match. A
// ForwardMatch is only ever predicted from a SubstitutionRule.
func (fm *ForwardMatch) SRule() *grammar.SubstitutionRule {
	return fm.rule.(*grammar.SubstitutionRule)
}

// Awaited returns the suffix of the rule's body not yet consumed.
func (fm *ForwardMatch) Awaited() []string {
	body := fm.SRule().Body
	return body[len(fm.children):]
}

// Expectation returns what the match needs as right context once
// complete (the rule's right expectation), or nil.
func (fm *ForwardMatch) Expectation() *grammar.Expectation {
	return fm.SRule().Right
}

// --- construction -----------------------------------------------------

// computeReprs derives (crepr, lrepr, rrepr) from a node's own name,
// children, left-brother/upon, and right-brother, per §3.2.1.
func computeReprs(name []byte, children []*CompleteMatch, lbro, upon, rbro *CompleteMatch) (crepr, lrepr, rrepr []byte) {
	crepr = append([]byte(nil), name...)
	for _, ch := range children {
		crepr = append(crepr, ch.crepr...)
	}

	if lbro != nil {
		lrepr = append(lrepr, lbro.lrepr...)
		lrepr = append(lrepr, lbro.crepr...)
	}
	if upon != nil {
		lrepr = append(lrepr, upon.crepr...)
	}

	rb := rbro
	if rb == nil && len(children) > 0 {
		rb = children[len(children)-1].rbro
	}
	if rb != nil {
		rrepr = append(rrepr, rb.crepr...)
		rrepr = append(rrepr, rb.rrepr...)
	}
	return crepr, lrepr, rrepr
}

// identityKey packs (crepr, lrepr, rrepr) into a single length-prefixed
// string so that membership/equality checks never depend on object
// identity, only on the derived canonical bytes (§9 design notes).
func identityKey(crepr, lrepr, rrepr []byte) string {
	buf := make([]byte, 0, 12+len(crepr)+len(lrepr)+len(rrepr))
	var lenbuf [4]byte
	for _, part := range [][]byte{crepr, lrepr, rrepr} {
		binary.BigEndian.PutUint32(lenbuf[:], uint32(len(part)))
		buf = append(buf, lenbuf[:]...)
		buf = append(buf, part...)
	}
	return string(buf)
}

func newCore(rule grammar.Rule, start, close int, name []byte, children []*CompleteMatch, lbro, upon, rbro *CompleteMatch) core {
	crepr, lrepr, rrepr := computeReprs(name, children, lbro, upon, rbro)
	return core{
		rule:     rule,
		start:    start,
		close:    close,
		name:     name,
		children: children,
		lbro:     lbro,
		crepr:    crepr,
		lrepr:    lrepr,
		rrepr:    rrepr,
		key:      identityKey(crepr, lrepr, rrepr),
	}
}

// FromScan creates a terminal complete match by matching rule's pattern
// as a prefix of input[start:]. It reports false if the pattern does
// not match there (this is a normal, silent rejection, not an error:
// §7 "precondition violations ... simply prune candidate matches").
func FromScan(rule *grammar.TerminalRule, input string, start int, name []byte, inputLen int) (*CompleteMatch, bool) {
	length, ok := rule.MatchPrefix(input, start)
	if !ok {
		return nil, false
	}
	end := start + length
	fullName := append(append([]byte(nil), name...),
		append(grammar.EncodeOffset(start, inputLen), grammar.EncodeOffset(end, inputLen)...)...)
	cm := &CompleteMatch{core: newCore(rule, start, end, fullName, nil, nil, nil, nil)}
	return cm, true
}

// FromRule predicts a fresh forward match for a substitution rule at
// position start.
func FromRule(rule *grammar.SubstitutionRule, start int, name []byte, lbro, upon *CompleteMatch) *ForwardMatch {
	return &ForwardMatch{core: newCore(rule, start, start, name, nil, lbro, upon, nil)}
}
