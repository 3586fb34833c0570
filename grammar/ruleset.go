package grammar

import (
	"fmt"
	"sort"

	"github.com/cnf/structhash"

	"github.com/yamatteo/parakeet/registry"
)

// RuleSet is an immutable, deduplicated collection of rules together
// with their deterministically assigned rule-names (§3.1: "a big-endian
// byte string whose length is ⌈log₂₅₆(#rules)⌉, unique per rule").
//
// Rules built from identical (ext, body/pattern, left, right) tuples
// collapse to a single entry; the surviving rule is whichever was
// passed first to NewRuleSet.
type RuleSet struct {
	rules     []Rule
	names     map[Rule][]byte
	terminals map[string][]*TerminalRule
	allTerms  []*TerminalRule
	subs      map[string][]*SubstitutionRule
	allSubs   []*SubstitutionRule
	externals *registry.Registry
}

// identityHash computes the stable hash used both to deduplicate rules
// and to order them deterministically regardless of caller-supplied
// order (§6.1: "order irrelevant").
func identityHash(r Rule) (string, error) {
	switch v := r.(type) {
	case *TerminalRule:
		return structhash.Hash(struct {
			Kind    string
			Ext     string
			Pattern string
		}{"terminal", v.Ext, v.Pattern}, 1)
	case *SubstitutionRule:
		return structhash.Hash(struct {
			Kind  string
			Ext   string
			Body  []string
			Left  *Expectation
			Right *Expectation
		}{"substitution", v.Ext, v.Body, v.Left, v.Right}, 1)
	default:
		return "", fmt.Errorf("grammar: unknown rule type %T", r)
	}
}

// NewRuleSet builds a RuleSet from rules supplied in any order.
func NewRuleSet(rules ...Rule) (*RuleSet, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("grammar: rule set must have at least one rule")
	}

	type entry struct {
		hash string
		rule Rule
	}
	seen := make(map[string]bool, len(rules))
	var unique []entry
	for _, r := range rules {
		if r == nil {
			return nil, fmt.Errorf("grammar: nil rule")
		}
		h, err := identityHash(r)
		if err != nil {
			return nil, err
		}
		if seen[h] {
			continue
		}
		seen[h] = true
		unique = append(unique, entry{h, r})
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].hash < unique[j].hash })

	rs := &RuleSet{
		names:     make(map[Rule][]byte, len(unique)),
		terminals: make(map[string][]*TerminalRule),
		subs:      make(map[string][]*SubstitutionRule),
		externals: registry.New(),
	}
	for i, e := range unique {
		rs.rules = append(rs.rules, e.rule)
		rs.names[e.rule] = toBytes(i, len(unique))
		rs.externals.Intern(e.rule.External())
		switch v := e.rule.(type) {
		case *TerminalRule:
			rs.terminals[v.Ext] = append(rs.terminals[v.Ext], v)
			rs.allTerms = append(rs.allTerms, v)
		case *SubstitutionRule:
			rs.subs[v.Ext] = append(rs.subs[v.Ext], v)
			rs.allSubs = append(rs.allSubs, v)
		}
	}
	return rs, nil
}

// NameOf returns the canonical rule-name bytes assigned to r. r must be
// one of the rules this set was built from.
func (rs *RuleSet) NameOf(r Rule) []byte {
	return rs.names[r]
}

// Rules returns every rule in the set, in canonical (hash-sorted) order.
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Terminals returns the terminal rules producing ext, or every terminal
// rule if ext is "".
func (rs *RuleSet) Terminals(ext string) []*TerminalRule {
	if ext == "" {
		return rs.allTerms
	}
	return rs.terminals[ext]
}

// Substitutions returns the substitution rules producing ext, or every
// substitution rule if ext is "".
func (rs *RuleSet) Substitutions(ext string) []*SubstitutionRule {
	if ext == "" {
		return rs.allSubs
	}
	return rs.subs[ext]
}

// Externals returns every external a rule in this set can produce, i.e.
// the set of names forbid-expectations must be able to enumerate.
func (rs *RuleSet) Externals() []string {
	all := rs.externals.All()
	out := make([]string, len(all))
	for i, e := range all {
		out[i] = e.Name
	}
	return out
}

// NameWidth returns the number of bytes used to encode a rule-name in
// this set.
func (rs *RuleSet) NameWidth() int {
	return byteLen(len(rs.rules))
}

// byteLen returns ⌈log₂₅₆(max)⌉: the number of bytes needed to
// represent any integer in [0, max) in big-endian form.
func byteLen(max int) int {
	v := max - 1
	length := 0
	for v > 0 {
		length++
		v >>= 8
	}
	return length
}

// toBytes encodes i as a big-endian byte string of width byteLen(max).
func toBytes(i, max int) []byte {
	length := byteLen(max)
	out := make([]byte, length)
	for idx := length - 1; idx >= 0; idx-- {
		out[idx] = byte(i & 0xFF)
		i >>= 8
	}
	return out
}

// SpanWidth returns the number of bytes used to encode a terminal
// match's start/close offsets for an input of the given length (§3.2:
// "start and close encoded in ⌈log₂₅₆(|input|+1)⌉ bytes").
func SpanWidth(inputLen int) int {
	return byteLen(inputLen + 1)
}

// EncodeOffset encodes an input offset using SpanWidth(inputLen) bytes.
func EncodeOffset(offset, inputLen int) []byte {
	return toBytes(offset, inputLen+1)
}
