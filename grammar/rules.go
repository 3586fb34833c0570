package grammar

import (
	"fmt"

	"github.com/coregx/coregex"
)

// Rule is the common interface of TerminalRule and SubstitutionRule.
// It is not meant to be implemented outside this package.
type Rule interface {
	External() string
	fmt.Stringer
	isRule()
}

// TerminalRule matches a prefix of the remaining input against a
// compiled, Unicode-aware regular expression.
type TerminalRule struct {
	Ext     string
	Pattern string

	re *coregex.Regex
}

// NewTerminalRule compiles pattern and returns a rule producing matches
// named ext. An uncompilable pattern or empty ext is a fatal, invalid
// grammar.
func NewTerminalRule(ext, pattern string) (*TerminalRule, error) {
	if ext == "" {
		return nil, fmt.Errorf("grammar: terminal rule has empty external")
	}
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("grammar: terminal rule %q: %w", ext, err)
	}
	return &TerminalRule{Ext: ext, Pattern: pattern, re: re}, nil
}

func (t *TerminalRule) External() string { return t.Ext }
func (t *TerminalRule) isRule()          {}

func (t *TerminalRule) String() string {
	return fmt.Sprintf("<%s → /%s/>", t.Ext, t.Pattern)
}

// MatchPrefix attempts to match t's pattern as a prefix of input[pos:].
// It returns the length of the match and true on success. The match
// must start exactly at pos (prefix-anchored, per the regex engine's
// leftmost-match semantics restricted to index 0).
func (t *TerminalRule) MatchPrefix(input string, pos int) (length int, ok bool) {
	loc := t.re.FindStringIndex(input[pos:])
	if loc == nil || loc[0] != 0 {
		return 0, false
	}
	return loc[1], true
}

// RuleOption configures an optional left/right Expectation when
// constructing a SubstitutionRule.
type RuleOption func(*SubstitutionRule)

// WithLeft attaches a left expectation to a substitution rule.
func WithLeft(e Expectation) RuleOption {
	return func(r *SubstitutionRule) { r.Left = &e }
}

// WithRight attaches a right expectation to a substitution rule.
func WithRight(e Expectation) RuleOption {
	return func(r *SubstitutionRule) { r.Right = &e }
}

// SubstitutionRule rewrites an external into an ordered sequence of
// child externals, optionally gated by left/right sibling expectations.
type SubstitutionRule struct {
	Ext   string
	Body  []string
	Left  *Expectation
	Right *Expectation
}

// NewSubstitutionRule builds a substitution rule. The body must be
// non-empty and ext must be non-empty; either is a fatal, invalid
// grammar otherwise.
func NewSubstitutionRule(ext string, body []string, opts ...RuleOption) (*SubstitutionRule, error) {
	if ext == "" {
		return nil, fmt.Errorf("grammar: substitution rule has empty external")
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("grammar: substitution rule %q has empty body", ext)
	}
	b := make([]string, len(body))
	copy(b, body)
	r := &SubstitutionRule{Ext: ext, Body: b}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *SubstitutionRule) External() string { return r.Ext }
func (r *SubstitutionRule) isRule()          {}

func (r *SubstitutionRule) String() string {
	left, right := "", ""
	if r.Left != nil {
		left = r.Left.String()
	}
	if r.Right != nil {
		right = " " + r.Right.String()
	}
	body := ""
	for i, b := range r.Body {
		if i > 0 {
			body += " "
		}
		body += b
	}
	return fmt.Sprintf("%s<%s → %s>%s", left, r.Ext, body, right)
}
