package earley

import (
	"context"
	"errors"

	"github.com/npillmayer/schuko/tracing"

	"github.com/yamatteo/parakeet/chart"
	"github.com/yamatteo/parakeet/grammar"
	"github.com/yamatteo/parakeet/match"
)

// tracer traces with key 'parakeet.earley'.
func tracer() tracing.Trace {
	return tracing.Select("parakeet.earley")
}

// Parser parses input strings against a fixed grammar.RuleSet with an
// adapted Earley algorithm. A Parser is immutable once built and safe
// for concurrent use by multiple goroutines, each via its own Parse
// call.
type Parser struct {
	rs          *grammar.RuleSet
	traceCycles bool
}

// Option configures a Parser.
type Option func(*Parser)

// TraceCycles turns on debug logging of rejected cyclic unit-renamings
// (§4.5, §7 "logged when verbose"). Defaults to false.
func TraceCycles(b bool) Option {
	return func(p *Parser) { p.traceCycles = b }
}

// NewParser builds a Parser over rs.
func NewParser(rs *grammar.RuleSet, opts ...Option) *Parser {
	p := &Parser{rs: rs}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs the driver to completion and returns every complete match
// spanning the whole input, restricted to external expect if expect is
// non-empty (§4.7.3, §6.2). A nil, non-error, empty slice denotes "no
// parse". ctx is checked between driver iterations only; the algorithm
// itself performs no I/O (§5).
func (p *Parser) Parse(ctx context.Context, input string, expect string) ([]*match.CompleteMatch, error) {
	st := &state{
		rs:          p.rs,
		input:       input,
		inputLen:    len(input),
		traceCycles: p.traceCycles,
		cc:          chart.NewCompleteChart(len(input), p.rs.Externals()),
		fc:          chart.NewForwardChart(len(input), p.rs.Externals()),
	}
	return st.run(ctx, expect)
}

// state holds everything a single Parse call needs; it is never shared
// across calls, which is what lets a *Parser serve concurrent callers
// safely (§5).
type state struct {
	rs          *grammar.RuleSet
	input       string
	inputLen    int
	traceCycles bool
	cc          *chart.CompleteChart
	fc          *chart.ForwardChart
}

func (s *state) run(ctx context.Context, expect string) ([]*match.CompleteMatch, error) {
	var forwards []*match.ForwardMatch
	var completes []*match.CompleteMatch

	for _, rule := range s.rs.Substitutions(expect) {
		forwards = append(forwards, match.FromRule(rule, 0, s.rs.NameOf(rule), nil, nil))
	}

	for len(forwards) > 0 || len(completes) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var newFwd []*match.ForwardMatch
		var newCm []*match.CompleteMatch
		if len(forwards) > 0 {
			fm := forwards[len(forwards)-1]
			forwards = forwards[:len(forwards)-1]
			newFwd, newCm = s.predict(fm)
		} else {
			cm := completes[len(completes)-1]
			completes = completes[:len(completes)-1]
			newFwd, newCm = s.complete(cm)
		}
		forwards = append(forwards, newFwd...)
		completes = append(completes, newCm...)
		dumpFrontier(forwards, completes)
	}

	var out []*match.CompleteMatch
	for _, cm := range s.cc.Select(0, expect) {
		if cm.Close() == s.inputLen {
			out = append(out, cm)
		}
	}
	return out, nil
}

// predict processes a forward match: settlement/feed against already
// complete matches, scanning terminals, and predicting fresh forwards
// for whatever it awaits next (§4.7.1).
func (s *state) predict(fm *match.ForwardMatch) (newFwd []*match.ForwardMatch, newCm []*match.CompleteMatch) {
	if !s.fc.Add(fm) {
		return nil, nil
	}
	tracer().Debugf("predict %s at [%d:%d]", fm.External(), fm.Start(), fm.Close())

	// awaited == "" stands for "any external": fm awaits no further
	// children and carries a forbid (or no) right expectation, which
	// does not pin down a single external (§4.7.1).
	var awaited string
	if aw := fm.Awaited(); len(aw) > 0 {
		awaited = aw[0]
	} else if exp := fm.Expectation(); exp != nil && exp.Polarity == grammar.RequirePolarity {
		awaited = exp.Target
	}

	var upon *match.CompleteMatch
	switch {
	case len(fm.Children()) == 0 && fm.Upon() != nil:
		upon = fm.Upon()
	case len(fm.Children()) > 0 && fm.Last().RBro() != nil:
		upon = fm.Last().RBro()
	}

	var leftContext *match.CompleteMatch
	if len(fm.Children()) == 0 {
		leftContext = fm.LBro()
	} else {
		leftContext = fm.Last()
	}

	for _, cm := range s.cc.Select(fm.Close(), awaited) {
		fwd, done, ok := s.resolve(fm, cm)
		if !ok {
			continue
		}
		if fwd != nil {
			newFwd = append(newFwd, fwd)
		}
		if done != nil {
			newCm = append(newCm, done)
		}
	}

	for _, rule := range s.rs.Terminals(awaited) {
		if cm, ok := match.FromScan(rule, s.input, fm.Close(), s.rs.NameOf(rule), s.inputLen); ok {
			newCm = append(newCm, cm)
		}
	}

	for _, rule := range s.rs.Substitutions(awaited) {
		var leftBrother *match.CompleteMatch
		if rule.Left != nil {
			if leftContext == nil {
				continue
			}
			if rule.Left.Holds(leftContext.External()) {
				leftBrother = leftContext
			} else {
				found := false
				for _, lb := range match.HistoryAtClose(leftContext) {
					if rule.Left.Holds(lb.External()) {
						leftBrother = lb
						found = true
						break
					}
				}
				if !found {
					continue
				}
			}
		} else {
			leftBrother = leftContext
		}
		newFwd = append(newFwd, match.FromRule(rule, fm.Close(), s.rs.NameOf(rule), leftBrother, upon))
	}

	return newFwd, newCm
}

// complete processes a complete match: settlement/feed against every
// forward match awaiting it (§4.7.2).
func (s *state) complete(cm *match.CompleteMatch) (newFwd []*match.ForwardMatch, newCm []*match.CompleteMatch) {
	if !s.cc.Add(cm) {
		return nil, nil
	}
	tracer().Debugf("complete %s at [%d:%d]", cm.External(), cm.Start(), cm.Close())

	for _, fm := range s.fc.Select(cm.Start(), cm.External()) {
		fwd, done, ok := s.resolve(fm, cm)
		if !ok {
			continue
		}
		if fwd != nil {
			newFwd = append(newFwd, fwd)
		}
		if done != nil {
			newCm = append(newCm, done)
		}
	}
	return newFwd, newCm
}

// resolve applies Settle or Feed depending on whether fm still has
// awaited children, swallowing precondition failures and logging
// cyclic rejections (§7).
func (s *state) resolve(fm *match.ForwardMatch, cm *match.CompleteMatch) (fwd *match.ForwardMatch, done *match.CompleteMatch, ok bool) {
	if len(fm.Awaited()) == 0 {
		settled, err := match.Settle(fm, cm)
		if err != nil {
			s.logReject(err, fm, cm)
			return nil, nil, false
		}
		return nil, settled, true
	}

	res, err := match.Feed(fm, cm)
	if err != nil {
		s.logReject(err, fm, cm)
		return nil, nil, false
	}
	switch v := res.(type) {
	case *match.ForwardMatch:
		return v, nil, true
	case *match.CompleteMatch:
		return nil, v, true
	default:
		return nil, nil, false
	}
}

func (s *state) logReject(err error, fm *match.ForwardMatch, cm *match.CompleteMatch) {
	if s.traceCycles && errors.Is(err, match.ErrCyclic) {
		tracer().Debugf("rejected cyclic wrap: %s over %s at [%d:%d]",
			fm.External(), cm.External(), cm.Start(), cm.Close())
	}
}
