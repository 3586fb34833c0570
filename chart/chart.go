package chart

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/hashset"

	"github.com/yamatteo/parakeet/grammar"
	"github.com/yamatteo/parakeet/match"
)

// anyExternal is the bucket key standing in for "no particular
// external" (CompleteChart's "any" index, populated alongside every
// match's own external bucket).
const anyExternal = ""

// CompleteChart stores every CompleteMatch produced during a parse,
// indexed by start position and external, deduplicated by canonical
// identity (§4.6).
type CompleteChart struct {
	buckets map[int]map[string]*arraylist.List
	seen    *hashset.Set
}

// NewCompleteChart allocates a chart for an input of length inputLen,
// with buckets pre-populated for every known external plus the "any"
// bucket, for positions 0..inputLen inclusive.
func NewCompleteChart(inputLen int, externals []string) *CompleteChart {
	c := &CompleteChart{
		buckets: make(map[int]map[string]*arraylist.List, inputLen+1),
		seen:    hashset.New(),
	}
	for pos := 0; pos <= inputLen; pos++ {
		byExt := make(map[string]*arraylist.List, len(externals)+1)
		byExt[anyExternal] = arraylist.New()
		for _, ext := range externals {
			byExt[ext] = arraylist.New()
		}
		c.buckets[pos] = byExt
	}
	return c
}

// Add inserts cm into the chart if no canonically-identical match is
// already present, and reports whether the insertion happened.
func (c *CompleteChart) Add(cm *match.CompleteMatch) bool {
	key := cm.IdentityKey()
	if c.seen.Contains(key) {
		return false
	}
	c.seen.Add(key)
	c.bucketFor(cm.Start(), cm.External()).Add(cm)
	c.bucketFor(cm.Start(), anyExternal).Add(cm)
	return true
}

// Select returns every complete match starting at pos with the given
// external, or every complete match starting at pos regardless of
// external when ext is "" (the "any" bucket, §4.6).
func (c *CompleteChart) Select(pos int, ext string) []*match.CompleteMatch {
	b := c.bucketFor(pos, ext)
	if b == nil {
		return nil
	}
	values := b.Values()
	out := make([]*match.CompleteMatch, len(values))
	for i, v := range values {
		out[i] = v.(*match.CompleteMatch)
	}
	return out
}

func (c *CompleteChart) bucketFor(pos int, ext string) *arraylist.List {
	byExt, ok := c.buckets[pos]
	if !ok {
		return nil
	}
	b, ok := byExt[ext]
	if !ok {
		// An external outside the grammar's known set: treat as an
		// always-empty bucket rather than growing the chart.
		return arraylist.New()
	}
	return b
}

// ForwardChart stores every ForwardMatch produced during a parse,
// indexed by the position and external it is currently awaiting,
// deduplicated by canonical identity (§4.6).
type ForwardChart struct {
	buckets   map[int]map[string]*arraylist.List
	seen      *hashset.Set
	externals []string
}

// NewForwardChart allocates a chart for an input of length inputLen,
// over the given externals (the grammar's declared rule externals, to
// size forbid-expectation fan-out, §4.6/§9).
func NewForwardChart(inputLen int, externals []string) *ForwardChart {
	fc := &ForwardChart{
		buckets:   make(map[int]map[string]*arraylist.List, inputLen+1),
		seen:      hashset.New(),
		externals: externals,
	}
	for pos := 0; pos <= inputLen; pos++ {
		byExt := make(map[string]*arraylist.List, len(externals))
		for _, ext := range externals {
			byExt[ext] = arraylist.New()
		}
		fc.buckets[pos] = byExt
	}
	return fc
}

// Add inserts fm into the chart if no canonically-identical forward
// match is already present, and reports whether the insertion
// happened. A forward still awaiting children is indexed under the
// next awaited external at its close position. A forward with no
// awaited children is indexed according to its right expectation: a
// require(t) goes under t; a forbid(t) goes under every known external
// except t (§4.6, §9 "select(., None) semantics").
func (fc *ForwardChart) Add(fm *match.ForwardMatch) bool {
	key := fm.IdentityKey()
	if fc.seen.Contains(key) {
		return false
	}
	fc.seen.Add(key)

	if awaited := fm.Awaited(); len(awaited) > 0 {
		fc.bucketFor(fm.Close(), awaited[0]).Add(fm)
		return true
	}

	exp := fm.Expectation()
	if exp == nil {
		return true
	}
	if exp.Polarity == grammar.RequirePolarity {
		fc.bucketFor(fm.Close(), exp.Target).Add(fm)
		return true
	}
	for _, ext := range fc.externals {
		if exp.Holds(ext) {
			fc.bucketFor(fm.Close(), ext).Add(fm)
		}
	}
	return true
}

// Select returns every forward match awaiting ext at position pos.
func (fc *ForwardChart) Select(pos int, ext string) []*match.ForwardMatch {
	b := fc.bucketFor(pos, ext)
	if b == nil {
		return nil
	}
	values := b.Values()
	out := make([]*match.ForwardMatch, len(values))
	for i, v := range values {
		out[i] = v.(*match.ForwardMatch)
	}
	return out
}

func (fc *ForwardChart) bucketFor(pos int, ext string) *arraylist.List {
	byExt, ok := fc.buckets[pos]
	if !ok {
		return nil
	}
	b, ok := byExt[ext]
	if !ok {
		return arraylist.New()
	}
	return b
}
