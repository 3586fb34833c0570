package earley

import "github.com/yamatteo/parakeet/match"

// dumpFrontier logs the size of the two driver worklists; handy when
// tracking down non-terminating grammars.
func dumpFrontier(forwards []*match.ForwardMatch, completes []*match.CompleteMatch) {
	tracer().Debugf("frontier: %d forward(s), %d complete(s)", len(forwards), len(completes))
}
