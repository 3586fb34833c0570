package grammar

import "fmt"

// Polarity distinguishes a positive ("require") from a negative
// ("forbid") Expectation.
type Polarity int

const (
	// RequirePolarity holds only for the expectation's target external.
	RequirePolarity Polarity = iota
	// ForbidPolarity holds for every external except the target.
	ForbidPolarity
)

func (p Polarity) String() string {
	if p == ForbidPolarity {
		return "!"
	}
	return "&"
}

// Expectation is a predicate over an external name, attached to the
// left or right side of a SubstitutionRule. Require("a") holds only for
// "a"; Forbid("a") holds for anything but "a".
type Expectation struct {
	Polarity Polarity
	Target   string
}

// Require builds a positive expectation: holds only for target.
func Require(target string) Expectation {
	return Expectation{Polarity: RequirePolarity, Target: target}
}

// Forbid builds a negative expectation: holds for anything but target.
func Forbid(target string) Expectation {
	return Expectation{Polarity: ForbidPolarity, Target: target}
}

// Holds evaluates the expectation against a candidate external name.
func (e Expectation) Holds(external string) bool {
	if e.Polarity == ForbidPolarity {
		return external != e.Target
	}
	return external == e.Target
}

func (e Expectation) String() string {
	return fmt.Sprintf("%s%s", e.Polarity, e.Target)
}
