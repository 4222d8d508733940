package naming

import (
	"slices"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestValidateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1850)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("duplicate iff trimmed candidate equals a sibling", prop.ForAll(
		func(siblings []string, candidate string, pad int) bool {
			padded := strings.Repeat(" ", pad) + candidate + strings.Repeat(" ", pad)
			got := Validate(padded, Rule{}, siblings)
			trimmed := strings.TrimSpace(candidate)
			if trimmed == "" {
				return got == Empty
			}
			return (got == Duplicate) == slices.Contains(siblings, trimmed)
		},
		gen.SliceOfN(5, gen.Identifier()),
		gen.OneGenOf(gen.Identifier(), gen.AlphaString()),
		gen.IntRange(0, 3),
	))

	properties.Property("sibling names always collide", prop.ForAll(
		func(siblings []string, idx int) bool {
			if len(siblings) == 0 {
				return true
			}
			name := siblings[idx%len(siblings)]
			return Validate(name, Rule{}, siblings) == Duplicate
		},
		gen.SliceOfN(4, gen.Identifier()),
		gen.IntRange(0, 100),
	))

	properties.Property("at most one problem is reported", prop.ForAll(
		func(candidate string) bool {
			r := Validate(candidate, AccessPointRule, []string{candidate})
			return r >= OK && r <= Duplicate
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
