package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
)

// ErrInvalidModifier indicates a reward/penalty modifier that is not an
// integer. The modifier is the number of reward dice minus penalty dice.
var ErrInvalidModifier = errors.New("modifier must be an integer (reward dice minus penalty dice)")

// modifierCap bounds the number of extra tens dice either way.
const modifierCap = 10

// PercentileResult captures a d100 roll with reward or penalty dice. Detail
// holds one "<tens>0 + <units>" entry per tens die rolled.
type PercentileResult struct {
	Expression string
	Total      int
	Detail     []string
}

// ParseModifier parses the reward/penalty modifier argument.
func ParseModifier(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidModifier
	}
	return n, nil
}

// RollPercentile rolls d100 with the given modifier: positive modifiers add
// reward tens dice and keep the lowest, negative add penalty tens dice and
// keep the highest. A result of 0 reads as 100.
func RollPercentile(rng *rand.Rand, modifier int) PercentileResult {
	if modifier > modifierCap {
		modifier = modifierCap
	} else if modifier < -modifierCap {
		modifier = -modifierCap
	}

	units := rng.Intn(10)
	count := 1 + abs(modifier)
	tensRolls := make([]int, count)
	for i := range tensRolls {
		tensRolls[i] = rng.Intn(10)
	}

	tens := tensRolls[0]
	for _, t := range tensRolls[1:] {
		if modifier > 0 && t < tens {
			tens = t
		}
		if modifier <= 0 && t > tens {
			tens = t
		}
	}

	total := 10*tens + units
	if total == 0 {
		total = 100
	}

	detail := make([]string, count)
	for i, t := range tensRolls {
		detail[i] = fmt.Sprintf("%d0 + %d", t, units)
	}

	return PercentileResult{Expression: "1d100", Total: total, Detail: detail}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
