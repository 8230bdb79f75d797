package dice

import (
	"math/rand"
	"strings"
)

// hiddenDigits is the length of the digit string a hidden roll produces.
const hiddenDigits = 12

// RollHidden rolls an expression and buries its outcome inside a string of
// random digits: the tens digit of the total sits at index 2 and the units
// digit at index 4, so only someone who knows the scheme can read it. A
// total of 100 encodes as zero in both positions.
func RollHidden(rng *rand.Rand, expr string) (string, error) {
	res, err := RollExpression(rng, expr)
	if err != nil {
		return "", err
	}

	// Totals outside 1..99 have no two-digit encoding; 100 and anything
	// the expression drove negative both embed as zero.
	total := res.Total
	if total < 0 || total == 100 {
		total = 0
	}
	tens := (total / 10) % 10
	units := total % 10

	digits := make([]byte, hiddenDigits)
	for i := range digits {
		digits[i] = byte('0' + rng.Intn(10))
	}
	digits[2] = byte('0' + tens)
	digits[4] = byte('0' + units)

	var b strings.Builder
	b.Write(digits)
	return b.String(), nil
}
