// Package dice implements the dice mechanics behind every roll command:
// expression rolls, bonus/penalty percentile rolls, hidden rolls and the
// success ladder.
package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidExpression indicates the input does not match the dice grammar.
var ErrInvalidExpression = errors.New("unrecognized dice expression")

// ErrInvalidSides indicates a die size outside the supported set.
var ErrInvalidSides = errors.New("unsupported die")

// validSides is the closed set of die sizes the table plays with.
var validSides = map[int]bool{2: true, 3: true, 4: true, 6: true, 8: true, 10: true, 20: true, 100: true}

var exprPattern = regexp.MustCompile(`(?i)^(\d*d\d+|\d+)([+-](\d*d\d+|\d+))*$`)
var termPattern = regexp.MustCompile(`(?i)^(\d*)d(\d+)$`)

// ExprResult captures an expression roll: the expression as written, the
// signed total, and every individual outcome in roll order. Dice outcomes
// are recorded as rolled even when their term is subtracted; static values
// are recorded signed.
type ExprResult struct {
	Expression string
	Total      int
	Dice       []int
}

// RollExpression rolls an expression of <count>?d<sides> and integer terms
// joined by + or -. The d is case-insensitive.
func RollExpression(rng *rand.Rand, expr string) (ExprResult, error) {
	if !exprPattern.MatchString(expr) {
		return ExprResult{}, ErrInvalidExpression
	}

	total := 0
	var outcomes []int
	for _, term := range splitTerms(expr) {
		if m := termPattern.FindStringSubmatch(term.text); m != nil {
			count := 1
			if m[1] != "" {
				count, _ = strconv.Atoi(m[1])
			}
			sides, _ := strconv.Atoi(m[2])
			if !validSides[sides] {
				return ExprResult{}, fmt.Errorf("%w: d%d", ErrInvalidSides, sides)
			}
			sum := 0
			for i := 0; i < count; i++ {
				v := rng.Intn(sides) + 1
				outcomes = append(outcomes, v)
				sum += v
			}
			total += term.sign * sum
			continue
		}
		v, err := strconv.Atoi(term.text)
		if err != nil {
			return ExprResult{}, ErrInvalidExpression
		}
		total += term.sign * v
		outcomes = append(outcomes, term.sign*v)
	}

	return ExprResult{Expression: expr, Total: total, Dice: outcomes}, nil
}

type term struct {
	sign int
	text string
}

func splitTerms(expr string) []term {
	var out []term
	sign := 1
	start := 0
	for i, r := range expr {
		if r != '+' && r != '-' {
			continue
		}
		out = append(out, term{sign: sign, text: expr[start:i]})
		if r == '-' {
			sign = -1
		} else {
			sign = 1
		}
		start = i + 1
	}
	out = append(out, term{sign: sign, text: expr[start:]})
	return out
}

// ContainsDie reports whether the value is a dice expression rather than a
// flat number. Used by commands whose arguments accept either.
func ContainsDie(s string) bool {
	return strings.ContainsAny(s, "dD")
}
