// Package command implements the session command grammar: the closed set of
// command tags and the classifier that maps raw input text onto them.
package command

import (
	"regexp"
	"strings"
)

// Tag identifies a command variant. The set is closed: the classifier, the
// roll service and the result decoder all switch over it exhaustively, so a
// new command cannot be added without handling it everywhere.
type Tag int

const (
	TagUnknown Tag = iota
	TagPlainRoll
	TagRewardPenaltyRoll
	TagAttributeRoll
	TagHiddenRoll
	TagOpposedRoll
	TagOpposedRollStrict
	TagSanityCheck
	TagAttributeQuery
	TagHitPointAdjust
)

// String returns the canonical wire token for the tag.
func (t Tag) String() string {
	switch t {
	case TagPlainRoll:
		return "r"
	case TagRewardPenaltyRoll:
		return "rm"
	case TagAttributeRoll:
		return "rd"
	case TagHiddenRoll:
		return "rh"
	case TagOpposedRoll:
		return "rav"
	case TagOpposedRollStrict:
		return "ravs"
	case TagSanityCheck:
		return "sc"
	case TagAttributeQuery:
		return "st"
	case TagHitPointAdjust:
		return "hp"
	default:
		return "unknown"
	}
}

var tokenTable = map[string]Tag{
	"r":    TagPlainRoll,
	"rm":   TagRewardPenaltyRoll,
	"rd":   TagAttributeRoll,
	"ra":   TagAttributeRoll,
	"rh":   TagHiddenRoll,
	"rav":  TagOpposedRoll,
	"ravs": TagOpposedRollStrict,
	"sc":   TagSanityCheck,
	"st":   TagAttributeQuery,
	"hp":   TagHitPointAdjust,
}

// ParseTag resolves a wire token case-insensitively.
func ParseTag(token string) (Tag, bool) {
	tag, ok := tokenTable[strings.ToLower(strings.TrimSpace(token))]
	return tag, ok
}

// ArgSlots is the fixed argument arity every request carries on the wire.
// Unfilled slots are empty strings, never absent.
const ArgSlots = 6

type Kind int

const (
	KindInvalid Kind = iota
	KindPlainRoll
	KindNamedCommand
)

// Classification is the outcome of classifying one line of input. For the
// two valid kinds Args always holds exactly ArgSlots entries.
type Classification struct {
	Kind  Kind
	Tag   Tag
	Token string
	Args  [ArgSlots]string
}

// dicePattern accepts one or more terms of the form <count>?d<sides> or a
// bare integer, joined by + or -, with a case-insensitive d.
var dicePattern = regexp.MustCompile(`(?i)^(\d*d\d+|\d+)([+-](\d*d\d+|\d+))*$`)

// Classify maps raw input text to a classification. It is total: any string,
// including the empty one, yields exactly one of the three kinds and no
// classification ever panics.
func Classify(text string) Classification {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Classification{Kind: KindInvalid}
	}

	if dicePattern.MatchString(trimmed) {
		c := Classification{Kind: KindPlainRoll, Tag: TagPlainRoll, Token: TagPlainRoll.String()}
		c.Args[0] = trimmed
		return c
	}

	fields := strings.Fields(trimmed)
	tag, ok := ParseTag(fields[0])
	if !ok {
		return Classification{Kind: KindInvalid}
	}

	c := Classification{Kind: KindNamedCommand, Tag: tag, Token: strings.ToLower(fields[0])}
	for i, arg := range fields[1:] {
		if i >= ArgSlots {
			break
		}
		c.Args[i] = arg
	}
	return c
}
