package message

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"dicehall/internal/domain/command"
)

// ErrMalformedResult indicates a result whose tag is unknown or whose shape
// matches none of the documented forms. A malformed result is never
// partially decoded.
var ErrMalformedResult = errors.New("malformed result")

// Variant is the decoded form of a tagged result. Each documented result
// shape has its own concrete type; the decoder validates element count
// before constructing one, so renderers never index a raw array.
type Variant interface {
	variant()
}

// RollOutcome covers plain and reward/penalty rolls.
type RollOutcome struct {
	Expression string
	Total      string
	Dice       []string
}

// AttributeRollOutcome is a PC skill roll.
type AttributeRollOutcome struct {
	Skill string
	Value string
	Roll  string
	Tier  string
}

// HiddenRollOutcome carries only the opaque digit string.
type HiddenRollOutcome struct {
	Value string
}

// OpposedPCvsPC is the 11-element contest between two PCs.
type OpposedPCvsPC struct {
	FirstID, SecondID       string
	FirstSkill, SecondSkill string
	FirstValue, SecondValue string
	FirstRoll, SecondRoll   string
	FirstTier, SecondTier   string
	WinnerID                string
}

// OpposedNPCvsPC is the 9-element contest between an NPC and a PC. PCWins
// is derived from the flag in the final slot: exactly 1 means the PC won.
type OpposedNPCvsPC struct {
	PCID               string
	PCSkill            string
	NPCValue, PCValue  string
	NPCRoll, PCRoll    string
	NPCTier, PCTier    string
	PCWins             bool
}

// OpposedNPCvsNPC is the 7-element contest between two NPCs; the winner
// label arrives already resolved.
type OpposedNPCvsNPC struct {
	FirstValue, SecondValue string
	FirstRoll, SecondRoll   string
	FirstTier, SecondTier   string
	Winner                  string
}

// SanityCheckOutcome is the 7-element sanity check.
type SanityCheckOutcome struct {
	SuccessLoss  string
	FailureLoss  string
	Intelligence string
	Tier         string
	Roll         string
	Reduction    string
	Remaining    string
}

// SanityRestoreOutcome is the 2-element direct sanity adjustment. It never
// carries a roll.
type SanityRestoreOutcome struct {
	Amount  string
	Current string
}

// AttributeQueryOutcome reports one attribute and its value.
type AttributeQueryOutcome struct {
	Name  string
	Value string
}

// HitPointAdjustOutcome is the 3-element HP adjustment. Requested and
// Rolled compare equal when the adjustment was flat.
type HitPointAdjustOutcome struct {
	Requested string
	Rolled    string
	Current   string
}

func (RollOutcome) variant()           {}
func (AttributeRollOutcome) variant()  {}
func (HiddenRollOutcome) variant()     {}
func (OpposedPCvsPC) variant()         {}
func (OpposedNPCvsPC) variant()        {}
func (OpposedNPCvsNPC) variant()       {}
func (SanityCheckOutcome) variant()    {}
func (SanityRestoreOutcome) variant()  {}
func (AttributeQueryOutcome) variant() {}
func (HitPointAdjustOutcome) variant() {}

// DecodeResult resolves the message tag and validates the result shape,
// returning the matching variant. Unknown tags and undocumented shapes
// fail with ErrMalformedResult.
func DecodeResult(msg ResultMessage) (Variant, error) {
	tag, ok := command.ParseTag(msg.Command)
	if !ok {
		return nil, fmt.Errorf("%w: unknown tag %q", ErrMalformedResult, msg.Command)
	}

	switch tag {
	case command.TagPlainRoll, command.TagRewardPenaltyRoll:
		return decodeRoll(msg.Result)
	case command.TagAttributeRoll:
		return decodeAttributeRoll(msg.Result)
	case command.TagHiddenRoll:
		return decodeHiddenRoll(msg.Result)
	case command.TagOpposedRoll, command.TagOpposedRollStrict:
		return decodeOpposed(msg.Result)
	case command.TagSanityCheck:
		return decodeSanity(msg.Result)
	case command.TagAttributeQuery:
		return decodeAttributeQuery(msg.Result)
	case command.TagHitPointAdjust:
		return decodeHitPoints(msg.Result)
	default:
		return nil, fmt.Errorf("%w: unknown tag %q", ErrMalformedResult, msg.Command)
	}
}

func decodeRoll(raw json.RawMessage) (Variant, error) {
	elems, err := elements(raw, 3)
	if err != nil {
		return nil, err
	}
	dice, ok := elems[2].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: roll outcomes must be a sequence", ErrMalformedResult)
	}
	out := RollOutcome{
		Expression: format(elems[0]),
		Total:      format(elems[1]),
		Dice:       make([]string, len(dice)),
	}
	for i, d := range dice {
		out.Dice[i] = format(d)
	}
	return out, nil
}

func decodeAttributeRoll(raw json.RawMessage) (Variant, error) {
	elems, err := elements(raw, 4)
	if err != nil {
		return nil, err
	}
	return AttributeRollOutcome{
		Skill: format(elems[0]),
		Value: format(elems[1]),
		Roll:  format(elems[2]),
		Tier:  format(elems[3]),
	}, nil
}

func decodeHiddenRoll(raw json.RawMessage) (Variant, error) {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("%w: hidden roll carries a bare value", ErrMalformedResult)
	}
	return HiddenRollOutcome{Value: value}, nil
}

func decodeOpposed(raw json.RawMessage) (Variant, error) {
	elems, err := anyElements(raw)
	if err != nil {
		return nil, err
	}
	switch len(elems) {
	case 11:
		return OpposedPCvsPC{
			FirstID: format(elems[0]), SecondID: format(elems[1]),
			FirstSkill: format(elems[2]), SecondSkill: format(elems[3]),
			FirstValue: format(elems[4]), SecondValue: format(elems[5]),
			FirstRoll: format(elems[6]), SecondRoll: format(elems[7]),
			FirstTier: format(elems[8]), SecondTier: format(elems[9]),
			WinnerID: format(elems[10]),
		}, nil
	case 9:
		return OpposedNPCvsPC{
			PCID:     format(elems[0]),
			PCSkill:  format(elems[1]),
			NPCValue: format(elems[2]), PCValue: format(elems[3]),
			NPCRoll: format(elems[4]), PCRoll: format(elems[5]),
			NPCTier: format(elems[6]), PCTier: format(elems[7]),
			PCWins: isOne(elems[8]),
		}, nil
	case 7:
		return OpposedNPCvsNPC{
			FirstValue: format(elems[0]), SecondValue: format(elems[1]),
			FirstRoll: format(elems[2]), SecondRoll: format(elems[3]),
			FirstTier: format(elems[4]), SecondTier: format(elems[5]),
			Winner: format(elems[6]),
		}, nil
	default:
		return nil, fmt.Errorf("%w: opposed roll with %d elements", ErrMalformedResult, len(elems))
	}
}

func decodeSanity(raw json.RawMessage) (Variant, error) {
	elems, err := anyElements(raw)
	if err != nil {
		return nil, err
	}
	switch len(elems) {
	case 7:
		return SanityCheckOutcome{
			SuccessLoss:  format(elems[0]),
			FailureLoss:  format(elems[1]),
			Intelligence: format(elems[2]),
			Tier:         format(elems[3]),
			Roll:         format(elems[4]),
			Reduction:    format(elems[5]),
			Remaining:    format(elems[6]),
		}, nil
	case 2:
		return SanityRestoreOutcome{Amount: format(elems[0]), Current: format(elems[1])}, nil
	default:
		return nil, fmt.Errorf("%w: sanity result with %d elements", ErrMalformedResult, len(elems))
	}
}

func decodeAttributeQuery(raw json.RawMessage) (Variant, error) {
	elems, err := elements(raw, 2)
	if err != nil {
		return nil, err
	}
	return AttributeQueryOutcome{Name: format(elems[0]), Value: format(elems[1])}, nil
}

func decodeHitPoints(raw json.RawMessage) (Variant, error) {
	elems, err := elements(raw, 3)
	if err != nil {
		return nil, err
	}
	return HitPointAdjustOutcome{
		Requested: format(elems[0]),
		Rolled:    format(elems[1]),
		Current:   format(elems[2]),
	}, nil
}

func anyElements(raw json.RawMessage) ([]any, error) {
	var elems []any
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: result is not a sequence", ErrMalformedResult)
	}
	return elems, nil
}

func elements(raw json.RawMessage, want int) ([]any, error) {
	elems, err := anyElements(raw)
	if err != nil {
		return nil, err
	}
	if len(elems) != want {
		return nil, fmt.Errorf("%w: %d elements, want %d", ErrMalformedResult, len(elems), want)
	}
	return elems, nil
}

// format renders one wire value canonically: JSON numbers print without a
// trailing .0 so a flat 5 and the string "5" compare equal.
func format(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

func isOne(v any) bool {
	n, ok := v.(float64)
	return ok && n == 1
}
