// Package roll computes the authoritative result for a submitted request:
// it dispatches on the command tag, runs the dice mechanics, applies sheet
// mutations, and shapes the positional result array the decoders expect.
package roll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"dicehall/internal/app/ports"
	"dicehall/internal/domain/character"
	"dicehall/internal/domain/command"
	"dicehall/internal/domain/dice"
	"dicehall/internal/domain/message"
)

// ErrBadArguments indicates arguments that do not fit the command.
var ErrBadArguments = errors.New("invalid command arguments")

// ErrSkillNotFound indicates a sheet lookup for an attribute it lacks.
var ErrSkillNotFound = errors.New("skill not found")

// notFoundValue is the in-band value an attribute query reports when the
// sheet or the attribute is missing.
const notFoundValue = -1

type UseCase struct {
	Sheets  ports.SheetRepository
	Metrics ports.RollMetrics
	// Rand supplies the random source per execution; nil means a fresh
	// time-seeded source each call.
	Rand func() *rand.Rand
}

// Execute computes the result for one request and echoes its provenance.
func (u UseCase) Execute(ctx context.Context, req message.Request) (message.ResultMessage, error) {
	tag, ok := command.ParseTag(req.Command)
	if !ok {
		u.rejected()
		return message.ResultMessage{}, fmt.Errorf("%w: unknown command %q", ErrBadArguments, req.Command)
	}

	args := collectArgs(req)
	rng := u.rng()

	var result any
	var err error
	switch tag {
	case command.TagPlainRoll:
		result, err = u.plainRoll(rng, args)
	case command.TagRewardPenaltyRoll:
		result, err = u.percentileRoll(rng, args)
	case command.TagAttributeRoll:
		result, err = u.skillRoll(ctx, rng, args)
	case command.TagHiddenRoll:
		result, err = u.hiddenRoll(rng, args)
	case command.TagOpposedRoll:
		result, err = u.opposedRoll(ctx, rng, false, args)
	case command.TagOpposedRollStrict:
		result, err = u.opposedRoll(ctx, rng, true, args)
	case command.TagSanityCheck:
		result, err = u.sanity(ctx, rng, args)
	case command.TagAttributeQuery:
		result, err = u.attributeQuery(ctx, args)
	case command.TagHitPointAdjust:
		result, err = u.hitPoints(ctx, rng, args)
	default:
		err = fmt.Errorf("%w: unknown command %q", ErrBadArguments, req.Command)
	}
	if err != nil {
		if errors.Is(err, ErrBadArguments) {
			u.rejected()
		} else {
			u.failed()
		}
		return message.ResultMessage{}, err
	}

	raw, err := json.Marshal(result)
	if err != nil {
		u.failed()
		return message.ResultMessage{}, fmt.Errorf("encode result: %w", err)
	}

	if u.Metrics != nil {
		u.Metrics.RecordRoll(tag.String())
	}
	return message.ResultMessage{
		Command:  req.Command,
		Result:   json.RawMessage(raw),
		Username: req.Username,
		IP:       req.IP,
		Time:     req.Time,
	}, nil
}

func (u UseCase) plainRoll(rng *rand.Rand, args []string) (any, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%w: expression required", ErrBadArguments)
	}
	res, err := dice.RollExpression(rng, args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadArguments, err)
	}
	return []any{res.Expression, res.Total, res.Dice}, nil
}

func (u UseCase) percentileRoll(rng *rand.Rand, args []string) (any, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%w: modifier required", ErrBadArguments)
	}
	modifier, err := dice.ParseModifier(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadArguments, err)
	}
	res := dice.RollPercentile(rng, modifier)
	return []any{res.Expression, res.Total, res.Detail}, nil
}

func (u UseCase) skillRoll(ctx context.Context, rng *rand.Rand, args []string) (any, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: pc number and skill required", ErrBadArguments)
	}
	modifier := 0
	if len(args) > 2 {
		m, err := dice.ParseModifier(args[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadArguments, err)
		}
		modifier = m
	}
	value, roll, tier, err := u.pcSkillRoll(ctx, rng, args[0], args[1], modifier)
	if err != nil {
		return nil, err
	}
	return []any{args[1], value, roll, tier.String()}, nil
}

func (u UseCase) hiddenRoll(rng *rand.Rand, args []string) (any, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%w: expression required", ErrBadArguments)
	}
	value, err := dice.RollHidden(rng, args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadArguments, err)
	}
	return value, nil
}

// opposedShape is the contest form derived from the argument pattern.
type opposedShape int

const (
	shapeUnknown opposedShape = iota
	shapePCvsPC
	shapeNPCvsPC
	shapeNPCvsNPC
)

// detectOpposedShape classifies the contest from argument types and count:
// two PC/skill pairs, an NPC skill value facing a PC in either order, or two
// bare NPC skill values.
func detectOpposedShape(args []string) opposedShape {
	if len(args) < 2 || len(args) > 6 {
		return shapeUnknown
	}
	if isInt(args[0]) && len(args) >= 4 && isInt(args[2]) && !isInt(args[1]) && !isInt(args[3]) {
		return shapePCvsPC
	}
	pair := isInt(args[0]) && isInt(args[1])
	pcFirst := len(args) >= 3 && isInt(args[0]) && !isInt(args[1]) && isInt(args[2])
	if pair || pcFirst {
		switch len(args) {
		case 2, 4:
			if pair {
				return shapeNPCvsNPC
			}
		case 3, 5:
			return shapeNPCvsPC
		}
	}
	return shapeUnknown
}

func (u UseCase) opposedRoll(ctx context.Context, rng *rand.Rand, strict bool, args []string) (any, error) {
	switch detectOpposedShape(args) {
	case shapePCvsPC:
		return u.opposedPCvsPC(ctx, rng, strict, args)
	case shapeNPCvsPC:
		return u.opposedNPCvsPC(ctx, rng, strict, args)
	case shapeNPCvsNPC:
		return u.opposedNPCvsNPC(rng, strict, args)
	default:
		return nil, fmt.Errorf("%w: unrecognized opposed roll form", ErrBadArguments)
	}
}

func (u UseCase) opposedPCvsPC(ctx context.Context, rng *rand.Rand, strict bool, args []string) (any, error) {
	mod1, mod2, err := optionalModifiers(args, 4)
	if err != nil {
		return nil, err
	}
	v1, r1, t1, err := u.pcSkillRoll(ctx, rng, args[0], args[1], mod1)
	if err != nil {
		return nil, err
	}
	v2, r2, t2, err := u.pcSkillRoll(ctx, rng, args[2], args[3], mod2)
	if err != nil {
		return nil, err
	}
	pc1, _ := strconv.Atoi(args[0])
	pc2, _ := strconv.Atoi(args[2])
	winner := pc1
	if decideWinner(strict, t1, t2, v1, v2, r1, r2) == 2 {
		winner = pc2
	}
	return []any{pc1, pc2, args[1], args[3], v1, v2, r1, r2, t1.String(), t2.String(), winner}, nil
}

func (u UseCase) opposedNPCvsPC(ctx context.Context, rng *rand.Rand, strict bool, args []string) (any, error) {
	// Either order is accepted: "npcValue pc skill" or "pc skill npcValue",
	// with the optional modifier pair following the same orientation. A
	// numeric third argument marks the pc-first form.
	pcFirst := isInt(args[2])
	var npcArg, pcArg, skill string
	npcMod, pcMod := 0, 0
	if pcFirst {
		pcArg, skill, npcArg = args[0], args[1], args[2]
		if len(args) == 5 {
			var err error
			if pcMod, err = dice.ParseModifier(args[3]); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadArguments, err)
			}
			if npcMod, err = dice.ParseModifier(args[4]); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadArguments, err)
			}
		}
	} else {
		npcArg, pcArg, skill = args[0], args[1], args[2]
		if len(args) == 5 {
			var err error
			if npcMod, err = dice.ParseModifier(args[3]); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadArguments, err)
			}
			if pcMod, err = dice.ParseModifier(args[4]); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadArguments, err)
			}
		}
	}

	npcValue, err := strconv.Atoi(npcArg)
	if err != nil {
		return nil, fmt.Errorf("%w: npc skill value %q", ErrBadArguments, npcArg)
	}
	npcRoll := dice.RollPercentile(rng, npcMod).Total
	npcTier := dice.Evaluate(npcValue, npcRoll)

	pcValue, pcRoll, pcTier, err := u.pcSkillRoll(ctx, rng, pcArg, skill, pcMod)
	if err != nil {
		return nil, err
	}
	pcID, _ := strconv.Atoi(pcArg)

	flag := 0
	if decideWinner(strict, npcTier, pcTier, npcValue, pcValue, npcRoll, pcRoll) == 2 {
		flag = 1
	}
	return []any{pcID, skill, npcValue, pcValue, npcRoll, pcRoll, npcTier.String(), pcTier.String(), flag}, nil
}

func (u UseCase) opposedNPCvsNPC(rng *rand.Rand, strict bool, args []string) (any, error) {
	mod1, mod2, err := optionalModifiers(args, 2)
	if err != nil {
		return nil, err
	}
	v1, _ := strconv.Atoi(args[0])
	v2, _ := strconv.Atoi(args[1])
	r1 := dice.RollPercentile(rng, mod1).Total
	r2 := dice.RollPercentile(rng, mod2).Total
	t1 := dice.Evaluate(v1, r1)
	t2 := dice.Evaluate(v2, r2)
	winner := "NPC1"
	if decideWinner(strict, t1, t2, v1, v2, r1, r2) == 2 {
		winner = "NPC2"
	}
	return []any{v1, v2, r1, r2, t1.String(), t2.String(), winner}, nil
}

// decideWinner settles a contest between two parties and returns 1 or 2.
// Strict mode demands party 1 strictly outrank party 2; otherwise ties break
// by higher skill, then by the lower roll, and a full tie goes to party 2.
func decideWinner(strict bool, t1, t2 dice.SuccessLevel, s1, s2, r1, r2 int) int {
	if strict {
		if t1.Better(t2) {
			return 1
		}
		return 2
	}
	switch {
	case t1.Better(t2):
		return 1
	case t2.Better(t1):
		return 2
	case s1 > s2:
		return 1
	case s1 < s2:
		return 2
	case r1 < r2:
		return 1
	default:
		return 2
	}
}

func (u UseCase) sanity(ctx context.Context, rng *rand.Rand, args []string) (any, error) {
	switch len(args) {
	case 2:
		return u.sanityRestore(ctx, args[0], args[1])
	case 3:
		return u.sanityCheck(ctx, rng, args[0], args[1], args[2])
	default:
		return nil, fmt.Errorf("%w: sanity check needs a pc plus loss or restore amount", ErrBadArguments)
	}
}

func (u UseCase) sanityRestore(ctx context.Context, pcArg, amountArg string) (any, error) {
	amount, err := strconv.Atoi(amountArg)
	if err != nil {
		return nil, fmt.Errorf("%w: restore amount %q", ErrBadArguments, amountArg)
	}
	sheet, err := u.sheet(ctx, pcArg)
	if err != nil {
		return nil, err
	}
	current := sheet.RestoreSan(amount)
	if err := u.Sheets.Save(ctx, sheet); err != nil {
		return nil, fmt.Errorf("save sheet: %w", err)
	}
	return []any{amountArg, current}, nil
}

func (u UseCase) sanityCheck(ctx context.Context, rng *rand.Rand, pcArg, successLoss, failureLoss string) (any, error) {
	sheet, err := u.sheet(ctx, pcArg)
	if err != nil {
		return nil, err
	}
	intValue, ok := sheet.Value("int")
	if !ok {
		return nil, fmt.Errorf("%w: int", ErrSkillNotFound)
	}

	roll := dice.RollPercentile(rng, 0).Total
	tier := dice.Evaluate(intValue, roll)

	var reduction int
	switch {
	case tier == dice.CriticalSuccess:
		// A critical pays the cheapest term of the success loss.
		reduction, err = cheapestLoss(rng, successLoss)
	case tier.IsSuccess():
		reduction, err = parseLoss(rng, successLoss)
	default:
		reduction, err = parseLoss(rng, failureLoss)
	}
	if err != nil {
		return nil, err
	}

	remaining := sheet.SpendSan(reduction)
	if err := u.Sheets.Save(ctx, sheet); err != nil {
		return nil, fmt.Errorf("save sheet: %w", err)
	}
	return []any{successLoss, failureLoss, intValue, tier.String(), roll, reduction, remaining}, nil
}

func (u UseCase) attributeQuery(ctx context.Context, args []string) (any, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: pc number and attribute required", ErrBadArguments)
	}
	sheet, err := u.sheet(ctx, args[0])
	if errors.Is(err, ports.ErrNotFound) {
		return []any{"not found", notFoundValue}, nil
	}
	if err != nil {
		return nil, err
	}
	value, ok := sheet.Value(args[1])
	if !ok {
		return []any{"not found", notFoundValue}, nil
	}
	return []any{args[1], value}, nil
}

func (u UseCase) hitPoints(ctx context.Context, rng *rand.Rand, args []string) (any, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: pc number and adjustment required", ErrBadArguments)
	}
	sheet, err := u.sheet(ctx, args[0])
	if err != nil {
		return nil, err
	}
	if _, ok := sheet.Value("hp"); !ok {
		return nil, fmt.Errorf("%w: hp", ErrSkillNotFound)
	}

	delta, err := parseSignedAdjustment(rng, args[1])
	if err != nil {
		return nil, err
	}
	current := sheet.AdjustHP(delta)
	if err := u.Sheets.Save(ctx, sheet); err != nil {
		return nil, fmt.Errorf("save sheet: %w", err)
	}
	return []any{args[1], delta, current}, nil
}

func (u UseCase) pcSkillRoll(ctx context.Context, rng *rand.Rand, pcArg, skillName string, modifier int) (value, roll int, tier dice.SuccessLevel, err error) {
	sheet, err := u.sheet(ctx, pcArg)
	if err != nil {
		return 0, 0, 0, err
	}
	value, ok := sheet.Value(skillName)
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: %s", ErrSkillNotFound, skillName)
	}
	roll = dice.RollPercentile(rng, modifier).Total
	return value, roll, dice.Evaluate(value, roll), nil
}

func (u UseCase) sheet(ctx context.Context, pcArg string) (character.Sheet, error) {
	pc, err := strconv.Atoi(pcArg)
	if err != nil || pc < 0 || pc > character.MaxPC {
		return character.Sheet{}, fmt.Errorf("%w: pc number %q", ErrBadArguments, pcArg)
	}
	sheet, err := u.Sheets.Get(ctx, pc)
	if err != nil {
		return character.Sheet{}, fmt.Errorf("pc %d: %w", pc, err)
	}
	return sheet, nil
}

// parseLoss evaluates a sanity-loss term: a dice expression is rolled, a
// bare number taken as written.
func parseLoss(rng *rand.Rand, loss string) (int, error) {
	loss = strings.TrimSpace(loss)
	if dice.ContainsDie(loss) {
		res, err := dice.RollExpression(rng, loss)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrBadArguments, err)
		}
		return res.Total, nil
	}
	n, err := strconv.Atoi(loss)
	if err != nil {
		return 0, fmt.Errorf("%w: sanity loss %q", ErrBadArguments, loss)
	}
	return n, nil
}

// cheapestLoss splits the loss on + and keeps the minimum of the
// independently evaluated terms.
func cheapestLoss(rng *rand.Rand, loss string) (int, error) {
	best := 0
	for i, part := range strings.Split(loss, "+") {
		v, err := parseLoss(rng, part)
		if err != nil {
			return 0, err
		}
		if i == 0 || v < best {
			best = v
		}
	}
	return best, nil
}

// parseSignedAdjustment parses a flat signed number or a signed dice
// expression, rolling the latter.
func parseSignedAdjustment(rng *rand.Rand, adj string) (int, error) {
	if !dice.ContainsDie(adj) {
		n, err := strconv.Atoi(adj)
		if err != nil {
			return 0, fmt.Errorf("%w: adjustment %q", ErrBadArguments, adj)
		}
		return n, nil
	}
	sign := 1
	expr := strings.TrimPrefix(adj, "+")
	if strings.HasPrefix(adj, "-") {
		sign = -1
		expr = adj[1:]
	}
	res, err := dice.RollExpression(rng, expr)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadArguments, err)
	}
	return sign * res.Total, nil
}

func optionalModifiers(args []string, base int) (int, int, error) {
	m1, m2 := 0, 0
	var err error
	if len(args) > base {
		if m1, err = dice.ParseModifier(args[base]); err != nil {
			return 0, 0, fmt.Errorf("%w: %v", ErrBadArguments, err)
		}
	}
	if len(args) > base+1 {
		if m2, err = dice.ParseModifier(args[base+1]); err != nil {
			return 0, 0, fmt.Errorf("%w: %v", ErrBadArguments, err)
		}
	}
	return m1, m2, nil
}

// collectArgs gathers the leading filled argument slots; the first empty
// slot ends the list.
func collectArgs(req message.Request) []string {
	var out []string
	for _, a := range req.Args() {
		a = strings.TrimSpace(a)
		if a == "" {
			break
		}
		out = append(out, a)
	}
	return out
}

func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func (u UseCase) rng() *rand.Rand {
	if u.Rand != nil {
		return u.Rand()
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (u UseCase) rejected() {
	if u.Metrics != nil {
		u.Metrics.RecordRejected()
	}
}

func (u UseCase) failed() {
	if u.Metrics != nil {
		u.Metrics.RecordFailure()
	}
}
