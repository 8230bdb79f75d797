// Package render turns decoded result messages into the structured view the
// session displays: ordered blocks of a title plus labeled lines, with the
// provenance footer every rendering carries.
package render

import (
	"fmt"
	"strings"

	"dicehall/internal/domain/message"
)

// Block is one titled group of display lines.
type Block struct {
	Title string
	Lines []string
}

// View is an ordered list of blocks; the last block is always provenance.
type View struct {
	Blocks []Block
}

type UseCase struct{}

// Execute renders one result message. It refuses to render anything for a
// malformed result: either the whole view or nothing.
func (u UseCase) Execute(msg message.ResultMessage) (View, error) {
	variant, err := message.DecodeResult(msg)
	if err != nil {
		return View{}, err
	}

	var main Block
	switch v := variant.(type) {
	case message.RollOutcome:
		main = Block{
			Title: "Roll " + v.Expression,
			Lines: []string{
				"Total: " + v.Total,
				"Dice: " + strings.Join(v.Dice, ", "),
			},
		}
	case message.AttributeRollOutcome:
		main = Block{
			Title: "Attribute roll: " + v.Skill,
			Lines: []string{
				"Skill: " + v.Value,
				"Roll: " + v.Roll,
				"Outcome: " + v.Tier,
			},
		}
	case message.HiddenRollOutcome:
		main = Block{Title: "Hidden roll: " + v.Value}
	case message.OpposedPCvsPC:
		main = Block{
			Title: fmt.Sprintf("Opposed roll: PC%s vs. PC%s", v.FirstID, v.SecondID),
			Lines: []string{
				fmt.Sprintf("PC%s - %s - skill %s / roll %s - %s", v.FirstID, v.FirstSkill, v.FirstValue, v.FirstRoll, v.FirstTier),
				fmt.Sprintf("PC%s - %s - skill %s / roll %s - %s", v.SecondID, v.SecondSkill, v.SecondValue, v.SecondRoll, v.SecondTier),
				fmt.Sprintf("PC%s wins", v.WinnerID),
			},
		}
	case message.OpposedNPCvsPC:
		winner := "NPC wins"
		if v.PCWins {
			winner = "PC wins"
		}
		main = Block{
			Title: fmt.Sprintf("Opposed roll: NPC vs. PC%s", v.PCID),
			Lines: []string{
				fmt.Sprintf("NPC - skill %s / roll %s - %s", v.NPCValue, v.NPCRoll, v.NPCTier),
				fmt.Sprintf("PC%s - %s - skill %s / roll %s - %s", v.PCID, v.PCSkill, v.PCValue, v.PCRoll, v.PCTier),
				winner,
			},
		}
	case message.OpposedNPCvsNPC:
		main = Block{
			Title: "Opposed roll: NPC1 vs. NPC2",
			Lines: []string{
				fmt.Sprintf("NPC1 - skill %s / roll %s - %s", v.FirstValue, v.FirstRoll, v.FirstTier),
				fmt.Sprintf("NPC2 - skill %s / roll %s - %s", v.SecondValue, v.SecondRoll, v.SecondTier),
				fmt.Sprintf("%s wins", v.Winner),
			},
		}
	case message.SanityCheckOutcome:
		main = Block{
			Title: fmt.Sprintf("SAN check %s/%s", v.SuccessLoss, v.FailureLoss),
			Lines: []string{
				fmt.Sprintf("INT %s / roll %s - %s", v.Intelligence, v.Roll, v.Tier),
				fmt.Sprintf("SAN reduced by %s, remaining %s", v.Reduction, v.Remaining),
			},
		}
	case message.SanityRestoreOutcome:
		main = Block{
			Title: "SAN restored",
			Lines: []string{
				"Amount: " + v.Amount,
				"Current SAN: " + v.Current,
			},
		}
	case message.AttributeQueryOutcome:
		main = Block{
			Title: "Attribute query",
			Lines: []string{
				"Attribute: " + v.Name,
				"Value: " + v.Value,
			},
		}
	case message.HitPointAdjustOutcome:
		lines := []string{"Adjustment: " + v.Requested}
		if v.Requested != v.Rolled {
			lines = append(lines, "Roll: "+v.Rolled)
		}
		lines = append(lines, "Current HP: "+v.Current)
		main = Block{Title: "HP adjustment", Lines: lines}
	default:
		return View{}, message.ErrMalformedResult
	}

	return View{Blocks: []Block{main, provenance(msg)}}, nil
}

func provenance(msg message.ResultMessage) Block {
	return Block{Lines: []string{
		"Player: " + msg.Username,
		"Address: " + msg.IP,
		"Time: " + msg.Time,
	}}
}
