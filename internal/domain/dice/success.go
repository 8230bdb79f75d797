package dice

// SuccessLevel ranks a percentile roll against a skill value. Levels are
// ordered best-first so contests compare ranks numerically, never by
// comparing display strings.
type SuccessLevel int

const (
	CriticalSuccess SuccessLevel = iota
	ExtremeSuccess
	HardSuccess
	RegularSuccess
	Failure
	Fumble
)

func (l SuccessLevel) String() string {
	switch l {
	case CriticalSuccess:
		return "critical success"
	case ExtremeSuccess:
		return "extreme success"
	case HardSuccess:
		return "hard success"
	case RegularSuccess:
		return "success"
	case Failure:
		return "failure"
	case Fumble:
		return "fumble"
	default:
		return "unknown"
	}
}

// Better reports whether l outranks other.
func (l SuccessLevel) Better(other SuccessLevel) bool {
	return l < other
}

// IsSuccess reports whether the level counts as a success of any grade.
func (l SuccessLevel) IsSuccess() bool {
	return l <= RegularSuccess
}

// Evaluate grades a percentile roll against a skill value. A roll of 1 is
// always a critical success; 100 fumbles, as does 96+ when the skill is
// under 50.
func Evaluate(skill, roll int) SuccessLevel {
	switch {
	case roll == 1:
		return CriticalSuccess
	case (skill < 50 && roll >= 96) || (skill >= 50 && roll == 100):
		return Fumble
	case roll <= skill/5:
		return ExtremeSuccess
	case roll <= skill/2:
		return HardSuccess
	case roll <= skill:
		return RegularSuccess
	default:
		return Failure
	}
}
