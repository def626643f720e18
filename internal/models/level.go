package models

// Level is one of the four difficulty tiers, gated in strict order
type Level string

const (
	LevelEasy   Level = "easy"
	LevelMedium Level = "medium"
	LevelHard   Level = "hard"
	LevelExpert Level = "expert"
)

// Levels lists the tiers in unlock order
var Levels = []Level{LevelEasy, LevelMedium, LevelHard, LevelExpert}

// ParseLevel validates a level name
func ParseLevel(s string) (Level, bool) {
	for _, l := range Levels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// LevelProgress holds the persisted unlock flags. Flags are monotonic: once a
// flag is set it is never cleared within the same document.
type LevelProgress struct {
	IntroQuizPassed bool `json:"introQuizPassed"`
	EasyPassed      bool `json:"easyPassed"`
	MediumPassed    bool `json:"mediumPassed"`
	HardPassed      bool `json:"hardPassed"`
}

// Merge combines two progress records, keeping every flag that is set in
// either. Used to write flags back without clobbering ones persisted earlier.
func (p LevelProgress) Merge(other LevelProgress) LevelProgress {
	return LevelProgress{
		IntroQuizPassed: p.IntroQuizPassed || other.IntroQuizPassed,
		EasyPassed:      p.EasyPassed || other.EasyPassed,
		MediumPassed:    p.MediumPassed || other.MediumPassed,
		HardPassed:      p.HardPassed || other.HardPassed,
	}
}

// Unlocked reports whether the given level is open: easy requires the entry
// quiz, each later level requires the previous one to be passed.
func (p LevelProgress) Unlocked(l Level) bool {
	switch l {
	case LevelEasy:
		return p.IntroQuizPassed
	case LevelMedium:
		return p.EasyPassed
	case LevelHard:
		return p.MediumPassed
	case LevelExpert:
		return p.HardPassed
	default:
		return false
	}
}

// SetPassed marks a level as passed. The expert tier has no onward flag, so
// passing it is recorded only in the attempt log.
func (p *LevelProgress) SetPassed(l Level) {
	switch l {
	case LevelEasy:
		p.EasyPassed = true
	case LevelMedium:
		p.MediumPassed = true
	case LevelHard:
		p.HardPassed = true
	}
}

// Passed reports whether the pass flag for a level is already set
func (p LevelProgress) Passed(l Level) bool {
	switch l {
	case LevelEasy:
		return p.EasyPassed
	case LevelMedium:
		return p.MediumPassed
	case LevelHard:
		return p.HardPassed
	default:
		return false
	}
}
