package models

import "testing"

func TestBandFor(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		total    int
		expected ScoreBand
	}{
		{name: "perfect score", correct: 8, total: 8, expected: BandGood},
		{name: "one miss", correct: 7, total: 8, expected: BandOK},
		{name: "two misses", correct: 6, total: 8, expected: BandOK},
		{name: "three misses", correct: 5, total: 8, expected: BandLow},
		{name: "zero of many", correct: 0, total: 8, expected: BandLow},
		{name: "empty exercise", correct: 0, total: 0, expected: BandGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BandFor(tt.correct, tt.total)
			if result != tt.expected {
				t.Errorf("BandFor(%d, %d) = %v, want %v", tt.correct, tt.total, result, tt.expected)
			}
		})
	}
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name     string
		part     int
		whole    int
		expected int
	}{
		{name: "zero total avoids division", part: 3, whole: 0, expected: 0},
		{name: "exact", part: 1, whole: 2, expected: 50},
		{name: "rounds up", part: 2, whole: 3, expected: 67},
		{name: "rounds down", part: 1, whole: 3, expected: 33},
		{name: "four of five", part: 4, whole: 5, expected: 80},
		{name: "full marks", part: 10, whole: 10, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PercentOf(tt.part, tt.whole)
			if result != tt.expected {
				t.Errorf("PercentOf(%d, %d) = %d, want %d", tt.part, tt.whole, result, tt.expected)
			}
		})
	}
}

func TestSeriesBandFor(t *testing.T) {
	tests := []struct {
		percent  int
		expected ScoreBand
	}{
		{percent: 100, expected: BandGood},
		{percent: 80, expected: BandGood},
		{percent: 79, expected: ""},
		{percent: 50, expected: ""},
		{percent: 49, expected: BandLow},
		{percent: 0, expected: BandLow},
	}

	for _, tt := range tests {
		result := SeriesBandFor(tt.percent)
		if result != tt.expected {
			t.Errorf("SeriesBandFor(%d) = %q, want %q", tt.percent, result, tt.expected)
		}
	}
}

func TestLevelProgressUnlocked(t *testing.T) {
	tests := []struct {
		name     string
		progress LevelProgress
		level    Level
		expected bool
	}{
		{name: "easy locked before intro quiz", progress: LevelProgress{}, level: LevelEasy, expected: false},
		{name: "easy open after intro quiz", progress: LevelProgress{IntroQuizPassed: true}, level: LevelEasy, expected: true},
		{name: "medium locked until easy passed", progress: LevelProgress{IntroQuizPassed: true}, level: LevelMedium, expected: false},
		{name: "medium open after easy passed", progress: LevelProgress{EasyPassed: true}, level: LevelMedium, expected: true},
		{name: "hard requires medium", progress: LevelProgress{MediumPassed: true}, level: LevelHard, expected: true},
		{name: "expert requires hard", progress: LevelProgress{HardPassed: true}, level: LevelExpert, expected: true},
		{name: "expert locked without hard", progress: LevelProgress{MediumPassed: true}, level: LevelExpert, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.progress.Unlocked(tt.level)
			if result != tt.expected {
				t.Errorf("Unlocked(%s) = %v, want %v", tt.level, result, tt.expected)
			}
		})
	}
}

func TestLevelProgressMerge(t *testing.T) {
	stored := LevelProgress{IntroQuizPassed: true, EasyPassed: true}
	current := LevelProgress{MediumPassed: true}

	merged := current.Merge(stored)

	if !merged.IntroQuizPassed || !merged.EasyPassed || !merged.MediumPassed {
		t.Errorf("Merge should keep flags from both sides, got %+v", merged)
	}
	if merged.HardPassed {
		t.Error("Merge should not invent flags")
	}
}

func TestParseLevel(t *testing.T) {
	if l, ok := ParseLevel("medium"); !ok || l != LevelMedium {
		t.Errorf("ParseLevel(medium) = %v, %v", l, ok)
	}
	if _, ok := ParseLevel("impossible"); ok {
		t.Error("ParseLevel should reject unknown levels")
	}
}
