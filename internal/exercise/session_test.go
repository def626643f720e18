package exercise

import (
	"reflect"
	"testing"

	"clozedrill/internal/models"
)

func TestSubmitFreeText(t *testing.T) {
	content := Content{
		ID:      "t1",
		Text:    "I go (1) school (2) bus.",
		Answers: []string{"to", "by"},
	}

	t.Run("all correct", func(t *testing.T) {
		s := NewSession(content, models.ModePractice)
		result := s.Submit([]string{"to", "by"})

		if result.CorrectCount != 2 || result.Total != 2 {
			t.Errorf("got %d/%d, want 2/2", result.CorrectCount, result.Total)
		}
		if result.Band != models.BandGood {
			t.Errorf("band = %v, want good", result.Band)
		}
		if len(result.Wrong) != 0 {
			t.Errorf("expected no wrong gaps, got %+v", result.Wrong)
		}
	})

	t.Run("one wrong", func(t *testing.T) {
		s := NewSession(content, models.ModePractice)
		result := s.Submit([]string{"To", "bus"})

		if result.CorrectCount != 1 {
			t.Errorf("correctCount = %d, want 1 (case-insensitive)", result.CorrectCount)
		}
		if result.Band != models.BandOK {
			t.Errorf("band = %v, want ok", result.Band)
		}
		expected := []models.WrongGap{{Ordinal: 2, Expected: "by"}}
		if !reflect.DeepEqual(result.Wrong, expected) {
			t.Errorf("wrong gaps = %+v, want %+v", result.Wrong, expected)
		}
	})

	t.Run("missing responses grade as incorrect", func(t *testing.T) {
		s := NewSession(content, models.ModePractice)
		result := s.Submit([]string{"to"})

		if result.CorrectCount != 1 {
			t.Errorf("correctCount = %d, want 1", result.CorrectCount)
		}
		if len(result.Wrong) != 1 || result.Wrong[0].Ordinal != 2 {
			t.Errorf("wrong gaps = %+v, want gap 2", result.Wrong)
		}
	})
}

func TestSubmitIsIdempotent(t *testing.T) {
	content := Content{Text: "(1)", Answers: []string{"yes"}}
	s := NewSession(content, models.ModePractice)

	first := s.Submit([]string{"yes"})
	second := s.Submit([]string{"no"})

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeat submit changed the result: %+v vs %+v", first, second)
	}
	if second.CorrectCount != 1 {
		t.Error("repeat submit must return the originally graded result")
	}
}

func TestRestartClearsGrading(t *testing.T) {
	content := Content{Text: "(1)", Answers: []string{"yes"}}
	s := NewSession(content, models.ModePractice)
	s.Submit([]string{"no"})

	s.Restart()

	if s.Graded() {
		t.Error("restart should return to the unsubmitted state")
	}
	result := s.Submit([]string{"yes"})
	if result.CorrectCount != 1 {
		t.Errorf("fresh submit after restart = %d/1, want 1/1", result.CorrectCount)
	}
}

func TestSubmitMCQ(t *testing.T) {
	content := Content{
		ID:            "mcq1",
		Text:          "Pick (1) and (2).",
		AnswerIndexes: []int{1, 0},
		Options: [][]string{
			{"happiness", "happily"},
			{"unfair", "fairness"},
		},
		Explanations: []string{"adverb needed", "negative prefix"},
	}
	s := NewSession(content, models.ModeMCQ)

	result := s.Submit([]string{"1", "1"})

	if result.CorrectCount != 1 {
		t.Errorf("correctCount = %d, want 1", result.CorrectCount)
	}
	if len(result.Wrong) != 1 {
		t.Fatalf("wrong gaps = %+v, want exactly one", result.Wrong)
	}
	wrong := result.Wrong[0]
	if wrong.Ordinal != 2 || wrong.Expected != "unfair" {
		t.Errorf("wrong gap = %+v, want ordinal 2 expected %q", wrong, "unfair")
	}
	if wrong.Explanation != "negative prefix" {
		t.Errorf("explanation = %q, want %q", wrong.Explanation, "negative prefix")
	}
}

func TestSubmitMCQMalformedSelection(t *testing.T) {
	content := Content{
		Text:          "(1)",
		AnswerIndexes: []int{0},
		Options:       [][]string{{"right", "wrong"}},
	}
	s := NewSession(content, models.ModeMCQ)

	result := s.Submit([]string{"not-a-number"})

	if result.CorrectCount != 0 {
		t.Error("malformed selection should grade as incorrect, not fault")
	}
}

func TestGapWithoutAnswerGradesBlank(t *testing.T) {
	// Gap (3) has no matching answer; it must render a blank expected value
	// instead of faulting.
	content := Content{
		Text:    "a (1) b (3)",
		Answers: []string{"one"},
	}
	s := NewSession(content, models.ModePractice)

	result := s.Submit([]string{"one", "three"})

	if result.CorrectCount != 1 {
		t.Errorf("correctCount = %d, want 1", result.CorrectCount)
	}
	if len(result.Wrong) != 1 || result.Wrong[0].Expected != "" {
		t.Errorf("unanswerable gap should report empty expected, got %+v", result.Wrong)
	}
}

func TestSubmitShortAnswer(t *testing.T) {
	content := Content{
		Text:    "(1)",
		Answers: []string{"because it rains"},
	}
	s := NewSession(content, models.ModeShortAnswer)

	result := s.Submit([]string{"Because it rains."})

	if result.CorrectCount != 1 {
		t.Error("short-answer mode should strip trailing punctuation before comparing")
	}
}
