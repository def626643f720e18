package service

import (
	"errors"
	"testing"

	"clozedrill/internal/models"
)

func passedIntroStore(t *testing.T) *fakeStore {
	t.Helper()
	store := newFakeStore()
	if err := store.Set(levelProgressKey, models.LevelProgress{IntroQuizPassed: true}); err != nil {
		t.Fatal(err)
	}
	return store
}

func TestIntroQuizUnlocksEasy(t *testing.T) {
	svc := NewLevelService(newFakeStore(), 70)

	if svc.Unlocked(models.LevelEasy) {
		t.Fatal("easy must start locked")
	}

	outcome, err := svc.RecordIntroQuiz(4, 5)
	if err != nil {
		t.Fatalf("RecordIntroQuiz failed: %v", err)
	}
	if outcome.Percent != 80 || !outcome.PassedNow {
		t.Errorf("outcome = %+v, want 80%% and passed", outcome)
	}

	if !svc.Unlocked(models.LevelEasy) {
		t.Error("easy should unlock after passing the entry quiz")
	}
	if svc.Unlocked(models.LevelMedium) {
		t.Error("medium must stay locked until easy is passed")
	}
}

func TestIntroQuizBelowPassMark(t *testing.T) {
	svc := NewLevelService(newFakeStore(), 70)

	outcome, err := svc.RecordIntroQuiz(3, 5)
	if err != nil {
		t.Fatalf("RecordIntroQuiz failed: %v", err)
	}
	if outcome.PassedNow {
		t.Error("60% must not pass the entry quiz")
	}
	if svc.Unlocked(models.LevelEasy) {
		t.Error("easy must stay locked")
	}
}

func TestRollingMeanPassesLevel(t *testing.T) {
	svc := NewLevelService(passedIntroStore(t), 70)

	// 60, 90, 60: the mean crosses the pass mark at 75 and ends at 70
	scores := []struct {
		correct, total int
		mean           int
		passedNow      bool
	}{
		{6, 10, 60, false},
		{9, 10, 75, true},
		{6, 10, 70, false},
	}
	for i, sc := range scores {
		outcome, err := svc.RecordTestScore(models.LevelEasy, sc.correct, sc.total)
		if err != nil {
			t.Fatalf("test %d failed: %v", i, err)
		}
		if outcome.SessionMean != sc.mean {
			t.Errorf("test %d: mean = %d, want %d", i, outcome.SessionMean, sc.mean)
		}
		if outcome.PassedNow != sc.passedNow {
			t.Errorf("test %d: passedNow = %v, want %v", i, outcome.PassedNow, sc.passedNow)
		}
	}

	if !svc.Unlocked(models.LevelMedium) {
		t.Error("medium should unlock once easy's mean reaches the pass mark")
	}
}

func TestPassFlagIsNotRevoked(t *testing.T) {
	svc := NewLevelService(passedIntroStore(t), 70)

	if _, err := svc.RecordTestScore(models.LevelEasy, 10, 10); err != nil {
		t.Fatal(err)
	}
	if !svc.Unlocked(models.LevelMedium) {
		t.Fatal("medium should be unlocked")
	}

	// A later zero drags the mean down but never clears the flag
	outcome, err := svc.RecordTestScore(models.LevelEasy, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if outcome.SessionMean != 50 {
		t.Errorf("mean = %d, want 50", outcome.SessionMean)
	}
	if outcome.PassedNow {
		t.Error("an already-passed level must not report passedNow again")
	}
	if !svc.Unlocked(models.LevelMedium) {
		t.Error("medium must stay unlocked")
	}
}

func TestLockedLevelRejectsScores(t *testing.T) {
	svc := NewLevelService(passedIntroStore(t), 70)

	if _, err := svc.RecordTestScore(models.LevelMedium, 10, 10); !errors.Is(err, ErrLevelLocked) {
		t.Errorf("err = %v, want ErrLevelLocked", err)
	}
	if svc.SessionMean(models.LevelMedium) != 0 {
		t.Error("rejected scores must not enter the rolling mean")
	}
}

func TestProgressSurvivesRestart(t *testing.T) {
	store := newFakeStore()

	first := NewLevelService(store, 70)
	if _, err := first.RecordIntroQuiz(5, 5); err != nil {
		t.Fatal(err)
	}
	if _, err := first.RecordTestScore(models.LevelEasy, 10, 10); err != nil {
		t.Fatal(err)
	}

	// Same store, new process: flags persist, rolling means start over
	second := NewLevelService(store, 70)
	if !second.Unlocked(models.LevelMedium) {
		t.Error("persisted flags should survive a restart")
	}
	if second.SessionMean(models.LevelEasy) != 0 {
		t.Error("rolling means are per process and should start empty")
	}
}

func TestPersistMergesWithStoredFlags(t *testing.T) {
	store := newFakeStore()
	svc := NewLevelService(store, 70)

	if _, err := svc.RecordIntroQuiz(5, 5); err != nil {
		t.Fatal(err)
	}

	// Another writer sets a flag behind this service's back
	var stored models.LevelProgress
	if _, err := store.Get(levelProgressKey, &stored); err != nil {
		t.Fatal(err)
	}
	stored.HardPassed = true
	if err := store.Set(levelProgressKey, stored); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.RecordTestScore(models.LevelEasy, 10, 10); err != nil {
		t.Fatal(err)
	}

	var final models.LevelProgress
	if _, err := store.Get(levelProgressKey, &final); err != nil {
		t.Fatal(err)
	}
	if !final.HardPassed {
		t.Error("writing easy's flag must not clobber the concurrently set hard flag")
	}
	if !final.EasyPassed || !final.IntroQuizPassed {
		t.Errorf("final flags = %+v", final)
	}
}
