package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/mpreston/factdrill/internal/profile"
)

func TestEndSessionStats(t *testing.T) {
	base := time.Unix(1700000000, 0)
	current := base
	e := New(profile.New("Test"), &memSaver{},
		WithRand(rand.New(rand.NewSource(11))),
		WithClock(func() time.Time { return current }),
	)
	e.StartSession()

	// 20 questions, 2 seconds each, miss every fourth.
	for i := 0; i < GameLength; i++ {
		current = current.Add(2 * time.Second)
		answerCurrent(t, e, i%4 != 3)
		e.Advance()
	}

	p := e.Profile()
	sum := e.Summary()
	if sum == nil {
		t.Fatal("no summary")
	}
	if sum.Percent != 75 {
		t.Errorf("Percent = %d, want 75", sum.Percent)
	}
	if sum.AvgTimeSec == nil || *sum.AvgTimeSec != 2 {
		t.Errorf("AvgTimeSec = %v, want 2", sum.AvgTimeSec)
	}
	if p.Previous != *sum {
		t.Errorf("Previous = %+v, want %+v", p.Previous, *sum)
	}
	if p.GamesPlayed != 1 {
		t.Errorf("GamesPlayed = %d, want 1", p.GamesPlayed)
	}
	if p.Best.BestPercent != 75 {
		t.Errorf("BestPercent = %d, want 75", p.Best.BestPercent)
	}
	if p.Best.BestAvgTimeSec == nil || *p.Best.BestAvgTimeSec != 2 {
		t.Errorf("BestAvgTimeSec = %v, want 2", p.Best.BestAvgTimeSec)
	}
	if len(p.LastMissed) != 5 {
		t.Errorf("LastMissed = %v, want the 5 missed keys", p.LastMissed)
	}
}

func TestBestAvgTimeOnlyImproves(t *testing.T) {
	p := profile.New("Test")
	three := 3
	p.Best.BestAvgTimeSec = &three

	base := time.Unix(1700000000, 0)
	current := base
	e := New(p, &memSaver{},
		WithRand(rand.New(rand.NewSource(11))),
		WithClock(func() time.Time { return current }),
	)
	e.StartSession()
	for i := 0; i < GameLength; i++ {
		current = current.Add(5 * time.Second) // slower than the record
		answerCurrent(t, e, true)
		e.Advance()
	}

	if *p.Best.BestAvgTimeSec != 3 {
		t.Errorf("BestAvgTimeSec = %d, want 3 (slower session must not overwrite)", *p.Best.BestAvgTimeSec)
	}
}

func TestLastMissedCappedAtTen(t *testing.T) {
	e, _ := newTestEngine(t)
	e.StartSession()
	for i := 0; i < GameLength; i++ {
		answerCurrent(t, e, false)
		e.Advance()
	}
	p := e.Profile()
	if len(p.LastMissed) != profile.MaxMissedCarryover {
		t.Errorf("LastMissed = %d keys, want %d", len(p.LastMissed), profile.MaxMissedCarryover)
	}
	// Carryover preserves first-missed order.
	missed := e.MissedFacts()
	for i, f := range missed {
		if p.LastMissed[i] != f.Key() {
			t.Errorf("LastMissed[%d] = %s, want %s", i, p.LastMissed[i], f.Key())
		}
	}
}

func TestLastMissedOverwritesPriorValue(t *testing.T) {
	p := profile.New("Test")
	p.LastMissed = []string{"1x1", "2x2", "3x3"}
	e := New(p, &memSaver{}, WithRand(rand.New(rand.NewSource(13))))
	e.StartSession()
	for i := 0; i < GameLength; i++ {
		answerCurrent(t, e, true)
		e.Advance()
	}
	if len(p.LastMissed) != 0 {
		t.Errorf("LastMissed = %v, want empty after clean session", p.LastMissed)
	}
}

func TestTwentyUniqueCorrectScenario(t *testing.T) {
	// Fresh profile: a perfect session must move exactly the 20 served
	// facts out of the unmastered queue and into the cycle queue.
	e, _ := newTestEngine(t)
	e.StartSession()

	var served []string
	for i := 0; i < GameLength; i++ {
		served = append(served, e.CurrentQuestion().Key())
		answerCurrent(t, e, true)
		e.Advance()
	}

	p := e.Profile()
	if e.Summary().Percent != 100 {
		t.Errorf("Percent = %d, want 100", e.Summary().Percent)
	}
	inUnmastered := make(map[string]bool)
	for _, k := range p.UnmasteredQueue {
		inUnmastered[k] = true
	}
	inCycle := make(map[string]bool)
	for _, k := range p.CycleQueue {
		inCycle[k] = true
	}
	for _, k := range served {
		if inUnmastered[k] {
			t.Errorf("served key %s still in unmastered queue", k)
		}
		if !inCycle[k] {
			t.Errorf("served key %s missing from cycle queue", k)
		}
	}
	assertQueuePartition(t, p)
}

func TestLiveStatsProgress(t *testing.T) {
	e, _ := newTestEngine(t)
	e.StartSession()

	stats := e.LiveStats()
	if stats.Asked != 1 {
		t.Errorf("Asked = %d, want 1 (question on screen counts)", stats.Asked)
	}
	if stats.Length != GameLength {
		t.Errorf("Length = %d, want %d", stats.Length, GameLength)
	}
	if stats.Percent != 0 {
		t.Errorf("Percent = %d, want 0 before any attempt", stats.Percent)
	}

	answerCurrent(t, e, true)
	stats = e.LiveStats()
	if stats.Percent != 100 {
		t.Errorf("Percent = %d, want 100", stats.Percent)
	}
	if stats.Streak != 1 {
		t.Errorf("Streak = %d, want 1", stats.Streak)
	}
}
