package profile

import (
	"fmt"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	p := New("Ada")
	if p.Name != "Ada" {
		t.Errorf("Name = %q, want Ada", p.Name)
	}
	if p.Theme != DefaultTheme {
		t.Errorf("Theme = %q, want %q", p.Theme, DefaultTheme)
	}
	if p.Stats == nil {
		t.Error("Stats map not initialized")
	}
	if p.CreatedAtMs == 0 || p.UpdatedAtMs == 0 {
		t.Error("timestamps not set")
	}
}

func TestStatLazyCreation(t *testing.T) {
	p := New("Ada")
	s := p.Stat("3x4")
	if s == nil {
		t.Fatal("Stat returned nil")
	}
	if s.Correct != 0 || s.Wrong != 0 {
		t.Errorf("fresh stat = %+v, want zeros", s)
	}
	if p.Stat("3x4") != s {
		t.Error("Stat created a second record for the same key")
	}
}

func TestMastered(t *testing.T) {
	p := New("Ada")
	if p.Mastered("3x4") {
		t.Error("unknown fact reported mastered")
	}
	p.Stat("3x4").Wrong = 2
	if p.Mastered("3x4") {
		t.Error("fact with only wrong answers reported mastered")
	}
	p.Stat("3x4").Correct = 1
	if !p.Mastered("3x4") {
		t.Error("fact with a correct answer not reported mastered")
	}
}

func TestAddAchievementSortedNoDup(t *testing.T) {
	p := New("Ada")
	p.AddAchievement(3)
	p.AddAchievement(1)
	p.AddAchievement(3)
	p.AddAchievement(2)

	want := []int{1, 2, 3}
	if len(p.Achievements) != len(want) {
		t.Fatalf("Achievements = %v, want %v", p.Achievements, want)
	}
	for i, l := range want {
		if p.Achievements[i] != l {
			t.Fatalf("Achievements = %v, want %v", p.Achievements, want)
		}
	}
}

func TestSanitizeDropsMalformedKeys(t *testing.T) {
	p := New("Ada")
	p.Stats["3x4"] = &FactStat{Correct: 1}
	p.Stats["11x0"] = &FactStat{Correct: 5}
	p.Stats["garbage"] = &FactStat{Correct: 5}
	p.Stats["03x4"] = &FactStat{Correct: 5} // alias of 3x4
	p.Stats["2x2"] = nil
	p.UnmasteredQueue = []string{"1x1", "bogus", "1x1", "2x3"}
	p.LastMissed = []string{"9x9", "99x9", "09x9"}

	p.Sanitize()

	if _, ok := p.Stats["11x0"]; ok {
		t.Error("out-of-range key survived sanitize")
	}
	if _, ok := p.Stats["garbage"]; ok {
		t.Error("malformed key survived sanitize")
	}
	if _, ok := p.Stats["03x4"]; ok {
		t.Error("non-canonical key survived sanitize")
	}
	if _, ok := p.Stats["2x2"]; ok {
		t.Error("nil stat survived sanitize")
	}
	if _, ok := p.Stats["3x4"]; !ok {
		t.Error("valid key dropped by sanitize")
	}
	if len(p.UnmasteredQueue) != 2 {
		t.Errorf("UnmasteredQueue = %v, want deduped valid keys", p.UnmasteredQueue)
	}
	if len(p.LastMissed) != 1 || p.LastMissed[0] != "9x9" {
		t.Errorf("LastMissed = %v, want [9x9]", p.LastMissed)
	}
}

func TestSanitizeClampsCountersAndLevels(t *testing.T) {
	p := New("Ada")
	p.Stats["0x0"] = &FactStat{Correct: -2, Wrong: -1}
	p.Achievements = []int{4, 0, 11, 4, 2}
	p.GamesPlayed = -1
	p.GlobalStreak = -3

	p.Sanitize()

	s := p.Stats["0x0"]
	if s.Correct != 0 || s.Wrong != 0 {
		t.Errorf("stat = %+v, want clamped zeros", s)
	}
	if len(p.Achievements) != 2 || p.Achievements[0] != 2 || p.Achievements[1] != 4 {
		t.Errorf("Achievements = %v, want [2 4]", p.Achievements)
	}
	if p.GamesPlayed != 0 || p.GlobalStreak != 0 {
		t.Errorf("counters = %d/%d, want 0/0", p.GamesPlayed, p.GlobalStreak)
	}
}

func TestSanitizeCapsLastMissed(t *testing.T) {
	p := New("Ada")
	for a := 0; a <= 10; a++ {
		p.LastMissed = append(p.LastMissed, fmt.Sprintf("%dx0", a))
	}
	p.Sanitize()
	if len(p.LastMissed) != MaxMissedCarryover {
		t.Errorf("len(LastMissed) = %d, want %d", len(p.LastMissed), MaxMissedCarryover)
	}
}
