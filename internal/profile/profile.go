// Package profile defines the per-user Profile entity and the strict
// deserialization boundary for persisted profile documents.
package profile

import (
	"sort"
	"time"

	"github.com/mpreston/factdrill/internal/facts"
)

// DefaultTheme is the theme id assigned to new profiles.
const DefaultTheme = "classic"

// MaxMissedCarryover caps how many missed fact keys carry into the next session.
const MaxMissedCarryover = 10

// FactStat tracks lifetime attempt counters for one fact.
// A fact is mastered iff Correct > 0.
type FactStat struct {
	Correct    int   `json:"correct"`
	Wrong      int   `json:"wrong"`
	LastSeenMs int64 `json:"lastSeenMs,omitempty"`
}

// BestRecords holds all-time bests across sessions.
type BestRecords struct {
	BestStreak     int  `json:"bestStreak"`
	BestPercent    int  `json:"bestPercent"`
	BestAvgTimeSec *int `json:"bestAvgTimeSec"`
}

// Summary is the end-of-session record shown as "previous game".
type Summary struct {
	Percent    int  `json:"percent"`
	AvgTimeSec *int `json:"avgTimeSec"`
	MaxStreak  int  `json:"maxStreak"`
}

// Profile is one user's complete drill state. Profiles are independent;
// switching the active profile swaps the whole data set.
type Profile struct {
	Name            string               `json:"name"`
	Theme           string               `json:"theme"`
	Stats           map[string]*FactStat `json:"stats"`
	UnmasteredQueue []string             `json:"unmasteredQueue"`
	CycleQueue      []string             `json:"cycleQueue"`
	LastMissed      []string             `json:"lastMissed"`
	Best            BestRecords          `json:"best"`
	Previous        Summary              `json:"previous"`
	Achievements    []int                `json:"achievements"`
	GamesPlayed     int                  `json:"gamesPlayed"`
	GlobalStreak    int                  `json:"globalStreak"`
	CreatedAtMs     int64                `json:"createdAtMs"`
	UpdatedAtMs     int64                `json:"updatedAtMs"`
}

// New returns a fresh profile with defaults filled in.
func New(name string) *Profile {
	now := time.Now().UnixMilli()
	return &Profile{
		Name:        name,
		Theme:       DefaultTheme,
		Stats:       make(map[string]*FactStat),
		CreatedAtMs: now,
		UpdatedAtMs: now,
	}
}

// Stat returns the stat record for key, creating it lazily.
func (p *Profile) Stat(key string) *FactStat {
	s, ok := p.Stats[key]
	if !ok {
		s = &FactStat{}
		p.Stats[key] = s
	}
	return s
}

// Mastered reports whether the fact behind key has at least one correct
// answer since its last reset.
func (p *Profile) Mastered(key string) bool {
	s, ok := p.Stats[key]
	return ok && s.Correct > 0
}

// HasAchievement reports whether level is already earned.
func (p *Profile) HasAchievement(level int) bool {
	for _, l := range p.Achievements {
		if l == level {
			return true
		}
	}
	return false
}

// AddAchievement records an earned level, keeping the set sorted ascending.
func (p *Profile) AddAchievement(level int) {
	if p.HasAchievement(level) {
		return
	}
	p.Achievements = append(p.Achievements, level)
	sort.Ints(p.Achievements)
}

// Touch updates the modification timestamp.
func (p *Profile) Touch() {
	p.UpdatedAtMs = time.Now().UnixMilli()
}

// Sanitize enforces structural invariants after deserialization: nil maps
// become empty, malformed fact keys are dropped everywhere, counters are
// clamped to zero, achievement levels outside 1..10 are removed and the
// rest deduplicated and sorted. Queues are intentionally left as loaded;
// callers rebuild them from Stats before use.
func (p *Profile) Sanitize() {
	if p.Theme == "" {
		p.Theme = DefaultTheme
	}
	if p.Stats == nil {
		p.Stats = make(map[string]*FactStat)
	}
	for key, s := range p.Stats {
		if s == nil || !facts.ValidKey(key) {
			delete(p.Stats, key)
			continue
		}
		if s.Correct < 0 {
			s.Correct = 0
		}
		if s.Wrong < 0 {
			s.Wrong = 0
		}
	}

	p.UnmasteredQueue = dedupValidKeys(p.UnmasteredQueue)
	p.CycleQueue = dedupValidKeys(p.CycleQueue)
	p.LastMissed = dedupValidKeys(p.LastMissed)
	if len(p.LastMissed) > MaxMissedCarryover {
		p.LastMissed = p.LastMissed[:MaxMissedCarryover]
	}

	var levels []int
	seen := make(map[int]bool)
	for _, l := range p.Achievements {
		if l < 1 || l > MaxAchievementLevel || seen[l] {
			continue
		}
		seen[l] = true
		levels = append(levels, l)
	}
	sort.Ints(levels)
	p.Achievements = levels

	if p.GamesPlayed < 0 {
		p.GamesPlayed = 0
	}
	if p.GlobalStreak < 0 {
		p.GlobalStreak = 0
	}
}

// MaxAchievementLevel is the highest earnable achievement level.
const MaxAchievementLevel = 10

// dedupValidKeys filters a key list to parseable fact keys, preserving
// first-occurrence order.
func dedupValidKeys(keys []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, k := range keys {
		if seen[k] || !facts.ValidKey(k) {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
