// Package engagement derives usage statistics and recommendations from the
// session action log. All results are computed on demand from the log and
// the session counters; nothing here is persisted.
package engagement

import (
	"math"
	"sort"
	"time"

	"github.com/okian/questlog/internal/domain/actionlog"
	"github.com/okian/questlog/internal/domain/model"
	"github.com/okian/questlog/internal/domain/session"
)

// Engagement levels reported by Classify.
const (
	LevelHigh   = "High"
	LevelMedium = "Medium"
	LevelLow    = "Low"
)

// Default result sizes for the pattern queries.
const (
	DefaultTargetsTopK = 5
	DefaultBucketsTopK = 3
)

// TargetCount is a click target with its click count.
type TargetCount struct {
	Target string `json:"target"`
	Count  int    `json:"count"`
}

// HourBucket is an hour of day (0-23) with its action count.
type HourBucket struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// Summary is the engagement classification of the running session.
type Summary struct {
	Level            string `json:"level"`
	SessionMinutes   int    `json:"session_minutes"`
	ActionsPerMinute int    `json:"actions_per_minute"`
	Score            int    `json:"score"`
}

// Patterns bundles the derived usage statistics.
type Patterns struct {
	MostFrequentTargets []TargetCount `json:"most_frequent_targets"`
	PeakActivityBuckets []HourBucket  `json:"peak_activity_buckets"`
	ActionsPerMinute    int           `json:"actions_per_minute"`
	Engagement          Summary       `json:"engagement"`
}

// Report is the full analysis of the running session.
type Report struct {
	GeneratedAt     time.Time            `json:"generated_at"`
	SessionStartAt  time.Time            `json:"session_start_at"`
	SessionDuration int64                `json:"session_duration_ms"`
	TotalActions    int                  `json:"total_actions"`
	Metrics         model.SessionMetrics `json:"metrics"`
	Patterns        Patterns             `json:"patterns"`
	Recommendations []string             `json:"recommendations"`
}

// Analyzer computes engagement statistics for one session.
type Analyzer struct {
	log     *actionlog.Log
	tracker *session.Tracker
	now     func() time.Time
}

// New creates an Analyzer over the given log and tracker.
func New(log *actionlog.Log, tracker *session.Tracker, opts ...Option) *Analyzer {
	a := &Analyzer{
		log:     log,
		tracker: tracker,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// MostFrequentTargets returns the topK most clicked targets, most clicked
// first. Ties keep first-seen order.
func (a *Analyzer) MostFrequentTargets(topK int) []TargetCount {
	counts := make(map[string]int)
	var order []TargetCount

	for _, act := range a.log.All() {
		if act.Kind != model.ActionClick {
			continue
		}
		target, _ := act.Payload["element"].(string)
		if target == "" {
			continue
		}
		if _, seen := counts[target]; !seen {
			order = append(order, TargetCount{Target: target})
		}
		counts[target]++
	}

	for i := range order {
		order[i].Count = counts[order[i].Target]
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Count > order[j].Count
	})

	if topK > 0 && len(order) > topK {
		order = order[:topK]
	}
	return order
}

// PeakActivityBuckets returns the topK busiest hours of day, busiest first.
// Ties order by ascending hour. Empty buckets are omitted.
func (a *Analyzer) PeakActivityBuckets(topK int) []HourBucket {
	var counts [24]int
	for _, act := range a.log.All() {
		counts[act.OccurredAt.Hour()]++
	}

	var buckets []HourBucket
	for hour, count := range counts {
		if count > 0 {
			buckets = append(buckets, HourBucket{Hour: hour, Count: count})
		}
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})

	if topK > 0 && len(buckets) > topK {
		buckets = buckets[:topK]
	}
	return buckets
}

// ActionsPerMinute is the rounded action rate over the session so far.
// A session with no elapsed time reports zero.
func (a *Analyzer) ActionsPerMinute() int {
	minutes := a.sessionMinutes()
	if minutes <= 0 {
		return 0
	}
	return int(math.Round(float64(a.log.Len()) / minutes))
}

// Classify grades the session as High, Medium or Low engagement.
func (a *Analyzer) Classify() Summary {
	minutes := a.sessionMinutes()
	apm := a.ActionsPerMinute()

	level := LevelLow
	switch {
	case minutes > 5 && apm > 2:
		level = LevelHigh
	case minutes > 2 || apm > 1:
		level = LevelMedium
	}

	return Summary{
		Level:            level,
		SessionMinutes:   int(minutes),
		ActionsPerMinute: apm,
		Score:            int(math.Round(minutes * float64(apm) / 10)),
	}
}

// Recommendations suggests next steps based on the session so far, most
// pressing first.
func (a *Analyzer) Recommendations() []string {
	summary := a.Classify()
	counters := a.tracker.Metrics()

	recs := make([]string, 0, 5)
	if summary.Level == LevelLow {
		recs = append(recs,
			"Try exploring more of the academy's features",
			"Consider creating more quests to keep your streak going",
		)
	}
	if counters.XPGained < 100 {
		recs = append(recs, "Complete more missions to gain experience")
	}
	if counters.ItemsCreated == 0 {
		recs = append(recs, "Create your first quest to start your journey")
	}
	if counters.TotalClicks > 50 {
		recs = append(recs, "You're very active today, keep it up!")
	}
	return recs
}

// Patterns bundles every derived statistic using the default sizes.
func (a *Analyzer) Patterns() Patterns {
	return Patterns{
		MostFrequentTargets: a.MostFrequentTargets(DefaultTargetsTopK),
		PeakActivityBuckets: a.PeakActivityBuckets(DefaultBucketsTopK),
		ActionsPerMinute:    a.ActionsPerMinute(),
		Engagement:          a.Classify(),
	}
}

// Report builds the full session analysis.
func (a *Analyzer) Report() Report {
	now := a.now()
	start := a.log.SessionStart()

	return Report{
		GeneratedAt:     now,
		SessionStartAt:  start,
		SessionDuration: now.Sub(start).Milliseconds(),
		TotalActions:    a.log.Len(),
		Metrics:         a.tracker.Metrics(),
		Patterns:        a.Patterns(),
		Recommendations: a.Recommendations(),
	}
}

func (a *Analyzer) sessionMinutes() float64 {
	minutes := a.now().Sub(a.log.SessionStart()).Minutes()
	if minutes < 0 {
		return 0
	}
	return minutes
}
