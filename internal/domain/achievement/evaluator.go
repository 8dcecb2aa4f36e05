// Package achievement evaluates milestone badges from collection statistics
// and keeps the set of unlocked badges monotonic across sessions.
package achievement

import "github.com/okian/questlog/internal/domain/model"

// Profile badge keys.
const (
	KeyFirstItem      = "first-item"
	KeyCollector      = "collector"
	KeyPointsMaster   = "points-master"
	KeyTurningPoint   = "turning-point"
	KeyFinisher       = "finisher"
	KeyQualityPremium = "quality-premium"
	KeyEditMaster     = "edit-master"
)

// Stats is the collection summary badges are evaluated against.
type Stats struct {
	TotalItems     int     `json:"total_items"`
	CompletedItems int     `json:"completed_items"`
	TotalPoints    int     `json:"total_points"`
	AverageRating  float64 `json:"average_rating"`
	EditCount      int     `json:"edit_count"`
}

// Default thresholds.
const (
	defaultPointsMasterThreshold = 50
	defaultTurningPointThreshold = 10
	defaultCollectorItems        = 5
	defaultFinisherItems         = 3
	defaultEditMasterEdits       = 3
	defaultQualityRating         = 4.0
)

// catalog maps badge keys to their display definitions.
var catalog = map[string]model.Badge{
	KeyFirstItem:      {Key: KeyFirstItem, Name: "First Quest", Description: "Create your first quest"},
	KeyCollector:      {Key: KeyCollector, Name: "Collector", Description: "Keep five quests at once"},
	KeyPointsMaster:   {Key: KeyPointsMaster, Name: "Points Master", Description: "Accumulate a trove of points"},
	KeyTurningPoint:   {Key: KeyTurningPoint, Name: "Turning Point", Description: "Reach your first points milestone"},
	KeyFinisher:       {Key: KeyFinisher, Name: "Finisher", Description: "Complete three quests"},
	KeyQualityPremium: {Key: KeyQualityPremium, Name: "Premium Quality", Description: "Hold an average rating of four stars"},
	KeyEditMaster:     {Key: KeyEditMaster, Name: "Edit Master", Description: "Polish your quests three times"},
}

// Definition returns the display definition for a badge key.
func Definition(key string) (model.Badge, bool) {
	b, ok := catalog[key]
	return b, ok
}

// Evaluator decides which badges a set of stats qualifies for.
type Evaluator struct {
	pointsMaster int
	turningPoint int
	collector    int
	finisher     int
	editMaster   int
	quality      float64
}

// NewEvaluator creates an Evaluator with the default thresholds.
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		pointsMaster: defaultPointsMasterThreshold,
		turningPoint: defaultTurningPointThreshold,
		collector:    defaultCollectorItems,
		finisher:     defaultFinisherItems,
		editMaster:   defaultEditMasterEdits,
		quality:      defaultQualityRating,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the keys of every badge the stats qualify for, in the
// fixed catalog order. The result says nothing about prior unlocks; pass it
// to Unlocks.Apply to make progress monotonic.
func (e *Evaluator) Evaluate(s Stats) []string {
	var keys []string

	if s.TotalItems >= 1 {
		keys = append(keys, KeyFirstItem)
	}
	if s.TotalItems >= e.collector {
		keys = append(keys, KeyCollector)
	}
	if s.TotalPoints >= e.pointsMaster {
		keys = append(keys, KeyPointsMaster)
	}
	if s.TotalPoints >= e.turningPoint {
		keys = append(keys, KeyTurningPoint)
	}
	if s.CompletedItems >= e.finisher {
		keys = append(keys, KeyFinisher)
	}
	if s.AverageRating >= e.quality {
		keys = append(keys, KeyQualityPremium)
	}
	if s.EditCount >= e.editMaster {
		keys = append(keys, KeyEditMaster)
	}

	return keys
}
