// Package scoring computes composite hero scores for overall standings.
//
// The composite score folds points, level, experience, achievements and
// completed missions into a single integer so heroes with different play
// styles can be compared on one axis.
package scoring

// Input bundles everything the score is computed from.
type Input struct {
	Points            int
	Level             int
	Experience        int
	Achievements      int
	CompletedMissions int
}

// Default weights.
const (
	defaultLevelWeight       = 10
	defaultExperienceDivisor = 50
	defaultAchievementWeight = 25
	defaultMissionWeight     = 15
)

// Scorer computes composite scores with configurable weights.
type Scorer struct {
	levelWeight       int
	experienceDivisor int
	achievementWeight int
	missionWeight     int
}

// New creates a Scorer with the default weights.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		levelWeight:       defaultLevelWeight,
		experienceDivisor: defaultExperienceDivisor,
		achievementWeight: defaultAchievementWeight,
		missionWeight:     defaultMissionWeight,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Score computes the composite score. Experience contributes its integer
// quotient, so partial progress toward the divisor is ignored.
func (s *Scorer) Score(in Input) int {
	return in.Points +
		in.Level*s.levelWeight +
		in.Experience/s.experienceDivisor +
		in.Achievements*s.achievementWeight +
		in.CompletedMissions*s.missionWeight
}
