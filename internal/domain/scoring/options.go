package scoring

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithLevelWeight sets the score contribution per hero level.
func WithLevelWeight(weight int) Option {
	return func(s *Scorer) {
		if weight > 0 {
			s.levelWeight = weight
		}
	}
}

// WithExperienceDivisor sets how much experience yields one score point.
func WithExperienceDivisor(divisor int) Option {
	return func(s *Scorer) {
		if divisor > 0 {
			s.experienceDivisor = divisor
		}
	}
}

// WithAchievementWeight sets the score contribution per earned achievement.
func WithAchievementWeight(weight int) Option {
	return func(s *Scorer) {
		if weight > 0 {
			s.achievementWeight = weight
		}
	}
}

// WithMissionWeight sets the score contribution per completed mission.
func WithMissionWeight(weight int) Option {
	return func(s *Scorer) {
		if weight > 0 {
			s.missionWeight = weight
		}
	}
}
