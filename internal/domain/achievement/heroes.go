package achievement

import "github.com/okian/questlog/internal/domain/model"

// HeroRule is a hero milestone and its qualification predicate.
type HeroRule struct {
	Key         string
	Name        string
	Description string
	Icon        string
	Qualifies   func(model.Hero) bool
}

// HeroLadder returns the hero milestone rules in award order. Level rungs
// come before point rungs so the grant history reads as a progression.
func HeroLadder() []HeroRule {
	return []HeroRule{
		{
			Key:         "first-step",
			Name:        "First Step",
			Description: "Begin your training at the academy",
			Icon:        "🎯",
			Qualifies:   func(h model.Hero) bool { return h.Level >= 1 },
		},
		{
			Key:         "dedicated-apprentice",
			Name:        "Dedicated Apprentice",
			Description: "Reach level 3",
			Icon:        "📚",
			Qualifies:   func(h model.Hero) bool { return h.Level >= 3 },
		},
		{
			Key:         "seasoned-warrior",
			Name:        "Seasoned Warrior",
			Description: "Reach level 5",
			Icon:        "⚔️",
			Qualifies:   func(h model.Hero) bool { return h.Level >= 5 },
		},
		{
			Key:         "war-veteran",
			Name:        "War Veteran",
			Description: "Reach level 10",
			Icon:        "🛡️",
			Qualifies:   func(h model.Hero) bool { return h.Level >= 10 },
		},
		{
			Key:         "treasure-collector",
			Name:        "Treasure Collector",
			Description: "Gather 100 points",
			Icon:        "💎",
			Qualifies:   func(h model.Hero) bool { return h.Points >= 100 },
		},
		{
			Key:         "points-sovereign",
			Name:        "Points Sovereign",
			Description: "Gather 500 points",
			Icon:        "👑",
			Qualifies:   func(h model.Hero) bool { return h.Points >= 500 },
		},
		{
			Key:         "living-legend",
			Name:        "Living Legend",
			Description: "Gather 1000 points",
			Icon:        "🌟",
			Qualifies:   func(h model.Hero) bool { return h.Points >= 1000 },
		},
	}
}

// QualifyingHeroRules returns every ladder rule the hero currently satisfies.
func QualifyingHeroRules(h model.Hero) []HeroRule {
	var out []HeroRule
	for _, rule := range HeroLadder() {
		if rule.Qualifies(h) {
			out = append(out, rule)
		}
	}
	return out
}
