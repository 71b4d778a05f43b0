package impact

import (
	"fmt"
	"math"
)

// roleRule pairs a predicate with the role it assigns. Rules are evaluated
// in slice order, first match wins, which makes the priority order explicit
// and testable.
type roleRule struct {
	role  Role
	match func(stats ActorStats) bool
}

// RoleEngine aggregates metric-annotated events per actor and classifies each
// actor through a fixed-order rule cascade.
type RoleEngine struct {
	cfg     ScoringConfig
	cascade []roleRule
}

// NewRoleEngine builds a role engine from cfg.
func NewRoleEngine(cfg ScoringConfig) *RoleEngine {
	return &RoleEngine{
		cfg: cfg,
		cascade: []roleRule{
			{RoleMentor, func(s ActorStats) bool {
				return s.ReviewEvents >= 5 && s.InvisibleScore >= 8
			}},
			{RoleSilentArchitect, func(s ActorStats) bool {
				return s.AvgImpact() >= 6 && s.EventCount <= 10
			}},
			{RoleImpactDriver, func(s ActorStats) bool {
				return s.AvgImpact() >= 6 && s.EventCount > 10
			}},
			{RoleFirefighter, func(s ActorStats) bool {
				return s.HighImpactEvents >= 3
			}},
			{RoleNoisyContributor, func(s ActorStats) bool {
				return s.AvgImpact() <= 2 && s.EventCount >= 10
			}},
			{RoleBuilder, func(ActorStats) bool { return true }},
		},
	}
}

// Aggregate folds all events into per-actor accumulators. Events must carry
// metrics; anything else is a stage-contract violation.
func (r *RoleEngine) Aggregate(events []Event) map[string]ActorStats {
	actors := make(map[string]ActorStats)
	for _, e := range events {
		if e.Metrics == nil {
			panic(fmt.Sprintf("impact: event %s reached role engine without metrics", e.EventID))
		}
		stats := actors[e.Actor]
		stats.TotalImpact += e.Metrics.FinalImpact
		stats.EventCount++
		if e.Type == EventReview {
			stats.ReviewEvents++
			stats.InvisibleScore += e.Metrics.Invisible
		}
		if e.Metrics.FinalImpact >= r.cfg.HighImpact {
			stats.HighImpactEvents++
		}
		if e.Metrics.FinalImpact <= r.cfg.LowImpact {
			stats.LowImpactEvents++
		}
		actors[e.Actor] = stats
	}
	return actors
}

// Classify runs the cascade over one actor's stats.
func (r *RoleEngine) Classify(stats ActorStats) Role {
	for _, rule := range r.cascade {
		if rule.match(stats) {
			return rule.role
		}
	}
	return RoleBuilder
}

// Roles aggregates and classifies in one pass, producing the per-actor role
// records consumed by the fusion engine.
func (r *RoleEngine) Roles(events []Event) map[string]RoleRecord {
	records := make(map[string]RoleRecord)
	for actor, stats := range r.Aggregate(events) {
		records[actor] = RoleRecord{
			Role:      r.Classify(stats),
			AvgImpact: round2(stats.AvgImpact()),
			Events:    stats.EventCount,
		}
	}
	return records
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
