package impact

import "fmt"

// Explain derives a human-readable rationale for each actor's role from the
// role record and the actor's aggregate stats.
func Explain(roles map[string]RoleRecord, stats map[string]ActorStats) map[string]Explanation {
	out := make(map[string]Explanation, len(roles))
	for actor, rec := range roles {
		s := stats[actor]
		out[actor] = Explanation{
			Role:          rec.Role,
			AverageImpact: rec.AvgImpact,
			TotalEvents:   rec.Events,
			Explanation:   explainRole(rec, s),
		}
	}
	return out
}

func explainRole(rec RoleRecord, stats ActorStats) string {
	switch rec.Role {
	case RoleNoisyContributor:
		return fmt.Sprintf(
			"High activity (%d events) but consistently low impact (average impact score %.2f). "+
				"Contributions were largely minor and did not significantly affect outcomes.",
			rec.Events, rec.AvgImpact)
	case RoleFirefighter:
		return fmt.Sprintf(
			"Handled multiple high-impact situations (%d critical events), often addressing urgent "+
				"or breaking issues. Average impact score of %.2f reflects reactive but valuable contributions.",
			stats.HighImpactEvents, rec.AvgImpact)
	case RoleSilentArchitect:
		return fmt.Sprintf(
			"Delivered high-impact contributions with low visible activity. Despite only %d events, "+
				"work had strong influence (average impact %.2f).",
			rec.Events, rec.AvgImpact)
	case RoleImpactDriver:
		return fmt.Sprintf(
			"Consistently delivered high-impact work across %d events. Average impact score of %.2f "+
				"indicates sustained execution on important tasks.",
			rec.Events, rec.AvgImpact)
	case RoleMentor:
		return fmt.Sprintf(
			"Provided significant guidance through reviews (%d review events), helping others improve "+
				"while maintaining solid impact (average impact %.2f).",
			stats.ReviewEvents, rec.AvgImpact)
	default:
		return fmt.Sprintf(
			"Steady contributor with balanced participation (%d events). Average impact score of %.2f "+
				"reflects reliable execution.",
			rec.Events, rec.AvgImpact)
	}
}
