package impact

import "fmt"

// ScoringConfig carries the metric engine's constants. Tier cutoffs and axis
// bonuses are heuristic; they are extracted here so they can be tuned without
// touching the scoring logic.
type ScoringConfig struct {
	// IntentScores maps intent to its importance axis score.
	IntentScores map[Intent]int `koanf:"intent_scores"`

	// Complexity size tiers (strictly greater-than) and their bonuses.
	SizeLargeThreshold  int `koanf:"size_large_threshold"`
	SizeMediumThreshold int `koanf:"size_medium_threshold"`
	SizeSmallThreshold  int `koanf:"size_small_threshold"`

	// Complexity discussion tiers (greater-or-equal).
	DiscussionHighThreshold int `koanf:"discussion_high_threshold"`
	DiscussionLowThreshold  int `koanf:"discussion_low_threshold"`

	// UnblockDiscussionCap caps the discussion contribution to the
	// unblocking axis of a merged PR.
	UnblockDiscussionCap int `koanf:"unblock_discussion_cap"`

	// HighImpact and LowImpact bucket the per-event final impact during
	// actor aggregation.
	HighImpact int `koanf:"high_impact"`
	LowImpact  int `koanf:"low_impact"`
}

// DefaultScoringConfig returns the canonical scoring constants.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		IntentScores: map[Intent]int{
			IntentBugfix:   5,
			IntentFeature:  4,
			IntentRefactor: 3,
			IntentDocs:     2,
			IntentOther:    1,
		},
		SizeLargeThreshold:      500,
		SizeMediumThreshold:     100,
		SizeSmallThreshold:      20,
		DiscussionHighThreshold: 5,
		DiscussionLowThreshold:  2,
		UnblockDiscussionCap:    3,
		HighImpact:              7,
		LowImpact:               2,
	}
}

// MetricEngine scores structurally annotated events along five axes.
type MetricEngine struct {
	cfg ScoringConfig
}

// NewMetricEngine builds an engine from cfg.
func NewMetricEngine(cfg ScoringConfig) *MetricEngine {
	return &MetricEngine{cfg: cfg}
}

// Score returns a new slice with every event carrying metrics. An event
// missing its semantic or structural annotation violates the stage contract
// and panics: defaulting silently here would corrupt every score downstream.
func (m *MetricEngine) Score(events []Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		if e.Semantic == nil || e.Structural == nil {
			panic(fmt.Sprintf("impact: event %s reached metric engine without annotations", e.EventID))
		}
		metrics := Metrics{
			Importance: m.importance(e),
			Complexity: m.complexity(e),
			Unblocking: m.unblocking(e),
			Invisible:  m.invisible(e),
			Future:     m.future(e),
		}
		metrics.FinalImpact = metrics.Importance + metrics.Complexity +
			metrics.Unblocking + metrics.Invisible + metrics.Future
		e.Metrics = &metrics
		out[i] = e
	}
	return out
}

func (m *MetricEngine) importance(e Event) int {
	if score, ok := m.cfg.IntentScores[e.Semantic.Intent]; ok {
		return score
	}
	return m.cfg.IntentScores[IntentOther]
}

func (m *MetricEngine) complexity(e Event) int {
	score := 0
	switch size := e.Structural.SizeScore; {
	case size > m.cfg.SizeLargeThreshold:
		score += 3
	case size > m.cfg.SizeMediumThreshold:
		score += 2
	case size > m.cfg.SizeSmallThreshold:
		score++
	}
	switch discussion := e.Structural.Discussion; {
	case discussion >= m.cfg.DiscussionHighThreshold:
		score += 2
	case discussion >= m.cfg.DiscussionLowThreshold:
		score++
	}
	return score
}

// unblocking treats a merged, discussed PR as a proxy for removing a blocker
// for others.
func (m *MetricEngine) unblocking(e Event) int {
	if e.Type != EventPR || !e.Structural.Merged {
		return 0
	}
	discussion := e.Structural.Discussion
	if discussion > m.cfg.UnblockDiscussionCap {
		discussion = m.cfg.UnblockDiscussionCap
	}
	return 2 + discussion
}

// invisible rewards review work independent of the other axes; reviews are
// inherently low-visibility.
func (m *MetricEngine) invisible(e Event) int {
	if e.Type != EventReview {
		return 0
	}
	if e.Semantic.Quality == QualityHigh {
		return 3
	}
	return 1
}

// future proxies work expected to reduce future defect and maintenance cost.
func (m *MetricEngine) future(e Event) int {
	if e.Semantic.Intent == IntentRefactor || e.Semantic.Intent == IntentBugfix {
		return 2
	}
	return 0
}
