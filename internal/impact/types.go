// Package impact implements the event intelligence pipeline: raw activity
// payloads are normalized into a canonical event stream, annotated with
// semantic and structural signals, scored along five independent axes, and
// rolled up into per-actor behavioral roles.
package impact

// EventType identifies the source kind of a normalized event.
type EventType string

const (
	EventCommit     EventType = "commit"
	EventIssue      EventType = "issue"
	EventPR         EventType = "pr"
	EventReview     EventType = "review"
	EventTranscript EventType = "transcript"
)

// UnknownActor is the sentinel assigned when a source record carries no
// resolvable author.
const UnknownActor = "unknown"

// Related holds optional back-references to the commit/PR/issue a record
// belongs to. They are informational only and never dereferenced by scoring.
type Related struct {
	Commit *int `json:"commit"`
	PR     *int `json:"pr"`
	Issue  *int `json:"issue"`
}

// Metadata carries the event-type-specific fields. Which fields are
// meaningful is a function of the event type: additions/deletions/files for
// commits, labels/state/comments for issues, merged/state for PRs and
// review_state for reviews.
type Metadata struct {
	Additions    int      `json:"additions,omitempty"`
	Deletions    int      `json:"deletions,omitempty"`
	FilesChanged int      `json:"files_changed,omitempty"`
	Labels       []string `json:"labels,omitempty"`
	State        string   `json:"state,omitempty"`
	Comments     int      `json:"comments,omitempty"`
	Merged       bool     `json:"merged,omitempty"`
	ReviewState  string   `json:"review_state,omitempty"`
}

// Event is the canonical unit flowing through the pipeline. Annotations are
// attached stage by stage: Semantic by the classifier, Structural by the
// annotator, Metrics by the metric engine. Each stage returns a new slice;
// events are never mutated after a stage hands them off.
type Event struct {
	EventID    string      `json:"event_id"`
	Actor      string      `json:"actor"`
	Type       EventType   `json:"event_type"`
	Text       string      `json:"text"`
	Timestamp  string      `json:"timestamp"` // opaque ISO-8601 string, never parsed
	Related    Related     `json:"related"`
	Metadata   Metadata    `json:"metadata"`
	Semantic   *Semantic   `json:"semantic,omitempty"`
	Structural *Structural `json:"structural,omitempty"`
	Metrics    *Metrics    `json:"metrics,omitempty"`
}

// Intent is the coarse category of an event's textual purpose.
type Intent string

const (
	IntentBugfix   Intent = "bugfix"
	IntentFeature  Intent = "feature"
	IntentRefactor Intent = "refactor"
	IntentDocs     Intent = "docs"
	IntentOther    Intent = "other"
)

// Quality buckets an event's text richness.
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// Signal flags a non-exclusive behavioral hint found in event text.
type Signal string

const (
	SignalMentoring    Signal = "mentoring"
	SignalArchitecture Signal = "architecture"
	SignalBlocking     Signal = "blocking"
	SignalNoise        Signal = "noise"
)

// Semantic is the classifier's annotation.
type Semantic struct {
	Intent     Intent   `json:"intent"`
	Signals    []Signal `json:"signals"`
	Quality    Quality  `json:"quality"`
	Confidence float64  `json:"confidence"`
}

// Structural is the structural annotator's output.
type Structural struct {
	Merged     bool   `json:"merged"`
	SizeScore  int    `json:"size_score"`
	Discussion int    `json:"discussion"`
	Timestamp  string `json:"timestamp"`
}

// Metrics holds the five axis scores and their sum.
type Metrics struct {
	Importance  int `json:"importance"`
	Complexity  int `json:"complexity"`
	Unblocking  int `json:"unblocking"`
	Invisible   int `json:"invisible"`
	Future      int `json:"future"`
	FinalImpact int `json:"final_impact"`
}

// Role is a behavioral archetype assigned to an actor.
type Role string

const (
	RoleMentor           Role = "Mentor"
	RoleSilentArchitect  Role = "Silent Architect"
	RoleImpactDriver     Role = "Impact Driver"
	RoleFirefighter      Role = "Firefighter"
	RoleNoisyContributor Role = "Noisy Contributor"
	RoleBuilder          Role = "Builder"
)

// ActorStats is the explicit accumulator for one actor's events.
type ActorStats struct {
	TotalImpact      int `json:"total_impact"`
	EventCount       int `json:"event_count"`
	ReviewEvents     int `json:"review_events"`
	InvisibleScore   int `json:"invisible_score"`
	HighImpactEvents int `json:"high_impact_events"`
	LowImpactEvents  int `json:"low_impact_events"`
}

// AvgImpact returns total impact over event count, defined as 0 when the
// actor has no events.
func (s ActorStats) AvgImpact() float64 {
	if s.EventCount == 0 {
		return 0
	}
	return float64(s.TotalImpact) / float64(s.EventCount)
}

// RoleRecord is the per-actor output of the role engine.
type RoleRecord struct {
	Role      Role    `json:"role"`
	AvgImpact float64 `json:"avg_impact"`
	Events    int     `json:"events"`
}

// Explanation is a human-readable rationale for an actor's assigned role.
type Explanation struct {
	Role          Role    `json:"role"`
	AverageImpact float64 `json:"average_impact"`
	TotalEvents   int     `json:"total_events"`
	Explanation   string  `json:"explanation"`
}
