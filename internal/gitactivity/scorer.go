package gitactivity

import (
	"math"
	"sort"
)

// Behavior is the archetype assigned by the git behavior cascade.
type Behavior string

const (
	BehaviorSilentArchitect  Behavior = "Silent Architect"
	BehaviorFirefighter      Behavior = "Firefighter"
	BehaviorMentor           Behavior = "Mentor"
	BehaviorNoisyContributor Behavior = "Noisy Contributor"
	BehaviorCoordinator      Behavior = "Coordinator"
	BehaviorObserver         Behavior = "Observer"
)

// Axes holds the five per-actor axis scores and their weighted sum.
type Axes struct {
	WorkImportance      float64 `json:"work_importance"`
	PRInvolvement       float64 `json:"pr_involvement"`
	CommentQuality      float64 `json:"comment_quality"`
	Activity            float64 `json:"activity"`
	CollaborationHealth float64 `json:"collaboration_health"`
	GitScore            float64 `json:"git_score"`
}

// MemberScore is one actor's scored output.
type MemberScore struct {
	Name     string   `json:"name"`
	Scores   Axes     `json:"git_scores"`
	Behavior Behavior `json:"git_behavior"`
}

// Config carries the scorer's weights and cascade thresholds.
type Config struct {
	ImportanceWeight    float64 `koanf:"importance_weight"`
	InvolvementWeight   float64 `koanf:"involvement_weight"`
	QualityWeight       float64 `koanf:"quality_weight"`
	ActivityWeight      float64 `koanf:"activity_weight"`
	CollaborationWeight float64 `koanf:"collaboration_weight"`

	CoreFileWeight  int     `koanf:"core_file_weight"`
	ChangeDivisor   float64 `koanf:"change_divisor"`
	ChangeCap       float64 `koanf:"change_cap"`
	ApprovalPoints  int     `koanf:"approval_points"`
	ChangeReqPoints int     `koanf:"change_req_points"`
	UnmergedPenalty int     `koanf:"unmerged_penalty"`
}

// DefaultConfig returns the canonical scorer constants.
func DefaultConfig() Config {
	return Config{
		ImportanceWeight:    0.35,
		InvolvementWeight:   0.25,
		QualityWeight:       0.2,
		ActivityWeight:      0.1,
		CollaborationWeight: 0.1,

		CoreFileWeight:  3,
		ChangeDivisor:   40,
		ChangeCap:       10,
		ApprovalPoints:  20,
		ChangeReqPoints: 10,
		UnmergedPenalty: 20,
	}
}

// Scorer computes per-actor git activity scores.
type Scorer struct {
	cfg     Config
	cascade []behaviorRule
}

type behaviorRule struct {
	behavior Behavior
	match    func(a Axes) bool
}

// NewScorer builds a scorer from cfg.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{
		cfg: cfg,
		cascade: []behaviorRule{
			{BehaviorSilentArchitect, func(a Axes) bool {
				return a.WorkImportance > 70 && a.Activity < 50
			}},
			{BehaviorFirefighter, func(a Axes) bool {
				return a.WorkImportance > 60 && a.CollaborationHealth < 50
			}},
			{BehaviorMentor, func(a Axes) bool {
				return a.CommentQuality > 60 && a.CollaborationHealth > 60
			}},
			{BehaviorNoisyContributor, func(a Axes) bool {
				return a.Activity > 70 && a.WorkImportance < 50
			}},
			{BehaviorCoordinator, func(a Axes) bool {
				return a.PRInvolvement > 50 && a.CollaborationHealth > 60
			}},
			{BehaviorObserver, func(Axes) bool { return true }},
		},
	}
}

type actorData struct {
	commits []CommitRecord
	prs     []PullRequestRecord
	reviews []ReviewRecord
	blocked int
}

// Score computes axes, weighted score and behavior for every actor in the
// dataset, sorted descending by git score.
func (s *Scorer) Score(ds Dataset) []MemberScore {
	people := make(map[string]*actorData)
	get := func(name string) *actorData {
		a, ok := people[name]
		if !ok {
			a = &actorData{}
			people[name] = a
		}
		return a
	}

	for _, c := range ds.Commits {
		get(c.User).commits = append(get(c.User).commits, c)
	}
	for _, p := range ds.PullRequests {
		a := get(p.User)
		a.prs = append(a.prs, p)
		if !p.Merged {
			a.blocked++
		}
	}
	for _, r := range ds.Reviews {
		get(r.Reviewer).reviews = append(get(r.Reviewer).reviews, r)
	}

	maxCommits, maxPRs := 0, 0
	for _, a := range people {
		if len(a.commits) > maxCommits {
			maxCommits = len(a.commits)
		}
		if len(a.prs) > maxPRs {
			maxPRs = len(a.prs)
		}
	}

	members := make([]MemberScore, 0, len(people))
	for name, a := range people {
		axes := s.axes(a, maxCommits, maxPRs)
		members = append(members, MemberScore{
			Name:     name,
			Scores:   axes,
			Behavior: s.classify(axes),
		})
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Scores.GitScore > members[j].Scores.GitScore
	})
	return members
}

func (s *Scorer) axes(a *actorData, maxCommits, maxPRs int) Axes {
	importance := 0.0
	for _, c := range a.commits {
		importance += float64(c.CoreFiles * s.cfg.CoreFileWeight)
		importance += float64(c.FilesChanged)
		importance += math.Min(s.cfg.ChangeCap, float64(c.TotalChanges)/s.cfg.ChangeDivisor)
	}
	workImportance := math.Min(100, importance)

	// Ratios against the most active actor; defined as 0 when no one has
	// PRs or commits at all.
	prInvolvement := 0.0
	if maxPRs > 0 {
		prInvolvement = float64(len(a.prs)) / float64(maxPRs) * 100
	}
	activity := 0.0
	if maxCommits > 0 {
		activity = float64(len(a.commits)) / float64(maxCommits) * 100
	}

	approvals, changes := 0, 0
	for _, r := range a.reviews {
		switch r.State {
		case "APPROVED":
			approvals++
		case "CHANGES_REQUESTED":
			changes++
		}
	}
	commentQuality := math.Min(100, float64(approvals*s.cfg.ApprovalPoints+changes*s.cfg.ChangeReqPoints))

	collaborationHealth := math.Max(0, float64(100-a.blocked*s.cfg.UnmergedPenalty))

	gitScore := round1(
		workImportance*s.cfg.ImportanceWeight +
			prInvolvement*s.cfg.InvolvementWeight +
			commentQuality*s.cfg.QualityWeight +
			activity*s.cfg.ActivityWeight +
			collaborationHealth*s.cfg.CollaborationWeight)

	return Axes{
		WorkImportance:      round1(workImportance),
		PRInvolvement:       round1(prInvolvement),
		CommentQuality:      round1(commentQuality),
		Activity:            round1(activity),
		CollaborationHealth: round1(collaborationHealth),
		GitScore:            gitScore,
	}
}

func (s *Scorer) classify(a Axes) Behavior {
	for _, rule := range s.cascade {
		if rule.match(a) {
			return rule.behavior
		}
	}
	return BehaviorObserver
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
