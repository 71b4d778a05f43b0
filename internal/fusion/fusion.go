// Package fusion merges the meeting-derived and git-derived per-actor
// datasets into one final role and score per person.
package fusion

import (
	"math"
	"sort"
	"strings"
)

// MeetingInput is one actor's record from the meeting analysis side.
type MeetingInput struct {
	Name             string
	InvolvementScore float64
	BehaviorType     string
}

// GitInput is one actor's record from the git analysis side.
type GitInput struct {
	Name     string
	GitScore float64
	Behavior string
}

// Member is the final fused record for one actor.
type Member struct {
	Name          string  `json:"name"`
	MergedScore   float64 `json:"merged_score"`
	FinalBehavior string  `json:"final_behavior"`
	GitScore      float64 `json:"git_score"`
	MeetingScore  float64 `json:"meeting_score"`
}

// Config carries the blend weights and cascade thresholds.
type Config struct {
	MeetingWeight float64 `koanf:"meeting_weight"`
	GitWeight     float64 `koanf:"git_weight"`

	ArchitectMergedMin   float64 `koanf:"architect_merged_min"`
	FirefighterGitMin    float64 `koanf:"firefighter_git_min"`
	MentorMeetingMin     float64 `koanf:"mentor_meeting_min"`
	CoordinatorMergedMin float64 `koanf:"coordinator_merged_min"`
	NoisyMeetingMin      float64 `koanf:"noisy_meeting_min"`
	NoisyGitMax          float64 `koanf:"noisy_git_max"`
}

// DefaultConfig returns the canonical fusion constants.
func DefaultConfig() Config {
	return Config{
		MeetingWeight:        0.4,
		GitWeight:            0.6,
		ArchitectMergedMin:   55,
		FirefighterGitMin:    50,
		MentorMeetingMin:     25,
		CoordinatorMergedMin: 40,
		NoisyMeetingMin:      50,
		NoisyGitMax:          30,
	}
}

// Engine fuses the two datasets.
type Engine struct {
	cfg     Config
	cascade []fusionRule
}

// candidate is one actor's joined inputs, as seen by the cascade.
type candidate struct {
	meetingScore float64
	gitScore     float64
	mergedScore  float64
	meetingRole  string
	gitRole      string
}

type fusionRule struct {
	role  string
	match func(c candidate) bool
}

// NewEngine builds a fusion engine from cfg. The cascade is ordered,
// first match wins. Note the cross-source gating: a role match from either
// source is deliberately gated on a score from the blend or the other
// source, not on the score of whichever source produced the role.
func NewEngine(cfg Config) *Engine {
	hasRole := func(c candidate, role string) bool {
		return c.meetingRole == role || c.gitRole == role
	}
	return &Engine{
		cfg: cfg,
		cascade: []fusionRule{
			{"Silent Architect", func(c candidate) bool {
				return hasRole(c, "Silent Architect") && c.mergedScore > cfg.ArchitectMergedMin
			}},
			{"Firefighter", func(c candidate) bool {
				return hasRole(c, "Firefighter") && c.gitScore > cfg.FirefighterGitMin
			}},
			{"Mentor", func(c candidate) bool {
				return hasRole(c, "Mentor") && c.meetingScore > cfg.MentorMeetingMin
			}},
			{"Coordinator", func(c candidate) bool {
				return hasRole(c, "Coordinator") && c.mergedScore > cfg.CoordinatorMergedMin
			}},
			{"Noisy Contributor", func(c candidate) bool {
				return c.meetingScore > cfg.NoisyMeetingMin && c.gitScore < cfg.NoisyGitMax
			}},
			{"Observer", func(candidate) bool { return true }},
		},
	}
}

// Fuse joins both datasets on lowercased name and classifies every actor
// present in either. Output is sorted descending by merged score; consumers
// rely on that ordering.
func (e *Engine) Fuse(meetings []MeetingInput, gits []GitInput) []Member {
	meetingByName := make(map[string]MeetingInput, len(meetings))
	for _, m := range meetings {
		meetingByName[strings.ToLower(m.Name)] = m
	}
	gitByName := make(map[string]GitInput, len(gits))
	for _, g := range gits {
		gitByName[strings.ToLower(g.Name)] = g
	}

	names := make([]string, 0, len(meetingByName)+len(gitByName))
	seen := make(map[string]bool)
	for name := range meetingByName {
		names = append(names, name)
		seen[name] = true
	}
	for name := range gitByName {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	members := make([]Member, 0, len(names))
	for _, name := range names {
		c := candidate{meetingRole: "Observer", gitRole: "Observer"}
		if m, ok := meetingByName[name]; ok {
			c.meetingScore = m.InvolvementScore
			if m.BehaviorType != "" {
				c.meetingRole = m.BehaviorType
			}
		}
		if g, ok := gitByName[name]; ok {
			c.gitScore = g.GitScore
			if g.Behavior != "" {
				c.gitRole = g.Behavior
			}
		}
		c.mergedScore = round2(c.meetingScore*e.cfg.MeetingWeight + c.gitScore*e.cfg.GitWeight)

		members = append(members, Member{
			Name:          name,
			MergedScore:   c.mergedScore,
			FinalBehavior: e.classify(c),
			GitScore:      c.gitScore,
			MeetingScore:  c.meetingScore,
		})
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].MergedScore > members[j].MergedScore
	})
	return members
}

func (e *Engine) classify(c candidate) string {
	for _, rule := range e.cascade {
		if rule.match(c) {
			return rule.role
		}
	}
	return "Observer"
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
