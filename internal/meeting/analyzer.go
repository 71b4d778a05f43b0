package meeting

import (
	"context"
	"sort"
	"strings"
	"time"
)

// MemberAnalysis is the per-speaker output.
type MemberAnalysis struct {
	Name             string   `json:"name"`
	TimeSpokenSecs   int      `json:"time_spoken_seconds"`
	LinesSpoken      int      `json:"lines_spoken"`
	ImportantTopics  []string `json:"important_topics"`
	Summary          string   `json:"summary"`
	BehaviorType     string   `json:"behavior_type"`
	InvolvementScore int      `json:"involvement_score"`
}

// Intelligence is the analyzer's full output for one meeting.
type Intelligence struct {
	OverallSummary   string           `json:"overall_meeting_summary"`
	MeetingTopics    []string         `json:"meeting_topics"`
	MemberAnalysis   []MemberAnalysis `json:"member_analysis"`
	DominantSpeakers []string         `json:"dominant_speakers"`
	SilentSpeakers   []string         `json:"silent_speakers"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

// secondsPerWord estimates speaking time from word count.
const secondsPerWord = 0.5

// Analyzer computes speaker stats and merges in summarizer insights.
type Analyzer struct {
	summarizer Summarizer
}

// NewAnalyzer builds an analyzer on top of the given summarizer.
func NewAnalyzer(s Summarizer) *Analyzer {
	return &Analyzer{summarizer: s}
}

type speakerStats struct {
	name     string
	lines    int
	words    int
	fullText strings.Builder
}

// Analyze processes parsed transcript lines into per-speaker intelligence.
// Summarizer failures degrade to default low-information records; the
// analysis itself never fails.
func (a *Analyzer) Analyze(ctx context.Context, lines []Line) Intelligence {
	stats := make(map[string]*speakerStats)
	order := make([]string, 0)
	totalLines := len(lines)

	var transcript strings.Builder
	for _, l := range lines {
		s, ok := stats[l.Speaker]
		if !ok {
			s = &speakerStats{name: l.Speaker}
			stats[l.Speaker] = s
			order = append(order, l.Speaker)
		}
		s.lines++
		s.words += len(strings.Fields(l.Text))
		if s.fullText.Len() > 0 {
			s.fullText.WriteByte(' ')
		}
		s.fullText.WriteString(l.Text)
		transcript.WriteString(l.Text)
		transcript.WriteByte('\n')
	}

	members := make([]MemberAnalysis, 0, len(order))
	for _, name := range order {
		s := stats[name]

		insight, err := a.summarizer.SummarizeSpeaker(ctx, s.fullText.String())
		if err != nil || insight.BehaviorType == "" {
			insight = DefaultSpeakerInsight(insight.Summary)
		}

		members = append(members, MemberAnalysis{
			Name:             name,
			TimeSpokenSecs:   int(float64(s.words) * secondsPerWord),
			LinesSpoken:      s.lines,
			ImportantTopics:  insight.ImportantTopics,
			Summary:          insight.Summary,
			BehaviorType:     insight.BehaviorType,
			InvolvementScore: involvementScore(s.words, totalLines),
		})
	}

	overall, err := a.summarizer.SummarizeMeeting(ctx, transcript.String())
	if err != nil || overall.Summary == "" {
		overall = MeetingInsight{
			Summary: "Meeting summary unavailable.",
			Topics:  []string{},
		}
	}

	dominant, silent := rankSpeakers(members)

	return Intelligence{
		OverallSummary:   overall.Summary,
		MeetingTopics:    overall.Topics,
		MemberAnalysis:   members,
		DominantSpeakers: dominant,
		SilentSpeakers:   silent,
		GeneratedAt:      time.Now(),
	}
}

// involvementScore scales a speaker's word share of the meeting, capped at
// 100.
func involvementScore(words, totalLines int) int {
	if totalLines == 0 {
		return 0
	}
	score := int(float64(words) / float64(totalLines) * 120)
	if score > 100 {
		return 100
	}
	return score
}

// rankSpeakers returns the top and bottom three speakers by speaking time.
func rankSpeakers(members []MemberAnalysis) (dominant, silent []string) {
	ranked := make([]MemberAnalysis, len(members))
	copy(ranked, members)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TimeSpokenSecs < ranked[j].TimeSpokenSecs
	})

	n := len(ranked)
	take := 3
	if take > n {
		take = n
	}
	for i := 0; i < take; i++ {
		silent = append(silent, ranked[i].Name)
	}
	for i := n - take; i < n; i++ {
		dominant = append(dominant, ranked[i].Name)
	}
	return dominant, silent
}
