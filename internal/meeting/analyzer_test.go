package meeting

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSummarizer struct{}

func (failingSummarizer) SummarizeSpeaker(context.Context, string) (SpeakerInsight, error) {
	return SpeakerInsight{}, errors.New("model unavailable")
}

func (failingSummarizer) SummarizeMeeting(context.Context, string) (MeetingInsight, error) {
	return MeetingInsight{}, errors.New("model unavailable")
}

type cannedSummarizer struct {
	insight SpeakerInsight
}

func (c cannedSummarizer) SummarizeSpeaker(context.Context, string) (SpeakerInsight, error) {
	return c.insight, nil
}

func (cannedSummarizer) SummarizeMeeting(context.Context, string) (MeetingInsight, error) {
	return MeetingInsight{Summary: "standup", Topics: []string{"planning"}}, nil
}

func TestAnalyzeSpeakerStats(t *testing.T) {
	lines := []Line{
		{Time: "00:01", Speaker: "alice", Text: "one two three four"},
		{Time: "00:02", Speaker: "bob", Text: "five six"},
		{Time: "00:03", Speaker: "alice", Text: "seven eight"},
	}

	a := NewAnalyzer(cannedSummarizer{insight: SpeakerInsight{
		Summary:      "spoke a lot",
		BehaviorType: "Builder",
	}})
	intel := a.Analyze(context.Background(), lines)

	require.Len(t, intel.MemberAnalysis, 2)

	alice := intel.MemberAnalysis[0]
	assert.Equal(t, "alice", alice.Name, "speakers keep first-seen order")
	assert.Equal(t, 2, alice.LinesSpoken)
	assert.Equal(t, 3, alice.TimeSpokenSecs, "6 words at half a second each")
	assert.Equal(t, "Builder", alice.BehaviorType)

	bob := intel.MemberAnalysis[1]
	assert.Equal(t, 1, bob.LinesSpoken)
	assert.Equal(t, 1, bob.TimeSpokenSecs)

	assert.Equal(t, "standup", intel.OverallSummary)
	assert.Equal(t, []string{"planning"}, intel.MeetingTopics)
	assert.False(t, intel.GeneratedAt.IsZero())
}

func TestAnalyzeSummarizerFailureFallsBack(t *testing.T) {
	lines := []Line{
		{Time: "00:01", Speaker: "alice", Text: "we should talk about the roadmap"},
	}

	intel := NewAnalyzer(failingSummarizer{}).Analyze(context.Background(), lines)

	require.Len(t, intel.MemberAnalysis, 1)
	assert.Equal(t, "Observer", intel.MemberAnalysis[0].BehaviorType)
	assert.Equal(t, []string{}, intel.MemberAnalysis[0].ImportantTopics)
	assert.Equal(t, "Meeting summary unavailable.", intel.OverallSummary)
}

func TestAnalyzeEmptyBehaviorFallsBack(t *testing.T) {
	lines := []Line{{Time: "00:01", Speaker: "alice", Text: "hello"}}

	// A summarizer that answers but omits the behavior is treated like a
	// failure.
	intel := NewAnalyzer(cannedSummarizer{insight: SpeakerInsight{Summary: "partial answer"}}).
		Analyze(context.Background(), lines)

	require.Len(t, intel.MemberAnalysis, 1)
	assert.Equal(t, "Observer", intel.MemberAnalysis[0].BehaviorType)
	assert.Equal(t, "partial answer", intel.MemberAnalysis[0].Summary, "partial output is kept, truncated")
}

func TestAnalyzeEmptyTranscript(t *testing.T) {
	intel := NewAnalyzer(HeuristicSummarizer{}).Analyze(context.Background(), nil)
	assert.Empty(t, intel.MemberAnalysis)
	assert.Empty(t, intel.DominantSpeakers)
	assert.Empty(t, intel.SilentSpeakers)
}

func TestInvolvementScore(t *testing.T) {
	tests := []struct {
		name       string
		words      int
		totalLines int
		want       int
	}{
		{"zero lines", 10, 0, 0},
		{"proportional", 5, 10, 60},
		{"capped at 100", 50, 10, 100},
		{"silent speaker", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, involvementScore(tt.words, tt.totalLines))
		})
	}
}

func TestRankSpeakers(t *testing.T) {
	members := []MemberAnalysis{
		{Name: "a", TimeSpokenSecs: 10},
		{Name: "b", TimeSpokenSecs: 50},
		{Name: "c", TimeSpokenSecs: 5},
		{Name: "d", TimeSpokenSecs: 30},
	}

	dominant, silent := rankSpeakers(members)
	assert.Equal(t, []string{"d", "b"}, dominant[1:], "loudest speakers close the dominant list")
	assert.Equal(t, []string{"c", "a", "d"}, silent)
	assert.Len(t, dominant, 3)
}

func TestRankSpeakersFewerThanThree(t *testing.T) {
	members := []MemberAnalysis{
		{Name: "solo", TimeSpokenSecs: 10},
	}

	dominant, silent := rankSpeakers(members)
	assert.Equal(t, []string{"solo"}, dominant)
	assert.Equal(t, []string{"solo"}, silent)
}

func TestHeuristicSummarizer(t *testing.T) {
	s := HeuristicSummarizer{}

	insight, err := s.SummarizeSpeaker(context.Background(),
		"We had an outage last night, the hotfix is urgent and the incident channel is still open")
	require.NoError(t, err)
	assert.Equal(t, "Firefighter", insight.BehaviorType)
	assert.Contains(t, insight.ImportantTopics, "incident")

	long, err := s.SummarizeSpeaker(context.Background(), strings.Repeat("x", 500))
	require.NoError(t, err)
	assert.Len(t, long.Summary, 200)
	assert.Equal(t, "Observer", long.BehaviorType)
	assert.Equal(t, []string{}, long.ImportantTopics)
}

func TestExtractJSONBlock(t *testing.T) {
	var insight SpeakerInsight

	ok := ExtractJSONBlock(`Here you go: {"summary": "s", "behavior_type": "Mentor"} hope that helps`, &insight)
	require.True(t, ok)
	assert.Equal(t, "Mentor", insight.BehaviorType)

	assert.False(t, ExtractJSONBlock("no json here", &insight))
	assert.False(t, ExtractJSONBlock("{broken", &insight))
}
