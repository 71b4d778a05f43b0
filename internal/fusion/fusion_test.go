package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuseJoinsOnLowercasedName(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	members := engine.Fuse(
		[]MeetingInput{{Name: "Alice", InvolvementScore: 80, BehaviorType: "Mentor"}},
		[]GitInput{{Name: "alice", GitScore: 70, Behavior: "Mentor"}},
	)

	require.Len(t, members, 1, "differently cased names are the same person")
	m := members[0]
	assert.Equal(t, "alice", m.Name)
	assert.InDelta(t, 80.0, m.MeetingScore, 1e-9)
	assert.InDelta(t, 70.0, m.GitScore, 1e-9)
	// 0.4*80 + 0.6*70
	assert.InDelta(t, 74.0, m.MergedScore, 1e-9)
}

func TestFuseSingleSourceActors(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	members := engine.Fuse(
		[]MeetingInput{{Name: "talker", InvolvementScore: 90, BehaviorType: "Coordinator"}},
		[]GitInput{{Name: "coder", GitScore: 60, Behavior: "Builder"}},
	)

	require.Len(t, members, 2)
	byName := make(map[string]Member, 2)
	for _, m := range members {
		byName[m.Name] = m
	}

	talker := byName["talker"]
	assert.InDelta(t, 0.0, talker.GitScore, 1e-9, "absent side contributes zero, never drops the actor")
	assert.InDelta(t, 36.0, talker.MergedScore, 1e-9)

	coder := byName["coder"]
	assert.InDelta(t, 0.0, coder.MeetingScore, 1e-9)
	assert.InDelta(t, 36.0, coder.MergedScore, 1e-9)
}

func TestFuseCascade(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	tests := []struct {
		name     string
		meetings []MeetingInput
		gits     []GitInput
		want     string
	}{
		{
			name:     "architect gated on merged score",
			meetings: []MeetingInput{{Name: "a", InvolvementScore: 70, BehaviorType: "Silent Architect"}},
			gits:     []GitInput{{Name: "a", GitScore: 60, Behavior: "Observer"}},
			// merged 0.4*70 + 0.6*60 = 64 > 55
			want: "Silent Architect",
		},
		{
			name:     "architect role without the score falls through",
			meetings: []MeetingInput{{Name: "a", InvolvementScore: 20, BehaviorType: "Silent Architect"}},
			gits:     []GitInput{{Name: "a", GitScore: 40, Behavior: "Observer"}},
			// merged 32, git 40: no rule fires
			want: "Observer",
		},
		{
			name: "firefighter gated on the git score",
			gits: []GitInput{{Name: "f", GitScore: 55, Behavior: "Firefighter"}},
			want: "Firefighter",
		},
		{
			name:     "mentor role from git gated on the meeting score",
			meetings: []MeetingInput{{Name: "m", InvolvementScore: 30, BehaviorType: "Observer"}},
			gits:     []GitInput{{Name: "m", GitScore: 10, Behavior: "Mentor"}},
			want:     "Mentor",
		},
		{
			name: "mentor without meeting presence falls through",
			gits: []GitInput{{Name: "m", GitScore: 10, Behavior: "Mentor"}},
			want: "Observer",
		},
		{
			name:     "coordinator gated on merged score",
			meetings: []MeetingInput{{Name: "c", InvolvementScore: 80, BehaviorType: "Coordinator"}},
			gits:     []GitInput{{Name: "c", GitScore: 20, Behavior: "Observer"}},
			// merged 44 > 40
			want: "Coordinator",
		},
		{
			name:     "loud in meetings quiet in git is noisy",
			meetings: []MeetingInput{{Name: "n", InvolvementScore: 60, BehaviorType: "Observer"}},
			gits:     []GitInput{{Name: "n", GitScore: 20, Behavior: "Observer"}},
			want:     "Noisy Contributor",
		},
		{
			name:     "nothing fires means observer",
			meetings: []MeetingInput{{Name: "o", InvolvementScore: 10, BehaviorType: "Observer"}},
			gits:     []GitInput{{Name: "o", GitScore: 35, Behavior: "Observer"}},
			want:     "Observer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := engine.Fuse(tt.meetings, tt.gits)
			require.Len(t, members, 1)
			assert.Equal(t, tt.want, members[0].FinalBehavior)
		})
	}
}

func TestFuseCascadeOrder(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Qualifies as both architect and firefighter; the architect rule is
	// checked first.
	members := engine.Fuse(
		[]MeetingInput{{Name: "both", InvolvementScore: 80, BehaviorType: "Silent Architect"}},
		[]GitInput{{Name: "both", GitScore: 70, Behavior: "Firefighter"}},
	)

	require.Len(t, members, 1)
	assert.Equal(t, "Silent Architect", members[0].FinalBehavior)
}

func TestFuseSortedDescendingByMergedScore(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	members := engine.Fuse(
		[]MeetingInput{
			{Name: "low", InvolvementScore: 10},
			{Name: "high", InvolvementScore: 90},
			{Name: "mid", InvolvementScore: 50},
		},
		nil,
	)

	require.Len(t, members, 3)
	assert.Equal(t, "high", members[0].Name)
	assert.Equal(t, "mid", members[1].Name)
	assert.Equal(t, "low", members[2].Name)
}

func TestFuseEmptyInputs(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	assert.Empty(t, engine.Fuse(nil, nil))
}

func TestFuseMergedScoreRounding(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	members := engine.Fuse(
		[]MeetingInput{{Name: "r", InvolvementScore: 33.333}},
		[]GitInput{{Name: "r", GitScore: 66.666}},
	)

	require.Len(t, members, 1)
	// 0.4*33.333 + 0.6*66.666 = 53.3328 -> 53.33
	assert.InDelta(t, 53.33, members[0].MergedScore, 1e-9)
}
