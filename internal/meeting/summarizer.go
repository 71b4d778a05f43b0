package meeting

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
)

// SpeakerInsight is the fixed shape a summarizer must return per speaker.
type SpeakerInsight struct {
	Summary         string   `json:"summary"`
	ImportantTopics []string `json:"important_topics"`
	BehaviorType    string   `json:"behavior_type"`
}

// MeetingInsight is the fixed shape a summarizer must return for the whole
// meeting.
type MeetingInsight struct {
	Summary string   `json:"summary"`
	Topics  []string `json:"topics"`
}

// Summarizer is the opaque text classifier collaborator. Implementations may
// call out to an LLM; the analyzer only depends on the output shape and
// falls back to default records when a call fails or returns garbage.
type Summarizer interface {
	SummarizeSpeaker(ctx context.Context, speech string) (SpeakerInsight, error)
	SummarizeMeeting(ctx context.Context, transcript string) (MeetingInsight, error)
}

// DefaultSpeakerInsight is the low-information record used when the
// summarizer fails. Raw carries whatever text the summarizer did produce,
// truncated.
func DefaultSpeakerInsight(raw string) SpeakerInsight {
	if len(raw) > 200 {
		raw = raw[:200]
	}
	return SpeakerInsight{
		Summary:         raw,
		ImportantTopics: []string{},
		BehaviorType:    "Observer",
	}
}

// ExtractJSONBlock pulls the first {...} block out of free-form summarizer
// output and unmarshals it into v. Useful for summarizers that wrap their
// JSON in prose.
func ExtractJSONBlock(text string, v any) bool {
	m := jsonBlockPattern.FindString(text)
	if m == "" {
		return false
	}
	return json.Unmarshal([]byte(m), v) == nil
}

var jsonBlockPattern = regexp.MustCompile(`(?s)\{.*\}`)

// HeuristicSummarizer is the shipped deterministic implementation: it builds
// a summary from the speech itself and guesses a behavior type from keyword
// counts. It exists so the pipeline runs end to end without an external
// model.
type HeuristicSummarizer struct{}

var behaviorKeywords = []struct {
	behavior string
	keywords []string
}{
	{"Firefighter", []string{"incident", "outage", "urgent", "hotfix", "broken"}},
	{"Mentor", []string{"suggest", "recommend", "consider", "could you", "let me show"}},
	{"Silent Architect", []string{"design", "architecture", "long term", "structure"}},
	{"Coordinator", []string{"schedule", "assign", "follow up", "sync", "plan"}},
	{"Builder", []string{"implement", "build", "ship", "feature", "working on"}},
}

// SummarizeSpeaker classifies a speaker from their concatenated speech.
func (HeuristicSummarizer) SummarizeSpeaker(_ context.Context, speech string) (SpeakerInsight, error) {
	lower := strings.ToLower(speech)

	behavior := "Observer"
	best := 0
	for _, bk := range behaviorKeywords {
		hits := 0
		for _, k := range bk.keywords {
			hits += strings.Count(lower, k)
		}
		if hits > best {
			best = hits
			behavior = bk.behavior
		}
	}

	summary := speech
	if len(summary) > 200 {
		summary = summary[:200]
	}

	var topics []string
	for _, bk := range behaviorKeywords {
		for _, k := range bk.keywords {
			if strings.Contains(lower, k) {
				topics = append(topics, k)
				break
			}
		}
	}
	if topics == nil {
		topics = []string{}
	}

	return SpeakerInsight{
		Summary:         summary,
		ImportantTopics: topics,
		BehaviorType:    behavior,
	}, nil
}

// SummarizeMeeting produces a whole-meeting summary from the transcript.
func (HeuristicSummarizer) SummarizeMeeting(_ context.Context, transcript string) (MeetingInsight, error) {
	summary := transcript
	if len(summary) > 300 {
		summary = summary[:300]
	}
	lower := strings.ToLower(transcript)
	var topics []string
	for _, bk := range behaviorKeywords {
		for _, k := range bk.keywords {
			if strings.Contains(lower, k) {
				topics = append(topics, k)
			}
		}
	}
	if topics == nil {
		topics = []string{}
	}
	return MeetingInsight{Summary: summary, Topics: topics}, nil
}
