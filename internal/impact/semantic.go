package impact

import "strings"

// SemanticConfig holds the keyword sets and text thresholds the classifier
// runs on. The defaults are the tuned production constants; they are plain
// heuristics, not load-bearing invariants.
type SemanticConfig struct {
	BugKeywords      []string `koanf:"bug_keywords"`
	FeatureKeywords  []string `koanf:"feature_keywords"`
	RefactorKeywords []string `koanf:"refactor_keywords"`
	DocKeywords      []string `koanf:"doc_keywords"`

	MentorKeywords   []string `koanf:"mentor_keywords"`
	ArchKeywords     []string `koanf:"arch_keywords"`
	BlockingKeywords []string `koanf:"blocking_keywords"`

	// NoiseMaxLen marks text shorter than this (trimmed) as noise.
	NoiseMaxLen int `koanf:"noise_max_len"`
	// HighQualityWords and MediumQualityWords are word-count thresholds
	// (exclusive) for the quality buckets.
	HighQualityWords   int     `koanf:"high_quality_words"`
	MediumQualityWords int     `koanf:"medium_quality_words"`
	HighConfidence     float64 `koanf:"high_confidence"`
	MediumConfidence   float64 `koanf:"medium_confidence"`
	LowConfidence      float64 `koanf:"low_confidence"`
}

// DefaultSemanticConfig returns the canonical classifier constants.
func DefaultSemanticConfig() SemanticConfig {
	return SemanticConfig{
		BugKeywords:      []string{"bug", "fix", "error", "break", "fail", "regression"},
		FeatureKeywords:  []string{"add", "introduce", "support", "enable", "feature"},
		RefactorKeywords: []string{"refactor", "cleanup", "remove", "simplify", "drop"},
		DocKeywords:      []string{"doc", "readme", "documentation", "typo"},

		MentorKeywords:   []string{"suggest", "consider", "recommend", "maybe", "could you"},
		ArchKeywords:     []string{"design", "architecture", "approach", "structure"},
		BlockingKeywords: []string{"block", "blocking", "depends", "unblock"},

		NoiseMaxLen:        10,
		HighQualityWords:   15,
		MediumQualityWords: 6,
		HighConfidence:     0.9,
		MediumConfidence:   0.6,
		LowConfidence:      0.3,
	}
}

// Classifier assigns intent, signals and a quality bucket to event text.
type Classifier struct {
	cfg SemanticConfig
	// intentRules is the ordered first-match-wins cascade. Bug keywords are
	// checked before feature keywords on purpose: a text matching both
	// classifies as a bugfix.
	intentRules []intentRule
}

type intentRule struct {
	keywords []string
	intent   Intent
}

// NewClassifier builds a classifier from cfg.
func NewClassifier(cfg SemanticConfig) *Classifier {
	return &Classifier{
		cfg: cfg,
		intentRules: []intentRule{
			{cfg.BugKeywords, IntentBugfix},
			{cfg.FeatureKeywords, IntentFeature},
			{cfg.RefactorKeywords, IntentRefactor},
			{cfg.DocKeywords, IntentDocs},
		},
	}
}

// Annotate returns a new slice with every event carrying a semantic
// annotation. Input events are not modified.
func (c *Classifier) Annotate(events []Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		sem := c.classify(e.Text)
		e.Semantic = &sem
		out[i] = e
	}
	return out
}

func (c *Classifier) classify(text string) Semantic {
	quality, confidence := c.quality(text)
	return Semantic{
		Intent:     c.intent(text),
		Signals:    c.signals(text),
		Quality:    quality,
		Confidence: confidence,
	}
}

func (c *Classifier) intent(text string) Intent {
	t := strings.ToLower(text)
	for _, rule := range c.intentRules {
		if containsAny(t, rule.keywords) {
			return rule.intent
		}
	}
	return IntentOther
}

func (c *Classifier) signals(text string) []Signal {
	t := strings.ToLower(text)
	var signals []Signal
	if containsAny(t, c.cfg.MentorKeywords) {
		signals = append(signals, SignalMentoring)
	}
	if containsAny(t, c.cfg.ArchKeywords) {
		signals = append(signals, SignalArchitecture)
	}
	if containsAny(t, c.cfg.BlockingKeywords) {
		signals = append(signals, SignalBlocking)
	}
	if len(strings.TrimSpace(text)) < c.cfg.NoiseMaxLen {
		signals = append(signals, SignalNoise)
	}
	return signals
}

func (c *Classifier) quality(text string) (Quality, float64) {
	words := len(strings.Fields(text))
	switch {
	case words > c.cfg.HighQualityWords:
		return QualityHigh, c.cfg.HighConfidence
	case words > c.cfg.MediumQualityWords:
		return QualityMedium, c.cfg.MediumConfidence
	default:
		return QualityLow, c.cfg.LowConfidence
	}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
