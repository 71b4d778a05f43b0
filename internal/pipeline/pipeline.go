// Package pipeline wires the scoring stages into one batch run: normalize,
// classify, annotate, score, aggregate, then fuse with the git and meeting
// analyses, persist a new version and export the JSON artifacts.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hacknox/teamlens/internal/config"
	"github.com/hacknox/teamlens/internal/database"
	apperrors "github.com/hacknox/teamlens/internal/errors"
	"github.com/hacknox/teamlens/internal/fusion"
	"github.com/hacknox/teamlens/internal/gitactivity"
	"github.com/hacknox/teamlens/internal/impact"
	"github.com/hacknox/teamlens/internal/meeting"
	"github.com/hacknox/teamlens/internal/monitoring"
)

// Result summarizes one completed run.
type Result struct {
	Version         int             `json:"version"`
	Events          int             `json:"events"`
	Actors          int             `json:"actors"`
	Members         []fusion.Member `json:"members"`
	StartedAt       time.Time       `json:"started_at"`
	Duration        time.Duration   `json:"duration"`
	MeetingAnalyzed bool            `json:"meeting_analyzed"`
}

// Runner executes full pipeline passes. Runs are serialized: a second Run
// blocks until the first finishes.
type Runner struct {
	cfg     *config.Config
	repo    *database.Repository
	logger  *monitoring.Logger
	metrics *monitoring.Metrics

	classifier *impact.Classifier
	metricEng  *impact.MetricEngine
	roleEng    *impact.RoleEngine
	gitScorer  *gitactivity.Scorer
	fusionEng  *fusion.Engine
	analyzer   *meeting.Analyzer

	mu sync.Mutex
}

// NewRunner builds a runner from configuration and collaborators. A nil
// summarizer selects the shipped heuristic implementation.
func NewRunner(cfg *config.Config, repo *database.Repository, logger *monitoring.Logger,
	metrics *monitoring.Metrics, summarizer meeting.Summarizer) *Runner {
	if summarizer == nil {
		summarizer = meeting.HeuristicSummarizer{}
	}
	return &Runner{
		cfg:        cfg,
		repo:       repo,
		logger:     logger,
		metrics:    metrics,
		classifier: impact.NewClassifier(cfg.Semantic),
		metricEng:  impact.NewMetricEngine(cfg.Scoring),
		roleEng:    impact.NewRoleEngine(cfg.Scoring),
		gitScorer:  gitactivity.NewScorer(cfg.Git),
		fusionEng:  fusion.NewEngine(cfg.Fusion),
		analyzer:   meeting.NewAnalyzer(summarizer),
	}
}

// Run executes one full pipeline pass. A stage failure aborts the run before
// anything is persisted for that stage; there is no retry here.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	started := time.Now()
	r.metrics.RunStarted()

	result, err := r.run(ctx, started)
	if err != nil {
		r.metrics.RunFailed()
		r.logger.RunLogger(0, 0, time.Since(started), err)
		return nil, err
	}

	r.logger.RunLogger(result.Version, result.Actors, result.Duration, nil)
	return result, nil
}

func (r *Runner) run(ctx context.Context, started time.Time) (*Result, error) {
	// Stage 1-5: the event pipeline.
	events := r.timedStage("normalize", func() []impact.Event {
		return impact.Normalize(r.loadSources())
	})
	r.metrics.EventsNormalized(len(events))

	events = r.timedStage("semantic", func() []impact.Event {
		return r.classifier.Annotate(events)
	})
	events = r.timedStage("structural", func() []impact.Event {
		return impact.AnnotateStructural(events)
	})
	events = r.timedStage("metrics", func() []impact.Event {
		return r.metricEng.Score(events)
	})

	stageStart := time.Now()
	stats := r.roleEng.Aggregate(events)
	roles := r.roleEng.Roles(events)
	explanations := impact.Explain(roles, stats)
	r.metrics.ObserveStage("roles", time.Since(stageStart))
	r.logger.StageLogger("roles", len(roles), time.Since(stageStart))
	r.metrics.ActorsClassified(len(roles))

	// Git activity branch.
	stageStart = time.Now()
	dataset := gitactivity.LoadDataset(r.cfg.Sources.CommitsCSV, r.cfg.Sources.PRsCSV, r.cfg.Sources.ReviewsCSV)
	gitMembers := r.gitScorer.Score(dataset)
	r.metrics.ObserveStage("git", time.Since(stageStart))
	r.logger.StageLogger("git", len(gitMembers), time.Since(stageStart))

	// Meeting branch.
	stageStart = time.Now()
	intel, meetingAnalyzed := r.analyzeMeeting(ctx)
	r.metrics.ObserveStage("meeting", time.Since(stageStart))
	r.logger.StageLogger("meeting", len(intel.MemberAnalysis), time.Since(stageStart))

	// Fusion.
	stageStart = time.Now()
	members := r.fusionEng.Fuse(meetingInputs(intel), gitInputs(gitMembers))
	r.metrics.ObserveStage("fusion", time.Since(stageStart))
	r.logger.StageLogger("fusion", len(members), time.Since(stageStart))

	// Persist: artifacts first, then versioned DB batches.
	if err := r.writeArtifacts(roles, explanations, gitMembers, intel, members); err != nil {
		return nil, err
	}

	version, err := r.persist(intel, gitMembers, members)
	if err != nil {
		return nil, err
	}

	return &Result{
		Version:         version,
		Events:          len(events),
		Actors:          len(roles),
		Members:         members,
		StartedAt:       started,
		Duration:        time.Since(started),
		MeetingAnalyzed: meetingAnalyzed,
	}, nil
}

// timedStage runs a stage with duration logging and metrics.
func (r *Runner) timedStage(name string, fn func() []impact.Event) []impact.Event {
	start := time.Now()
	out := fn()
	r.metrics.ObserveStage(name, time.Since(start))
	r.logger.StageLogger(name, len(out), time.Since(start))
	return out
}

// loadSources reads the raw JSON inputs. A missing or malformed file
// degrades to a nil source; the normalizer emits nothing for it.
func (r *Runner) loadSources() impact.RawSources {
	read := func(path string) any {
		data, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warn("Source unavailable", "path", path, "error", err.Error())
			return nil
		}
		return impact.DecodeSource(data)
	}
	return impact.RawSources{
		Commits:    read(r.cfg.Sources.CommitsJSON),
		Issues:     read(r.cfg.Sources.IssuesJSON),
		PRs:        read(r.cfg.Sources.PRsJSON),
		Reviews:    read(r.cfg.Sources.ReviewsJSON),
		Transcript: read(r.cfg.Sources.TranscriptJSON),
	}
}

// analyzeMeeting parses the transcript and runs the analyzer. An absent
// transcript yields an empty intelligence record, not a failure.
func (r *Runner) analyzeMeeting(ctx context.Context) (meeting.Intelligence, bool) {
	raw, err := os.ReadFile(r.cfg.Sources.TranscriptText)
	if err != nil {
		r.logger.Warn("Transcript unavailable", "path", r.cfg.Sources.TranscriptText, "error", err.Error())
		return meeting.Intelligence{GeneratedAt: time.Now()}, false
	}
	lines := meeting.ParseTranscript(string(raw))
	return r.analyzer.Analyze(ctx, lines), true
}

func meetingInputs(intel meeting.Intelligence) []fusion.MeetingInput {
	out := make([]fusion.MeetingInput, 0, len(intel.MemberAnalysis))
	for _, m := range intel.MemberAnalysis {
		out = append(out, fusion.MeetingInput{
			Name:             m.Name,
			InvolvementScore: float64(m.InvolvementScore),
			BehaviorType:     m.BehaviorType,
		})
	}
	return out
}

func gitInputs(members []gitactivity.MemberScore) []fusion.GitInput {
	out := make([]fusion.GitInput, 0, len(members))
	for _, m := range members {
		out = append(out, fusion.GitInput{
			Name:     m.Name,
			GitScore: m.Scores.GitScore,
			Behavior: string(m.Behavior),
		})
	}
	return out
}

// writeArtifacts exports the JSON files downstream consumers read.
func (r *Runner) writeArtifacts(roles map[string]impact.RoleRecord,
	explanations map[string]impact.Explanation, gitMembers []gitactivity.MemberScore,
	intel meeting.Intelligence, members []fusion.Member) error {

	if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
		return apperrors.NewInternalError("failed to create output directory", err)
	}

	artifacts := map[string]any{
		"actor_roles.json":    roles,
		"explainability.json": explanations,
		"git_intelligence.json": map[string]any{
			"generated_at": time.Now(),
			"members":      gitMembers,
		},
		"meeting_intelligence.json": intel,
		"final_team_intelligence.json": map[string]any{
			"generated_at": time.Now(),
			"members":      members,
		},
	}
	for name, payload := range artifacts {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return apperrors.NewInternalError(fmt.Sprintf("failed to encode %s", name), err)
		}
		if err := os.WriteFile(filepath.Join(r.cfg.OutputDir, name), data, 0644); err != nil {
			return apperrors.NewInternalError(fmt.Sprintf("failed to write %s", name), err)
		}
	}
	return nil
}

// persist writes the three versioned batches. The final table's version is
// the one reported for the run.
func (r *Runner) persist(intel meeting.Intelligence, gitMembers []gitactivity.MemberScore,
	members []fusion.Member) (int, error) {

	if r.repo == nil {
		return 0, nil
	}

	meetingRows := make([]database.MeetingRow, 0, len(intel.MemberAnalysis))
	for _, m := range intel.MemberAnalysis {
		topics, _ := json.Marshal(m.ImportantTopics)
		meetingTopics, _ := json.Marshal(intel.MeetingTopics)
		meetingRows = append(meetingRows, database.MeetingRow{
			Name:             m.Name,
			InvolvementScore: m.InvolvementScore,
			TimeSpokenSecs:   m.TimeSpokenSecs,
			LinesSpoken:      m.LinesSpoken,
			BehaviorType:     m.BehaviorType,
			ImportantTopics:  string(topics),
			Summary:          m.Summary,
			OverallSummary:   intel.OverallSummary,
			MeetingTopics:    string(meetingTopics),
			GeneratedAt:      intel.GeneratedAt,
		})
	}
	if _, err := r.repo.InsertMeetingBatch(meetingRows); err != nil {
		return 0, apperrors.NewStorageError("insert meeting batch", err)
	}

	gitRows := make([]database.GitRow, 0, len(gitMembers))
	for _, m := range gitMembers {
		gitRows = append(gitRows, database.GitRow{
			Name:                m.Name,
			WorkImportance:      m.Scores.WorkImportance,
			PRInvolvement:       m.Scores.PRInvolvement,
			CommentQuality:      m.Scores.CommentQuality,
			Activity:            m.Scores.Activity,
			CollaborationHealth: m.Scores.CollaborationHealth,
			GitScore:            m.Scores.GitScore,
			GitBehavior:         string(m.Behavior),
		})
	}
	if _, err := r.repo.InsertGitBatch(gitRows); err != nil {
		return 0, apperrors.NewStorageError("insert git batch", err)
	}

	finalRows := make([]database.FinalRow, 0, len(members))
	for _, m := range members {
		finalRows = append(finalRows, database.FinalRow{
			Name:          m.Name,
			MergedScore:   m.MergedScore,
			FinalBehavior: m.FinalBehavior,
			GitScore:      m.GitScore,
			MeetingScore:  m.MeetingScore,
		})
	}
	version, err := r.repo.InsertFinalBatch(finalRows)
	if err != nil {
		return 0, apperrors.NewStorageError("insert final batch", err)
	}
	return version, nil
}
