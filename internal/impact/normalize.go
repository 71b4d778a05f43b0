package impact

import (
	"encoding/json"

	"github.com/google/uuid"
)

// RawSources bundles the decoded raw payloads the normalizer consumes. Any
// member may be nil: an absent or malformed source degrades to an empty
// sub-sequence, it never fails the run.
type RawSources struct {
	Commits    any
	Issues     any
	PRs        any
	Reviews    any
	Transcript any
}

// DecodeSource parses one raw JSON blob. Empty or malformed content yields
// nil, which downstream treats as an empty dataset.
func DecodeSource(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return doc
}

// Normalize flattens all sources into a single ordered event sequence. Every
// event gets a fresh id; reviews are flattened one event per review within
// the PR that carries them.
func Normalize(src RawSources) []Event {
	events := make([]Event, 0, 64)
	events = append(events, normalizeCommits(src.Commits)...)
	events = append(events, normalizeIssues(src.Issues)...)
	events = append(events, normalizePRs(src.PRs)...)
	events = append(events, normalizeReviews(src.Reviews)...)
	events = append(events, normalizeTranscript(src.Transcript)...)
	return events
}

func normalizeCommits(doc any) []Event {
	nodes := lookupSlice(doc, "data", "repository", "defaultBranchRef", "target", "history", "nodes")
	events := make([]Event, 0, len(nodes))
	for _, node := range nodes {
		events = append(events, Event{
			EventID:   uuid.New().String(),
			Actor:     lookupString(node, UnknownActor, "author", "user", "login"),
			Type:      EventCommit,
			Text:      lookupString(node, "", "messageHeadline"),
			Timestamp: lookupString(node, "", "committedDate"),
			Metadata: Metadata{
				Additions:    lookupInt(node, 0, "additions"),
				Deletions:    lookupInt(node, 0, "deletions"),
				FilesChanged: lookupInt(node, 0, "changedFiles"),
			},
		})
	}
	return events
}

func normalizeIssues(doc any) []Event {
	nodes := lookupSlice(doc, "data", "repository", "issues", "nodes")
	events := make([]Event, 0, len(nodes))
	for _, node := range nodes {
		state := "open"
		if lookupString(node, "", "closedAt") != "" {
			state = "closed"
		}
		var labels []string
		for _, l := range lookupSlice(node, "labels", "nodes") {
			if name := lookupString(l, "", "name"); name != "" {
				labels = append(labels, name)
			}
		}
		ev := Event{
			EventID:   uuid.New().String(),
			Actor:     lookupString(node, UnknownActor, "author", "login"),
			Type:      EventIssue,
			Text:      lookupString(node, "", "title"),
			Timestamp: lookupString(node, "", "createdAt"),
			Metadata: Metadata{
				Labels:   labels,
				State:    state,
				Comments: lookupInt(node, 0, "comments", "totalCount"),
			},
		}
		if n, ok := lookupNumber(node, "number"); ok {
			ev.Related.Issue = &n
		}
		events = append(events, ev)
	}
	return events
}

func normalizePRs(doc any) []Event {
	nodes := lookupSlice(doc, "data", "repository", "pullRequests", "nodes")
	events := make([]Event, 0, len(nodes))
	for _, node := range nodes {
		ev := Event{
			EventID:   uuid.New().String(),
			Actor:     lookupString(node, UnknownActor, "author", "login"),
			Type:      EventPR,
			Text:      lookupString(node, "", "title"),
			Timestamp: lookupString(node, "", "createdAt"),
			Metadata: Metadata{
				Merged: lookupString(node, "", "mergedAt") != "",
				State:  lookupString(node, "", "state"),
			},
		}
		if n, ok := lookupNumber(node, "number"); ok {
			ev.Related.PR = &n
		}
		events = append(events, ev)
	}
	return events
}

func normalizeReviews(doc any) []Event {
	prNodes := lookupSlice(doc, "data", "repository", "pullRequests", "nodes")
	var events []Event
	for _, pr := range prNodes {
		prNumber, hasNumber := lookupNumber(pr, "number")
		for _, r := range lookupSlice(pr, "reviews", "nodes") {
			ev := Event{
				EventID:   uuid.New().String(),
				Actor:     lookupString(r, UnknownActor, "author", "login"),
				Type:      EventReview,
				Text:      lookupString(r, "", "body"),
				Timestamp: lookupString(r, "", "submittedAt"),
				Metadata: Metadata{
					ReviewState: lookupString(r, "", "state"),
				},
			}
			if hasNumber {
				n := prNumber
				ev.Related.PR = &n
			}
			events = append(events, ev)
		}
	}
	return events
}

func normalizeTranscript(doc any) []Event {
	entries, ok := doc.([]any)
	if !ok {
		return nil
	}
	events := make([]Event, 0, len(entries))
	for _, entry := range entries {
		events = append(events, Event{
			EventID:   uuid.New().String(),
			Actor:     lookupString(entry, UnknownActor, "speaker"),
			Type:      EventTranscript,
			Text:      lookupString(entry, "", "text"),
			Timestamp: lookupString(entry, "", "time"),
		})
	}
	return events
}

// lookupNumber resolves a single key to an int and reports whether it was
// present and numeric.
func lookupNumber(doc any, key string) (int, bool) {
	res := lookup(doc, key)
	if res.State != LookupPresent {
		return 0, false
	}
	f, ok := res.Value.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}
