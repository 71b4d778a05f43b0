package impact

// AnnotateStructural attaches structural signals to each event and returns a
// new slice. Merge status is meaningful only for PRs, size only for commits;
// everything else gets the zero value. Timestamps pass through untouched.
func AnnotateStructural(events []Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		st := Structural{
			Merged:     e.Type == EventPR && e.Metadata.Merged,
			Discussion: e.Metadata.Comments,
			Timestamp:  e.Timestamp,
		}
		if e.Type == EventCommit {
			st.SizeScore = e.Metadata.Additions + e.Metadata.Deletions
		}
		e.Structural = &st
		out[i] = e
	}
	return out
}
