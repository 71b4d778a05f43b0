// Package gitactivity scores tabular git records (commits, pull requests,
// reviews) per actor along five axes and classifies each actor's behavior.
// Unlike the event pipeline it reads no text semantics; everything is derived
// from counts and sizes.
package gitactivity

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
)

// CommitRecord is one row of the commits table.
type CommitRecord struct {
	User         string
	CoreFiles    int
	FilesChanged int
	TotalChanges int
}

// PullRequestRecord is one row of the pull_requests table.
type PullRequestRecord struct {
	User   string
	Merged bool
}

// ReviewRecord is one row of the reviews table.
type ReviewRecord struct {
	Reviewer string
	State    string
}

// Dataset bundles the three tabular inputs.
type Dataset struct {
	Commits      []CommitRecord
	PullRequests []PullRequestRecord
	Reviews      []ReviewRecord
}

// LoadDataset reads the three CSV files. A missing or unreadable file
// degrades to an empty table; the scorer handles empty datasets.
func LoadDataset(commitsPath, prsPath, reviewsPath string) Dataset {
	return Dataset{
		Commits:      loadCommits(commitsPath),
		PullRequests: loadPullRequests(prsPath),
		Reviews:      loadReviews(reviewsPath),
	}
}

func loadCommits(path string) []CommitRecord {
	rows := readCSV(path)
	out := make([]CommitRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, CommitRecord{
			User:         row["user"],
			CoreFiles:    atoi(row["core_files"]),
			FilesChanged: atoi(row["files_changed"]),
			TotalChanges: atoi(row["total_changes"]),
		})
	}
	return out
}

func loadPullRequests(path string) []PullRequestRecord {
	rows := readCSV(path)
	out := make([]PullRequestRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, PullRequestRecord{
			User:   row["user"],
			Merged: parseBool(row["merged"]),
		})
	}
	return out
}

func loadReviews(path string) []ReviewRecord {
	rows := readCSV(path)
	out := make([]ReviewRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ReviewRecord{
			Reviewer: row["reviewer"],
			State:    row["state"],
		})
	}
	return out
}

// readCSV returns header-keyed rows, or nil when the file is absent or
// malformed.
func readCSV(path string) []map[string]string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil
	}
	var rows []map[string]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// parseBool accepts the exporter's Python-style True/False alongside the
// usual forms.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
