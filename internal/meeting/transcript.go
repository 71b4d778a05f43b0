// Package meeting turns a raw meeting transcript into per-speaker
// involvement scores and behavior types. Speaker summarization is delegated
// to an opaque Summarizer; the package only requires its fixed output shape
// and tolerates it failing.
package meeting

import (
	"bufio"
	"regexp"
	"strings"
)

// Line is one utterance attributed to a speaker.
type Line struct {
	Time    string `json:"time"`
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Transcript lines look like: [12:34] username: sentence
var linePattern = regexp.MustCompile(`\[(\d+:\d+)\]\s*(.*?):\s*(.*)`)

// ParseTranscript extracts attributed lines from raw transcript text.
// Non-matching lines are skipped.
func ParseTranscript(raw string) []Line {
	var lines []Line
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		m := linePattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		lines = append(lines, Line{
			Time:    m[1],
			Speaker: strings.TrimSpace(m[2]),
			Text:    strings.TrimSpace(m[3]),
		})
	}
	return lines
}
