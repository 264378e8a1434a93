// Package moderation decides whether uploaded content is acceptable.
// Scanning is a pure function of the content and the configured banned-word
// list, so re-running it for a redelivered job yields the same verdict.
package moderation

import "strings"

const reasonPrefix = "Contains banned words: "

// Verdict is the outcome of a completed scan. It is distinct from a scan
// that could not complete; the scanner itself never fails.
type Verdict struct {
	// Matches holds the banned words found in the content, in the order
	// they appear in the configured list.
	Matches []string
}

func (v Verdict) Rejected() bool {
	return len(v.Matches) > 0
}

// Reason renders the rejection reason stored on the record. Empty for an
// approved verdict.
func (v Verdict) Reason() string {
	if !v.Rejected() {
		return ""
	}
	return reasonPrefix + strings.Join(v.Matches, ", ")
}

type Scanner struct {
	banned  []string
	lowered []string
}

func NewScanner(bannedWords []string) *Scanner {
	lowered := make([]string, len(bannedWords))
	for i, w := range bannedWords {
		lowered[i] = strings.ToLower(w)
	}
	return &Scanner{banned: bannedWords, lowered: lowered}
}

// Scan decodes content as UTF-8 text best-effort and collects every banned
// word occurring as a case-insensitive substring. Binary content simply
// matches nothing; it is never rejected for being undecodable.
func (s *Scanner) Scan(content []byte) Verdict {
	text := strings.ToLower(string(content))

	var matches []string
	for i, w := range s.lowered {
		if w == "" {
			continue
		}
		if strings.Contains(text, w) {
			matches = append(matches, s.banned[i])
		}
	}

	return Verdict{Matches: matches}
}
