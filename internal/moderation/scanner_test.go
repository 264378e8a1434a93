package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScan(t *testing.T) {
	scanner := NewScanner([]string{"badword1", "badword2", "badword3"})

	tests := []struct {
		name        string
		content     string
		wantMatches []string
	}{
		{
			name:        "clean content",
			content:     "hello world, nothing to see here",
			wantMatches: nil,
		},
		{
			name:        "single match",
			content:     "hello badword1 world",
			wantMatches: []string{"badword1"},
		},
		{
			name:        "case insensitive",
			content:     "hello BADWORD1 and BadWord2",
			wantMatches: []string{"badword1", "badword2"},
		},
		{
			name:        "substring match inside a longer word",
			content:     "xxbadword1yy",
			wantMatches: []string{"badword1"},
		},
		{
			name:        "matches reported in configured order",
			content:     "badword3 first, then badword1",
			wantMatches: []string{"badword1", "badword3"},
		},
		{
			name:        "empty content",
			content:     "",
			wantMatches: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := scanner.Scan([]byte(tt.content))
			assert.Equal(t, tt.wantMatches, verdict.Matches)
			assert.Equal(t, len(tt.wantMatches) > 0, verdict.Rejected())
		})
	}
}

func TestScanBinaryContent(t *testing.T) {
	scanner := NewScanner([]string{"badword1"})

	// Non-text bytes simply fail to match; they are never rejected for
	// being undecodable.
	verdict := scanner.Scan([]byte{0x00, 0xff, 0xfe, 0x89, 0x50, 0x4e, 0x47})
	assert.False(t, verdict.Rejected())
	assert.Empty(t, verdict.Reason())
}

func TestScanIsDeterministic(t *testing.T) {
	scanner := NewScanner([]string{"badword1", "badword2"})
	content := []byte("badword2 and badword1 together")

	first := scanner.Scan(content)
	second := scanner.Scan(content)
	assert.Equal(t, first, second)
}

func TestVerdictReason(t *testing.T) {
	scanner := NewScanner([]string{"badword1", "badword2"})

	verdict := scanner.Scan([]byte("hello badword1 world"))
	assert.Equal(t, "Contains banned words: badword1", verdict.Reason())

	verdict = scanner.Scan([]byte("badword2 badword1"))
	assert.Equal(t, "Contains banned words: badword1, badword2", verdict.Reason())
}

func TestScanIgnoresEmptyBannedWord(t *testing.T) {
	scanner := NewScanner([]string{"", "badword1"})

	verdict := scanner.Scan([]byte("perfectly clean"))
	assert.False(t, verdict.Rejected())
}

func TestScanWithNoBannedWords(t *testing.T) {
	scanner := NewScanner(nil)

	verdict := scanner.Scan([]byte("anything at all"))
	assert.False(t, verdict.Rejected())
}
