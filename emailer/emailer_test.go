package emailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSplitRecipients verifies comma splitting, trimming, and empty handling
func TestSplitRecipients(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", "a@example.com", []string{"a@example.com"}},
		{"multiple with spaces", " a@example.com , b@example.com ", []string{"a@example.com", "b@example.com"}},
		{"trailing comma", "a@example.com,", []string{"a@example.com"}},
		{"empty", "", nil},
		{"only commas", ", ,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitRecipients(tt.in))
		})
	}
}

// TestBuildMessage verifies headers and body separation
func TestBuildMessage(t *testing.T) {
	msg := BuildMessage("bot@example.com", "a@example.com, b@example.com", "Daily Picks", "body text")

	assert.True(t, strings.HasPrefix(msg, "From: bot@example.com\r\n"))
	assert.Contains(t, msg, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, msg, "Subject: Daily Picks\r\n")
	assert.Contains(t, msg, `Content-Type: text/plain; charset="utf-8"`)
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nbody text"))
}

// TestSend_NoRecipients verifies sending with an empty list fails before any dial
func TestSend_NoRecipients(t *testing.T) {
	n := New("bot@example.com", "password")

	err := n.Send("subject", "body", " , ")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no recipients")
}
