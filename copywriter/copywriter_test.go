package copywriter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pevans/sociald/feeds"
)

// Test helper: an API server replying with the given message content
func serveChatCompletion(t *testing.T, content string) (*httptest.Server, *string) {
	t.Helper()
	var lastBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		lastBody = string(body)
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &lastBody
}

func testEntry() feeds.Entry {
	return feeds.Entry{
		Title:   "New Model Released",
		Link:    "https://example.com/article",
		Summary: "A new model was released today.",
		Source:  "Example Feed",
	}
}

// TestDraft_SplitsBothSections verifies the two-marker happy path
func TestDraft_SplitsBothSections(t *testing.T) {
	srv, _ := serveChatCompletion(t, "Twitter:\nShort tweet text\nLinkedIn:\nLonger LinkedIn copy here.")
	c := newClientWithURL("key", srv.Client(), srv.URL)

	got, err := c.Draft(context.Background(), testEntry())

	require.NoError(t, err)
	assert.Equal(t, "Short tweet text", got.Twitter)
	assert.Equal(t, "Longer LinkedIn copy here.", got.LinkedIn)
}

// TestDraft_MissingMarkerFallsBackToLinkedIn verifies the fallback rule
func TestDraft_MissingMarkerFallsBackToLinkedIn(t *testing.T) {
	srv, _ := serveChatCompletion(t, "Just one flat blob of copy without sections.")
	c := newClientWithURL("key", srv.Client(), srv.URL)

	got, err := c.Draft(context.Background(), testEntry())

	require.NoError(t, err)
	assert.Empty(t, got.Twitter)
	assert.Equal(t, "Just one flat blob of copy without sections.", got.LinkedIn)
}

// TestDraft_RequestShape verifies auth header, model, and prompt contents
func TestDraft_RequestShape(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		var req chatRequest
		require.NoError(t, json.Unmarshal(body, &req))

		assert.Equal(t, "deepseek-chat", req.Model)
		assert.InDelta(t, 0.7, req.Temperature, 0.0001)
		assert.Equal(t, 700, req.MaxTokens)
		assert.False(t, req.Stream)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[1].Content, "Article Title: New Model Released")
		assert.Contains(t, req.Messages[1].Content, "URL: https://example.com/article")

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "Twitter:\nt\nLinkedIn:\nl"}}},
		})
	}))
	t.Cleanup(srv.Close)

	c := newClientWithURL("secret-key", srv.Client(), srv.URL)
	_, err := c.Draft(context.Background(), testEntry())

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-key", authHeader)
}

// TestDraft_HTMLStrippedFromPrompt verifies summary HTML does not reach the model
func TestDraft_HTMLStrippedFromPrompt(t *testing.T) {
	srv, lastBody := serveChatCompletion(t, "Twitter:\nt\nLinkedIn:\nl")
	c := newClientWithURL("key", srv.Client(), srv.URL)

	entry := testEntry()
	entry.Summary = "<p>A <b>bold</b> claim.</p>"
	_, err := c.Draft(context.Background(), entry)

	require.NoError(t, err)
	assert.Contains(t, *lastBody, "A bold claim.")
	assert.NotContains(t, *lastBody, "<p>")
}

// TestDraft_NonSuccessStatus verifies non-2xx responses are fatal
func TestDraft_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)
	c := newClientWithURL("key", srv.Client(), srv.URL)

	_, err := c.Draft(context.Background(), testEntry())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

// TestDraft_EmptyChoices verifies an empty choices array is an error
func TestDraft_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	t.Cleanup(srv.Close)
	c := newClientWithURL("key", srv.Client(), srv.URL)

	_, err := c.Draft(context.Background(), testEntry())

	assert.Error(t, err)
}

// TestDraft_ContextTimeout verifies a hung server surfaces a transport error
func TestDraft_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server detects the client disconnect and
		// cancels the request context; otherwise srv.Close deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)
	c := newClientWithURL("key", srv.Client(), srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Draft(ctx, testEntry())

	assert.Error(t, err)
}

// TestParseCopy_Truncation verifies the hard character caps
func TestParseCopy_Truncation(t *testing.T) {
	long := strings.Repeat("x", 2000)
	got := parseCopy("Twitter:\n" + long + "\nLinkedIn:\n" + long)

	assert.Len(t, []rune(got.Twitter), 280)
	assert.Len(t, []rune(got.LinkedIn), 1300)

	// Fallback path truncates too.
	got = parseCopy(long)
	assert.Empty(t, got.Twitter)
	assert.Len(t, []rune(got.LinkedIn), 1300)
}

// TestParseCopy_TrimsWhitespace verifies section text is trimmed
func TestParseCopy_TrimsWhitespace(t *testing.T) {
	got := parseCopy("Twitter:\n\n  tweet  \n\nLinkedIn:\n\n  post  \n")

	assert.Equal(t, "tweet", got.Twitter)
	assert.Equal(t, "post", got.LinkedIn)
}

// TestStripHTML verifies tag stripping and plain-text passthrough
func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain text", stripHTML("plain text"))
	assert.Equal(t, "A bold claim.", stripHTML("<p>A <b>bold</b> claim.</p>"))
	assert.Equal(t, "one two", stripHTML("<div>one</div>\n<div>two</div>"))
	assert.Equal(t, "", stripHTML("   "))
}
