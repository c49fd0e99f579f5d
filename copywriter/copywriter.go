// Package copywriter drafts platform-specific social copy for feed entries
// through the DeepSeek chat-completions API.
package copywriter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pevans/sociald/feeds"
)

const (
	baseURL = "https://api.deepseek.com/chat/completions"
	model   = "deepseek-chat"

	// twitterLimit and linkedinLimit are hard character caps applied to the
	// model output regardless of how well it followed instructions.
	twitterLimit  = 280
	linkedinLimit = 1300

	twitterMarker  = "Twitter:"
	linkedinMarker = "LinkedIn:"
)

const systemPrompt = "You are a concise social copywriter. " +
	"Produce two platform-specific outputs: " +
	"1) Twitter: ≤280 characters, punchy, 1 relevant hashtag max, include the article title if useful, no emojis. " +
	"2) LinkedIn: ≤1300 characters with a two-sentence hook at the top, then a short paragraph, end with 2-3 relevant hashtags. " +
	"Do not include markdown code fences. Keep it neutral and factual, no hype."

// Copy holds the generated short-form and long-form copy for one entry.
type Copy struct {
	Twitter  string
	LinkedIn string
}

// Client calls the DeepSeek API to draft copy.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New creates a Client. The caller owns the http.Client and its timeout.
func New(apiKey string, client *http.Client) *Client {
	return &Client{apiKey: apiKey, baseURL: baseURL, client: client}
}

// newClientWithURL creates a Client with a custom endpoint for testing.
func newClientWithURL(apiKey string, client *http.Client, url string) *Client {
	return &Client{apiKey: apiKey, baseURL: url, client: client}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Draft sends one entry to the model and parses the two-section reply.
func (c *Client) Draft(ctx context.Context, entry feeds.Entry) (Copy, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(entry)},
		},
		Temperature: 0.7,
		MaxTokens:   700,
		Stream:      false,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Copy{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return Copy{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Copy{}, fmt.Errorf("failed to call DeepSeek API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Copy{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Copy{}, fmt.Errorf("DeepSeek API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Copy{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return Copy{}, fmt.Errorf("empty response from DeepSeek API")
	}

	return parseCopy(parsed.Choices[0].Message.Content), nil
}

// userPrompt builds the user message for one entry. The summary is stripped
// of any HTML so the model sees readable text.
func userPrompt(entry feeds.Entry) string {
	return fmt.Sprintf(
		"Article Title: %s\n"+
			"URL: %s\n"+
			"Summary: %s\n\n"+
			"Return the outputs in this plain text format exactly:\n"+
			"Twitter:\n<one line tweet text (<=280 chars)>\n"+
			"LinkedIn:\n<up to ~1300 chars with a two-sentence hook>\n",
		strings.TrimSpace(entry.Title),
		strings.TrimSpace(entry.Link),
		stripHTML(entry.Summary),
	)
}

// parseCopy splits the model reply on the two literal section markers. When
// either marker is missing the whole reply is treated as LinkedIn copy and
// the Twitter field is left empty. Both fields are hard-truncated.
func parseCopy(content string) Copy {
	var tw, li string
	if strings.Contains(content, twitterMarker) && strings.Contains(content, linkedinMarker) {
		_, after, _ := strings.Cut(content, twitterMarker)
		twPart, liPart, _ := strings.Cut(after, linkedinMarker)
		tw = strings.TrimSpace(twPart)
		li = strings.TrimSpace(liPart)
	} else {
		li = strings.TrimSpace(content)
	}

	return Copy{
		Twitter:  truncate(tw, twitterLimit),
		LinkedIn: truncate(li, linkedinLimit),
	}
}

// truncate caps a string at limit characters (runes, not bytes).
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
