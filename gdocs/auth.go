package gdocs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
)

const (
	clientSecretPath = "client_secret.json"
	tokenPath        = "token.json"
)

// oauthClient loads or creates OAuth credentials and returns an HTTP client
// that refreshes tokens as needed. A refreshed token is persisted back to
// token.json so the next run stays non-interactive.
func oauthClient(ctx context.Context) (*http.Client, error) {
	secret, err := os.ReadFile(clientSecretPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", clientSecretPath, err)
	}

	conf, err := google.ConfigFromJSON(secret, docs.DocumentsScope, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secret: %w", err)
	}

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		tok, err = tokenFromPrompt(ctx, conf)
		if err != nil {
			return nil, err
		}
	}

	src := conf.TokenSource(ctx, tok)
	refreshed, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	if refreshed.AccessToken != tok.AccessToken {
		if err := saveToken(tokenPath, refreshed); err != nil {
			return nil, err
		}
	}

	return oauth2.NewClient(ctx, src), nil
}

// tokenFromPrompt walks the installed-app authorization flow on the
// terminal and persists the resulting token.
func tokenFromPrompt(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	authURL := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following link in your browser, then paste the authorization code:\n%v\n", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := saveToken(tokenPath, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// tokenFromFile reads a persisted OAuth token.
func tokenFromFile(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &tok, nil
}

// saveToken persists an OAuth token for the next run.
func saveToken(path string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}
