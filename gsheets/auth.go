package gsheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Authorize returns an HTTP client authorised for the requested scopes along with the account
// identity to share spreadsheets with. The credentials file may be either a service account key
// or an OAuth client secret, in which case the OAuth token is loaded from the tokens file created
// by the 'authorise' command.
func Authorize(ctx context.Context, credentials, tokens string, scopes ...string) (*http.Client, string, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, "", err
	}

	var kind struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(b, &kind); err != nil {
		return nil, "", fmt.Errorf("invalid credentials file %v (%w)", credentials, err)
	}

	if kind.Type == "service_account" {
		config, err := google.JWTConfigFromJSON(b, scopes...)
		if err != nil {
			return nil, "", err
		}

		return config.Client(ctx), config.Email, nil
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, "", err
	}

	token, err := TokenFromFile(tokens)
	if err != nil {
		return nil, "", fmt.Errorf("missing or invalid OAuth token %v - run 'authorise' first (%w)", tokens, err)
	}

	return config.Client(ctx, token), "the authorised Google account", nil
}

// OAuthConfig loads the OAuth client configuration used by the console authorisation flow.
func OAuthConfig(credentials string, scopes ...string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	return google.ConfigFromJSON(b, scopes...)
}

// TokenFromFile retrieves a token from a local file.
func TokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(token)

	return token, err
}

// SaveToken saves a token to a file path.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("unable to create OAuth token directory (%w)", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token (%w)", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
