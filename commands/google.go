package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// authorize returns an HTTP client for the Google Sheets API. Service account keys are
// used directly; OAuth2 client credentials need a token file created by 'authorise'.
func authorize(credentials, scope, tokens string) (*http.Client, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	var key struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(b, &key); err == nil && key.Type == "service_account" {
		jwt, err := google.JWTConfigFromJSON(b, scope)
		if err != nil {
			return nil, err
		}

		return jwt.Client(context.Background()), nil
	}

	config, err := google.ConfigFromJSON(b, scope)
	if err != nil {
		return nil, err
	}

	token, err := tokenFromFile(tokenFile(credentials, tokens))
	if err != nil {
		return nil, fmt.Errorf("no saved authorisation (%v) - run '%s authorise' to authorise access", err, APP)
	}

	return config.Client(context.Background(), token), nil
}

func newSheetsService(ctx context.Context, credentials, tokens string) (*sheets.Service, error) {
	client, err := authorize(credentials, SHEETS, tokens)
	if err != nil {
		return nil, fmt.Errorf("Google Sheets authentication/authorization error (%w)", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("Unable to create new Google Sheets client (%w)", err)
	}

	return service, nil
}

func tokenFile(credentials, dir string) string {
	_, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	return filepath.Join(dir, fmt.Sprintf("%s.sheets", name))
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	infof("Saving credential file to: %s", path)

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("Unable to cache oauth token: %v", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
