package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Credential adds the source authentication to an outgoing report request.
type Credential interface {
	Authorise(ctx context.Context, rq *http.Request) error
}

// ClientCredentials acquires a bearer token with an OAuth2 client credentials grant.
// A new token is requested for every report request.
type ClientCredentials struct {
	Source string
	config clientcredentials.Config
	client *http.Client
}

func NewClientCredentials(source, clientID, clientSecret, tokenURL string, client *http.Client) *ClientCredentials {
	return &ClientCredentials{
		Source: source,
		config: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		},
		client: client,
	}
}

func (c *ClientCredentials) Authorise(ctx context.Context, rq *http.Request) error {
	if c.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.client)
	}

	token, err := c.config.Token(ctx)
	if err != nil {
		return &AuthenticationError{Source: c.Source, Err: err}
	}

	if !token.Valid() {
		return &AuthenticationError{Source: c.Source, Err: fmt.Errorf("invalid access token")}
	}

	token.SetAuthHeader(rq)

	return nil
}

// BearerKey sends a pre-shared API key as a bearer token.
type BearerKey struct {
	Source string
	Key    string
}

func (k BearerKey) Authorise(ctx context.Context, rq *http.Request) error {
	if strings.TrimSpace(k.Key) == "" {
		return &AuthenticationError{Source: k.Source, Err: fmt.Errorf("missing API key")}
	}

	rq.Header.Set("Authorization", "Bearer "+k.Key)

	return nil
}

// BasicKey sends a pre-shared API key as the basic authentication user name with a
// placeholder password.
type BasicKey struct {
	Source   string
	Key      string
	Password string
}

func (k BasicKey) Authorise(ctx context.Context, rq *http.Request) error {
	if strings.TrimSpace(k.Key) == "" {
		return &AuthenticationError{Source: k.Source, Err: fmt.Errorf("missing API key")}
	}

	password := k.Password
	if password == "" {
		password = "x"
	}

	rq.SetBasicAuth(k.Key, password)

	return nil
}
