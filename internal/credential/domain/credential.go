// Package domain defines the access credential used to call the primary content API.
package domain

import (
	"encoding/base64"
	"time"
)

// Credential is a cached bearer token with its refresh deadline.
//
// ExpiresAt already has the refresh skew subtracted: a credential is fresh
// while now is strictly before ExpiresAt.
type Credential struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IsFresh reports whether the credential can be used at instant now.
func (c *Credential) IsFresh(now time.Time) bool {
	return c != nil && c.AccessToken != "" && now.Before(c.ExpiresAt)
}

// Identity is the client-credentials identity configured for the primary API.
type Identity struct {
	ClientID      string
	ClientSecret  string
	TokenEndpoint string
	Scope         string
}

// IsConfigured reports whether both the client id and secret are present.
func (i Identity) IsConfigured() bool {
	return i.ClientID != "" && i.ClientSecret != ""
}

// Key identifies the identity in a credential store.
func (i Identity) Key() string {
	return "credential:" + i.ClientID + "@" + i.TokenEndpoint
}

// BasicAuth returns the value of the Authorization header for the token exchange.
func (i Identity) BasicAuth() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(i.ClientID+":"+i.ClientSecret))
}

// TokenResponse is the JSON body returned by the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope,omitempty"`
}
