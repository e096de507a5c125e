// Package service performs the OAuth2 client-credentials exchange against the token endpoint.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	credentialDomain "github.com/allisson/quran-gateway/internal/credential/domain"
)

// maxTokenResponseBytes bounds how much of the token response is read.
const maxTokenResponseBytes = 1 << 20

// TokenExchanger exchanges client credentials for an access token.
type TokenExchanger interface {
	Exchange(ctx context.Context, identity credentialDomain.Identity) (*credentialDomain.TokenResponse, error)
}

// HTTPTokenExchanger is the default TokenExchanger using client_secret_basic authentication.
type HTTPTokenExchanger struct {
	httpClient *http.Client
}

// NewHTTPTokenExchanger constructs a TokenExchanger. A nil client gets a 10s timeout client.
func NewHTTPTokenExchanger(client *http.Client) *HTTPTokenExchanger {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPTokenExchanger{httpClient: client}
}

// Exchange posts grant_type=client_credentials with a Basic auth header and decodes the token.
func (e *HTTPTokenExchanger) Exchange(
	ctx context.Context,
	identity credentialDomain.Identity,
) (*credentialDomain.TokenResponse, error) {
	if strings.TrimSpace(identity.TokenEndpoint) == "" {
		return nil, fmt.Errorf("token endpoint missing")
	}

	scope := identity.Scope
	if scope == "" {
		scope = "content"
	}
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", scope)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		identity.TokenEndpoint,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", identity.BasicAuth())

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token exchange request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("token exchange failed: status=%d", resp.StatusCode)
	}

	var token credentialDomain.TokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}
	return &token, nil
}
