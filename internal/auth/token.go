// Package auth stores and serves the session credential.
//
// The credential is a JWT issued by the service at sign-in, persisted as
// token.json in the config directory so every command of a session reads
// the same token. The provider seam is oauth2.TokenSource; the task
// client never touches storage directly.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Claims are the fields the client reads out of the stored JWT. The token
// is never verified locally: there is no signing key on the client, and
// the service re-verifies every request anyway.
type Claims struct {
	Subject   string
	Name      string
	ExpiresAt time.Time
}

// FileSource is a file-backed token source. It implements the
// api.Authenticator seam: Token for requests, SignedOut for forced
// sign-outs.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading and writing the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Token reads the stored credential. It fails when no token is stored or
// the stored token has expired, so requests never go out with a
// credential the service is known to reject.
func (s *FileSource) Token() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.New("not logged in (run: taskhub login)")
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("invalid token file: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, errors.New("invalid token file: empty token")
	}
	if exp, ok := expiry(tok.AccessToken); ok && time.Now().After(exp) {
		return nil, errors.New("session expired (run: taskhub login)")
	}
	return &tok, nil
}

// Save persists a freshly issued session token. Mode 0600: the token is
// a credential.
func (s *FileSource) Save(accessToken string) error {
	tok := oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
	if exp, ok := expiry(accessToken); ok {
		tok.Expiry = exp
	}
	data, err := json.MarshalIndent(&tok, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// SignedOut discards the stored credential.
func (s *FileSource) SignedOut() {
	os.Remove(s.path)
}

// Claims decodes the stored token's claims for display (whoami).
func (s *FileSource) Claims() (Claims, error) {
	tok, err := s.Token()
	if err != nil {
		return Claims{}, err
	}
	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok.AccessToken, mapClaims); err != nil {
		return Claims{}, fmt.Errorf("decode token claims: %w", err)
	}
	var c Claims
	if sub, err := mapClaims.GetSubject(); err == nil {
		c.Subject = sub
	}
	if name, ok := mapClaims["name"].(string); ok {
		c.Name = name
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

// expiry reads the exp claim without verifying the signature. Tokens
// without a parseable exp are treated as non-expiring.
func expiry(raw string) (time.Time, bool) {
	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, mapClaims); err != nil {
		return time.Time{}, false
	}
	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
