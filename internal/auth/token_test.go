package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signToken builds a signed JWT the way the service issues them. The
// signature key is irrelevant: claims are read unverified.
func signToken(t *testing.T, sub, name string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": sub, "name": name}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func newSource(t *testing.T) *FileSource {
	t.Helper()
	return NewFileSource(filepath.Join(t.TempDir(), "token.json"))
}

func TestSaveAndToken(t *testing.T) {
	s := newSource(t)
	raw := signToken(t, "user-1", "Test User", time.Now().Add(time.Hour))

	require.NoError(t, s.Save(raw))

	tok, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, raw, tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Expiry, 5*time.Second)
}

func TestTokenMissingFile(t *testing.T) {
	s := newSource(t)
	_, err := s.Token()
	require.EqualError(t, err, "not logged in (run: taskhub login)")
}

func TestTokenExpired(t *testing.T) {
	s := newSource(t)
	raw := signToken(t, "user-1", "Test User", time.Now().Add(-time.Minute))
	require.NoError(t, s.Save(raw))

	_, err := s.Token()
	require.EqualError(t, err, "session expired (run: taskhub login)")
}

// A token without a readable exp claim never expires locally; the
// service is the judge.
func TestTokenWithoutExp(t *testing.T) {
	s := newSource(t)
	require.NoError(t, s.Save(signToken(t, "user-1", "Test User", time.Time{})))

	_, err := s.Token()
	require.NoError(t, err)
}

// Tokens that are not JWTs at all still round-trip: local expiry
// checking is best effort.
func TestOpaqueToken(t *testing.T) {
	s := newSource(t)
	require.NoError(t, s.Save("not-a-jwt"))

	tok, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "not-a-jwt", tok.AccessToken)
}

func TestSignedOut(t *testing.T) {
	s := newSource(t)
	require.NoError(t, s.Save(signToken(t, "user-1", "Test User", time.Now().Add(time.Hour))))

	s.SignedOut()

	_, err := s.Token()
	require.EqualError(t, err, "not logged in (run: taskhub login)")
}

func TestClaims(t *testing.T) {
	s := newSource(t)
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, s.Save(signToken(t, "user-42", "Grace", exp)))

	c, err := s.Claims()
	require.NoError(t, err)
	assert.Equal(t, "user-42", c.Subject)
	assert.Equal(t, "Grace", c.Name)
	assert.True(t, c.ExpiresAt.Equal(exp), "got %v want %v", c.ExpiresAt, exp)
}
