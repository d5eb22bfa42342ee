package testutil

import (
	"errors"
	"sync"

	"golang.org/x/oauth2"
)

// Recorder captures notifications for assertions.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, msg)
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}

// StaticAuth hands out a fixed bearer token. An empty AccessToken makes
// Token fail with Err, mimicking a signed-out session.
type StaticAuth struct {
	AccessToken string
	Err         error
	SignedOuts  int
}

func (a *StaticAuth) Token() (*oauth2.Token, error) {
	if a.AccessToken == "" {
		if a.Err != nil {
			return nil, a.Err
		}
		return nil, errors.New("authentication token not found")
	}
	return &oauth2.Token{AccessToken: a.AccessToken, TokenType: "Bearer"}, nil
}

func (a *StaticAuth) SignedOut() { a.SignedOuts++ }
