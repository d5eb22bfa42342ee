package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// User is the task owner's profile as returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// sessionResponse is the flat envelope of the sign-in and sign-up
// endpoints: {success, token, user, message}.
type sessionResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
	Message string `json:"message"`
}

// SignIn authenticates with email and password and returns the session
// token. No bearer token is attached to this call.
func (c *Client) SignIn(ctx context.Context, email, password string) (string, User, error) {
	body := map[string]any{"email": email, "password": password}
	return c.session(ctx, "/api/auth/signin", body)
}

// SignUp registers a new account and returns the session token.
func (c *Client) SignUp(ctx context.Context, name, email, password string) (string, User, error) {
	body := map[string]any{"name": name, "email": email, "password": password}
	return c.session(ctx, "/api/auth/signup", body)
}

// SignOut tells the service to end the session. Best effort: the local
// credential is discarded regardless.
func (c *Client) SignOut(ctx context.Context) error {
	token, err := c.bearer()
	if err != nil {
		return err
	}
	_, err = c.send(ctx, http.MethodPost, "/api/auth/signout", nil, nil, token)
	return err
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (User, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil)
	if err != nil {
		return User{}, err
	}
	var resp struct {
		User *User `json:"user"`
		Data *struct {
			User *User `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return User{}, fmt.Errorf("decode profile response: %w", err)
	}
	switch {
	case resp.Data != nil && resp.Data.User != nil:
		return *resp.Data.User, nil
	case resp.User != nil:
		return *resp.User, nil
	}
	// Some deployments return the profile bare.
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return User{}, fmt.Errorf("decode profile response: %w", err)
	}
	return u, nil
}

func (c *Client) session(ctx context.Context, path string, body map[string]any) (string, User, error) {
	data, err := c.send(ctx, http.MethodPost, path, nil, body, "")
	if err != nil {
		return "", User{}, err
	}
	var resp sessionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", User{}, fmt.Errorf("decode auth response: %w", err)
	}
	if resp.Token == "" {
		msg := resp.Message
		if msg == "" {
			msg = "no session token in response"
		}
		return "", User{}, fmt.Errorf("sign-in failed: %s", msg)
	}
	var u User
	if resp.User != nil {
		u = *resp.User
	}
	return resp.Token, u, nil
}
