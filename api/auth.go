package api

import (
	"context"
	"errors"
)

const userFields = `
      id
      email
      isActive
      isVerified
      isAdmin
      createdAt
      updatedAt
      lastLogin`

const sessionFields = `
    user {` + userFields + `
    }
    accessToken
    tokenType`

const registerMutation = `mutation Register($email: String!, $password: String!) {
  register(email: $email, password: $password) {` + sessionFields + `
  }
}`

const loginMutation = `mutation Login($email: String!, $password: String!) {
  login(email: $email, password: $password) {` + sessionFields + `
  }
}`

// Register creates a new account and returns its session token.
func (c *Client) Register(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, errors.New("api: email and password are required")
	}
	var out struct {
		Register Session `json:"register"`
	}
	vars := map[string]any{"email": email, "password": password}
	if err := c.do(ctx, "Register", registerMutation, vars, &out); err != nil {
		return nil, err
	}
	return &out.Register, nil
}

// Login authenticates an existing account and returns its session token.
// The token is not stored anywhere; wire a TokenSource for that.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, errors.New("api: email and password are required")
	}
	var out struct {
		Login Session `json:"login"`
	}
	vars := map[string]any{"email": email, "password": password}
	if err := c.do(ctx, "Login", loginMutation, vars, &out); err != nil {
		return nil, err
	}
	return &out.Login, nil
}
