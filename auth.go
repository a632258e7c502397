package crookedfinger

import "context"

// Login authenticates against the backend and installs the session
// token for subsequent calls. With a state file configured the token
// and profile survive restarts.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	sess, err := c.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	c.rememberSession(sess)
	return sess, nil
}

// Register creates an account and signs in.
func (c *Client) Register(ctx context.Context, email, password string) (*Session, error) {
	sess, err := c.api.Register(ctx, email, password)
	if err != nil {
		return nil, err
	}
	c.rememberSession(sess)
	return sess, nil
}

// Logout drops the session and every locally mirrored piece of account
// state. It does not call the backend.
func (c *Client) Logout() error {
	c.tokens.clear()
	if c.state == nil {
		return nil
	}
	if err := c.state.ClearToken(); err != nil {
		return err
	}
	if err := c.state.ClearUser(); err != nil {
		return err
	}
	return c.state.ClearConversations()
}

// CurrentUser returns the locally stored profile from the last Login
// or Register. It does not call the backend.
func (c *Client) CurrentUser() (User, bool) {
	if c.state == nil {
		return User{}, false
	}
	return c.state.User()
}

func (c *Client) rememberSession(sess *Session) {
	c.tokens.set(sess.AccessToken)
	if c.state == nil {
		return
	}
	if err := c.state.SetToken(sess.AccessToken); err != nil {
		c.log().Warn("session token not persisted", "err", err)
	}
	if err := c.state.SetUser(sess.User); err != nil {
		c.log().Warn("profile not persisted", "err", err)
	}
}
