package crookedfinger

import (
	"context"
	"errors"
)

// Conversations lists the account's chat threads.
//
// On success the list refreshes the local mirror. On a transport
// failure the mirror is served instead, so history stays readable
// offline. Authentication failures are never masked by the mirror.
func (c *Client) Conversations(ctx context.Context) ([]Conversation, error) {
	list, err := c.api.Conversations(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return nil, err
		}
		if c.state != nil {
			if mirror := c.state.Conversations(); len(mirror) > 0 {
				c.log().Warn("conversation list unavailable, serving local mirror", "err", err)
				return mirror, nil
			}
		}
		return nil, err
	}
	c.mirrorConversations(list)
	return list, nil
}

// CreateConversation starts a new chat thread.
func (c *Client) CreateConversation(ctx context.Context, title string) (*Conversation, error) {
	conv, err := c.api.CreateConversation(ctx, title)
	if err != nil {
		return nil, err
	}
	c.updateMirror(func(mirror []Conversation) []Conversation {
		return append([]Conversation{*conv}, mirror...)
	})
	return conv, nil
}

// UpdateConversation renames a chat thread.
func (c *Client) UpdateConversation(ctx context.Context, id int, title string) (*Conversation, error) {
	conv, err := c.api.UpdateConversation(ctx, id, title)
	if err != nil {
		return nil, err
	}
	c.updateMirror(func(mirror []Conversation) []Conversation {
		for i := range mirror {
			if mirror[i].ID == id {
				mirror[i] = *conv
			}
		}
		return mirror
	})
	return conv, nil
}

// DeleteConversation removes a chat thread and its history.
func (c *Client) DeleteConversation(ctx context.Context, id int) error {
	if err := c.api.DeleteConversation(ctx, id); err != nil {
		return err
	}
	c.updateMirror(func(mirror []Conversation) []Conversation {
		kept := mirror[:0]
		for _, conv := range mirror {
			if conv.ID != id {
				kept = append(kept, conv)
			}
		}
		return kept
	})
	return nil
}

// ChatHistory returns the messages of one conversation, oldest first.
func (c *Client) ChatHistory(ctx context.Context, conversationID int) ([]ChatMessage, error) {
	return c.api.ChatHistory(ctx, conversationID)
}

func (c *Client) mirrorConversations(list []Conversation) {
	if c.state == nil {
		return
	}
	if err := c.state.SetConversations(list); err != nil {
		c.log().Warn("conversation mirror not persisted", "err", err)
	}
}

// updateMirror applies fn to the mirrored list. Mutations keep the
// mirror close to the server without an extra round trip; the next
// Conversations call trues it up.
func (c *Client) updateMirror(fn func([]Conversation) []Conversation) {
	if c.state == nil {
		return
	}
	c.mirrorConversations(fn(c.state.Conversations()))
}
