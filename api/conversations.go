package api

import (
	"context"
	"fmt"
)

const conversationFields = `
    id
    title
    userId
    createdAt
    updatedAt
    messageCount`

const chatMessageFields = `
    id
    message
    response
    messageType
    conversationId
    projectId
    userId
    createdAt`

const conversationsQuery = `query Conversations {
  conversations {` + conversationFields + `
  }
}`

const createConversationMutation = `mutation CreateConversation($title: String!) {
  createConversation(title: $title) {` + conversationFields + `
  }
}`

const updateConversationMutation = `mutation UpdateConversation($conversationId: Int!, $title: String!) {
  updateConversation(conversationId: $conversationId, title: $title) {` + conversationFields + `
  }
}`

const deleteConversationMutation = `mutation DeleteConversation($conversationId: Int!) {
  deleteConversation(conversationId: $conversationId)
}`

const chatHistoryQuery = `query ChatHistory($conversationId: Int!) {
  chatHistory(conversationId: $conversationId) {` + chatMessageFields + `
  }
}`

// Conversations lists the current user's chat threads.
func (c *Client) Conversations(ctx context.Context) ([]Conversation, error) {
	var out struct {
		Conversations []Conversation `json:"conversations"`
	}
	if err := c.do(ctx, "Conversations", conversationsQuery, nil, &out); err != nil {
		return nil, err
	}
	return out.Conversations, nil
}

// CreateConversation opens a new chat thread.
func (c *Client) CreateConversation(ctx context.Context, title string) (*Conversation, error) {
	var out struct {
		Conversation Conversation `json:"createConversation"`
	}
	vars := map[string]any{"title": title}
	if err := c.do(ctx, "CreateConversation", createConversationMutation, vars, &out); err != nil {
		return nil, err
	}
	return &out.Conversation, nil
}

// UpdateConversation renames a chat thread.
func (c *Client) UpdateConversation(ctx context.Context, id int, title string) (*Conversation, error) {
	var out struct {
		Conversation *Conversation `json:"updateConversation"`
	}
	vars := map[string]any{"conversationId": id, "title": title}
	if err := c.do(ctx, "UpdateConversation", updateConversationMutation, vars, &out); err != nil {
		return nil, err
	}
	if out.Conversation == nil {
		return nil, fmt.Errorf("api: conversation %d: %w", id, ErrNotFound)
	}
	return out.Conversation, nil
}

// DeleteConversation removes a chat thread and its history.
func (c *Client) DeleteConversation(ctx context.Context, id int) error {
	var out struct {
		Deleted bool `json:"deleteConversation"`
	}
	vars := map[string]any{"conversationId": id}
	if err := c.do(ctx, "DeleteConversation", deleteConversationMutation, vars, &out); err != nil {
		return err
	}
	if !out.Deleted {
		return fmt.Errorf("api: conversation %d: %w", id, ErrNotFound)
	}
	return nil
}

// ChatHistory returns the stored messages of one conversation, oldest
// first.
func (c *Client) ChatHistory(ctx context.Context, conversationID int) ([]ChatMessage, error) {
	var out struct {
		Messages []ChatMessage `json:"chatHistory"`
	}
	vars := map[string]any{"conversationId": conversationID}
	if err := c.do(ctx, "ChatHistory", chatHistoryQuery, vars, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}
