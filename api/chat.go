package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

const chatMutation = `mutation ChatWithAssistant($message: String!, $conversationId: Int, $projectId: Int, $imageData: String) {
  chatWithAssistant(message: $message, conversationId: $conversationId, projectId: $projectId, imageData: $imageData) {
    message
    diagramSvg
    diagramPng
    hasPattern
  }
}`

const translateMutation = `mutation TranslatePattern($patternText: String!, $context: String) {
  translatePattern(patternText: $patternText, context: $context) {
    originalPattern
    translatedInstructions
    analysis {
      totalRounds
      patternType
      estimatedSize
      stitchCountByRound
    }
  }
}`

// Message is one outgoing chat message.
type Message struct {
	// Text is the user's message. Required.
	Text string

	// ConversationID continues an existing thread. Zero starts a new
	// one.
	ConversationID int

	// ProjectID links the message to a project for context. Zero means
	// no project.
	ProjectID int

	// Images holds raw image attachments. They are base64-encoded and
	// packed into a JSON array on the wire.
	Images [][]byte
}

// SendMessage sends one message to the assistant and returns its reply.
func (c *Client) SendMessage(ctx context.Context, msg Message) (*ChatReply, error) {
	if strings.TrimSpace(msg.Text) == "" {
		return nil, errors.New("api: message text is empty")
	}

	vars := map[string]any{"message": msg.Text}
	if msg.ConversationID != 0 {
		vars["conversationId"] = msg.ConversationID
	}
	if msg.ProjectID != 0 {
		vars["projectId"] = msg.ProjectID
	}
	if len(msg.Images) > 0 {
		imageData, err := EncodeImages(msg.Images)
		if err != nil {
			return nil, err
		}
		vars["imageData"] = imageData
	}

	var out struct {
		Reply ChatReply `json:"chatWithAssistant"`
	}
	if err := c.do(ctx, "ChatWithAssistant", chatMutation, vars, &out); err != nil {
		return nil, err
	}
	return &out.Reply, nil
}

// TranslatePattern asks the backend to expand crochet notation into
// plain instructions. notes is optional free text passed to the model
// as extra context.
func (c *Client) TranslatePattern(ctx context.Context, patternText, notes string) (*Translation, error) {
	if strings.TrimSpace(patternText) == "" {
		return nil, errors.New("api: pattern text is empty")
	}
	vars := map[string]any{"patternText": patternText}
	if notes != "" {
		vars["context"] = notes
	}
	var out struct {
		Translation Translation `json:"translatePattern"`
	}
	if err := c.do(ctx, "TranslatePattern", translateMutation, vars, &out); err != nil {
		return nil, err
	}
	return &out.Translation, nil
}

// EncodeImages packs raw image bytes into the wire format the backend
// expects: a JSON array of base64 strings, sent as one string variable.
func EncodeImages(images [][]byte) (string, error) {
	encoded := make([]string, len(images))
	for i, img := range images {
		if len(img) == 0 {
			return "", errors.New("api: empty image attachment")
		}
		encoded[i] = base64.StdEncoding.EncodeToString(img)
	}
	data, err := json.Marshal(encoded)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeImages is the inverse of EncodeImages.
func DecodeImages(imageData string) ([][]byte, error) {
	var encoded []string
	if err := json.Unmarshal([]byte(imageData), &encoded); err != nil {
		return nil, errors.New("api: image data is not a JSON array of strings")
	}
	images := make([][]byte, len(encoded))
	for i, s := range encoded {
		img, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, errors.New("api: image data contains invalid base64")
		}
		images[i] = img
	}
	return images, nil
}
