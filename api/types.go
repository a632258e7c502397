package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// Time unmarshals the backend's ISO 8601 timestamps, which may omit the
// timezone offset. A JSON null leaves the zero value in place.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("api: invalid timestamp %q", s)
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// User is an account on the backend.
type User struct {
	ID         int    `json:"id"`
	Email      string `json:"email"`
	IsActive   bool   `json:"isActive"`
	IsVerified bool   `json:"isVerified"`
	IsAdmin    bool   `json:"isAdmin"`
	CreatedAt  Time   `json:"createdAt"`
	UpdatedAt  Time   `json:"updatedAt"`
	LastLogin  Time   `json:"lastLogin"`
}

// Session is the result of a successful login or registration.
type Session struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// Project is a saved crochet project.
type Project struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	PatternText     string `json:"patternText"`
	TranslatedText  string `json:"translatedText"`
	DifficultyLevel string `json:"difficultyLevel"`
	EstimatedTime   string `json:"estimatedTime"`
	YarnWeight      string `json:"yarnWeight"`
	HookSize        string `json:"hookSize"`
	Notes           string `json:"notes"`
	ImageData       string `json:"imageData"`
	IsCompleted     bool   `json:"isCompleted"`
	UserID          int    `json:"userId"`
	CreatedAt       Time   `json:"createdAt"`
	UpdatedAt       Time   `json:"updatedAt"`
}

// ProjectInput holds the fields for creating a project.
type ProjectInput struct {
	Name            string `json:"name"`
	PatternText     string `json:"patternText,omitempty"`
	TranslatedText  string `json:"translatedText,omitempty"`
	DifficultyLevel string `json:"difficultyLevel,omitempty"`
	EstimatedTime   string `json:"estimatedTime,omitempty"`
	YarnWeight      string `json:"yarnWeight,omitempty"`
	HookSize        string `json:"hookSize,omitempty"`
	Notes           string `json:"notes,omitempty"`
	ImageData       string `json:"imageData,omitempty"`
}

// ProjectUpdate holds a partial update. Nil fields are left unchanged.
type ProjectUpdate struct {
	Name            *string `json:"name,omitempty"`
	PatternText     *string `json:"patternText,omitempty"`
	TranslatedText  *string `json:"translatedText,omitempty"`
	DifficultyLevel *string `json:"difficultyLevel,omitempty"`
	EstimatedTime   *string `json:"estimatedTime,omitempty"`
	YarnWeight      *string `json:"yarnWeight,omitempty"`
	HookSize        *string `json:"hookSize,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	ImageData       *string `json:"imageData,omitempty"`
	IsCompleted     *bool   `json:"isCompleted,omitempty"`
}

// Conversation is a chat thread.
type Conversation struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	UserID       int    `json:"userId"`
	CreatedAt    Time   `json:"createdAt"`
	UpdatedAt    Time   `json:"updatedAt"`
	MessageCount int    `json:"messageCount"`
}

// ChatMessage is one exchange stored in a conversation.
type ChatMessage struct {
	ID             int    `json:"id"`
	Message        string `json:"message"`
	Response       string `json:"response"`
	MessageType    string `json:"messageType"`
	ConversationID *int   `json:"conversationId"`
	ProjectID      *int   `json:"projectId"`
	UserID         int    `json:"userId"`
	CreatedAt      Time   `json:"createdAt"`
}

// ChatReply is the assistant's answer to one message.
type ChatReply struct {
	Message    string `json:"message"`
	DiagramSVG string `json:"diagramSvg"`
	DiagramPNG string `json:"diagramPng"`
	HasPattern bool   `json:"hasPattern"`
}

// PatternAnalysis summarizes the structure of a translated pattern.
type PatternAnalysis struct {
	TotalRounds        int    `json:"totalRounds"`
	PatternType        string `json:"patternType"`
	EstimatedSize      string `json:"estimatedSize"`
	StitchCountByRound []int  `json:"stitchCountByRound"`
}

// Translation is the result of translating pattern notation.
type Translation struct {
	OriginalPattern        string          `json:"originalPattern"`
	TranslatedInstructions string          `json:"translatedInstructions"`
	Analysis               PatternAnalysis `json:"analysis"`
}

// ModelUsage is one model's row in the usage dashboard.
type ModelUsage struct {
	ModelName             string  `json:"modelName"`
	CurrentUsage          int     `json:"currentUsage"`
	DailyLimit            int     `json:"dailyLimit"`
	Remaining             int     `json:"remaining"`
	PercentageUsed        float64 `json:"percentageUsed"`
	Priority              int     `json:"priority"`
	UseCase               string  `json:"useCase"`
	TotalInputCharacters  int     `json:"totalInputCharacters"`
	TotalOutputCharacters int     `json:"totalOutputCharacters"`
	TotalInputTokens      int     `json:"totalInputTokens"`
	TotalOutputTokens     int     `json:"totalOutputTokens"`
}

// UsageDashboard aggregates today's quota usage across all models.
type UsageDashboard struct {
	TotalRequestsToday int          `json:"totalRequestsToday"`
	TotalRemaining     int          `json:"totalRemaining"`
	Models             []ModelUsage `json:"models"`
}

// ResetResult reports the outcome of a daily usage reset.
type ResetResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ResetDate string `json:"resetDate"`
}

// ModelConfig describes the backend's current model selection.
type ModelConfig struct {
	CurrentProvider    string   `json:"currentProvider"`
	SelectedModel      string   `json:"selectedModel"`
	AvailableModels    []string `json:"availableModels"`
	ModelPriorityOrder []string `json:"modelPriorityOrder"`
	UseOpenRouter      bool     `json:"useOpenrouter"`
}

// Transcript is the fetched transcript of a YouTube video.
type Transcript struct {
	Success        bool   `json:"success"`
	VideoID        string `json:"videoId"`
	Text           string `json:"transcript"`
	WordCount      int    `json:"wordCount"`
	Language       string `json:"language"`
	ThumbnailURL   string `json:"thumbnailUrl"`
	ThumbnailURLHQ string `json:"thumbnailUrlHq"`
	Error          string `json:"error"`
}

// VideoPattern is a crochet pattern extracted from a video transcript.
type VideoPattern struct {
	Success             bool   `json:"success"`
	PatternName         string `json:"patternName"`
	PatternNotation     string `json:"patternNotation"`
	PatternInstructions string `json:"patternInstructions"`
	DifficultyLevel     string `json:"difficultyLevel"`
	Materials           string `json:"materials"`
	EstimatedTime       string `json:"estimatedTime"`
	VideoID             string `json:"videoId"`
	ThumbnailURL        string `json:"thumbnailUrl"`
	Error               string `json:"error"`
}
