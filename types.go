package crookedfinger

import (
	"github.com/crookedfinger/crookedfinger-go/api"
	"github.com/crookedfinger/crookedfinger-go/blobcache"
)

// --- Re-exports from api ---

// User is an account on the backend.
type User = api.User

// Session is the result of a successful login or registration.
type Session = api.Session

// Project is a saved crochet project.
type Project = api.Project

// ProjectInput holds the fields for creating a project.
type ProjectInput = api.ProjectInput

// ProjectUpdate holds a partial project update.
type ProjectUpdate = api.ProjectUpdate

// Conversation is a chat thread.
type Conversation = api.Conversation

// ChatMessage is one exchange stored in a conversation.
type ChatMessage = api.ChatMessage

// Message is one outgoing chat message.
type Message = api.Message

// ChatReply is the assistant's answer to one message.
type ChatReply = api.ChatReply

// Translation is the result of translating pattern notation.
type Translation = api.Translation

// PatternAnalysis summarizes the structure of a translated pattern.
type PatternAnalysis = api.PatternAnalysis

// UsageDashboard aggregates today's quota usage across all models.
type UsageDashboard = api.UsageDashboard

// ModelUsage is one model's row in the usage dashboard.
type ModelUsage = api.ModelUsage

// ModelConfig describes the backend's current model selection.
type ModelConfig = api.ModelConfig

// Transcript is the fetched transcript of a YouTube video.
type Transcript = api.Transcript

// VideoPattern is a crochet pattern extracted from a video transcript.
type VideoPattern = api.VideoPattern

// Time is the backend's timestamp representation.
type Time = api.Time

// --- Re-exports from blobcache ---

// Stats reports attachment cache occupancy.
type Stats = blobcache.Stats
