// Package catalog describes the assistant models the backend can route
// messages to, with their daily quotas and fallback order.
//
// The backend owns the live quota numbers; this package carries the
// static catalog so clients can render model pickers, estimate cost,
// and predict routing without a round trip.
package catalog

import "strings"

// Provider identifies where a model is hosted.
type Provider string

const (
	ProviderGemini     Provider = "gemini"
	ProviderOpenRouter Provider = "openrouter"
)

// Complexity classifies a message for smart routing.
type Complexity string

const (
	Simple  Complexity = "simple"
	General Complexity = "general"
	Complex Complexity = "complex"
)

// Model IDs known to every deployment.
const (
	GeminiPro          = "gemini-2.5-pro"
	GeminiFlashPreview = "gemini-2.5-flash-preview-09-2025"
	GeminiFlash        = "gemini-2.5-flash"
	GeminiFlashLite    = "gemini-2.5-flash-lite"
	DeepSeekChat       = "deepseek/deepseek-chat-v3.1:free"
	Qwen3              = "qwen/qwen3-30b-a3b:free"
)

// Model is one catalog entry.
type Model struct {
	ID          string
	DisplayName string
	Provider    Provider

	// DailyLimit is the free-tier request quota per day. Zero means
	// unmetered.
	DailyLimit int

	// Priority orders the fallback chain; lower is tried first. Zero
	// means the model is not part of the chain.
	Priority int

	// UseCase names the routing bucket the model serves best.
	UseCase string
}

var models = []Model{
	{ID: GeminiPro, DisplayName: "Gemini 2.5 Pro", Provider: ProviderGemini, DailyLimit: 100, Priority: 1, UseCase: "complex_analysis"},
	{ID: GeminiFlashPreview, DisplayName: "Gemini 2.5 Flash Preview", Provider: ProviderGemini, DailyLimit: 250, Priority: 2, UseCase: "general_chat"},
	{ID: GeminiFlash, DisplayName: "Gemini 2.5 Flash", Provider: ProviderGemini, DailyLimit: 250, Priority: 3, UseCase: "general_chat"},
	{ID: GeminiFlashLite, DisplayName: "Gemini 2.5 Flash Lite", Provider: ProviderGemini, DailyLimit: 1000, Priority: 4, UseCase: "simple_queries"},
	{ID: DeepSeekChat, DisplayName: "DeepSeek Chat v3.1", Provider: ProviderOpenRouter},
	{ID: Qwen3, DisplayName: "Qwen3 30B A3B (Often Unavailable)", Provider: ProviderOpenRouter},
}

// Models returns the full catalog in priority order, metered models
// first.
func Models() []Model {
	out := make([]Model, len(models))
	copy(out, models)
	return out
}

// Lookup finds a model by ID.
func Lookup(id string) (Model, bool) {
	for _, m := range models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

var complexKeywords = []string{
	"diagram", "chart", "pattern", "translate", "convert",
	"calculate", "design", "modify", "complex", "advanced",
}

var simpleKeywords = []string{
	"what is", "define", "meaning", "abbreviation", "mean",
	"hello", "hi", "thanks", "thank you",
}

// Classify buckets a message by keyword. Complex keywords win over
// simple ones, so "translate this" routes complex even though "this"
// contains "hi".
func Classify(message string) Complexity {
	lower := strings.ToLower(message)
	for _, kw := range complexKeywords {
		if strings.Contains(lower, kw) {
			return Complex
		}
	}
	for _, kw := range simpleKeywords {
		if strings.Contains(lower, kw) {
			return Simple
		}
	}
	return General
}

// PreferredOrder returns the metered models in the order smart routing
// tries them for a given complexity.
func PreferredOrder(c Complexity) []string {
	switch c {
	case Complex:
		return []string{GeminiPro, GeminiFlashPreview, GeminiFlash, GeminiFlashLite}
	case Simple:
		return []string{GeminiFlash, GeminiFlashPreview, GeminiPro, GeminiFlashLite}
	default:
		return []string{GeminiFlashPreview, GeminiFlash, GeminiPro, GeminiFlashLite}
	}
}

// Pick chooses the model a well-behaved backend would route to:
// the first preferred model with quota left, else the first unmetered
// fallback. remaining reports quota left for a model ID; nil means
// everything has quota.
func Pick(c Complexity, remaining func(id string) int) (Model, bool) {
	for _, id := range PreferredOrder(c) {
		m, ok := Lookup(id)
		if !ok {
			continue
		}
		if remaining == nil || remaining(id) > 0 {
			return m, true
		}
	}
	for _, m := range models {
		if m.Provider == ProviderOpenRouter {
			return m, true
		}
	}
	return Model{}, false
}

// EstimateTokens approximates the token count the backend meters for a
// piece of text. The backend uses the same chars/4 heuristic.
func EstimateTokens(text string) int {
	return len(text) / 4
}
