package crookedfinger

import (
	"context"
	"errors"
	"time"

	"github.com/crookedfinger/crookedfinger-go/pattern"
)

// SendMessage relays one chat message to the assistant. When the
// message continues a known conversation the local mirror's counters
// are bumped to match.
func (c *Client) SendMessage(ctx context.Context, msg Message) (*ChatReply, error) {
	reply, err := c.api.SendMessage(ctx, msg)
	if err != nil {
		return nil, err
	}
	if msg.ConversationID != 0 {
		c.updateMirror(func(mirror []Conversation) []Conversation {
			for i := range mirror {
				if mirror[i].ID == msg.ConversationID {
					mirror[i].MessageCount++
					mirror[i].UpdatedAt = Time{Time: time.Now().UTC()}
				}
			}
			return mirror
		})
	}
	return reply, nil
}

// TranslatePattern turns crochet notation into plain instructions.
// notes is optional free text passed to the model as extra context.
//
// When the assistant cannot serve the request the built-in
// abbreviation expansion takes over, so the caller always gets a
// usable translation. Authentication failures still surface.
func (c *Client) TranslatePattern(ctx context.Context, patternText, notes string) (*Translation, error) {
	tr, err := c.api.TranslatePattern(ctx, patternText, notes)
	if err == nil {
		return tr, nil
	}
	if errors.Is(err, ErrUnauthenticated) {
		return nil, err
	}
	c.log().Warn("translation unavailable, using built-in fallback", "err", err)

	a := pattern.Analyze(patternText)
	return &Translation{
		OriginalPattern:        patternText,
		TranslatedInstructions: pattern.FallbackTranslation(patternText),
		Analysis: PatternAnalysis{
			TotalRounds:        a.TotalRounds,
			PatternType:        a.PatternType,
			EstimatedSize:      a.EstimatedSize,
			StitchCountByRound: a.StitchCountByRound(),
		},
	}, nil
}
