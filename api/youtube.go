package api

import (
	"context"
	"errors"
)

const transcriptQuery = `query YoutubeTranscript($videoUrl: String!) {
  youtubeTranscript(videoUrl: $videoUrl) {
    success
    videoId
    transcript
    wordCount
    language
    thumbnailUrl
    thumbnailUrlHq
    error
  }
}`

const extractPatternMutation = `mutation ExtractPatternFromVideo($videoUrl: String!) {
  extractPatternFromVideo(videoUrl: $videoUrl) {
    success
    patternName
    patternNotation
    patternInstructions
    difficultyLevel
    materials
    estimatedTime
    videoId
    thumbnailUrl
    error
  }
}`

// Transcript fetches the transcript of a YouTube video. The result may
// have Success false with Error set when the video has no captions.
func (c *Client) Transcript(ctx context.Context, videoURL string) (*Transcript, error) {
	if videoURL == "" {
		return nil, errors.New("api: video url is empty")
	}
	var out struct {
		Transcript Transcript `json:"youtubeTranscript"`
	}
	vars := map[string]any{"videoUrl": videoURL}
	if err := c.do(ctx, "YoutubeTranscript", transcriptQuery, vars, &out); err != nil {
		return nil, err
	}
	return &out.Transcript, nil
}

// ExtractPatternFromVideo fetches a video transcript and has the
// assistant pull a crochet pattern out of it.
func (c *Client) ExtractPatternFromVideo(ctx context.Context, videoURL string) (*VideoPattern, error) {
	if videoURL == "" {
		return nil, errors.New("api: video url is empty")
	}
	var out struct {
		Pattern VideoPattern `json:"extractPatternFromVideo"`
	}
	vars := map[string]any{"videoUrl": videoURL}
	if err := c.do(ctx, "ExtractPatternFromVideo", extractPatternMutation, vars, &out); err != nil {
		return nil, err
	}
	return &out.Pattern, nil
}
