// Package youtube extracts video IDs from YouTube URLs and builds
// thumbnail URLs, so clients can render video cards without asking the
// backend.
package youtube

import (
	"fmt"
	"regexp"
)

// ThumbnailQuality selects one of YouTube's static thumbnail renditions.
type ThumbnailQuality string

const (
	QualityMax     ThumbnailQuality = "maxresdefault"
	QualitySD      ThumbnailQuality = "sddefault"
	QualityHQ      ThumbnailQuality = "hqdefault"
	QualityMQ      ThumbnailQuality = "mqdefault"
	QualityDefault ThumbnailQuality = "default"
)

var videoIDRes = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL.
// Bare video IDs are accepted as-is.
func ExtractVideoID(raw string) (string, bool) {
	for _, re := range videoIDRes {
		if m := re.FindStringSubmatch(raw); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// ThumbnailURL builds the static thumbnail URL for a video ID.
// maxresdefault is not available for every video; hqdefault always is.
func ThumbnailURL(videoID string, quality ThumbnailQuality) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/%s.jpg", videoID, quality)
}
