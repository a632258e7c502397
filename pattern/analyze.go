// Package pattern parses crochet notation: it analyzes round and stitch
// structure, extracts labeled patterns from assistant prose, and expands
// standard abbreviations when no assistant is reachable.
package pattern

import (
	"regexp"
	"strconv"
	"strings"
)

// Analysis summarizes the structure of a pattern text.
type Analysis struct {
	// TotalRounds is the number of round or row lines detected.
	TotalRounds int

	// PatternType is one of "circular", "rounds", "rows" or "unknown".
	PatternType string

	// EstimatedSize is a rough finished-size bucket based on the total
	// stitch count.
	EstimatedSize string

	// Rounds lists the detected rounds in order of appearance.
	Rounds []Round
}

// Round is one detected round or row line.
type Round struct {
	Number       int
	Instructions string
	Stitches     int
}

// StitchCountByRound returns the per-round stitch counts in order.
func (a Analysis) StitchCountByRound() []int {
	counts := make([]int, len(a.Rounds))
	for i, r := range a.Rounds {
		counts[i] = r.Stitches
	}
	return counts
}

var roundRe = regexp.MustCompile(`(?i)^(?:round|rnd|row)\s*(\d+)`)

// stitchRes is tried in order; the first expression with any match
// decides the count for a line.
var stitchRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*(?:sc|dc|hdc|tc|sl\s*st|ch)\b`),
	regexp.MustCompile(`(?i)\b(?:sc|dc|hdc|tc|sl\s*st|ch)\s+(\d+)\b`),
	regexp.MustCompile(`(?i)(\d+)\s*times\b`),
	regexp.MustCompile(`(?i)total[^0-9]*(\d+)`),
	regexp.MustCompile(`(?i)\((\d+)\s*(?:sts?|stitches?)\)`),
}

var abbrevTokenRe = regexp.MustCompile(`(?i)\b(?:sc|dc|hdc|tc|ch)\b`)

var (
	magicRingRe = regexp.MustCompile(`(?i)magic\s+(?:ring|circle)`)
	roundWordRe = regexp.MustCompile(`(?i)\b(?:round|rnd)\b`)
	rowWordRe   = regexp.MustCompile(`(?i)\brow\b`)
)

// Analyze scans pattern text line by line and reports its structure.
func Analyze(text string) Analysis {
	a := Analysis{PatternType: "unknown", EstimatedSize: "unknown"}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		m := roundRe.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1]) // digits only by the regex
		a.Rounds = append(a.Rounds, Round{
			Number:       num,
			Instructions: trimmed,
			Stitches:     countStitches(trimmed),
		})
	}
	a.TotalRounds = len(a.Rounds)

	switch {
	case magicRingRe.MatchString(text):
		a.PatternType = "circular"
	case roundWordRe.MatchString(text):
		a.PatternType = "rounds"
	case rowWordRe.MatchString(text):
		a.PatternType = "rows"
	}

	if len(a.Rounds) > 0 {
		total := 0
		for _, r := range a.Rounds {
			total += r.Stitches
		}
		switch {
		case total < 50:
			a.EstimatedSize = "small (< 3 inches)"
		case total < 200:
			a.EstimatedSize = "medium (3-6 inches)"
		default:
			a.EstimatedSize = "large (> 6 inches)"
		}
	}
	return a
}

// countStitches estimates how many stitches one round line produces.
// Lines with no usable numbers fall back to counting stitch tokens, and
// never report less than 1.
func countStitches(line string) int {
	for _, re := range stitchRes {
		matches := re.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}
		total := 0
		for _, m := range matches {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			total += n
		}
		if total > 0 {
			return total
		}
	}
	if n := len(abbrevTokenRe.FindAllString(line, -1)); n > 0 {
		return n
	}
	return 1
}
