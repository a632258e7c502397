package pattern

import (
	"regexp"
	"strings"
)

// abbreviations maps standard crochet shorthand to full terms. Order
// matters: multi-word and longer forms must run before their prefixes.
var abbreviations = []struct {
	abbr string
	full string
}{
	{"sl st", "slip stitch"},
	{"sts", "stitches"},
	{"sc", "single crochet"},
	{"hdc", "half double crochet"},
	{"dc", "double crochet"},
	{"tc", "treble crochet"},
	{"ch", "chain"},
	{"inc", "increase"},
	{"dec", "decrease"},
	{"yo", "yarn over"},
	{"sk", "skip"},
	{"rep", "repeat"},
	{"rnd", "round"},
	{"beg", "beginning"},
	{"sp", "space"},
	{"tog", "together"},
	{"st", "stitch"},
}

var abbreviationRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(abbreviations))
	for i, a := range abbreviations {
		res[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(a.abbr) + `\b`)
	}
	return res
}()

// ExpandAbbreviations rewrites crochet shorthand into full terms.
func ExpandAbbreviations(text string) string {
	for i, a := range abbreviations {
		text = abbreviationRes[i].ReplaceAllString(text, a.full)
	}
	return text
}

// FallbackTranslation is the canned translation used when the assistant
// is unreachable: a plain abbreviation expansion with a disclaimer.
func FallbackTranslation(patternText string) string {
	var b strings.Builder
	b.WriteString("Basic translation (AI not available):\n\n")
	b.WriteString(ExpandAbbreviations(patternText))
	b.WriteString("\n\nNote: This is a simple translation. For detailed instructions, please configure AI service.")
	return b.String()
}
