package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Extracted is a pattern pulled out of labeled assistant prose.
type Extracted struct {
	Name         string
	Notation     string
	Instructions string
	Difficulty   string
	Materials    string
	Time         string
}

var sectionLabels = []string{"NAME", "NOTATION", "INSTRUCTIONS", "DIFFICULTY", "MATERIALS", "TIME"}

// sectionRes matches one labeled section each: everything after
// "LABEL:" up to the next label line or the end of the text. Labels may
// carry markdown decoration.
var sectionRes = func() map[string]*regexp.Regexp {
	alternation := strings.Join(sectionLabels, "|")
	res := make(map[string]*regexp.Regexp, len(sectionLabels))
	for _, label := range sectionLabels {
		res[label] = regexp.MustCompile(fmt.Sprintf(
			`(?s)(?:^|\n)[ \t*#]*%s[ \t*]*:[ \t]*(.*?)(?:\n[ \t*#]*(?:%s)[ \t*]*:|\z)`,
			label, alternation,
		))
	}
	return res
}()

// Extract parses assistant output that follows the NAME/NOTATION/
// INSTRUCTIONS/DIFFICULTY/MATERIALS/TIME convention. ok is false when
// no section was found.
func Extract(text string) (Extracted, bool) {
	e := Extracted{
		Name:         section(text, "NAME"),
		Notation:     section(text, "NOTATION"),
		Instructions: section(text, "INSTRUCTIONS"),
		Difficulty:   section(text, "DIFFICULTY"),
		Materials:    section(text, "MATERIALS"),
		Time:         section(text, "TIME"),
	}
	ok := e.Name != "" || e.Notation != "" || e.Instructions != ""
	return e, ok
}

func section(text, label string) string {
	m := sectionRes[label].FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.Trim(m[1], "* \t\r\n")
}
