package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Collapse squashes runs of whitespace to single spaces and trims the
// result.
func Collapse(s string) string {
	return strings.Trim(whitespaceRegex.ReplaceAllString(s, " "), " \n\t")
}

// TitleCase uppercases the first letter of every word and lowercases the
// rest, so "INTRO TO PROGRAMMING" becomes "Intro To Programming". Used to
// clean up titles before they hit storage.
func TitleCase(s string) string {
	var out strings.Builder
	startOfWord := true
	for _, r := range s {
		if !unicode.IsLetter(r) {
			startOfWord = true
			out.WriteRune(r)
			continue
		}
		if startOfWord {
			out.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		} else {
			out.WriteRune(unicode.ToLower(r))
		}
	}
	return out.String()
}

// JoinDeduped joins the non-empty values with sep, dropping later
// duplicates while keeping first-seen order. Returns "" when nothing
// survives.
func JoinDeduped(values []string, sep string) string {
	seen := map[string]bool{}
	var kept []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		kept = append(kept, v)
	}
	return strings.Join(kept, sep)
}
