package foothill

import (
	"regexp"
	"strings"
)

// Text anchors for the schedule page. The page carries no usable
// machine-readable structure, these patterns are the only reliable
// landmarks in it.
var (
	// strict course header form, e.g. "CS 1A", "C S 50", "MATH C1000"
	courseRegex = regexp.MustCompile(`^([A-Z&\s]{2,15})\s+([A-Z]?\d+[A-Z]*)$`)
	// section label, e.g. "Section: CS-1A-01"
	sectionRegex  = regexp.MustCompile(`Section:\s*([A-Z&0-9\-\.]+)`)
	crnLabelRegex = regexp.MustCompile(`Course Number\s*\(CRN\):`)
	crnValueRegex = regexp.MustCompile(`\b(\d{4,6})\b`)
	// "LAST, FIRST" / "LAST, FIRST MIDDLE"; full matches of this are
	// instructor names, never titles
	instructorRegex = regexp.MustCompile(`^[A-Z'\-]+,\s*[A-Z'\-]+(?:\s+[A-Z'\-]+)?$`)

	courseNumberRegex = regexp.MustCompile(`^([A-Z]*)(0*)(\d+)([A-Z]*)$`)
	sectionHintRegex  = regexp.MustCompile(`^([A-Z&]+)-([A-Z0-9\.]+)-`)
	leadingZeroRegex  = regexp.MustCompile(`\b0+(\d)`)
)

// NormalizeCourseNumber strips leading zeros from the leading numeric run
// of a course number while preserving any letter prefix/suffix, so "001A"
// becomes "1A" and "C1000" stays "C1000". Input that does not look like a
// course number passes through unchanged. Idempotent.
func NormalizeCourseNumber(course string) string {
	groups := courseNumberRegex.FindStringSubmatch(course)
	if groups == nil {
		return course
	}
	prefix, num, suffix := groups[1], groups[3], groups[4]
	digits := strings.TrimLeft(num, "0")
	if digits == "" {
		digits = "0"
	}
	return prefix + digits + suffix
}

// parseCourseID pulls (subject, course) out of a course header text.
// Headers that fit the strict form are preferred; anything else falls
// back to "every field but the last is the subject". Returns empty
// strings when the text cannot be interpreted at all.
func parseCourseID(text string) (subject, course string) {
	if text == "" {
		return "", ""
	}

	groups := courseRegex.FindStringSubmatch(text)
	if groups != nil {
		subject = strings.Join(strings.Fields(groups[1]), "")
		course = NormalizeCourseNumber(groups[2])
		return subject, course
	}

	parts := strings.Fields(text)
	if len(parts) < 2 {
		return "", ""
	}
	subject = strings.Join(parts[:len(parts)-1], "")
	course = NormalizeCourseNumber(parts[len(parts)-1])
	return subject, course
}

// parseSectionHint derives a (subject, course) guess from a section code
// such as "CS-1A-01". Codes that don't carry the subject-course-suffix
// form yield empty strings, in which case attribution falls back to pure
// document proximity.
func parseSectionHint(code string) (subject, course string) {
	groups := sectionHintRegex.FindStringSubmatch(code)
	if groups == nil {
		return "", ""
	}
	subject = groups[1]
	// align leading zeros with header normalization, e.g. 001A -> 1A
	course = leadingZeroRegex.ReplaceAllString(groups[2], "${1}")
	return subject, course
}

// looksLikeTitle rejects text that shows up in title position but is
// really something else: CRN labels, section labels, bare instructor
// names, or fragments too short to be a course title.
func looksLikeTitle(text string) bool {
	if len(text) <= 3 {
		return false
	}
	if strings.Contains(text, "Course Number (CRN)") {
		return false
	}
	if strings.HasPrefix(text, "Section:") {
		return false
	}
	if instructorRegex.MatchString(text) {
		return false
	}
	return true
}
