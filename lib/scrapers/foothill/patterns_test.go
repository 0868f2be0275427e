package foothill

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCourseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"001A", "1A"},
		{"C1000", "C1000"},
		{"10", "10"},
		{"0010", "10"},
		{"1A", "1A"},
		{"not a course", "not a course"},
		{"", ""},
	}
	for _, c := range cases {
		require.Equal(t, c.want, NormalizeCourseNumber(c.in), "input %q", c.in)
	}
}

func TestNormalizeCourseNumberIdempotent(t *testing.T) {
	for _, in := range []string{"001A", "C1000", "10", "0010", "MATH", ""} {
		once := NormalizeCourseNumber(in)
		require.Equal(t, once, NormalizeCourseNumber(once), "input %q", in)
	}
}

func TestParseCourseID(t *testing.T) {
	subject, course := parseCourseID("CS 001A")
	require.Equal(t, "CS", subject)
	require.Equal(t, "1A", course)

	// strict form with spaced subject letters
	subject, course = parseCourseID("C S 50")
	require.Equal(t, "CS", subject)
	require.Equal(t, "50", course)

	// loose fallback: subject is everything but the last field
	subject, course = parseCourseID("MATH Honors 010")
	require.Equal(t, "MATHHonors", subject)
	require.Equal(t, "10", course)

	subject, course = parseCourseID("single")
	require.Equal(t, "", subject)
	require.Equal(t, "", course)

	subject, course = parseCourseID("")
	require.Equal(t, "", subject)
	require.Equal(t, "", course)
}

func TestParseSectionHint(t *testing.T) {
	subject, course := parseSectionHint("CS-001A-01")
	require.Equal(t, "CS", subject)
	require.Equal(t, "1A", course)

	subject, course = parseSectionHint("C S 1A")
	require.Equal(t, "", subject)
	require.Equal(t, "", course)

	subject, course = parseSectionHint("MATH-C1000-02W")
	require.Equal(t, "MATH", subject)
	require.Equal(t, "C1000", course)
}

func TestLooksLikeTitle(t *testing.T) {
	require.True(t, looksLikeTitle("Intro to Programming"))
	require.False(t, looksLikeTitle("abc"))
	require.False(t, looksLikeTitle("Course Number (CRN): 12345"))
	require.False(t, looksLikeTitle("Section: CS-1A-01"))
	require.False(t, looksLikeTitle("SMITH, JOHN"))
	require.False(t, looksLikeTitle("O'BRIEN, MARY-JANE ANN"))
	// an instructor name with trailing junk is not a full match, keep it
	require.True(t, looksLikeTitle("SMITH, JOHN teaches this"))
}
