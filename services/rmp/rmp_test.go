package rmp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeInstructor(t *testing.T) {
	require.Equal(t, "S PUGH", NormalizeInstructor("PUGH, S"))
	require.Equal(t, "JOHN SMITH", NormalizeInstructor("SMITH,JOHN"))
	require.Equal(t, "JANE DOE", NormalizeInstructor("JANE DOE"))
	require.Equal(t, "SMITH,", NormalizeInstructor("SMITH,"))
	require.Equal(t, "", NormalizeInstructor(""))
}

func TestBestMatch(t *testing.T) {
	_, ok := BestMatch(nil, "PUGH, S")
	require.False(t, ok)

	teachers := []Teacher{
		{FirstName: "Alice", LastName: "Wong", NumRatings: 3},
		{FirstName: "Sarah", LastName: "Pugh", NumRatings: 12},
		{FirstName: "Sam", LastName: "Pugh", NumRatings: 4},
	}
	best, ok := BestMatch(teachers, "PUGH, SARAH")
	require.True(t, ok)
	require.Equal(t, "Sarah", best.FirstName)
}

func TestProfileUrl(t *testing.T) {
	require.Equal(t, "", Teacher{}.ProfileUrl())
	require.Equal(
		t,
		"https://www.ratemyprofessors.com/professor/42",
		Teacher{LegacyId: 42}.ProfileUrl(),
	)
}
