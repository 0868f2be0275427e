package schedule

import (
	"testing"

	"foothill-backend/lib/scrapers/foothill"

	"github.com/stretchr/testify/require"
)

func TestSuggestScoring(t *testing.T) {
	store, ctx := setupStore(t)

	linear := row("20001", "MATH", "2B", "Linear Algebra", "MATH-2B-01")
	linear.Instructor = "PUGH, S"
	calculus := row("20002", "MATH", "1A", "Calculus", "MATH-1A-01")
	programming := row("20003", "CS", "1A", "Intro To Programming", "CS-1A-01")
	require.NoError(t, store.PutAll(ctx, []foothill.ClassRow{linear, calculus, programming}))

	// free text hits title substring (3) for one row only
	got, err := store.Suggest(ctx, SuggestRequest{Query: "linear", Limit: 5})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "20001", got[0].Crn)
	require.EqualValues(t, 3, got[0].Score)

	// exact subject (5) plus section substring (2) spans both math
	// rows; ties break by title ascending
	got, err = store.Suggest(ctx, SuggestRequest{Query: "MATH", Limit: 5})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Calculus", got[0].Title)
	require.Equal(t, "Linear Algebra", got[1].Title)
	require.EqualValues(t, 7, got[0].Score)

	// filters compose with the free-text query
	got, err = store.Suggest(ctx, SuggestRequest{Query: "MATH", Instructor: "PUGH", Limit: 5})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "20001", got[0].Crn)
}

func TestSuggestExactFilters(t *testing.T) {
	store, ctx := setupStore(t)

	require.NoError(t, store.PutAll(ctx, []foothill.ClassRow{
		row("30001", "CS", "1A", "Intro To Programming", "CS-1A-01"),
		row("30002", "CS", "1B", "Intermediate Programming", "CS-1B-01"),
	}))

	got, err := store.Suggest(ctx, SuggestRequest{Subject: "cs", Course: "1a", Limit: 5})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "30001", got[0].Crn)

	// substring filter on a field stored as NULL never matches
	got, err = store.Suggest(ctx, SuggestRequest{Instructor: "SMITH", Limit: 5})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSuggestLimitClamp(t *testing.T) {
	require.Equal(t, 10, clampLimit(0))
	require.Equal(t, 1, clampLimit(-3))
	require.Equal(t, 100, clampLimit(1000))
	require.Equal(t, 7, clampLimit(7))
}
