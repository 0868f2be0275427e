package schedule

import (
	"context"
	"testing"
	"time"

	"foothill-backend/lib/scrapers/foothill"
	"foothill-backend/lib/testutil"
	"foothill-backend/services/schedule/db"

	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (Store, context.Context) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/schedule",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)
	t.Cleanup(func() { res.DB.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	return NewStore(res.DB), ctx
}

func row(crn, subject, course, title, section string) foothill.ClassRow {
	return foothill.ClassRow{
		Quarter: "2026W",
		Subject: subject,
		Course:  course,
		Title:   title,
		Section: section,
		Crn:     crn,
	}
}

func TestStoreUpsert(t *testing.T) {
	store, ctx := setupStore(t)

	first := row("12345", "CS", "1A", "Intro To Programming", "CS-1A-01")
	first.Instructor = "SMITH, J"
	require.NoError(t, store.Put(ctx, first))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	// same crn with different fields overwrites, it does not error and
	// does not grow the table
	second := first
	second.Title = "Introduction To Programming"
	second.Instructor = "DOE, A"
	require.NoError(t, store.Put(ctx, second))

	n, err = store.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := store.Suggest(ctx, SuggestRequest{Subject: "CS", Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Introduction To Programming", got[0].Title)
	require.Equal(t, "DOE, A", got[0].Instructor)
}

func TestStorePutAllTransactional(t *testing.T) {
	store, ctx := setupStore(t)

	err := store.PutAll(ctx, []foothill.ClassRow{
		row("10001", "CS", "1A", "Intro To Programming", "CS-1A-01"),
		row("10002", "CS", "1B", "Intermediate Programming", "CS-1B-01"),
		row("10003", "MATH", "55", "Linear Algebra", "MATH-55-01"),
	})
	require.NoError(t, err)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}
