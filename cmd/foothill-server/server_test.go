package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"foothill-backend/lib/scrapers/foothill"
	"foothill-backend/lib/testutil"
	"foothill-backend/services/schedule"
	"foothill-backend/services/schedule/db"

	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) (*Server, schedule.Store) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "foothill-server",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)
	t.Cleanup(func() { res.DB.Close() })

	store := schedule.NewStore(res.DB)
	return NewServer(schedule.Service{}, store, nil), store
}

func TestHealth(t *testing.T) {
	server, _ := setupServer(t)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSuggestEndpoint(t *testing.T) {
	server, store := setupServer(t)

	row := foothill.ClassRow{
		Quarter: "2026W",
		Subject: "CS",
		Course:  "1A",
		Title:   "Intro To Programming",
		Section: "CS-1A-01",
		Crn:     "12345",
	}
	require.NoError(t, store.Put(context.Background(), row))

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/suggest?subject=CS", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []suggestionWithRatings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "12345", got[0].Crn)
	require.Nil(t, got[0].Rmp)
}
