package foothill

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScrapeClasses(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(singleCoursePage))
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	rows, err := client.ScrapeClasses(context.Background(), FetchOptions{
		Quarter: "2026W",
		Dept:    "CS",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "12345", rows[0].Crn)

	require.Equal(t, []string{"2026W"}, gotQuery["Quarter"])
	require.Equal(t, []string{"CS"}, gotQuery["dept"])
	require.Equal(t, []string{"all"}, gotQuery["availability"])
}

func TestScrapeClassesRequiresQuarter(t *testing.T) {
	client, err := NewClient(ClientOptions{BaseUrl: "http://localhost:1"})
	require.NoError(t, err)

	_, err = client.ScrapeClasses(context.Background(), FetchOptions{})
	require.Error(t, err)
}

func TestScrapeClassesFetchFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	rows, err := client.ScrapeClasses(context.Background(), FetchOptions{Quarter: "2026W"})
	require.Error(t, err)
	require.Nil(t, rows)
}

type memoryOutput struct {
	wrote map[string]string
}

func (m *memoryOutput) Write(id, contents string) {
	if m.wrote == nil {
		m.wrote = map[string]string{}
	}
	m.wrote[id] = contents
}

func TestScrapeClassesZeroAnchorsDumpsPage(t *testing.T) {
	page := `<html><body><p>maintenance window</p></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)
	out := &memoryOutput{}
	client.SetDebugOutput(out)

	rows, err := client.ScrapeClasses(context.Background(), FetchOptions{Quarter: "2026W"})
	require.NoError(t, err)
	require.Empty(t, rows)
	require.Contains(t, out.wrote, "debug_no_crn.html")
	require.Contains(t, out.wrote["debug_no_crn.html"], "maintenance window")
}
