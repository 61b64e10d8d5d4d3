// cmd/api/handlers_test.go
// End-to-end tests over the HTTP surface: a real router and an in-memory
// blob store, driven through httptest. Each test exercises one route and
// the core operation behind it.
package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgpacifique/bookshelf/internal/data"
	"github.com/mgpacifique/bookshelf/internal/storage"
)

// newTestApplication builds an application wired to an in-memory store,
// with rate limiting switched off so tests can hammer the router.
func newTestApplication(t *testing.T) *applicationDependencies {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := storage.OpenBadgerInMemory(logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	var settings serverConfig
	settings.limiter.enabled = false

	return &applicationDependencies{
		config:     settings,
		logger:     logger,
		store:      store,
		repository: data.NewRepository(store, logger),
	}
}

// doJSON sends a JSON request to the test server, checks the status code,
// and decodes the response body into out when out is non-nil.
func doJSON(t *testing.T, ts *httptest.Server, method, path string, body any, wantCode int, out any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, wantCode, resp.StatusCode, "unexpected status, body: %s", raw)

	if out != nil {
		require.NoError(t, json.Unmarshal(raw, out))
	}
}

func validPayload() map[string]any {
	return map[string]any{
		"title":  "Dune",
		"author": "Frank Herbert",
		"pages":  "412",
		"tag":    "Science Fiction",
		"date":   "2025-01-10",
		"notes":  "Re-read.",
	}
}

func TestCreateBook(t *testing.T) {
	app := newTestApplication(t)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	var created struct {
		Book data.Book `json:"book"`
	}
	doJSON(t, ts, http.MethodPost, "/v1/books", validPayload(), http.StatusCreated, &created)

	assert.NotEmpty(t, created.Book.ID)
	assert.Equal(t, "Dune", created.Book.Title)
	assert.False(t, created.Book.CreatedAt.IsZero())

	// The record must be persisted, not just held in memory.
	stored := app.store.LoadBooks()
	require.Len(t, stored, 1)
	assert.Equal(t, created.Book.ID, stored[0].ID)
}

func TestCreateBookValidationFailure(t *testing.T) {
	app := newTestApplication(t)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	payload := validPayload()
	payload["title"] = " A"
	payload["pages"] = "0"

	var response struct {
		Error map[string]string `json:"error"`
	}
	doJSON(t, ts, http.MethodPost, "/v1/books", payload, http.StatusUnprocessableEntity, &response)

	assert.Contains(t, response.Error, "title")
	assert.Contains(t, response.Error, "pages")
	assert.NotContains(t, response.Error, "author")
	assert.Zero(t, app.repository.Len(), "an invalid record must never enter the collection")
}

func TestShowBookNotFound(t *testing.T) {
	app := newTestApplication(t)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	doJSON(t, ts, http.MethodGet, "/v1/books/no-such-id", nil, http.StatusNotFound, nil)
}

func TestListBooksSearchSortAndHighlight(t *testing.T) {
	app := newTestApplication(t)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	for _, payload := range []map[string]any{
		{"title": "Dune", "author": "Frank Herbert", "pages": "412", "tag": "Science Fiction", "date": "2025-01-10"},
		{"title": "Nineteen Eighty-Four", "author": "George Orwell", "pages": "328", "tag": "Dystopia", "date": "2025-02-14"},
		{"title": "Educated", "author": "Tara Westover", "pages": "334", "tag": "Memoir", "date": "2025-03-02"},
	} {
		doJSON(t, ts, http.MethodPost, "/v1/books", payload, http.StatusCreated, nil)
	}

	var listing struct {
		Books      []data.Book `json:"books"`
		Total      int         `json:"total"`
		Highlights []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"highlights"`
	}

	// Sorted listing without a search: no highlights, numeric page order.
	doJSON(t, ts, http.MethodGet, "/v1/books?sort=pages", nil, http.StatusOK, &listing)
	require.Equal(t, 3, listing.Total)
	assert.Equal(t, "Nineteen Eighty-Four", listing.Books[0].Title)
	assert.Empty(t, listing.Highlights)

	// Case-insensitive search with match marking.
	doJSON(t, ts, http.MethodGet, "/v1/books?search=dune", nil, http.StatusOK, &listing)
	require.Equal(t, 1, listing.Total)
	require.Len(t, listing.Highlights, 1)
	assert.Equal(t, "<mark>Dune</mark>", listing.Highlights[0].Title)

	// Case-sensitive search misses the capitalized title.
	doJSON(t, ts, http.MethodGet, "/v1/books?search=dune&case_sensitive=true", nil, http.StatusOK, &listing)
	assert.Equal(t, 0, listing.Total)
}

func TestListBooksInvalidSearchExpression(t *testing.T) {
	app := newTestApplication(t)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	var response struct {
		Error map[string]string `json:"error"`
	}
	doJSON(t, ts, http.MethodGet, "/v1/books?search=%5Bunclosed", nil, http.StatusUnprocessableEntity, &response)
	assert.Contains(t, response.Error, "search")
}

func TestUpdateBook(t *testing.T) {
	app := newTestApplication(t)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	var created struct {
		Book data.Book `json:"book"`
	}
	doJSON(t, ts, http.MethodPost, "/v1/books", validPayload(), http.StatusCreated, &created)

	var updated struct {
		Book data.Book `json:"book"`
	}
	doJSON(t, ts, http.MethodPatch, "/v1/books/"+created.Book.ID,
		map[string]any{"title": "Dune Messiah"}, http.StatusOK, &updated)

	assert.Equal(t, "Dune Messiah", updated.Book.Title)
	assert.Equal(t, created.Book.Author, updated.Book.Author)
	assert.Equal(t, created.Book.ID, updated.Book.ID)
	assert.Equal(t, created.Book.CreatedAt, updated.Book.CreatedAt)
}

func TestUpdateBookRejectsInvalidMerge(t *testing.T) {
	app := newTestApplication(t)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	var created struct {
		Book data.Book `json:"book"`
	}
	doJSON(t, ts, http.MethodPost, "/v1/books", validPayload(), http.StatusCreated, &created)

	var response struct {
		Error map[string]string `json:"error"`
	}
	doJSON(t, ts, http.MethodPatch, "/v1/books/"+created.Book.ID,
		map[string]any{"date": "2025-02-30"}, http.StatusUnprocessableEntity, &response)
	assert.Contains(t, response.Error, "date")

	// The stored record is untouched.
	stored, err := app.repository.Get(created.Book.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-10", stored.Date)
}

func TestUpdateBookNotFound(t *testing.T) {
	app := newTestApplication(t)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	doJSON(t, ts, http.MethodPatch, "/v1/books/missing",
		map[string]any{"title": "Ghost"}, http.StatusNotFound, nil)
}

func TestDeleteBook(t *testing.T) {
	app := newTestApplication(t)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	var created struct {
		Book data.Book `json:"book"`
	}
	doJSON(t, ts, http.MethodPost, "/v1/books", validPayload(), http.StatusCreated, &created)

	doJSON(t, ts, http.MethodDelete, "/v1/books/"+created.Book.ID, nil, http.StatusOK, nil)
	doJSON(t, ts, http.MethodDelete, "/v1/books/"+created.Book.ID, nil, http.StatusNotFound, nil)
	assert.Zero(t, app.repository.Len())
}

func TestClearBooks(t *testing.T) {
	app := newTestApplication(t)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	doJSON(t, ts, http.MethodPost, "/v1/books", validPayload(), http.StatusCreated, nil)
	doJSON(t, ts, http.MethodDelete, "/v1/books", nil, http.StatusOK, nil)

	assert.Zero(t, app.repository.Len())
	assert.Empty(t, app.store.LoadBooks())
}

func TestStats(t *testing.T) {
	app := newTestApplication(t)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	for _, payload := range []map[string]any{
		{"title": "Dune", "author": "Frank Herbert", "pages": "100", "tag": "Science Fiction", "date": "2025-01-10"},
		{"title": "Dune Messiah", "author": "Frank Herbert", "pages": "201", "tag": "Science Fiction", "date": "2025-02-14"},
	} {
		doJSON(t, ts, http.MethodPost, "/v1/books", payload, http.StatusCreated, nil)
	}

	var response struct {
		Summary         data.Summary    `json:"summary"`
		TagDistribution []data.TagSlice `json:"tag_distribution"`
		Settings        data.Settings   `json:"settings"`
	}
	doJSON(t, ts, http.MethodGet, "/v1/stats", nil, http.StatusOK, &response)

	assert.Equal(t, 2, response.Summary.TotalBooks)
	assert.Equal(t, 301, response.Summary.TotalPages)
	assert.Equal(t, 151, response.Summary.AveragePages, "average rounds half up")
	assert.Equal(t, "Frank Herbert", response.Summary.TopAuthor)
	require.Len(t, response.TagDistribution, 1)
	assert.InDelta(t, 360.0, response.TagDistribution[0].SweepDegrees, 1e-9)
	assert.Equal(t, data.DefaultSettings(), response.Settings)
}

func TestExportImportRoundTripOverHTTP(t *testing.T) {
	app := newTestApplication(t)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	doJSON(t, ts, http.MethodPost, "/v1/books", validPayload(), http.StatusCreated, nil)

	resp, err := ts.Client().Get(ts.URL + "/v1/export")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	exported, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// Wipe and re-import the exported document.
	doJSON(t, ts, http.MethodDelete, "/v1/books", nil, http.StatusOK, nil)
	require.Zero(t, app.repository.Len())

	importResp, err := ts.Client().Post(ts.URL+"/v1/import", "application/json", bytes.NewReader(exported))
	require.NoError(t, err)
	defer importResp.Body.Close()
	require.Equal(t, http.StatusOK, importResp.StatusCode)

	books := app.repository.List()
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestImportRejectsWholesale(t *testing.T) {
	app := newTestApplication(t)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	doJSON(t, ts, http.MethodPost, "/v1/books", validPayload(), http.StatusCreated, nil)

	bad := `[
		{"title": "One", "author": "Ana", "pages": "10", "tag": "Tag", "date": "2025-01-01"},
		{"title": "Two", "author": "Ana", "pages": "20", "tag": "Tag"}
	]`
	resp, err := ts.Client().Post(ts.URL+"/v1/import", "application/json", strings.NewReader(bad))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// The existing collection must be untouched by the rejected import.
	books := app.repository.List()
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestSettingsDefaultsAndUpdate(t *testing.T) {
	app := newTestApplication(t)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	var response struct {
		Settings data.Settings `json:"settings"`
	}
	doJSON(t, ts, http.MethodGet, "/v1/settings", nil, http.StatusOK, &response)
	assert.Equal(t, data.DefaultSettings(), response.Settings)

	doJSON(t, ts, http.MethodPut, "/v1/settings",
		map[string]any{"page_unit": "chapters", "target_pages": 52}, http.StatusOK, &response)
	assert.Equal(t, data.Settings{PageUnit: "chapters", TargetPages: 52}, response.Settings)

	doJSON(t, ts, http.MethodGet, "/v1/settings", nil, http.StatusOK, &response)
	assert.Equal(t, data.Settings{PageUnit: "chapters", TargetPages: 52}, response.Settings)

	var failure struct {
		Error map[string]string `json:"error"`
	}
	doJSON(t, ts, http.MethodPut, "/v1/settings",
		map[string]any{"page_unit": "pages", "target_pages": -1}, http.StatusUnprocessableEntity, &failure)
	assert.Contains(t, failure.Error, "target_pages")
}

func TestMethodNotAllowed(t *testing.T) {
	app := newTestApplication(t)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	doJSON(t, ts, http.MethodPut, "/v1/books", nil, http.StatusMethodNotAllowed, nil)
}
