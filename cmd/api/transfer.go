// cmd/api/transfer.go
// Handlers for moving the catalog across the interchange boundary:
// export, import, and first-run sample seeding.
package main

import (
	"io"
	"net/http"
	"time"

	"github.com/mgpacifique/bookshelf/internal/data"
)

// exportBooksHandler handles GET /v1/export.
// The response body is the bare interchange array (not an envelope), with
// attachment headers so browsers offer it as a download.
func (app *applicationDependencies) exportBooksHandler(w http.ResponseWriter, r *http.Request) {
	out, err := data.ExportBooks(app.repository.List())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="bookshelf-export.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// importBooksHandler handles POST /v1/import.
// The body is a bare interchange array. The import is all-or-nothing: any
// problem in any element rejects the whole document with a 422 carrying
// the per-index errors, and the collection is left untouched. A clean
// document replaces the collection wholesale.
func (app *applicationDependencies) importBooksHandler(w http.ResponseWriter, r *http.Request) {
	body, err := app.readBody(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	result := data.ImportBooks(body)
	if !result.Valid {
		app.failedImportResponse(w, r, result.Errors)
		return
	}

	app.repository.ReplaceAll(result.Books)
	app.logger.Info("catalog replaced from import", "books", len(result.Books))

	err = app.writeJSON(w, http.StatusOK, envelope{
		"message":  "catalog imported",
		"imported": len(result.Books),
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// seedSampleBooks fetches the sample collection and loads it into an
// empty catalog. Every failure here is recoverable: it is logged as a
// warning and the server starts with an empty catalog instead.
func (app *applicationDependencies) seedSampleBooks(url string) {
	httpClient := &http.Client{Timeout: 10 * time.Second}

	resp, err := httpClient.Get(url)
	if err != nil {
		app.logger.Warn("sample data fetch failed", "url", url, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		app.logger.Warn("sample data fetch failed", "url", url, "status", resp.StatusCode)
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1_048_576))
	if err != nil {
		app.logger.Warn("sample data read failed", "url", url, "error", err)
		return
	}

	result := data.ImportBooks(body)
	if !result.Valid {
		app.logger.Warn("sample data rejected by import checks", "url", url, "errors", len(result.Errors))
		return
	}

	app.repository.ReplaceAll(result.Books)
	app.logger.Info("catalog seeded with sample data", "books", len(result.Books))
}
