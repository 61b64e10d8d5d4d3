// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router
// wrapped in the recoverPanic and rateLimit middlewares.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → rateLimit → router
//
// Current endpoints:
//
//	POST   /v1/books        – add a book to the catalog
//	GET    /v1/books        – list books, with search/sort/highlight
//	GET    /v1/books/:id    – retrieve a single book by ID
//	PATCH  /v1/books/:id    – partially update an existing book
//	DELETE /v1/books/:id    – delete a book by ID
//	DELETE /v1/books        – clear the whole catalog
//	GET    /v1/stats        – dashboard summary and tag distribution
//	GET    /v1/export       – download the catalog in interchange form
//	POST   /v1/import       – replace the catalog from interchange data
//	GET    /v1/settings     – current reading-goal settings
//	PUT    /v1/settings     – overwrite the reading-goal settings
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	// Book CRUD routes
	router.HandlerFunc(http.MethodPost, "/v1/books", app.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/books/:id", app.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/books/:id", app.deleteBookHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/books", app.clearBooksHandler)

	// Dashboard and interchange routes
	router.HandlerFunc(http.MethodGet, "/v1/stats", app.statsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/export", app.exportBooksHandler)
	router.HandlerFunc(http.MethodPost, "/v1/import", app.importBooksHandler)

	// Settings routes
	router.HandlerFunc(http.MethodGet, "/v1/settings", app.showSettingsHandler)
	router.HandlerFunc(http.MethodPut, "/v1/settings", app.updateSettingsHandler)

	// Wrap with middleware: recoverPanic is outermost so it catches panics
	// from rateLimit and router alike.
	return app.recoverPanic(app.rateLimit(router))
}
