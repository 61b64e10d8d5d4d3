// cmd/api/stats.go
// Handlers for the dashboard statistics and the reading-goal settings.
package main

import (
	"net/http"

	"github.com/mgpacifique/bookshelf/internal/data"
	"github.com/mgpacifique/bookshelf/internal/validator"
)

// statsHandler handles GET /v1/stats.
// Statistics are always computed over the full, unfiltered collection,
// regardless of any search the client currently has active. The current
// settings ride along so the dashboard can render goal progress without a
// second request.
func (app *applicationDependencies) statsHandler(w http.ResponseWriter, r *http.Request) {
	books := app.repository.List()

	response := envelope{
		"summary":          data.Summarize(books),
		"tag_distribution": data.TagDistribution(books),
		"settings":         app.store.LoadSettings(),
	}

	err := app.writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showSettingsHandler handles GET /v1/settings.
// Returns the documented defaults when nothing has been stored yet.
func (app *applicationDependencies) showSettingsHandler(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, envelope{"settings": app.store.LoadSettings()}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateSettingsHandler handles PUT /v1/settings.
// Settings are a singleton overwritten wholesale: the body must carry the
// complete value, and there is no partial merge.
func (app *applicationDependencies) updateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var settings data.Settings

	err := app.readJSON(w, r, &settings)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	data.ValidateSettings(v, &settings)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.store.SaveSettings(settings)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"settings": settings}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
