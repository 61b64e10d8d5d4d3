// cmd/api/handlers.go
// This file contains the HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger, the repository, and the blob store.
package main

import (
	"errors"
	"net/http"

	"github.com/mgpacifique/bookshelf/internal/data"
	"github.com/mgpacifique/bookshelf/internal/validator"
)

// bookHighlight is the escaped, match-marked view of one book returned
// alongside search results. Every value is HTML-safe; match spans are
// wrapped in <mark> tags.
type bookHighlight struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Tag    string `json:"tag"`
	Notes  string `json:"notes,omitempty"`
}

// createBookHandler handles POST /v1/books.
// It reads a JSON body with the new book's fields, runs the full field
// validation, stores the record through the repository, and responds with
// the created book (including its assigned ID and timestamps) and a
// 201 Created status.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.CreateBookInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Validate the candidate before it can touch the collection. Every
	// field is checked so the client gets the complete error map at once.
	candidate := &data.Book{
		Title:  input.Title,
		Author: input.Author,
		Pages:  input.Pages,
		Tag:    input.Tag,
		Date:   input.Date,
		Notes:  input.Notes,
	}
	v := validator.New()
	data.ValidateBook(v, candidate)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	book := app.repository.Add(input)

	err = app.writeJSON(w, http.StatusCreated, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /v1/books/:id.
// Responds 404 if no book with that ID exists.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.repository.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler handles GET /v1/books.
// Query parameters:
//
//	search         – regular expression matched across title, author, tag,
//	                 notes, and date; empty means "everything"
//	case_sensitive – boolean toggle for the search expression
//	sort           – one of date, -date, title, -title, pages, -pages;
//	                 anything else keeps the stored order
//
// When a search expression is present the response carries a parallel
// "highlights" array with escaped, <mark>-wrapped field views of each
// matching book.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	search := app.readString(qs, "search", "")
	caseSensitive := app.readBool(qs, "case_sensitive", false)
	sortBy := app.readString(qs, "sort", "")

	// An invalid expression is reported next to the search box, never
	// treated as "match nothing".
	matcher, err := data.CompilePattern(search, caseSensitive)
	if err != nil {
		app.failedValidationResponse(w, r, map[string]string{"search": "must be a valid search expression"})
		return
	}

	books := app.repository.List()
	books = data.FilterBooks(books, matcher)
	books = data.SortBooks(books, sortBy)

	response := envelope{"books": books, "total": len(books)}
	if search != "" {
		highlights := make([]bookHighlight, len(books))
		for i, book := range books {
			highlights[i] = bookHighlight{
				ID:     book.ID,
				Title:  data.HighlightHTML(book.Title, matcher),
				Author: data.HighlightHTML(book.Author, matcher),
				Tag:    data.HighlightHTML(book.Tag, matcher),
				Notes:  data.HighlightHTML(book.Notes, matcher),
			}
		}
		response["highlights"] = highlights
	}

	err = app.writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PATCH /v1/books/:id.
// It reads a partial JSON body (UpdateBookInput), validates the record as
// it would look after the merge, and applies the change through the
// repository. The record's ID and CreatedAt survive regardless of the
// supplied fields. Responds 404 if the book does not exist.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input data.UpdateBookInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.repository.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// Merge the supplied fields onto a copy and validate the result, so a
	// partial update can never leave an invalid record in the collection.
	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Author != nil {
		book.Author = *input.Author
	}
	if input.Pages != nil {
		book.Pages = *input.Pages
	}
	if input.Tag != nil {
		book.Tag = *input.Tag
	}
	if input.Date != nil {
		book.Date = *input.Date
	}
	if input.Notes != nil {
		book.Notes = *input.Notes
	}

	v := validator.New()
	data.ValidateBook(v, &book)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	updated, err := app.repository.Update(id, input)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": updated}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /v1/books/:id.
// Responds 404 if no book with that ID exists.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.repository.Delete(id) {
		app.notFoundResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "book successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// clearBooksHandler handles DELETE /v1/books.
// It replaces the whole collection with an empty one. Settings are left
// untouched; use the -reset flag for a full wipe.
func (app *applicationDependencies) clearBooksHandler(w http.ResponseWriter, r *http.Request) {
	app.repository.ReplaceAll(nil)

	err := app.writeJSON(w, http.StatusOK, envelope{"message": "all books deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
