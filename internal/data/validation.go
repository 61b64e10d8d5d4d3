// internal/data/validation.go
// Field-level validation rules for Book records and Settings.
// Each Check* function is pure: it returns "" when the value is acceptable,
// otherwise the message that should be shown next to the offending field.
package data

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mgpacifique/bookshelf/internal/validator"
)

// Validation messages. Each distinct failure reason has its own message so
// callers (and tests) can tell them apart.
const (
	MsgRequired       = "must be provided"
	MsgTitleFormat    = "must not have leading, trailing, or consecutive spaces"
	MsgTitleTooShort  = "must be at least 2 characters long"
	MsgNameFormat     = "must contain only letters, with single spaces or hyphens between words"
	MsgPagesFormat    = "must be a whole number with no leading zero"
	MsgPagesPositive  = "must be greater than zero"
	MsgDateFormat     = "must use the YYYY-MM-DD format"
	MsgDateNotReal    = "must be a real calendar date"
	MsgUnitUnknown    = "must be one of: pages, chapters, minutes"
	MsgTargetPositive = "must be a positive number"
)

// nameRX matches "word (space-or-hyphen word)*" over letters only: no
// digits, no other punctuation, no leading/trailing/doubled separators.
var nameRX = regexp.MustCompile(`^\p{L}+(?:[ -]\p{L}+)*$`)

// pagesRX matches digit strings with no leading zero. A single "0" matches
// the shape and is rejected separately as not positive.
var pagesRX = regexp.MustCompile(`^(?:0|[1-9][0-9]*)$`)

// dateRX matches the 4-digit-year/2-digit-month(01-12)/2-digit-day(01-31)
// shape. Whether the day exists in that month is checked afterwards.
var dateRX = regexp.MustCompile(`^\d{4}-(?:0[1-9]|1[0-2])-(?:0[1-9]|[12][0-9]|3[01])$`)

// CheckTitle validates a title: required, no leading/trailing whitespace,
// no run of two or more interior spaces, and at least 2 characters.
func CheckTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return MsgRequired
	}
	if title != strings.TrimSpace(title) || strings.Contains(title, "  ") {
		return MsgTitleFormat
	}
	if len([]rune(title)) < 2 {
		return MsgTitleTooShort
	}
	return ""
}

// CheckAuthor validates an author name against the letters/spaces/hyphens rule.
func CheckAuthor(author string) string {
	return checkName(author)
}

// CheckTag validates a category label; it shares the author charset rule.
func CheckTag(tag string) string {
	return checkName(tag)
}

// checkName implements the shared rule behind CheckAuthor and CheckTag.
func checkName(value string) string {
	if value == "" {
		return MsgRequired
	}
	if !validator.Matches(value, nameRX) {
		return MsgNameFormat
	}
	return ""
}

// CheckPages validates a page count given in its textual form.
func CheckPages(pages string) string {
	if pages == "" {
		return MsgRequired
	}
	if !validator.Matches(pages, pagesRX) {
		return MsgPagesFormat
	}
	// The shape rules out signs and decimals, so Atoi cannot fail here.
	n, _ := strconv.Atoi(pages)
	if n <= 0 {
		return MsgPagesPositive
	}
	return ""
}

// CheckDate validates a YYYY-MM-DD date string. The shape check catches
// malformed input; the parse-and-format round trip catches dates that
// match the shape but do not exist, like February 30th.
func CheckDate(date string) string {
	if date == "" {
		return MsgRequired
	}
	if !validator.Matches(date, dateRX) {
		return MsgDateFormat
	}
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil || parsed.Format("2006-01-02") != date {
		return MsgDateNotReal
	}
	return ""
}

// ValidateBook runs every field rule against book and records each failure
// in the validator under its field name. All fields are always checked, so
// the caller gets the complete error map in one pass rather than the first
// failure only.
func ValidateBook(v *validator.Validator, book *Book) {
	if msg := CheckTitle(book.Title); msg != "" {
		v.AddError("title", msg)
	}
	if msg := CheckAuthor(book.Author); msg != "" {
		v.AddError("author", msg)
	}
	if msg := CheckPages(book.Pages); msg != "" {
		v.AddError("pages", msg)
	}
	if msg := CheckTag(book.Tag); msg != "" {
		v.AddError("tag", msg)
	}
	if msg := CheckDate(book.Date); msg != "" {
		v.AddError("date", msg)
	}
	// Notes is free text with no format constraint.
}

// ValidateSettings checks the reading-goal configuration before it is
// stored. The unit list mirrors the options offered by the client form.
func ValidateSettings(v *validator.Validator, settings *Settings) {
	v.Check(validator.In(settings.PageUnit, "pages", "chapters", "minutes"), "page_unit", MsgUnitUnknown)
	v.Check(settings.TargetPages > 0, "target_pages", MsgTargetPositive)
}
