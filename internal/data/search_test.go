package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchFixture() []Book {
	return []Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert", Tag: "Science Fiction", Date: "2025-01-10"},
		{ID: "2", Title: "1984", Author: "George Orwell", Tag: "Dystopia", Date: "2025-02-14"},
		{ID: "3", Title: "Educated", Author: "Tara Westover", Tag: "Memoir", Notes: "Book club pick", Date: "2025-03-02"},
	}
}

func TestCompilePatternEmptyMatchesEverything(t *testing.T) {
	m, err := CompilePattern("", false)
	require.NoError(t, err)
	assert.True(t, m.MatchAll())

	for _, book := range searchFixture() {
		assert.True(t, m.Matches(book))
	}
}

func TestCompilePatternInvalidExpression(t *testing.T) {
	m, err := CompilePattern("[unclosed", false)
	assert.Error(t, err)
	assert.Nil(t, m)
}

func TestCompilePatternCaseSensitivity(t *testing.T) {
	insensitive, err := CompilePattern("du", false)
	require.NoError(t, err)
	sensitive, err := CompilePattern("du", true)
	require.NoError(t, err)

	dune := searchFixture()[0]
	assert.True(t, insensitive.Matches(dune), "case-insensitive should match Du in Dune")
	assert.False(t, sensitive.Matches(dune), "case-sensitive du should not match Dune")
}

func TestMatchesSearchesAcrossFields(t *testing.T) {
	books := searchFixture()

	byAuthor, _ := CompilePattern("orwell", false)
	assert.True(t, byAuthor.Matches(books[1]))

	byTag, _ := CompilePattern("memoir", false)
	assert.True(t, byTag.Matches(books[2]))

	byNotes, _ := CompilePattern("club", false)
	assert.True(t, byNotes.Matches(books[2]))

	byDate, _ := CompilePattern("2025-02", false)
	assert.True(t, byDate.Matches(books[1]))
	assert.False(t, byDate.Matches(books[0]))
}

func TestFilterBooks(t *testing.T) {
	books := searchFixture()

	m, err := CompilePattern("du", false)
	require.NoError(t, err)

	filtered := FilterBooks(books, m)
	require.Len(t, filtered, 2) // Dune and Educated both contain "du"
	assert.Equal(t, "Dune", filtered[0].Title)
	assert.Equal(t, "Educated", filtered[1].Title)

	exact, err := CompilePattern("^Dune ", false)
	require.NoError(t, err)
	filtered = FilterBooks(books, exact)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Dune", filtered[0].Title)
}

// TestFilterBooksEmptyExpressionIdentity: filtering with an empty
// expression returns a sequence equal, element for element, to the input.
func TestFilterBooksEmptyExpressionIdentity(t *testing.T) {
	books := searchFixture()
	m, err := CompilePattern("", false)
	require.NoError(t, err)

	assert.Equal(t, books, FilterBooks(books, m))
}

func TestFilterBooksPreservesOrder(t *testing.T) {
	books := searchFixture()
	m, err := CompilePattern("a", false)
	require.NoError(t, err)

	filtered := FilterBooks(books, m)
	require.Len(t, filtered, 3)
	for i := range filtered {
		assert.Equal(t, books[i].ID, filtered[i].ID)
	}
}

func TestHighlightHTML(t *testing.T) {
	m, err := CompilePattern("du", false)
	require.NoError(t, err)

	assert.Equal(t, "<mark>Du</mark>ne", HighlightHTML("Dune", m))
}

func TestHighlightHTMLEscapesFirst(t *testing.T) {
	m, err := CompilePattern("script", false)
	require.NoError(t, err)

	marked := HighlightHTML("<script>alert(1)</script>", m)
	assert.NotContains(t, marked, "<script>")
	assert.Contains(t, marked, "<mark>script</mark>")
}

func TestHighlightHTMLNilMatcher(t *testing.T) {
	assert.Equal(t, "a &amp; b", HighlightHTML("a & b", nil))
}

func TestHighlightHTMLMatchAll(t *testing.T) {
	m, err := CompilePattern("", false)
	require.NoError(t, err)

	assert.Equal(t, "Dune", HighlightHTML("Dune", m))
}

func TestHighlightHTMLMultipleSpans(t *testing.T) {
	m, err := CompilePattern("an", false)
	require.NoError(t, err)

	assert.Equal(t, "b<mark>an</mark><mark>an</mark>a", HighlightHTML("banana", m))
}
