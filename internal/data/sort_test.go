package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortFixture() []Book {
	return []Book{
		{ID: "1", Title: "zen", Pages: "300", Date: "2025-03-01"},
		{ID: "2", Title: "Arrival", Pages: "90", Date: "2025-01-15"},
		{ID: "3", Title: "middlemarch", Pages: "880", Date: "2025-02-20"},
	}
}

func titles(books []Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestSortBooksByDate(t *testing.T) {
	sorted := SortBooks(sortFixture(), "date")
	assert.Equal(t, []string{"Arrival", "middlemarch", "zen"}, titles(sorted))

	sorted = SortBooks(sortFixture(), "-date")
	assert.Equal(t, []string{"zen", "middlemarch", "Arrival"}, titles(sorted))
}

func TestSortBooksByTitleIsCaseFolded(t *testing.T) {
	sorted := SortBooks(sortFixture(), "title")
	assert.Equal(t, []string{"Arrival", "middlemarch", "zen"}, titles(sorted))

	sorted = SortBooks(sortFixture(), "-title")
	assert.Equal(t, []string{"zen", "middlemarch", "Arrival"}, titles(sorted))
}

// TestSortBooksByPagesIsNumeric: "90" must sort below "300" and "880",
// which a lexicographic comparison would get wrong.
func TestSortBooksByPagesIsNumeric(t *testing.T) {
	sorted := SortBooks(sortFixture(), "pages")
	assert.Equal(t, []string{"Arrival", "zen", "middlemarch"}, titles(sorted))

	sorted = SortBooks(sortFixture(), "-pages")
	assert.Equal(t, []string{"middlemarch", "zen", "Arrival"}, titles(sorted))
}

func TestSortBooksUnknownCriterionKeepsOrder(t *testing.T) {
	books := sortFixture()
	assert.Equal(t, books, SortBooks(books, "isbn"))
	assert.Equal(t, books, SortBooks(books, ""))
}

func TestSortBooksDoesNotMutateInput(t *testing.T) {
	books := sortFixture()
	original := make([]Book, len(books))
	copy(original, books)

	_ = SortBooks(books, "title")
	assert.Equal(t, original, books)
}

// TestSortBooksIdempotent: sorting an already-sorted collection by the
// same criterion yields the identical sequence.
func TestSortBooksIdempotent(t *testing.T) {
	once := SortBooks(sortFixture(), "pages")
	twice := SortBooks(once, "pages")
	assert.Equal(t, once, twice)
}

// TestSortBooksStable: records that compare equal keep their original
// relative order.
func TestSortBooksStable(t *testing.T) {
	books := []Book{
		{ID: "a", Title: "Same", Pages: "100", Date: "2025-01-01"},
		{ID: "b", Title: "Same", Pages: "100", Date: "2025-01-01"},
		{ID: "c", Title: "Same", Pages: "100", Date: "2025-01-01"},
	}

	for _, criterion := range SortSafeList {
		sorted := SortBooks(books, criterion)
		require.Len(t, sorted, 3)
		assert.Equal(t, "a", sorted[0].ID, "criterion %s", criterion)
		assert.Equal(t, "b", sorted[1].ID, "criterion %s", criterion)
		assert.Equal(t, "c", sorted[2].ID, "criterion %s", criterion)
	}
}

func TestSortBooksUnparseableValues(t *testing.T) {
	books := []Book{
		{ID: "1", Title: "Good", Pages: "200", Date: "2025-06-01"},
		{ID: "2", Title: "Bad", Pages: "lots", Date: "not-a-date"},
	}

	// Unparseable pages count as zero, unparseable dates as the zero time,
	// so the damaged record sorts first in ascending order.
	sorted := SortBooks(books, "pages")
	assert.Equal(t, "2", sorted[0].ID)

	sorted = SortBooks(books, "date")
	assert.Equal(t, "2", sorted[0].ID)
}
