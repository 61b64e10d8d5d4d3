// internal/data/stats.go
// Dashboard statistics over the full, unfiltered collection. Everything
// here is recomputed from scratch on each call; there is no incremental
// state to keep consistent with the repository.
package data

import (
	"math"
	"sort"
	"time"
)

// Summary holds the headline numbers shown on the dashboard.
type Summary struct {
	TotalBooks     int    `json:"total_books"`
	TotalPages     int    `json:"total_pages"`
	AveragePages   int    `json:"average_pages"`
	TopAuthor      string `json:"top_author"`
	TopAuthorCount int    `json:"top_author_count"`
	TopTag         string `json:"top_tag"`
	TopTagCount    int    `json:"top_tag_count"`
	Weekdays       [7]int `json:"weekdays"` // Sunday-first: index 0=Sunday .. 6=Saturday
}

// TagSlice is one bucket of the tag distribution, sized for a radial
// chart. StartDegrees/SweepDegrees are accumulated in floating point so
// the slices of one distribution always partition a full 360 degrees.
type TagSlice struct {
	Label        string  `json:"label"`
	Count        int     `json:"count"`
	StartDegrees float64 `json:"start_degrees"`
	SweepDegrees float64 `json:"sweep_degrees"`
}

// UncategorizedLabel is the bucket used for records without a tag.
const UncategorizedLabel = "Uncategorized"

// OtherLabel is the synthetic bucket that absorbs every tag beyond the
// top five.
const OtherLabel = "Other"

// maxTagSlices is how many real tag buckets are kept before folding the
// remainder into OtherLabel.
const maxTagSlices = 5

// Summarize computes the dashboard summary for books.
// Page counts that fail to parse contribute zero to the totals. The
// average rounds half up and is zero for an empty collection. Top author
// and top tag break count ties in favor of the value encountered first.
func Summarize(books []Book) Summary {
	summary := Summary{TotalBooks: len(books)}

	for _, book := range books {
		summary.TotalPages += parsePages(book.Pages)

		// Records with missing or unparseable dates are skipped, not errored.
		if t, err := parseWeekday(book.Date); err == nil {
			summary.Weekdays[t]++
		}
	}

	if len(books) > 0 {
		avg := float64(summary.TotalPages) / float64(len(books))
		summary.AveragePages = int(math.Floor(avg + 0.5))
	}

	summary.TopAuthor, summary.TopAuthorCount = topValue(books, func(b Book) string { return b.Author })
	summary.TopTag, summary.TopTagCount = topValue(books, func(b Book) string { return b.Tag })
	return summary
}

// parseWeekday returns the Sunday-first weekday index for a YYYY-MM-DD
// date. Go's time.Weekday already numbers Sunday as 0.
func parseWeekday(date string) (int, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// topValue finds the value of key with the highest occurrence count.
// The first value to reach the eventual maximum wins; later values with
// an equal count do not displace it. An empty collection yields "".
func topValue(books []Book, key func(Book) string) (string, int) {
	counts := make(map[string]int)
	best, bestCount := "", 0
	for _, book := range books {
		k := key(book)
		if k == "" {
			continue
		}
		counts[k]++
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best, bestCount
}

// TagDistribution frequency-counts every tag (empty tags grouped under
// UncategorizedLabel), orders the buckets by descending count with
// first-encountered tie-breaking, keeps the top five, and folds the rest
// into a single OtherLabel bucket. Each retained bucket is assigned its
// proportional slice of 360 degrees with a running start offset.
func TagDistribution(books []Book) []TagSlice {
	if len(books) == 0 {
		return []TagSlice{}
	}

	// Count in first-encountered order so ties sort deterministically.
	counts := make(map[string]int)
	order := []string{}
	for _, book := range books {
		label := book.Tag
		if label == "" {
			label = UncategorizedLabel
		}
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	// Stable sort preserves encounter order between equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	slices := []TagSlice{}
	for i, label := range order {
		if i < maxTagSlices {
			slices = append(slices, TagSlice{Label: label, Count: counts[label]})
			continue
		}
		if len(slices) == maxTagSlices {
			slices = append(slices, TagSlice{Label: OtherLabel})
		}
		slices[maxTagSlices].Count += counts[label]
	}

	// Accumulate angles in floating point with no per-bucket rounding so
	// the final slice ends exactly at 360 degrees.
	total := 0
	for _, s := range slices {
		total += s.Count
	}
	offset := 0.0
	for i := range slices {
		sweep := float64(slices[i].Count) / float64(total) * 360.0
		slices[i].StartDegrees = offset
		slices[i].SweepDegrees = sweep
		offset += sweep
	}
	return slices
}
