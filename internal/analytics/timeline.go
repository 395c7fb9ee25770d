package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/addislabs/cropsight/internal/dataset"
)

// TimelineMonths is the maximum number of month buckets returned.
const TimelineMonths = 12

// TimelineDatum is one month bucket. MonthKey ("2024-06") exists for
// sorting only; Label ("Jun 2024") is what callers display.
type TimelineDatum struct {
	Label    string `json:"label"`
	Value    int    `json:"value"`
	MonthKey string `json:"monthKey"`
}

// Timeline buckets rows by calendar month. Each row's date comes from
// dateColumn when it resolves, otherwise from the row's own creation
// timestamp; rows with neither are skipped. Buckets are ascending
// chronologically, trimmed to the most recent TimelineMonths.
func Timeline(rows []dataset.ParsedRow, dateColumn string) []TimelineDatum {
	counts := make(map[string]int)

	for i := range rows {
		t, ok := resolveRowDate(&rows[i], dateColumn)
		if !ok {
			continue
		}
		key := fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
		counts[key]++
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) > TimelineMonths {
		keys = keys[len(keys)-TimelineMonths:]
	}

	timeline := make([]TimelineDatum, 0, len(keys))
	for _, key := range keys {
		var year, month int
		if _, err := fmt.Sscanf(key, "%d-%d", &year, &month); err != nil {
			continue
		}
		label := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
		timeline = append(timeline, TimelineDatum{
			Label:    label,
			Value:    counts[key],
			MonthKey: key,
		})
	}
	return timeline
}

func resolveRowDate(row *dataset.ParsedRow, dateColumn string) (time.Time, bool) {
	if dateColumn != "" {
		switch v := row.Value(dateColumn); v.Kind {
		case dataset.KindDate:
			if t, err := time.Parse(time.RFC3339, v.Str); err == nil {
				return t.UTC(), true
			}
		case dataset.KindText:
			if t, ok := dataset.ParseDate(v.Str); ok {
				return t.UTC(), true
			}
		}
	}
	if !row.CreatedAt.IsZero() {
		return row.CreatedAt.UTC(), true
	}
	return time.Time{}, false
}
