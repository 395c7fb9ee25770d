package analytics

import (
	"testing"
	"time"

	"github.com/addislabs/cropsight/internal/dataset"
)

func row(importID string, created time.Time, data map[string]dataset.Value) dataset.ParsedRow {
	return dataset.ParsedRow{ID: "r", ImportID: importID, CreatedAt: created, Data: data}
}

func sampleRows() []dataset.ParsedRow {
	return []dataset.ParsedRow{
		row("imp-1", time.Time{}, map[string]dataset.Value{
			"Region": dataset.Text("Yirgacheffe"),
			"Score":  dataset.Number(10),
		}),
		row("imp-1", time.Time{}, map[string]dataset.Value{
			"Region": dataset.Text("Guji"),
			"Score":  dataset.Number(20),
		}),
		row("imp-2", time.Time{}, map[string]dataset.Value{
			"Region": dataset.Text("Yirgacheffe"),
			"Score":  dataset.Null,
		}),
		row("imp-2", time.Time{}, map[string]dataset.Value{
			"Region": dataset.Text(""),
			"Score":  dataset.Number(30),
		}),
	}
}

func TestFrequency(t *testing.T) {
	rows := sampleRows()

	table := Frequency(rows, "Region", 10)
	want := []FrequencyDatum{
		{Name: "Yirgacheffe", Count: 2},
		{Name: "Guji", Count: 1},
		{Name: UnspecifiedBucket, Count: 1},
	}
	if len(table) != len(want) {
		t.Fatalf("Frequency returned %d buckets, want %d", len(table), len(want))
	}
	sum := 0
	for i, datum := range table {
		if datum != want[i] {
			t.Errorf("bucket %d = %+v, want %+v", i, datum, want[i])
		}
		sum += datum.Count
	}
	if sum != len(rows) {
		t.Errorf("bucket counts sum to %d, want %d", sum, len(rows))
	}
}

func TestFrequencyLimit(t *testing.T) {
	rows := make([]dataset.ParsedRow, 0, 10)
	for _, region := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		rows = append(rows, row("imp-1", time.Time{}, map[string]dataset.Value{
			"Region": dataset.Text(region),
		}))
	}

	if got := Frequency(rows, "Region", 3); len(got) != 3 {
		t.Errorf("limit 3 returned %d buckets", len(got))
	}
	// limit <= 0 falls back to the default cap
	if got := Frequency(rows, "Region", 0); len(got) != DefaultFrequencyLimit {
		t.Errorf("limit 0 returned %d buckets, want %d", len(got), DefaultFrequencyLimit)
	}
}

func TestFrequencyAbsentColumn(t *testing.T) {
	rows := sampleRows()
	table := Frequency(rows, "No Such Column", 5)
	if len(table) != 1 || table[0].Name != UnspecifiedBucket || table[0].Count != len(rows) {
		t.Fatalf("absent column table = %+v, want single %q bucket of %d", table, UnspecifiedBucket, len(rows))
	}
}

func TestColumnValues(t *testing.T) {
	rows := sampleRows()
	values := ColumnValues(rows, "Score")
	if len(values) != 3 {
		t.Fatalf("ColumnValues returned %d values, want 3", len(values))
	}
	for _, v := range values {
		if v.IsNull() {
			t.Errorf("ColumnValues leaked a null value: %+v", v)
		}
	}
}

func TestSummarizeNumeric(t *testing.T) {
	rows := sampleRows()
	summary := SummarizeNumeric(rows, "Score")

	checks := []struct {
		name string
		got  *float64
		want float64
	}{
		{"average", summary.Average, 20},
		{"total", summary.Total, 60},
		{"minimum", summary.Minimum, 10},
		{"maximum", summary.Maximum, 30},
	}
	for _, c := range checks {
		if c.got == nil {
			t.Fatalf("%s is nil, want %v", c.name, c.want)
		}
		if *c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, *c.got, c.want)
		}
	}
}

func TestSummarizeNumericNoValues(t *testing.T) {
	rows := sampleRows()
	summary := SummarizeNumeric(rows, "Region")
	if summary.Average != nil || summary.Total != nil || summary.Minimum != nil || summary.Maximum != nil {
		t.Errorf("non-numeric column summary should be all nil, got %+v", summary)
	}
}

func TestAggregate(t *testing.T) {
	profile := &dataset.DatasetProfile{Rows: sampleRows()}

	t.Run("sum", func(t *testing.T) {
		result := Aggregate(profile, AggregationRequest{
			Dimension:   "Region",
			Metric:      "Score",
			Aggregation: "sum",
		}, 0)
		if len(result) != 3 {
			t.Fatalf("got %d groups, want 3", len(result))
		}
		// Unspecified carries the one row with Score 30, Guji 20,
		// Yirgacheffe 10 (its second row has a null score).
		if result[0].Name != UnspecifiedBucket || result[0].Value != 30 {
			t.Errorf("top group = %+v, want Unspecified/30", result[0])
		}
		if result[1].Name != "Guji" || result[1].Value != 20 {
			t.Errorf("second group = %+v, want Guji/20", result[1])
		}
		if result[2].Name != "Yirgacheffe" || result[2].Value != 10 || result[2].Count != 2 {
			t.Errorf("third group = %+v, want Yirgacheffe/10 count 2", result[2])
		}
	})

	t.Run("average skips null metric cells", func(t *testing.T) {
		result := Aggregate(profile, AggregationRequest{
			Dimension:   "Region",
			Metric:      "Score",
			Aggregation: "average",
		}, 0)
		for _, g := range result {
			if g.Name == "Yirgacheffe" && g.Value != 10 {
				t.Errorf("Yirgacheffe average = %v, want 10", g.Value)
			}
		}
	})

	t.Run("count", func(t *testing.T) {
		result := Aggregate(profile, AggregationRequest{
			Dimension:   "Region",
			Aggregation: "count",
		}, 0)
		if result[0].Name != "Yirgacheffe" || result[0].Value != 2 {
			t.Errorf("top count group = %+v, want Yirgacheffe/2", result[0])
		}
	})

	t.Run("import scope", func(t *testing.T) {
		result := Aggregate(profile, AggregationRequest{
			Dimension:   "Region",
			Aggregation: "count",
			ImportScope: "imp-1",
		}, 0)
		total := 0
		for _, g := range result {
			total += g.Count
		}
		if total != 2 {
			t.Errorf("scoped groups cover %d rows, want 2", total)
		}
	})

	t.Run("limit", func(t *testing.T) {
		result := Aggregate(profile, AggregationRequest{
			Dimension:   "Region",
			Aggregation: "count",
		}, 1)
		if len(result) != 1 {
			t.Errorf("limit 1 returned %d groups", len(result))
		}
	})
}

func TestCoverage(t *testing.T) {
	profile := &dataset.DatasetProfile{
		Rows:    sampleRows(),
		Columns: []string{"Region", "Score"},
	}
	// 8 cells, 2 empty (null score, empty region) => 75%.
	if got := Coverage(profile); got != 75 {
		t.Errorf("Coverage = %d, want 75", got)
	}
}

func TestCoverageEmpty(t *testing.T) {
	if got := Coverage(dataset.NewEmptyProfile()); got != 0 {
		t.Errorf("empty profile Coverage = %d, want 0", got)
	}
}

func TestTimeline(t *testing.T) {
	rows := []dataset.ParsedRow{
		row("imp-1", time.Time{}, map[string]dataset.Value{
			"Shipped": dataset.Date("2024-06-05T00:00:00Z"),
		}),
		row("imp-1", time.Time{}, map[string]dataset.Value{
			"Shipped": dataset.Date("2024-06-20T00:00:00Z"),
		}),
		row("imp-1", time.Time{}, map[string]dataset.Value{
			"Shipped": dataset.Text("2024-04-11"),
		}),
		// no date cell, falls back to the row timestamp
		row("imp-1", time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC), map[string]dataset.Value{}),
		// nothing to resolve, skipped
		row("imp-1", time.Time{}, map[string]dataset.Value{}),
	}

	timeline := Timeline(rows, "Shipped")
	want := []TimelineDatum{
		{Label: "Apr 2024", Value: 1, MonthKey: "2024-04"},
		{Label: "May 2024", Value: 1, MonthKey: "2024-05"},
		{Label: "Jun 2024", Value: 2, MonthKey: "2024-06"},
	}
	if len(timeline) != len(want) {
		t.Fatalf("Timeline returned %d buckets, want %d: %+v", len(timeline), len(want), timeline)
	}
	for i, datum := range timeline {
		if datum != want[i] {
			t.Errorf("bucket %d = %+v, want %+v", i, datum, want[i])
		}
	}
}

func TestTimelineWindow(t *testing.T) {
	var rows []dataset.ParsedRow
	for m := 1; m <= 15; m++ {
		created := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, m-1, 0)
		rows = append(rows, row("imp-1", created, map[string]dataset.Value{}))
	}

	timeline := Timeline(rows, "")
	if len(timeline) != TimelineMonths {
		t.Fatalf("Timeline returned %d buckets, want %d", len(timeline), TimelineMonths)
	}
	if timeline[0].MonthKey != "2023-04" {
		t.Errorf("oldest kept bucket = %s, want 2023-04", timeline[0].MonthKey)
	}
	if timeline[len(timeline)-1].MonthKey != "2024-03" {
		t.Errorf("newest bucket = %s, want 2024-03", timeline[len(timeline)-1].MonthKey)
	}
	for i := 1; i < len(timeline); i++ {
		if timeline[i-1].MonthKey >= timeline[i].MonthKey {
			t.Errorf("buckets not strictly ascending at %d: %s >= %s", i, timeline[i-1].MonthKey, timeline[i].MonthKey)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"nil", nil, "—"},
		{"integer", f(42), "42"},
		{"rounded to two decimals", f(1234.5678), "1,234.57"},
		{"grouping", f(1250000), "1,250,000"},
		{"negative", f(-9876.5), "-9,876.5"},
		{"small", f(0.125), "0.13"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatNumber(tt.in); got != tt.want {
				t.Errorf("FormatNumber = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatUSD(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"nil", nil, "—"},
		{"whole", f(1500), "$1,500.00"},
		{"cents", f(12.3), "$12.30"},
		{"negative", f(-42.5), "-$42.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatUSD(tt.in); got != tt.want {
				t.Errorf("FormatUSD = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatInt(t *testing.T) {
	if got := FormatInt(1234567); got != "1,234,567" {
		t.Errorf("FormatInt = %q, want 1,234,567", got)
	}
	if got := FormatInt(999); got != "999" {
		t.Errorf("FormatInt = %q, want 999", got)
	}
}
