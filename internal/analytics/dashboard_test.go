package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/addislabs/cropsight/internal/dataset"
)

func dashboardProfile() *dataset.DatasetProfile {
	may := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	june := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	batches := []dataset.ImportBatch{
		{
			ID:        "imp-1",
			FileName:  "may.xlsx",
			CreatedAt: may,
			Rows: []dataset.RawRow{
				{ID: "r1", CreatedAt: may, Data: map[string]any{
					"Region": "Yirgacheffe", "Variety": "Heirloom", "Process": "Washed",
					"Cupping Score": "86.5", "Bags": "320", "FOB Value (USD)": "412000",
					"Shipped Date": "2024-05-03",
				}},
				{ID: "r2", CreatedAt: may, Data: map[string]any{
					"Region": "Guji", "Variety": "74110", "Process": "Natural",
					"Cupping Score": "84", "Bags": "180", "FOB Value (USD)": "198000",
					"Shipped Date": "2024-05-20",
				}},
			},
		},
		{
			ID:        "imp-2",
			FileName:  "june.xlsx",
			CreatedAt: june,
			Rows: []dataset.RawRow{
				{ID: "r3", CreatedAt: june, Data: map[string]any{
					"Region": "Yirgacheffe", "Variety": "Heirloom", "Process": "Honey",
					"Cupping Score": "88", "Bags": "250", "FOB Value (USD)": "330000",
					"Shipped Date": "2024-06-11",
				}},
			},
		},
	}
	return dataset.Profile(batches)
}

func TestFindColumnByKeywords(t *testing.T) {
	profile := dashboardProfile()
	tests := []struct {
		name     string
		keywords []string
		want     string
		ok       bool
	}{
		{"region vocabulary", DefaultKeywords().Region, "Region", true},
		{"quality vocabulary", DefaultKeywords().Quality, "Cupping Score", true},
		{"value vocabulary matches despite punctuation", DefaultKeywords().Value, "FOB Value (USD)", true},
		{"no match", []string{"humidity"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindColumnByKeywords(profile, tt.keywords)
			if got != tt.want || ok != tt.ok {
				t.Errorf("FindColumnByKeywords = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFindNumericColumnByKeywords(t *testing.T) {
	profile := dashboardProfile()

	column, ok := FindNumericColumnByKeywords(profile, DefaultKeywords().Volume)
	if !ok || column != "Bags" {
		t.Errorf("volume column = (%q, %v), want Bags", column, ok)
	}

	// "Region" matches the keyword but is categorical, so the fallback
	// scan must not return it.
	if column, ok := FindNumericColumnByKeywords(profile, []string{"region"}); ok {
		t.Errorf("categorical keyword resolved to numeric column %q", column)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"FOB_Price (USD)", "fob price usd"},
		{"  Cupping Score  ", "cupping score"},
		{"bags", "bags"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildDashboard(t *testing.T) {
	profile := dashboardProfile()
	shipments := []Shipment{
		{ID: "s1", Status: "DELIVERED"},
		{ID: "s2", Status: "IN_TRANSIT"},
		{ID: "s3", Status: "ARRIVED"},
		{ID: "s4", Status: ""},
	}

	board := BuildDashboard(profile, shipments)

	t.Run("summary", func(t *testing.T) {
		s := board.Summary
		if s.TotalImports != 2 || s.TotalRows != 3 {
			t.Errorf("summary counts = %d imports / %d rows, want 2/3", s.TotalImports, s.TotalRows)
		}
		if s.LastImportAt == nil || !s.LastImportAt.Equal(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("LastImportAt = %v, want june import timestamp", s.LastImportAt)
		}
		if s.DataCoveragePct != 100 {
			t.Errorf("DataCoveragePct = %d, want 100", s.DataCoveragePct)
		}
	})

	t.Run("metrics", func(t *testing.T) {
		m := board.Metrics
		if m.AverageQualityScore == nil || math.Abs(*m.AverageQualityScore-258.5/3) > 1e-9 {
			t.Errorf("AverageQualityScore = %v, want ~86.17", m.AverageQualityScore)
		}
		if m.TotalVolume == nil || *m.TotalVolume != 750 {
			t.Errorf("TotalVolume = %v, want 750", m.TotalVolume)
		}
		if m.TotalContractValue == nil || *m.TotalContractValue != 940000 {
			t.Errorf("TotalContractValue = %v, want 940000", m.TotalContractValue)
		}
	})

	t.Run("shipments", func(t *testing.T) {
		m := board.Metrics
		if m.ShipmentsInProgress != 2 {
			t.Errorf("ShipmentsInProgress = %d, want 2", m.ShipmentsInProgress)
		}
		want := map[string]int{"DELIVERED": 1, "IN_TRANSIT": 1, "ARRIVED": 1, StatusUnknown: 1}
		for status, count := range want {
			if m.ShipmentsByStatus[status] != count {
				t.Errorf("ShipmentsByStatus[%s] = %d, want %d", status, m.ShipmentsByStatus[status], count)
			}
		}
	})

	t.Run("segments", func(t *testing.T) {
		top := board.Segments.TopRegions
		if len(top) == 0 || top[0].Name != "Yirgacheffe" || top[0].Count != 2 {
			t.Errorf("TopRegions = %+v, want Yirgacheffe first with 2", top)
		}
		if len(board.Segments.TopProcesses) != 3 {
			t.Errorf("TopProcesses has %d buckets, want 3", len(board.Segments.TopProcesses))
		}
	})

	t.Run("timeline", func(t *testing.T) {
		months := board.Timeline.RowsPerMonth
		if len(months) != 2 {
			t.Fatalf("timeline has %d buckets, want 2: %+v", len(months), months)
		}
		if months[0].MonthKey != "2024-05" || months[0].Value != 2 {
			t.Errorf("first bucket = %+v, want 2024-05/2", months[0])
		}
		if months[1].MonthKey != "2024-06" || months[1].Value != 1 {
			t.Errorf("second bucket = %+v, want 2024-06/1", months[1])
		}
	})

	t.Run("recent imports newest first", func(t *testing.T) {
		recent := board.RecentImports
		if len(recent) != 2 || recent[0].ID != "imp-2" {
			t.Errorf("RecentImports = %+v, want imp-2 first", recent)
		}
	})

	t.Run("sample rows", func(t *testing.T) {
		if len(board.SampleRows) != 3 {
			t.Errorf("SampleRows has %d rows, want 3", len(board.SampleRows))
		}
	})
}

func TestBuildDashboardEmpty(t *testing.T) {
	board := BuildDashboard(dataset.NewEmptyProfile(), nil)
	if board.Summary.TotalRows != 0 || board.Summary.LastImportAt != nil {
		t.Errorf("empty summary = %+v", board.Summary)
	}
	if board.Metrics.AverageQualityScore != nil {
		t.Errorf("empty metrics should have nil quality score")
	}
	if len(board.Segments.TopRegions) != 0 || len(board.Timeline.RowsPerMonth) != 0 {
		t.Errorf("empty dashboard has non-empty segments or timeline")
	}
}
