package analytics

import (
	"regexp"
	"strings"
	"time"

	"github.com/addislabs/cropsight/internal/dataset"
)

// Shipment is an externally tracked logistics record folded into the
// dashboard; shipments are not part of the imported dataset.
type Shipment struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Statuses that mean a shipment is no longer in progress.
const (
	StatusDelivered = "DELIVERED"
	StatusArrived   = "ARRIVED"
	StatusUnknown   = "UNKNOWN"
)

// Keywords are the vocabularies used to locate well-known columns by
// name. The defaults come from trade-dataset conventions; override via
// configuration rather than editing call sites.
type Keywords struct {
	Region  []string `json:"region"`
	Variety []string `json:"variety"`
	Process []string `json:"process"`
	Quality []string `json:"quality"`
	Volume  []string `json:"volume"`
	Value   []string `json:"value"`
	Date    []string `json:"date"`
}

// DefaultKeywords returns the standard column vocabularies.
func DefaultKeywords() Keywords {
	return Keywords{
		Region:  []string{"region", "origin", "zone", "district", "country"},
		Variety: []string{"variety", "cultivar", "bean"},
		Process: []string{"process", "method", "processing"},
		Quality: []string{"score", "quality", "cupping", "grading"},
		Volume:  []string{"volume", "quantity", "bags", "weight", "kg", "tons", "mt", "quintal"},
		Value:   []string{"price", "value", "amount", "usd", "revenue", "fob"},
		Date:    []string{"date", "shipped", "etd", "eta", "harvest", "created"},
	}
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeName lower-cases a field name and collapses non-alphanumeric
// runs to single spaces, so "FOB_Price (USD)" matches "fob price usd".
func NormalizeName(name string) string {
	return strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(name), " "))
}

// FindColumnByKeywords returns the first column whose normalized name
// contains any keyword.
func FindColumnByKeywords(profile *dataset.DatasetProfile, keywords []string) (string, bool) {
	for _, column := range profile.Columns {
		normalized := NormalizeName(column)
		for _, keyword := range keywords {
			if strings.Contains(normalized, strings.ToLower(keyword)) {
				return column, true
			}
		}
	}
	return "", false
}

// FindNumericColumnByKeywords resolves a keyword match that is also a
// numeric column, falling back to scanning numeric columns directly.
func FindNumericColumnByKeywords(profile *dataset.DatasetProfile, keywords []string) (string, bool) {
	if candidate, ok := FindColumnByKeywords(profile, keywords); ok {
		for _, column := range profile.NumericColumns {
			if column == candidate {
				return candidate, true
			}
		}
	}
	for _, column := range profile.NumericColumns {
		normalized := NormalizeName(column)
		for _, keyword := range keywords {
			if strings.Contains(normalized, strings.ToLower(keyword)) {
				return column, true
			}
		}
	}
	return "", false
}

// findDateColumn picks the first inferred date column whose name
// matches the date vocabulary.
func findDateColumn(profile *dataset.DatasetProfile, keywords []string) string {
	for _, column := range profile.DateColumns {
		normalized := NormalizeName(column)
		for _, keyword := range keywords {
			if strings.Contains(normalized, strings.ToLower(keyword)) {
				return column
			}
		}
	}
	return ""
}

// DashboardSummary is the render-ready bundle consumed by the UI and
// the query responder.
type DashboardSummary struct {
	Summary       SummaryBlock            `json:"summary"`
	Metrics       MetricsBlock            `json:"metrics"`
	Segments      SegmentsBlock           `json:"segments"`
	Timeline      TimelineBlock           `json:"timeline"`
	RecentImports []ImportDigest          `json:"recentImports"`
	SampleRows    []SampleRow             `json:"sampleRows"`
	Dataset       *dataset.DatasetProfile `json:"dataset"`
}

type SummaryBlock struct {
	TotalImports           int        `json:"totalImports"`
	TotalRows              int        `json:"totalRows"`
	ColumnCount            int        `json:"columnCount"`
	NumericColumnCount     int        `json:"numericColumnCount"`
	CategoricalColumnCount int        `json:"categoricalColumnCount"`
	LastImportAt           *time.Time `json:"lastImportAt"`
	DataCoveragePct        int        `json:"dataCoveragePct"`
}

type MetricsBlock struct {
	AverageQualityScore *float64       `json:"averageQualityScore"`
	TotalVolume         *float64       `json:"totalVolume"`
	TotalContractValue  *float64       `json:"totalContractValue"`
	ShipmentsInProgress int            `json:"shipmentsInProgress"`
	ShipmentsByStatus   map[string]int `json:"shipmentsByStatus"`
}

type SegmentsBlock struct {
	TopRegions   []FrequencyDatum `json:"topRegions"`
	TopVarieties []FrequencyDatum `json:"topVarieties"`
	TopProcesses []FrequencyDatum `json:"topProcesses"`
}

type TimelineBlock struct {
	RowsPerMonth []TimelineDatum `json:"rowsPerMonth"`
}

type ImportDigest struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	RowCount    int       `json:"rowCount"`
	ColumnCount int       `json:"columnCount"`
	CreatedAt   time.Time `json:"createdAt"`
	Columns     []string  `json:"columns"`
}

type SampleRow struct {
	ID   string                   `json:"id"`
	Data map[string]dataset.Value `json:"data"`
}

// DashboardOptions tunes dashboard composition.
type DashboardOptions struct {
	Keywords       Keywords
	FrequencyLimit int // per segment table, default 6
	RecentImports  int // default 5
	SampleRows     int // default 10
}

// DefaultDashboardOptions returns the standard composition settings.
func DefaultDashboardOptions() DashboardOptions {
	return DashboardOptions{
		Keywords:       DefaultKeywords(),
		FrequencyLimit: DefaultFrequencyLimit,
		RecentImports:  5,
		SampleRows:     10,
	}
}

// BuildDashboard chains the aggregation primitives into the dashboard
// bundle: keyword-resolved metric summaries, segment frequencies, the
// month timeline, and the shipment status breakdown.
func BuildDashboard(profile *dataset.DatasetProfile, shipments []Shipment, opts ...DashboardOptions) *DashboardSummary {
	opt := DefaultDashboardOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.FrequencyLimit <= 0 {
		opt.FrequencyLimit = DefaultFrequencyLimit
	}
	if opt.RecentImports <= 0 {
		opt.RecentImports = 5
	}
	if opt.SampleRows <= 0 {
		opt.SampleRows = 10
	}

	kw := opt.Keywords

	metrics := MetricsBlock{ShipmentsByStatus: map[string]int{}}
	if column, ok := FindNumericColumnByKeywords(profile, kw.Quality); ok {
		metrics.AverageQualityScore = SummarizeNumeric(profile.Rows, column).Average
	}
	if column, ok := FindNumericColumnByKeywords(profile, kw.Volume); ok {
		metrics.TotalVolume = SummarizeNumeric(profile.Rows, column).Total
	}
	if column, ok := FindNumericColumnByKeywords(profile, kw.Value); ok {
		metrics.TotalContractValue = SummarizeNumeric(profile.Rows, column).Total
	}

	for _, shipment := range shipments {
		status := shipment.Status
		if status == "" {
			status = StatusUnknown
		}
		metrics.ShipmentsByStatus[status]++
		if status != StatusDelivered && status != StatusArrived {
			metrics.ShipmentsInProgress++
		}
	}

	segments := SegmentsBlock{
		TopRegions:   []FrequencyDatum{},
		TopVarieties: []FrequencyDatum{},
		TopProcesses: []FrequencyDatum{},
	}
	if column, ok := FindColumnByKeywords(profile, kw.Region); ok {
		segments.TopRegions = Frequency(profile.Rows, column, opt.FrequencyLimit)
	}
	if column, ok := FindColumnByKeywords(profile, kw.Variety); ok {
		segments.TopVarieties = Frequency(profile.Rows, column, opt.FrequencyLimit)
	}
	if column, ok := FindColumnByKeywords(profile, kw.Process); ok {
		segments.TopProcesses = Frequency(profile.Rows, column, opt.FrequencyLimit)
	}

	summary := SummaryBlock{
		TotalImports:           len(profile.Imports),
		TotalRows:              len(profile.Rows),
		ColumnCount:            len(profile.Columns),
		NumericColumnCount:     len(profile.NumericColumns),
		CategoricalColumnCount: len(profile.CategoricalColumns),
		DataCoveragePct:        Coverage(profile),
	}
	if len(profile.Imports) > 0 {
		last := profile.Imports[0].CreatedAt
		summary.LastImportAt = &last
	}

	recent := make([]ImportDigest, 0, opt.RecentImports)
	for i, imp := range profile.Imports {
		if i >= opt.RecentImports {
			break
		}
		recent = append(recent, ImportDigest{
			ID:          imp.ID,
			FileName:    imp.FileName,
			RowCount:    imp.RowCount,
			ColumnCount: len(imp.Columns),
			CreatedAt:   imp.CreatedAt,
			Columns:     imp.Columns,
		})
	}

	samples := make([]SampleRow, 0, opt.SampleRows)
	for i := range profile.Rows {
		if i >= opt.SampleRows {
			break
		}
		samples = append(samples, SampleRow{ID: profile.Rows[i].ID, Data: profile.Rows[i].Data})
	}

	return &DashboardSummary{
		Summary:  summary,
		Metrics:  metrics,
		Segments: segments,
		Timeline: TimelineBlock{
			RowsPerMonth: Timeline(profile.Rows, findDateColumn(profile, kw.Date)),
		},
		RecentImports: recent,
		SampleRows:    samples,
		Dataset:       profile,
	}
}
