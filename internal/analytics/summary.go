package analytics

import (
	"math"

	"github.com/addislabs/cropsight/internal/dataset"
)

// NumericSummary holds sum/average/min/max for one numeric column.
// All four are nil when the column has no finite numeric values;
// callers treat that as "insufficient data", not a fault.
type NumericSummary struct {
	Column  string   `json:"column"`
	Average *float64 `json:"average"`
	Total   *float64 `json:"total"`
	Minimum *float64 `json:"minimum"`
	Maximum *float64 `json:"maximum"`
}

// SummarizeNumeric computes a NumericSummary over the rows where the
// column's normalized value is a finite number.
func SummarizeNumeric(rows []dataset.ParsedRow, column string) NumericSummary {
	var (
		count    int
		total    float64
		min, max float64
	)
	for i := range rows {
		v := rows[i].Value(column)
		if v.Kind != dataset.KindNumber || math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			continue
		}
		if count == 0 || v.Num < min {
			min = v.Num
		}
		if count == 0 || v.Num > max {
			max = v.Num
		}
		total += v.Num
		count++
	}

	summary := NumericSummary{Column: column}
	if count == 0 {
		return summary
	}
	average := total / float64(count)
	summary.Average = &average
	summary.Total = &total
	summary.Minimum = &min
	summary.Maximum = &max
	return summary
}

// Coverage is the share of non-empty cells across the full row-by-column
// matrix, as a rounded integer percentage. Zero rows or columns yield 0.
func Coverage(profile *dataset.DatasetProfile) int {
	totalCells := len(profile.Rows) * len(profile.Columns)
	if totalCells == 0 {
		return 0
	}
	filled := 0
	for i := range profile.Rows {
		for _, column := range profile.Columns {
			if !profile.Rows[i].Value(column).IsNull() {
				filled++
			}
		}
	}
	return int(math.Round(float64(filled) / float64(totalCells) * 100))
}
