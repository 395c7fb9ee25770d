package analytics

import (
	"sort"
	"strings"

	"github.com/addislabs/cropsight/internal/dataset"
)

// DefaultFrequencyLimit caps frequency tables unless the caller asks
// for more. UI-facing calls may request up to 20.
const DefaultFrequencyLimit = 6

// FrequencyDatum is one bucket of a frequency table.
type FrequencyDatum struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// UnspecifiedBucket collects rows whose dimension value is empty or absent.
const UnspecifiedBucket = "Unspecified"

// ColumnValues returns the non-null normalized values of a column.
func ColumnValues(rows []dataset.ParsedRow, column string) []dataset.Value {
	var values []dataset.Value
	for i := range rows {
		v := rows[i].Value(column)
		if v.IsNull() {
			continue
		}
		values = append(values, v)
	}
	return values
}

// Frequency groups rows by the string form of a column's value and
// returns the top buckets by count. Every row lands in exactly one
// bucket, so the unlimited table's counts sum to len(rows). Ties keep
// first-encounter order.
func Frequency(rows []dataset.ParsedRow, column string, limit int) []FrequencyDatum {
	if limit <= 0 {
		limit = DefaultFrequencyLimit
	}

	counts := make(map[string]int)
	order := make([]string, 0)

	for i := range rows {
		key := strings.TrimSpace(rows[i].Value(column).String())
		if key == "" {
			key = UnspecifiedBucket
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	table := make([]FrequencyDatum, 0, len(order))
	for _, name := range order {
		table = append(table, FrequencyDatum{Name: name, Count: counts[name]})
	}
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Count > table[j].Count
	})
	if len(table) > limit {
		table = table[:limit]
	}
	return table
}

// AggregationRequest asks for one grouped view: rows grouped by
// Dimension, with count|sum|average over an optional numeric Metric,
// optionally scoped to a single import.
type AggregationRequest struct {
	Dimension   string `json:"dimension"`
	Metric      string `json:"metric,omitempty"`
	Aggregation string `json:"aggregation"`
	ImportScope string `json:"importScope,omitempty"`
}

// AggregateDatum is one group of an aggregation result.
type AggregateDatum struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// Aggregate executes an AggregationRequest against a profile. A
// missing dimension or metric produces empty or zero-valued groups,
// never an error. Results are ordered by value descending; limit <= 0
// means uncapped.
func Aggregate(profile *dataset.DatasetProfile, req AggregationRequest, limit int) []AggregateDatum {
	type groupAcc struct {
		count    int
		total    float64
		numCount int
	}

	accs := make(map[string]*groupAcc)
	order := make([]string, 0)

	for i := range profile.Rows {
		row := &profile.Rows[i]
		if req.ImportScope != "" && row.ImportID != req.ImportScope {
			continue
		}
		key := strings.TrimSpace(row.Value(req.Dimension).String())
		if key == "" {
			key = UnspecifiedBucket
		}
		acc, ok := accs[key]
		if !ok {
			acc = &groupAcc{}
			accs[key] = acc
			order = append(order, key)
		}
		acc.count++
		if req.Metric != "" {
			if v := row.Value(req.Metric); v.Kind == dataset.KindNumber {
				acc.total += v.Num
				acc.numCount++
			}
		}
	}

	result := make([]AggregateDatum, 0, len(order))
	for _, name := range order {
		acc := accs[name]
		datum := AggregateDatum{Name: name, Count: acc.count, Total: acc.total}
		switch req.Aggregation {
		case "sum":
			datum.Value = acc.total
		case "average":
			if acc.numCount > 0 {
				datum.Value = acc.total / float64(acc.numCount)
			}
		default: // count
			datum.Value = float64(acc.count)
		}
		result = append(result, datum)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Value > result[j].Value
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
