package dataset

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Options controls profiling behavior. The ratio thresholds are
// empirical; keep the defaults unless a dataset proves them wrong.
type Options struct {
	// NumericRatio is the minimum share of numeric observations for a
	// field to classify as numeric (numeric count must also be >= text).
	NumericRatio float64
	// DateRatio is the minimum share of date observations for a field
	// to classify as date. Numeric wins over date so mostly-numeric
	// fields with occasional date-like strings stay numeric.
	DateRatio float64
	// SampleLimit caps the per-field sample list (first-seen values).
	SampleLimit int
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{
		NumericRatio: 0.45,
		DateRatio:    0.35,
		SampleLimit:  8,
	}
}

// columnAccumulator holds the running observation counts for one field
// during a single profiling pass. It is discarded once the final
// ColumnProfile is produced.
type columnAccumulator struct {
	numeric int
	date    int
	text    int
	samples []string
	unique  map[string]struct{}
}

// InferType classifies a field from its accumulated observation counts.
// A field with no observations defaults to categorical.
func InferType(numeric, date, text int, opt Options) ColumnType {
	total := numeric + date + text
	if total == 0 {
		return TypeCategorical
	}
	if float64(numeric)/float64(total) >= opt.NumericRatio && numeric >= text {
		return TypeNumeric
	}
	if float64(date)/float64(total) >= opt.DateRatio {
		return TypeDate
	}
	return TypeCategorical
}

// Profile merges every import batch into a single DatasetProfile:
// rows normalized to tagged Values, the global field set, and the
// per-field type partition. It never fails; malformed rows contribute
// empty ParsedRows and the output is always structurally valid.
func Profile(batches []ImportBatch, opts ...Options) *DatasetProfile {
	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.SampleLimit <= 0 {
		opt.SampleLimit = 8
	}

	accs := make(map[string]*columnAccumulator)
	var columns []string // field names in first-seen order
	touch := func(name string) *columnAccumulator {
		acc, ok := accs[name]
		if !ok {
			acc = &columnAccumulator{unique: make(map[string]struct{})}
			accs[name] = acc
			columns = append(columns, name)
		}
		return acc
	}

	profile := NewEmptyProfile()

	for _, batch := range batches {
		imp := Import{
			ID:        batch.ID,
			FileName:  batch.FileName,
			RowCount:  len(batch.Rows),
			Columns:   append([]string{}, batch.Columns...),
			CreatedAt: batch.CreatedAt,
			Rows:      []ParsedRow{},
		}

		// Declared-but-absent fields still join the global column set
		// with zero observations.
		for _, col := range batch.Columns {
			touch(col)
		}

		for _, raw := range batch.Rows {
			data := rowData(raw.Data)

			// Sorted key order keeps the column catalog and samples
			// deterministic for identical input.
			keys := make([]string, 0, len(data))
			for k := range data {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			normalized := make(map[string]Value, len(data))
			for _, key := range keys {
				acc := touch(key)
				value, sample := normalizeValue(data[key])

				switch value.Kind {
				case KindNumber:
					acc.numeric++
				case KindDate:
					acc.date++
				default:
					acc.text++
				}

				if sample != "" {
					acc.unique[sample] = struct{}{}
					if len(acc.samples) < opt.SampleLimit {
						acc.samples = append(acc.samples, sample)
					}
				}

				normalized[key] = value
			}

			row := ParsedRow{
				ID:        raw.ID,
				ImportID:  batch.ID,
				CreatedAt: raw.CreatedAt,
				Data:      normalized,
			}
			imp.Rows = append(imp.Rows, row)
			profile.Rows = append(profile.Rows, row)
		}

		profile.Imports = append(profile.Imports, imp)
	}

	for _, column := range columns {
		acc := accs[column]
		colType := InferType(acc.numeric, acc.date, acc.text, opt)
		switch colType {
		case TypeNumeric:
			profile.NumericColumns = append(profile.NumericColumns, column)
		case TypeDate:
			profile.DateColumns = append(profile.DateColumns, column)
		default:
			profile.CategoricalColumns = append(profile.CategoricalColumns, column)
		}
		samples := acc.samples
		if samples == nil {
			samples = []string{}
		}
		profile.ColumnProfiles[column] = ColumnProfile{
			Type:         colType,
			UniqueValues: len(acc.unique),
			SampleValues: samples,
		}
	}
	profile.Columns = append(profile.Columns, columns...)

	// Most recent import first.
	sort.SliceStable(profile.Imports, func(i, j int) bool {
		return profile.Imports[i].CreatedAt.After(profile.Imports[j].CreatedAt)
	})

	return profile
}

// rowData coerces a raw row payload into a key/value map. A string is
// decoded as JSON; a malformed payload yields an empty map so one bad
// row never aborts the batch.
func rowData(raw any) map[string]any {
	switch data := raw.(type) {
	case map[string]any:
		return data
	case string:
		var decoded map[string]any
		if err := json.Unmarshal([]byte(data), &decoded); err != nil {
			return map[string]any{}
		}
		return decoded
	case json.RawMessage:
		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			return map[string]any{}
		}
		return decoded
	default:
		return map[string]any{}
	}
}

// normalizeValue converts one raw cell into its tagged Value plus the
// string form recorded in samples and cardinality sets (empty string
// means: do not record).
func normalizeValue(raw any) (Value, string) {
	switch value := raw.(type) {
	case nil:
		return Null, ""
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return Null, ""
		}
		if looksLikeNumber(trimmed) {
			if n, ok := toNumber(trimmed); ok {
				return Number(n), trimmed
			}
			return Text(trimmed), trimmed
		}
		if looksLikeDate(trimmed) {
			if iso, ok := toISODate(trimmed); ok {
				return Date(iso), iso
			}
			return Text(trimmed), trimmed
		}
		return Text(trimmed), trimmed
	case float64:
		return Number(value), strconv.FormatFloat(value, 'f', -1, 64)
	case float32:
		f := float64(value)
		return Number(f), strconv.FormatFloat(f, 'f', -1, 64)
	case int:
		return Number(float64(value)), strconv.Itoa(value)
	case int64:
		return Number(float64(value)), strconv.FormatInt(value, 10)
	case json.Number:
		if f, err := value.Float64(); err == nil {
			return Number(f), value.String()
		}
		return Text(value.String()), value.String()
	case bool:
		// Booleans are categorical signals, not numeric 0/1.
		s := strconv.FormatBool(value)
		return Text(s), s
	default:
		rendered, err := json.Marshal(value)
		if err != nil {
			return Text(fmt.Sprint(value)), fmt.Sprint(value)
		}
		return Text(string(rendered)), string(rendered)
	}
}

var numberPattern = regexp.MustCompile(`^[-+]?\d+(?:\.\d+)?$`)

func looksLikeNumber(s string) bool {
	return numberPattern.MatchString(stripSeparators(s))
}

func toNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(stripSeparators(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// stripSeparators removes thousands separators and whitespace so
// "1,234.56" and "1 234" read as plain numeric literals.
func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// ParseDate tries the supported date layouts in order.
func ParseDate(s string) (time.Time, bool) {
	if len(s) < 4 {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// looksLikeDate accepts parseable strings whose calendar year falls
// strictly between 1900 and 2100; anything outside is likely a serial
// number or garbage.
func looksLikeDate(s string) bool {
	t, ok := ParseDate(s)
	if !ok {
		return false
	}
	year := t.Year()
	return year > 1900 && year < 2100
}

func toISODate(s string) (string, bool) {
	t, ok := ParseDate(s)
	if !ok {
		return "", false
	}
	return t.UTC().Format(time.RFC3339), true
}
