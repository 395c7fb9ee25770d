package dataset

import "time"

// RawRow is one record as delivered by the record source. Data is
// either a key/value object or a JSON string encoding one; anything
// else is treated as malformed and yields an empty ParsedRow.
type RawRow struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Data      any       `json:"rawData"`
}

// ImportBatch is one uploaded batch of rows with shared declared columns.
type ImportBatch struct {
	ID        string    `json:"id"`
	FileName  string    `json:"fileName"`
	Columns   []string  `json:"declaredColumns"`
	CreatedAt time.Time `json:"createdAt"`
	Rows      []RawRow  `json:"rows"`
}

// ParsedRow is the normalized form of a RawRow. Keys absent from Data
// resolve to Null via Value.
type ParsedRow struct {
	ID        string           `json:"id"`
	ImportID  string           `json:"importId"`
	CreatedAt time.Time        `json:"createdAt"`
	Data      map[string]Value `json:"data"`
}

// Value returns the normalized value for a column, Null when absent.
func (r *ParsedRow) Value(column string) Value {
	if v, ok := r.Data[column]; ok {
		return v
	}
	return Null
}

// Import is the profiled form of one batch: metadata plus its own rows.
// Columns is the batch's declared header, independent of the globally
// observed field set.
type Import struct {
	ID        string      `json:"id"`
	FileName  string      `json:"fileName"`
	RowCount  int         `json:"rowCount"`
	Columns   []string    `json:"columns"`
	CreatedAt time.Time   `json:"createdAt"`
	Rows      []ParsedRow `json:"rows"`
}

// ColumnType is the inferred type of a field.
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeDate        ColumnType = "date"
)

// ColumnProfile is the inferred type and statistics for one field.
type ColumnProfile struct {
	Type         ColumnType `json:"type"`
	UniqueValues int        `json:"uniqueValues"`
	SampleValues []string   `json:"sampleValues"`
}

// DatasetProfile is the unified view over every import: all rows, the
// de-duplicated field set, the type partition, and per-field profiles.
// NumericColumns, CategoricalColumns, and DateColumns partition Columns.
type DatasetProfile struct {
	Imports            []Import                 `json:"imports"`
	Rows               []ParsedRow              `json:"rows"`
	Columns            []string                 `json:"columns"`
	NumericColumns     []string                 `json:"numericColumns"`
	CategoricalColumns []string                 `json:"categoricalColumns"`
	DateColumns        []string                 `json:"dateColumns"`
	ColumnProfiles     map[string]ColumnProfile `json:"columnProfiles"`
}

// NewEmptyProfile returns a structurally valid profile with no data.
func NewEmptyProfile() *DatasetProfile {
	return &DatasetProfile{
		Imports:            []Import{},
		Rows:               []ParsedRow{},
		Columns:            []string{},
		NumericColumns:     []string{},
		CategoricalColumns: []string{},
		DateColumns:        []string{},
		ColumnProfiles:     map[string]ColumnProfile{},
	}
}
