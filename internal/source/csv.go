package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/addislabs/cropsight/internal/dataset"
)

// LoadCSVBatch reads a delimited file into one import batch. The header
// row becomes the declared column list; every following record becomes
// one raw row keyed by header name. Cell values stay strings, the
// profiler normalizes them later.
func LoadCSVBatch(path string) (dataset.ImportBatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataset.ImportBatch{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = sniffDelimiter(path)

	info, err := f.Stat()
	if err != nil {
		return dataset.ImportBatch{}, fmt.Errorf("stat csv: %w", err)
	}
	batch := dataset.ImportBatch{
		ID:        uuid.NewString(),
		FileName:  filepath.Base(path),
		CreatedAt: info.ModTime(),
	}

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return batch, nil
		}
		return dataset.ImportBatch{}, fmt.Errorf("read csv header: %w", err)
	}
	for _, name := range header {
		batch.Columns = append(batch.Columns, strings.TrimSpace(name))
	}

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dataset.ImportBatch{}, fmt.Errorf("read csv row: %w", err)
		}
		data := make(map[string]any, len(batch.Columns))
		for i, cell := range record {
			if i >= len(batch.Columns) {
				break
			}
			data[batch.Columns[i]] = cell
		}
		batch.Rows = append(batch.Rows, dataset.RawRow{
			ID:        uuid.NewString(),
			CreatedAt: batch.CreatedAt,
			Data:      data,
		})
	}
	return batch, nil
}

func isDelimited(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

// sniffDelimiter keys off the extension only; reading the file twice is
// not worth it for the two formats in play.
func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
