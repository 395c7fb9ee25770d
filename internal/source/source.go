// Package source is the record-source collaborator for the CLI: it
// loads import batches from JSON or delimited files and shipment
// records from JSON, filling in the identifiers the profiling core
// expects.
package source

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/addislabs/cropsight/internal/analytics"
	"github.com/addislabs/cropsight/internal/dataset"
)

// LoadBatches reads one import batch per file, dispatching on the
// extension: .csv and .tsv files load as delimited tables, everything
// else as JSON. A JSON file may hold a single batch object or an array
// of batches. Missing batch and row IDs are backfilled with fresh
// UUIDs; a missing batch timestamp falls back to the file's
// modification time so import ordering stays meaningful.
func LoadBatches(paths []string) ([]dataset.ImportBatch, error) {
	var batches []dataset.ImportBatch
	for _, path := range paths {
		if isDelimited(path) {
			batch, err := LoadCSVBatch(path)
			if err != nil {
				return nil, err
			}
			batches = append(batches, batch)
			continue
		}
		loaded, err := loadBatchFile(path)
		if err != nil {
			return nil, err
		}
		batches = append(batches, loaded...)
	}
	return batches, nil
}

func loadBatchFile(path string) ([]dataset.ImportBatch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}

	var batches []dataset.ImportBatch
	if err := json.Unmarshal(raw, &batches); err != nil {
		var single dataset.ImportBatch
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("decode batch file %s: %w", path, err)
		}
		batches = []dataset.ImportBatch{single}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat batch file: %w", err)
	}

	for i := range batches {
		batch := &batches[i]
		if batch.ID == "" {
			batch.ID = uuid.NewString()
		}
		if batch.FileName == "" {
			batch.FileName = path
		}
		if batch.CreatedAt.IsZero() {
			batch.CreatedAt = info.ModTime()
		}
		for j := range batch.Rows {
			row := &batch.Rows[j]
			if row.ID == "" {
				row.ID = uuid.NewString()
			}
			if row.CreatedAt.IsZero() {
				row.CreatedAt = batch.CreatedAt
			}
		}
	}
	return batches, nil
}

// LoadShipments reads an array of shipment records from a JSON file.
func LoadShipments(path string) ([]analytics.Shipment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shipments file: %w", err)
	}
	var shipments []analytics.Shipment
	if err := json.Unmarshal(raw, &shipments); err != nil {
		return nil, fmt.Errorf("decode shipments file %s: %w", path, err)
	}
	for i := range shipments {
		if shipments[i].ID == "" {
			shipments[i].ID = uuid.NewString()
		}
	}
	return shipments, nil
}
