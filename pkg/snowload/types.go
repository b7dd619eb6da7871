package snowload

import (
	"errors"
	"fmt"
	"time"
)

// IngestConfig contains all parameters needed for one ingestion run.
type IngestConfig struct {
	// DataDir is the directory scanned for candidate CSV files
	DataDir string

	// SchemaDir is the directory holding one DDL file per raw table
	SchemaDir string

	// LedgerPath is the processed-file log location
	LedgerPath string

	// FullRefresh discards ingestion history and recreates target tables.
	// When false the run is incremental: only files absent from the ledger
	// are processed and existing tables are preserved.
	FullRefresh bool

	// Force bypasses interactive approval for full-refresh runs
	Force bool

	// Timeout is catastrophic-failure protection for the entire run
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the IngestConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *IngestConfig) Validate() error {
	var errs []error

	if c.DataDir == "" {
		errs = append(errs, fmt.Errorf("DataDir is required: %w", ErrInvalidConfig))
	}

	if c.SchemaDir == "" {
		errs = append(errs, fmt.Errorf("SchemaDir is required: %w", ErrInvalidConfig))
	}

	if c.LedgerPath == "" {
		errs = append(errs, fmt.Errorf("LedgerPath is required: %w", ErrInvalidConfig))
	}

	if c.Force && !c.FullRefresh {
		errs = append(errs, fmt.Errorf("force flag requires full refresh to be enabled: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// CandidateFile is a local file discovered during a run. Candidates are
// ephemeral: they are rediscovered by directory scan on every run and never
// persisted.
type CandidateFile struct {
	// Path is the file path as recorded in the ledger
	Path string

	// Name is the basename, e.g. "ratings_20240721.csv"
	Name string
}

// TableMapping resolves a canonical filename to its warehouse target.
type TableMapping struct {
	// TableName is the raw table the file loads into, e.g. "raw_ratings"
	TableName string

	// SchemaFile is the DDL file name inside SchemaDir, e.g. "raw_ratings.sql"
	SchemaFile string
}

// LoadReport summarizes one bulk-load command as reported by the warehouse.
// With the permissive per-row error policy the load succeeds even when
// individual rows are rejected; callers inspect ErrorsSeen to surface that.
type LoadReport struct {
	// File is the staged object the warehouse read from
	File string

	// Status is the warehouse's per-file load status, e.g. "LOADED",
	// "PARTIALLY_LOADED"
	Status string

	// RowsParsed is the number of rows read from the staged object
	RowsParsed int64

	// RowsLoaded is the number of rows written to the target table
	RowsLoaded int64

	// ErrorsSeen is the number of rejected rows (skipped, not fatal)
	ErrorsSeen int64

	// FirstError describes the first rejected row, if any
	FirstError string
}
