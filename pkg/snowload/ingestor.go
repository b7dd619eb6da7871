package snowload

import "context"

// Ingestor is the main interface for executing ingestion runs.
// Implementations handle the full workflow: candidate discovery, work-set
// planning against the ledger, staging, table creation, bulk load, and
// ledger commit.
type Ingestor interface {
	// Ingest executes one run using the provided configuration.
	// It returns an error if the run fails at any fatal stage; per-file
	// mapping and schema misses are skipped, not failed.
	Ingest(ctx context.Context, config IngestConfig) error
}

// Planner computes the work set a run would process without performing any
// staging or warehouse work. Used by the plan (dry-run) command.
type Planner interface {
	// Plan returns the candidates that an ingestion run with this
	// configuration would attempt, in processing order.
	Plan(ctx context.Context, config IngestConfig) ([]PlannedFile, error)
}

// PlannedFile is one work-set entry produced by a Planner.
type PlannedFile struct {
	// Candidate is the discovered local file
	Candidate CandidateFile

	// CanonicalName is the date-stripped mapping key
	CanonicalName string

	// TableName is the resolved target table; empty when the mapping is unknown
	TableName string

	// SchemaFile is the resolved DDL file name; empty when the mapping is unknown
	SchemaFile string

	// Skip marks files the run would skip, with the reason in SkipReason
	Skip bool

	// SkipReason explains a skip: unknown mapping or missing DDL file
	SkipReason string
}
