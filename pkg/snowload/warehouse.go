package snowload

import "context"

// WarehouseConnector establishes warehouse sessions. Different
// implementations can handle different drivers or authentication methods;
// the shipped implementation speaks to Snowflake through database/sql.
type WarehouseConnector interface {
	// Connect establishes a warehouse session.
	// The returned session must be closed by the caller when done.
	Connect(ctx context.Context) (WarehouseSession, error)
}

// WarehouseSession abstracts the warehouse operations the orchestrator
// needs. The abstraction decouples the ingestion state machine from the
// driver, which keeps the orchestrator testable without a live warehouse.
//
// Thread-Safety: NOT safe for concurrent use. Runs are fully sequential and
// hold exactly one session.
type WarehouseSession interface {
	// Exec executes a statement that returns no interesting rows
	// (USE SCHEMA, CREATE TABLE variants).
	Exec(ctx context.Context, statement string) error

	// Load executes a bulk-load statement and returns the warehouse's
	// per-file report. Rejected rows under the permissive error policy are
	// reported, not returned as an error.
	Load(ctx context.Context, statement string) ([]LoadReport, error)

	// Close releases the underlying connection. Safe to call on every exit
	// path; must be called exactly once per session.
	Close() error
}
