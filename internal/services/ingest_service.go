// Package services contains the ingestion orchestrator: the per-run state
// machine that turns discovered CSV files into loaded warehouse tables.
package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/google/uuid"

	"github.com/thaole73/snowload/internal/naming"
	"github.com/thaole73/snowload/internal/schema"
	"github.com/thaole73/snowload/internal/storage"
	"github.com/thaole73/snowload/internal/warehouse"
	"github.com/thaole73/snowload/pkg/snowload"
)

// Consumer-side interfaces over the concrete internal packages, so the
// orchestrator can be unit tested without a filesystem, bucket, or
// warehouse.
type (
	candidateScanner interface {
		Discover(dataDir string) ([]snowload.CandidateFile, error)
	}

	mappingResolver interface {
		Lookup(canonicalName string) (snowload.TableMapping, bool)
	}

	schemaReader interface {
		Read(schemaFile string) (string, error)
	}

	fileOpener interface {
		Open(path string) (fs.File, error)
	}

	runLocker interface {
		Acquire() error
		Release() error
	}
)

// WarehouseTarget names the warehouse-side destination of a run: the schema
// the session pins, the external stage the bulk load reads from, and the
// object key prefix staged files are written under.
type WarehouseTarget struct {
	SchemaName string
	StageName  string
	KeyPrefix  string
}

// IngestService implements the Ingestor interface.
// Thread-Safety: NOT safe for concurrent Ingest() calls on the same
// instance; runs on the same ledger are serialized by the run lock anyway.
type IngestService struct {
	target    WarehouseTarget
	logger    snowload.Logger
	approver  snowload.Approver
	scanner   candidateScanner
	registry  mappingResolver
	schemas   schemaReader
	ledger    snowload.Ledger
	lock      runLocker
	stager    snowload.ObjectStager
	connector snowload.WarehouseConnector
	opener    fileOpener

	// Overridable in tests
	now      func() time.Time
	newRunID func() string
}

// NewIngestService creates an IngestService with all dependencies injected.
//
// Panics on nil dependencies: those are programmer errors that should fail
// loudly at startup, not surface as nil dereferences mid-run. Runtime
// conditions (bad config, unreachable warehouse) are returned as errors by
// Ingest instead.
func NewIngestService(
	target WarehouseTarget,
	logger snowload.Logger,
	approver snowload.Approver,
	scanner candidateScanner,
	registry mappingResolver,
	schemas schemaReader,
	ledger snowload.Ledger,
	lock runLocker,
	stager snowload.ObjectStager,
	connector snowload.WarehouseConnector,
	opener fileOpener,
) *IngestService {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if registry == nil {
		panic("registry cannot be nil")
	}
	if schemas == nil {
		panic("schemas cannot be nil")
	}
	if ledger == nil {
		panic("ledger cannot be nil")
	}
	if lock == nil {
		panic("lock cannot be nil")
	}
	if stager == nil {
		panic("stager cannot be nil")
	}
	if connector == nil {
		panic("connector cannot be nil")
	}
	if opener == nil {
		panic("opener cannot be nil")
	}

	return &IngestService{
		target:    target,
		logger:    logger,
		approver:  approver,
		scanner:   scanner,
		registry:  registry,
		schemas:   schemas,
		ledger:    ledger,
		lock:      lock,
		stager:    stager,
		connector: connector,
		opener:    opener,
		now:       time.Now,
		newRunID:  uuid.NewString,
	}
}

// Ingest executes one run using the provided configuration.
// This method orchestrates the run by calling smaller, focused methods.
func (s *IngestService) Ingest(ctx context.Context, config snowload.IngestConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	runID := s.newRunID()
	mode := "incremental"
	if config.FullRefresh {
		mode = "full refresh"
	}
	s.logger.Info("Starting %s run %s", mode, runID)

	if err := s.lock.Acquire(); err != nil {
		return err
	}
	defer s.lock.Release()

	candidates, err := s.scanner.Discover(config.DataDir)
	if err != nil {
		return err
	}
	s.logger.Verbose("Discovered %d candidate file(s) in %s", len(candidates), config.DataDir)

	session, err := s.connector.Connect(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	workSet, err := s.planWorkSet(ctx, config, candidates)
	if err != nil {
		return err
	}
	if len(workSet) == 0 {
		s.logger.Info("Nothing to ingest: no unprocessed candidate files")
		return nil
	}

	if err := session.Exec(ctx, warehouse.UseSchemaStatement(s.target.SchemaName)); err != nil {
		return fmt.Errorf("failed to select schema %s: %w", s.target.SchemaName, err)
	}

	loaded := 0
	for _, candidate := range workSet {
		ok, err := s.processFile(ctx, session, config, candidate)
		if err != nil {
			return err
		}
		if ok {
			loaded++
		}
	}

	s.logger.Info("Run %s complete: %d file(s) loaded, %d skipped", runID, loaded, len(workSet)-loaded)
	return nil
}

// planWorkSet resolves the files this run will attempt. A full refresh is
// gated by the approver and wipes the ledger; an incremental run diffs the
// candidates against the ledger.
func (s *IngestService) planWorkSet(ctx context.Context, config snowload.IngestConfig, candidates []snowload.CandidateFile) ([]snowload.CandidateFile, error) {
	if config.FullRefresh {
		approved, err := s.approver.RequestApproval(ctx, s.target.SchemaName)
		if err != nil {
			return nil, fmt.Errorf("approval failed: %w", err)
		}
		if !approved {
			return nil, fmt.Errorf("full refresh not approved: %w", snowload.ErrApprovalDenied)
		}
		if err := s.ledger.Reset(); err != nil {
			return nil, fmt.Errorf("failed to reset ledger: %w", err)
		}
		s.logger.Verbose("Ledger reset; all %d candidate(s) queued", len(candidates))
		return candidates, nil
	}

	processed, err := s.ledger.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	var workSet []snowload.CandidateFile
	for _, candidate := range candidates {
		if _, done := processed[candidate.Path]; done {
			s.logger.Verbose("Skipping %s: already ingested", candidate.Name)
			continue
		}
		workSet = append(workSet, candidate)
	}
	return workSet, nil
}

// processFile runs the per-file pipeline: resolve mapping, read and rewrite
// DDL, stage to S3, create table, bulk load, commit to the ledger. Mapping
// and schema-file misses skip the file (returning false, nil); everything
// after staging begins is fatal.
func (s *IngestService) processFile(ctx context.Context, session snowload.WarehouseSession, config snowload.IngestConfig, candidate snowload.CandidateFile) (bool, error) {
	canonical := naming.Canonical(candidate.Name)

	target, found := s.registry.Lookup(canonical)
	if !found {
		s.logger.Warn("Skipping %s: no table mapping for %s", candidate.Name, canonical)
		return false, nil
	}

	ddl, err := s.schemas.Read(target.SchemaFile)
	if err != nil {
		if errors.Is(err, schema.ErrSchemaFileNotFound) {
			s.logger.Warn("Skipping %s: %v", candidate.Name, err)
			return false, nil
		}
		return false, err
	}

	rewritten, err := schema.Rewrite(ddl, config.FullRefresh)
	if err != nil {
		return false, fmt.Errorf("schema file %s: %w", target.SchemaFile, err)
	}

	key := storage.ObjectKey(s.target.KeyPrefix, s.now().UTC(), candidate.Name)
	if err := s.stageFile(ctx, candidate.Path, key); err != nil {
		return false, err
	}
	s.logger.Verbose("Staged %s as %s", candidate.Name, key)

	if err := session.Exec(ctx, rewritten); err != nil {
		return false, fmt.Errorf("failed to create table %s: %w", target.TableName, err)
	}

	reports, err := session.Load(ctx, warehouse.CopyIntoStatement(target.TableName, s.target.StageName, key))
	if err != nil {
		return false, fmt.Errorf("failed to load %s into %s: %w", candidate.Name, target.TableName, err)
	}
	s.reportLoad(candidate.Name, target.TableName, reports)

	if err := s.ledger.Commit(candidate.Path); err != nil {
		return false, fmt.Errorf("failed to commit %s to ledger: %w", candidate.Path, err)
	}

	return true, nil
}

func (s *IngestService) stageFile(ctx context.Context, path, key string) error {
	f, err := s.opener.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w: %w", path, snowload.ErrStagingFailed, err)
	}
	defer f.Close()

	if err := s.stager.Stage(ctx, key, f); err != nil {
		return fmt.Errorf("%w: %w", snowload.ErrStagingFailed, err)
	}
	return nil
}

// reportLoad surfaces the warehouse's per-file load report. Rejected rows
// under the permissive error policy do not fail the run, but they must not
// pass silently either.
func (s *IngestService) reportLoad(fileName, tableName string, reports []snowload.LoadReport) {
	for _, report := range reports {
		if report.ErrorsSeen > 0 {
			s.logger.Warn("Loaded %s into %s with %d rejected row(s) (first: %s)",
				fileName, tableName, report.ErrorsSeen, report.FirstError)
			continue
		}
		s.logger.Info("Loaded %s into %s: %d row(s)", fileName, tableName, report.RowsLoaded)
	}
	if len(reports) == 0 {
		s.logger.Info("Loaded %s into %s", fileName, tableName)
	}
}

// Verify IngestService implements the interface at compile time
var _ snowload.Ingestor = (*IngestService)(nil)
