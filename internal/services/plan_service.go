package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/thaole73/snowload/internal/naming"
	"github.com/thaole73/snowload/internal/schema"
	"github.com/thaole73/snowload/pkg/snowload"
)

// PlanService implements the Planner interface: it computes the work set an
// ingestion run would process without touching S3, the warehouse, or the
// ledger file.
type PlanService struct {
	scanner  candidateScanner
	registry mappingResolver
	schemas  schemaReader
	ledger   snowload.Ledger
}

// NewPlanService creates a PlanService. Panics on nil dependencies.
func NewPlanService(
	scanner candidateScanner,
	registry mappingResolver,
	schemas schemaReader,
	ledger snowload.Ledger,
) *PlanService {
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

	return &PlanService{
		scanner:  scanner,
		registry: registry,
		schemas:  schemas,
		ledger:   ledger,
	}
}

// Plan returns the candidates a run with this configuration would attempt,
// in processing order. Files a run would skip are included with Skip set and
// the reason recorded, so the dry-run output shows the whole picture.
func (s *PlanService) Plan(ctx context.Context, config snowload.IngestConfig) ([]snowload.PlannedFile, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	candidates, err := s.scanner.Discover(config.DataDir)
	if err != nil {
		return nil, err
	}

	processed := map[string]struct{}{}
	if !config.FullRefresh {
		processed, err = s.ledger.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load ledger: %w", err)
		}
	}

	var planned []snowload.PlannedFile
	for _, candidate := range candidates {
		if _, done := processed[candidate.Path]; done {
			continue
		}

		entry := snowload.PlannedFile{
			Candidate:     candidate,
			CanonicalName: naming.Canonical(candidate.Name),
		}

		mapping, found := s.registry.Lookup(entry.CanonicalName)
		if !found {
			entry.Skip = true
			entry.SkipReason = fmt.Sprintf("no table mapping for %s", entry.CanonicalName)
			planned = append(planned, entry)
			continue
		}
		entry.TableName = mapping.TableName
		entry.SchemaFile = mapping.SchemaFile

		if _, err := s.schemas.Read(mapping.SchemaFile); err != nil {
			if !errors.Is(err, schema.ErrSchemaFileNotFound) {
				return nil, err
			}
			entry.Skip = true
			entry.SkipReason = fmt.Sprintf("schema file %s not found", mapping.SchemaFile)
		}

		planned = append(planned, entry)
	}

	return planned, nil
}

// Verify PlanService implements the interface at compile time
var _ snowload.Planner = (*PlanService)(nil)
