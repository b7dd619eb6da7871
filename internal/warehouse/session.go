package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/thaole73/snowload/pkg/snowload"
)

// sqlSession adapts a *sql.DB to the WarehouseSession contract.
type sqlSession struct {
	db *sql.DB
}

func (s *sqlSession) Exec(ctx context.Context, statement string) error {
	if _, err := s.db.ExecContext(ctx, statement); err != nil {
		return fmt.Errorf("statement failed: %w: %w", snowload.ErrExecutionFailed, err)
	}
	return nil
}

// Load runs a COPY INTO statement and scans the per-file result rows
// Snowflake returns for it. Column order varies across server versions,
// so rows are mapped by column name rather than position.
func (s *sqlSession) Load(ctx context.Context, statement string) ([]snowload.LoadReport, error) {
	rows, err := s.db.QueryContext(ctx, statement)
	if err != nil {
		return nil, fmt.Errorf("load failed: %w: %w", snowload.ErrExecutionFailed, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read load result columns: %w: %w", snowload.ErrExecutionFailed, err)
	}

	var reports []snowload.LoadReport
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan load result row: %w: %w", snowload.ErrExecutionFailed, err)
		}

		var report snowload.LoadReport
		for i, col := range cols {
			if !vals[i].Valid {
				continue
			}
			value := vals[i].String
			switch strings.ToLower(col) {
			case "file":
				report.File = value
			case "status":
				report.Status = value
			case "rows_parsed":
				report.RowsParsed = parseCount(value)
			case "rows_loaded":
				report.RowsLoaded = parseCount(value)
			case "errors_seen":
				report.ErrorsSeen = parseCount(value)
			case "first_error":
				report.FirstError = value
			}
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read load results: %w: %w", snowload.ErrExecutionFailed, err)
	}

	return reports, nil
}

func (s *sqlSession) Close() error {
	return s.db.Close()
}

func parseCount(value string) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Verify sqlSession implements the interface at compile time
var _ snowload.WarehouseSession = (*sqlSession)(nil)
