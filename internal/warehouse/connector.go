// Package warehouse implements the Snowflake side of an ingestion run:
// session establishment, statement execution, and bulk-load reporting.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sf "github.com/snowflakedb/gosnowflake"

	"github.com/thaole73/snowload/internal/config"
	"github.com/thaole73/snowload/pkg/snowload"
)

// SnowflakeConnector establishes warehouse sessions through the gosnowflake
// database/sql driver.
type SnowflakeConnector struct {
	cfg *config.Config
}

// NewSnowflakeConnector creates a connector from the run configuration.
// Panics if cfg is nil.
func NewSnowflakeConnector(cfg *config.Config) *SnowflakeConnector {
	if cfg == nil {
		panic("cfg cannot be nil")
	}
	return &SnowflakeConnector{cfg: cfg}
}

// Connect opens a session and verifies it with a ping, so connection
// failures surface before any staging work starts.
func (c *SnowflakeConnector) Connect(ctx context.Context) (snowload.WarehouseSession, error) {
	dsn, err := sf.DSN(&sf.Config{
		Account:        c.cfg.Account,
		User:           c.cfg.User,
		Password:       c.cfg.Password,
		Warehouse:      c.cfg.Warehouse,
		Database:       c.cfg.Database,
		Schema:         c.cfg.SchemaRaw,
		LoginTimeout:   60 * time.Second,
		RequestTimeout: 300 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build Snowflake DSN: %w", snowload.ErrConnectionFailed)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open Snowflake connection: %w: %w", snowload.ErrConnectionFailed, err)
	}

	// One run, one session: the per-file loop is strictly sequential.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach Snowflake: %w: %w", snowload.ErrConnectionFailed, err)
	}

	return &sqlSession{db: db}, nil
}

// Verify SnowflakeConnector implements the interface at compile time
var _ snowload.WarehouseConnector = (*SnowflakeConnector)(nil)
