// Package schema reads table DDL definitions and adapts their creation
// semantics to the run mode. One DDL file per table is the single source of
// truth; full-refresh and incremental runs differ only in how its creation
// clause is rewritten.
package schema

import (
	"fmt"
	"regexp"

	"github.com/thaole73/snowload/pkg/snowload"
)

// createClause matches the first table-creation clause in a DDL statement,
// including any qualifier already present, so the rewrite is idempotent.
var createClause = regexp.MustCompile(`(?i)CREATE\s+(OR\s+REPLACE\s+)?TABLE(\s+IF\s+NOT\s+EXISTS)?`)

// Rewrite adjusts the first table-creation clause of ddl for the run mode:
//
//	full refresh: CREATE OR REPLACE TABLE  (drop-and-recreate)
//	incremental:  CREATE TABLE IF NOT EXISTS  (idempotent create)
//
// Matching is case-insensitive and exactly one occurrence is rewritten.
// A DDL blob with no creation clause returns ErrNoCreateClause rather than
// silently passing unmodified DDL through to the warehouse.
func Rewrite(ddl string, fullRefresh bool) (string, error) {
	loc := createClause.FindStringIndex(ddl)
	if loc == nil {
		return "", fmt.Errorf("%w in DDL", snowload.ErrNoCreateClause)
	}

	replacement := "CREATE TABLE IF NOT EXISTS"
	if fullRefresh {
		replacement = "CREATE OR REPLACE TABLE"
	}

	return ddl[:loc[0]] + replacement + ddl[loc[1]:], nil
}
