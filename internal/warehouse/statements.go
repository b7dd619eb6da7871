package warehouse

import "fmt"

// UseSchemaStatement pins the session to the raw landing schema so table
// names in the generated DDL and COPY statements stay unqualified.
func UseSchemaStatement(schema string) string {
	return fmt.Sprintf("USE SCHEMA %s", schema)
}

// CopyIntoStatement builds the bulk-load statement for one staged object.
// Loads tolerate bad rows (ON_ERROR = 'CONTINUE'); the caller inspects the
// returned reports for error counts. PURGE removes the staged object once
// the load succeeds, so the external stage never accumulates history.
func CopyIntoStatement(table, stageName, objectKey string) string {
	return fmt.Sprintf(`COPY INTO %s
FROM '@%s/%s'
FILE_FORMAT = (TYPE = 'CSV' SKIP_HEADER = 1 FIELD_OPTIONALLY_ENCLOSED_BY = '"')
ON_ERROR = 'CONTINUE'
PURGE = TRUE`, table, stageName, objectKey)
}
