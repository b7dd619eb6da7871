// Package filesystem provides a minimal filesystem abstraction used by the
// candidate scanner and the DDL schema source.
//
// Two implementations are provided:
//   - OSFileSystem: reads from the real OS filesystem
//   - MemoryFileSystem: in-memory provider for tests
package filesystem
