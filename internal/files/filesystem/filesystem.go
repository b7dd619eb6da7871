package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystemProvider abstracts the flat file operations snowload needs:
// listing a data directory, reading DDL and data files, and stat-ing paths.
// Implementations must be safe for concurrent use by multiple goroutines.
type FileSystemProvider interface {
	// ReadDir reads the directory entries at the given path as a flat list.
	ReadDir(path string) ([]FileInfo, error)

	// ReadFile reads a specific file at the given path.
	ReadFile(path string) ([]byte, error)

	// Open opens a file for streaming reads. The caller must close it.
	Open(path string) (fs.File, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)
}
