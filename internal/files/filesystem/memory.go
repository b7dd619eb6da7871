package filesystem

import (
	"bytes"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile implements fs.File over an in-memory byte slice
type memoryFile struct {
	reader *bytes.Reader
	info   fs.FileInfo
}

func (f *memoryFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *memoryFile) Read(p []byte) (int, error) { return f.reader.Read(p) }
func (f *memoryFile) Close() error               { return nil }

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths are normalized to forward slashes regardless of host OS.
type MemoryFileSystem struct {
	files map[string][]byte // absolute path -> content
}

// NewMemoryFileSystem creates a new empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string][]byte),
	}
}

// AddFile adds a file to the in-memory filesystem.
// Parent directories exist implicitly.
func (m *MemoryFileSystem) AddFile(p string, content []byte) {
	m.files[normalize(p)] = content
}

func normalize(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

func (m *MemoryFileSystem) ReadDir(dir string) ([]FileInfo, error) {
	dir = normalize(dir)
	prefix := dir + "/"
	if dir == "." || dir == "/" {
		prefix = dir
	}

	var infos []FileInfo
	seen := make(map[string]bool)
	for p, content := range m.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		if rest == "" {
			continue
		}
		if idx := strings.Index(rest, "/"); idx != -1 {
			// Nested entry: surface the immediate subdirectory once
			sub := rest[:idx]
			if !seen[sub] {
				seen[sub] = true
				infos = append(infos, &memoryFileInfo{name: sub, mode: 0o755 | fs.ModeDir, isDir: true})
			}
			continue
		}
		infos = append(infos, &memoryFileInfo{
			name: rest,
			size: int64(len(content)),
			mode: 0o644,
		})
	}

	if len(infos) == 0 {
		if _, ok := m.files[dir]; !ok && !m.dirExists(dir) {
			return nil, &fs.PathError{Op: "readdir", Path: dir, Err: fs.ErrNotExist}
		}
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })
	return infos, nil
}

func (m *MemoryFileSystem) dirExists(dir string) bool {
	prefix := dir + "/"
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func (m *MemoryFileSystem) ReadFile(p string) ([]byte, error) {
	content, ok := m.files[normalize(p)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return content, nil
}

func (m *MemoryFileSystem) Open(p string) (fs.File, error) {
	content, err := m.ReadFile(p)
	if err != nil {
		return nil, err
	}
	return &memoryFile{
		reader: bytes.NewReader(content),
		info:   &memoryFileInfo{name: path.Base(normalize(p)), size: int64(len(content)), mode: 0o644},
	}, nil
}

func (m *MemoryFileSystem) Stat(p string) (FileInfo, error) {
	p = normalize(p)
	if content, ok := m.files[p]; ok {
		return &memoryFileInfo{name: path.Base(p), size: int64(len(content)), mode: 0o644}, nil
	}
	if m.dirExists(p) {
		return &memoryFileInfo{name: path.Base(p), mode: 0o755 | fs.ModeDir, isDir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
}

// Verify MemoryFileSystem implements the interface at compile time
var _ FileSystemProvider = (*MemoryFileSystem)(nil)
