package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaole73/snowload/internal/files/filesystem"
)

func TestDiscover_OnlyCSVFiles(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()
	fs.AddFile("/data/movies.csv", []byte("movieId,title\n"))
	fs.AddFile("/data/ratings_20240721.csv", []byte("userId,movieId,rating\n"))
	fs.AddFile("/data/readme.txt", []byte("not data"))
	fs.AddFile("/data/archive/old.csv", []byte("nested, ignored"))

	s := NewScannerWithFS(fs)
	candidates, err := s.Discover("/data")
	require.NoError(t, err)

	require.Len(t, candidates, 2)
	assert.Equal(t, "movies.csv", candidates[0].Name)
	assert.Equal(t, "ratings_20240721.csv", candidates[1].Name)
}

func TestDiscover_LexicographicOrder(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()
	fs.AddFile("/data/tags.csv", []byte("a"))
	fs.AddFile("/data/links.csv", []byte("b"))
	fs.AddFile("/data/movies.csv", []byte("c"))

	s := NewScannerWithFS(fs)
	candidates, err := s.Discover("/data")
	require.NoError(t, err)

	require.Len(t, candidates, 3)
	assert.Equal(t, "links.csv", candidates[0].Name)
	assert.Equal(t, "movies.csv", candidates[1].Name)
	assert.Equal(t, "tags.csv", candidates[2].Name)
}

func TestDiscover_CaseInsensitiveExtension(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()
	fs.AddFile("/data/movies.CSV", []byte("x"))

	s := NewScannerWithFS(fs)
	candidates, err := s.Discover("/data")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
}

func TestDiscover_MissingDirectory(t *testing.T) {
	s := NewScannerWithFS(filesystem.NewMemoryFileSystem())
	_, err := s.Discover("/nope")
	assert.Error(t, err)
}

func TestDiscover_PathsCarryDataDir(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()
	fs.AddFile("/data/movies.csv", []byte("x"))

	s := NewScannerWithFS(fs)
	candidates, err := s.Discover("/data")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Contains(t, candidates[0].Path, "movies.csv")
	assert.NotEqual(t, candidates[0].Name, candidates[0].Path)
}

func TestNewScannerWithFS_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewScannerWithFS(nil) })
}
