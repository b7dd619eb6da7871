package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaole73/snowload/internal/files/filesystem"
)

func TestSource_Read(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem()
	fs.AddFile("/sql/tables/raw_movies.sql", []byte("CREATE TABLE raw_movies (id INTEGER);"))

	src := NewSourceWithFS("/sql/tables", fs)

	ddl, err := src.Read("raw_movies.sql")
	require.NoError(t, err)
	assert.Contains(t, ddl, "CREATE TABLE raw_movies")
}

func TestSource_MissingFile(t *testing.T) {
	src := NewSourceWithFS("/sql/tables", filesystem.NewMemoryFileSystem())

	_, err := src.Read("raw_nope.sql")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaFileNotFound))
}

func TestNewSourceWithFS_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewSourceWithFS("/sql", nil) })
}
