package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMigrationFiles_SortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"010_later.sql":    {Data: []byte("SELECT 1;")},
		"002_second.sql":   {Data: []byte("SELECT 1;")},
		"001_first.sql":    {Data: []byte("SELECT 1;")},
		"README.md":        {Data: []byte("notes")},
		"nested/003_x.sql": {Data: []byte("SELECT 1;")},
	}

	files, err := getMigrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_first.sql", "002_second.sql", "010_later.sql"}, files)
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := getMigrationFiles(Migrations())
	require.NoError(t, err)
	assert.Equal(t, []string{"001_catalog.sql", "002_seed_catalog.sql"}, files)
}
