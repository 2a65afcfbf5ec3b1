package cmdutil

import (
	"database/sql"
	"testing"

	"github.com/lepinkainen/bookinfo/internal/testutil"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type datasetteRecord struct {
	Row  int
	ISBN string
}

const datasetteSchema = `
CREATE TABLE IF NOT EXISTS test_items (
	row_number INTEGER,
	isbn TEXT NOT NULL
);
`

func datasetteRecordToMap(item datasetteRecord) map[string]any {
	return map[string]any{"row_number": item.Row, "isbn": item.ISBN}
}

func TestWriteToDatastore_Disabled(t *testing.T) {
	testutil.ResetConfig(t)
	env := testutil.NewTestEnv(t)
	viper.Set("datasette.enabled", false)
	viper.Set("datasette.dbfile", env.Path("test.db"))

	records := []datasetteRecord{{Row: 1, ISBN: "9780140328721"}}
	err := WriteToDatastore(records, datasetteSchema, "test_items", "test records", datasetteRecordToMap)
	require.NoError(t, err)

	assert.False(t, env.FileExists("test.db"))
}

func TestWriteToDatastore_WritesRows(t *testing.T) {
	testutil.ResetConfig(t)
	env := testutil.NewTestEnv(t)
	dbPath := testutil.SetupDatasetteDB(t, env)

	records := []datasetteRecord{{Row: 1, ISBN: "9780140328721"}, {Row: 2, ISBN: "9780140328721"}}
	err := WriteToDatastore(records, datasetteSchema, "test_items", "test records", datasetteRecordToMap)
	require.NoError(t, err)

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM test_items").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestWriteToDatastore_MissingDBFile(t *testing.T) {
	testutil.ResetConfig(t)
	viper.Set("datasette.enabled", true)

	err := WriteToDatastore([]datasetteRecord{{Row: 1, ISBN: "1"}}, datasetteSchema, "test_items", "test records", datasetteRecordToMap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "datasette.dbfile")
}

func TestWriteToDatastore_BadSchema(t *testing.T) {
	testutil.ResetConfig(t)
	env := testutil.NewTestEnv(t)
	testutil.SetupDatasetteDB(t, env)

	err := WriteToDatastore([]datasetteRecord{{Row: 1, ISBN: "1"}}, "CREATE NONSENSE", "test_items", "test records", datasetteRecordToMap)
	require.Error(t, err)
}
