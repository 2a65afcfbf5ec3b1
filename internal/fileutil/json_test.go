package fileutil

import (
	"encoding/json"
	"testing"

	"github.com/lepinkainen/bookinfo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testJSONData struct {
	ISBN  string `json:"isbn"`
	Title string `json:"title"`
}

func TestWriteJSONFile_NewFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	data := []testJSONData{{ISBN: "111", Title: "One"}, {ISBN: "222", Title: "Two"}}

	written, err := WriteJSONFile(data, env.Path("json", "books.json"), false)
	require.NoError(t, err)
	assert.True(t, written)

	var decoded []testJSONData
	require.NoError(t, json.Unmarshal(env.ReadFile("json/books.json"), &decoded))
	assert.Equal(t, data, decoded)
}

func TestWriteJSONFile_OverwriteFalse(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("books.json", "[]")

	written, err := WriteJSONFile([]testJSONData{{ISBN: "111"}}, env.Path("books.json"), false)
	require.NoError(t, err)
	assert.False(t, written)
	assert.Equal(t, "[]", env.ReadFileString("books.json"))
}

func TestWriteJSONFile_OverwriteTrue(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("books.json", "[]")

	written, err := WriteJSONFile([]testJSONData{{ISBN: "111"}}, env.Path("books.json"), true)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Contains(t, env.ReadFileString("books.json"), `"isbn": "111"`)
}

func TestWriteJSONFile_InvalidData(t *testing.T) {
	env := testutil.NewTestEnv(t)

	written, err := WriteJSONFile(make(chan int), env.Path("bad.json"), true)
	require.Error(t, err)
	assert.False(t, written)
	assert.False(t, env.FileExists("bad.json"))
}
