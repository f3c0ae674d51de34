package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGet_MissingKey(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)

	v := doc{Name: "default"}
	found, err := st.Get("nothing", &v)
	require.NoError(t, err)

	assert.False(t, found)
	assert.Equal(t, "default", v.Name, "absent key must not touch the target")
}

func TestPutGetRoundTrip(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.Put("orders", doc{Name: "orders", Count: 3}))

	var v doc
	found, err := st.Get("orders", &v)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, doc{Name: "orders", Count: 3}, v)
}

func TestPut_Overwrites(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.Put("k", doc{Count: 1}))
	require.NoError(t, st.Put("k", doc{Count: 2}))

	var v doc
	_, err = st.Get("k", &v)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Count)
}

func TestPut_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, st.Put("k", doc{Count: 1}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestDelete(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.Put("k", doc{}))
	require.NoError(t, st.Delete("k"))

	found, err := st.Get("k", &doc{})
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting again is fine.
	require.NoError(t, st.Delete("k"))
}

func TestGet_CorruptDocument(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	_, err = st.Get("bad", &doc{})
	require.Error(t, err)
}

func TestOpen_CreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	_, err := Open(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
