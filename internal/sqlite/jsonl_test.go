package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONLSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.jsonl")
	content := strings.Join([]string{
		`{"kind":"junction","id":"a"}`,
		``,
		`{not json`,
		`{"kind":"hole","id":"b"}`,
		`[1, 2`,
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := readJSONL(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.JSONEq(t, `{"kind":"junction","id":"a"}`, string(records[0]))
	assert.JSONEq(t, `{"kind":"hole","id":"b"}`, string(records[1]))
}

func TestReadJSONLMissingFile(t *testing.T) {
	_, err := readJSONL(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}

func TestWriteJSONLAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	records := []json.RawMessage{
		json.RawMessage(`{"a":1}`),
		json.RawMessage(`{"b":2}`),
	}
	require.NoError(t, writeJSONL(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n{\"b\":2}\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestInitJSONLKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, initJSONL(dir))
	info, err := os.Stat(filepath.Join(dir, documentJSONL))
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	path := filepath.Join(dir, documentJSONL)
	require.NoError(t, os.WriteFile(path, []byte(`{"kind":"junction"}`+"\n"), 0o644))
	require.NoError(t, initJSONL(dir))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "junction")
}
