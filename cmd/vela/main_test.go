package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-db/vela/pkg/column"
	verrors "github.com/vela-db/vela/pkg/errors"
	"github.com/vela-db/vela/pkg/json"
)

func TestParseSchema(t *testing.T) {
	t.Run("preserves declaration order", func(t *testing.T) {
		fields, err := parseSchema("id:long, name:string ,active:compactbool")
		require.NoError(t, err)
		require.Len(t, fields, 3)
		assert.Equal(t, "id", fields[0].name)
		assert.Equal(t, column.ColumnTypeLong, fields[0].typ)
		assert.Equal(t, column.ColumnTypeString, fields[1].typ)
		assert.Equal(t, column.ColumnTypeCompactBool, fields[2].typ)
	})

	for _, bad := range []string{"", "id", "id:decimal", "id:long,id:long"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := parseSchema(bad)
			require.Error(t, err)
			assert.True(t, verrors.IsType(err, verrors.ErrorTypeConfig))
		})
	}
}

func TestNormalize(t *testing.T) {
	v, err := normalize(column.ColumnTypeLong, json.Number("42"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = normalize(column.ColumnTypeDouble, json.Number("0.5"))
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	_, err = normalize(column.ColumnTypeInt, json.Number("1.5"))
	require.Error(t, err)

	v, err = normalize(column.ColumnTypeBool, true)
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestPackUnpackRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "rows.jsonl")
	out := filepath.Join(dir, "data")

	records := `{"id": 1, "name": "alice", "score": 0.5, "active": true}
{"id": 2, "name": "日本語", "score": -1.25, "active": false}
{"id": 3, "name": "", "score": 0, "active": true}
`
	require.NoError(t, os.WriteFile(input, []byte(records), 0o644))

	require.NoError(t, runPack("id:long,name:string,score:double,active:compactbool", input, out))

	// The manifest and one chunk file per declared buffer must exist.
	assert.FileExists(t, filepath.Join(out, "manifest.yaml"))
	assert.FileExists(t, filepath.Join(out, "id.0.chunk"))
	assert.FileExists(t, filepath.Join(out, "active.1.chunk"))

	m, cols, err := loadDataset(out)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Rows)
	require.Len(t, cols, 4)

	name, err := cols[1].Value(1)
	require.NoError(t, err)
	assert.Equal(t, "日本語", name)

	active, err := cols[3].Value(2)
	require.NoError(t, err)
	assert.Equal(t, true, active)

	// Unpack back to JSONL and spot-check the emitted records.
	output := filepath.Join(dir, "out.jsonl")
	require.NoError(t, runUnpack(out, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "alice", rec["name"])
	assert.Equal(t, true, rec["active"])
}

func TestPackRejectsBadRecords(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing column", func(t *testing.T) {
		input := filepath.Join(dir, "missing.jsonl")
		require.NoError(t, os.WriteFile(input, []byte(`{"id": 1}`+"\n"), 0o644))

		err := runPack("id:long,name:string", input, filepath.Join(dir, "out1"))
		require.Error(t, err)
		assert.True(t, verrors.IsType(err, verrors.ErrorTypeData))
	})

	t.Run("type mismatch", func(t *testing.T) {
		input := filepath.Join(dir, "mismatch.jsonl")
		require.NoError(t, os.WriteFile(input, []byte(`{"id": true}`+"\n"), 0o644))

		err := runPack("id:long", input, filepath.Join(dir, "out2"))
		require.Error(t, err)
	})
}

func TestLoadDatasetRejectsCorruptChunks(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "rows.jsonl")
	out := filepath.Join(dir, "data")
	require.NoError(t, os.WriteFile(input, []byte(`{"id": 7}`+"\n"), 0o644))
	require.NoError(t, runPack("id:long", input, out))

	// Truncate the chunk so its length is no longer a multiple of 8.
	chunk := filepath.Join(out, "id.0.chunk")
	require.NoError(t, os.WriteFile(chunk, []byte{1, 2, 3}, 0o644))

	_, _, err := loadDataset(out)
	require.Error(t, err)
	assert.True(t, verrors.IsType(err, verrors.ErrorTypeData))
}
