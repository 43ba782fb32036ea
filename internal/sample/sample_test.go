package sample

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nconklindev/xlsxprobe/internal/errors"
	"github.com/nconklindev/xlsxprobe/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func makeTable(rows int) *types.Table {
	table := &types.Table{Columns: []string{"sessionId", "created_at", "visits", "converted", "notes"}}
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < rows; i++ {
		table.Rows = append(table.Rows, []types.Value{
			types.String("s-" + string(rune('a'+i))),
			types.Date(start.Add(time.Duration(i) * time.Hour)),
			types.Number(float64(i) + 0.5),
			types.Bool(i%2 == 0),
			types.Null(),
		})
	}
	return table
}

func keys(obj gjson.Result) []string {
	var out []string
	obj.ForEach(func(key, _ gjson.Result) bool {
		out = append(out, key.String())
		return true
	})
	return out
}

func TestWriteRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		rows     int
		expected int
	}{
		{"More rows than sample", 25, 10},
		{"Exactly ten", 10, 10},
		{"Fewer rows", 3, 3},
		{"No rows", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := makeTable(tt.rows)
			path := filepath.Join(t.TempDir(), "sample_data.json")

			written, err := Write(path, table, DefaultRows)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, written)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			require.True(t, gjson.ValidBytes(data))

			parsed := gjson.ParseBytes(data)
			require.True(t, parsed.IsArray())
			records := parsed.Array()
			require.Len(t, records, tt.expected)
			for _, rec := range records {
				assert.Equal(t, table.Columns, keys(rec))
			}
		})
	}
}

func TestMarshalValues(t *testing.T) {
	data, err := Marshal(makeTable(2), DefaultRows)
	require.NoError(t, err)

	first := gjson.GetBytes(data, "0")
	assert.Equal(t, "s-a", first.Get("sessionId").String())
	assert.Equal(t, gjson.String, first.Get("created_at").Type)
	assert.Equal(t, "2024-05-01 12:00:00", first.Get("created_at").String())
	assert.Equal(t, 0.5, first.Get("visits").Float())
	assert.Equal(t, gjson.True, first.Get("converted").Type)
	assert.Equal(t, gjson.Null, first.Get("notes").Type)
	assert.True(t, first.Get("notes").Exists())

	assert.True(t, strings.HasPrefix(string(data), "[\n  {\n    \"sessionId\""), "got %s", data)
}

func TestMarshalEmptyIsArray(t *testing.T) {
	data, err := Marshal(&types.Table{Columns: []string{"a"}}, DefaultRows)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "sample.json")
	_, err := Write(path, makeTable(1), DefaultRows)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeFileUnwritable))
}
