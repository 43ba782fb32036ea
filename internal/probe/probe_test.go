package probe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nconklindev/xlsxprobe/internal/config"
	"github.com/nconklindev/xlsxprobe/internal/errors"
	"github.com/nconklindev/xlsxprobe/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, dir string, dataRows int) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{"sessionId", "utm_source", "utm_campaign", "utm_medium", "utm_content", "createdAt"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))

	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < dataRows; i++ {
		row := []interface{}{
			fmt.Sprintf("sess-%02d", i%4),
			"google",
			"summer",
			"cpc",
			nil,
			start.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	_, err := f.NewSheet("Dictionary")
	require.NoError(t, err)

	path := filepath.Join(dir, "[Nemu]Basededados.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func testConfig(t *testing.T, rows int) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.InputPath = writeWorkbook(t, dir, rows)
	cfg.SamplePath = filepath.Join(dir, "sample_data.json")
	cfg.NoColor = true
	return cfg
}

func TestRun(t *testing.T) {
	cfg := testConfig(t, 14)

	var out bytes.Buffer
	outcome, err := Run(context.Background(), cfg, &out)
	require.NoError(t, err)

	assert.Equal(t, 14, outcome.Summary.Rows)
	assert.Equal(t, 10, outcome.SampleRecords)
	assert.Equal(t, []string{"Sheet1", "Dictionary"}, outcome.Summary.SheetNames())

	text := out.String()
	assert.Contains(t, text, "Sheets available: ['Sheet1', 'Dictionary']")
	assert.Contains(t, text, "Rows: 14")
	assert.Contains(t, text, "Columns: 6")
	assert.Contains(t, text, "Field 'campaign' not found, but similar fields found: ['utm_campaign']")
	assert.Contains(t, text, "Required fields not found: ['channel', 'created_at']")
	assert.Contains(t, text, "'channel' is normally derived from 'utm_source'")
	assert.Contains(t, text, "Sample of 10 records saved to "+cfg.SamplePath)

	data, err := os.ReadFile(cfg.SamplePath)
	require.NoError(t, err)
	records := gjson.ParseBytes(data).Array()
	require.Len(t, records, 10)
	assert.Equal(t, "sess-00", records[0].Get("sessionId").String())
	assert.Equal(t, "2024-06-01T08:00:00Z", records[0].Get("createdAt").String())
	assert.Equal(t, gjson.Null, records[0].Get("utm_content").Type)
}

func TestRunFewRows(t *testing.T) {
	cfg := testConfig(t, 2)
	cfg.Format = report.FormatMarkdown

	var out bytes.Buffer
	outcome, err := Run(context.Background(), cfg, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.SampleRecords)
	assert.Contains(t, out.String(), "# Spreadsheet Report")
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
		code   string
	}{
		{
			name:   "Missing input",
			mutate: func(cfg *config.Config) { cfg.InputPath = filepath.Join(t.TempDir(), "gone.xlsx") },
			code:   errors.CodeFileUnreadable,
		},
		{
			name:   "Unsupported input",
			mutate: func(cfg *config.Config) { cfg.InputPath = writeText(t, "data.json", "{}") },
			code:   errors.CodeUnsupportedFormat,
		},
		{
			name:   "Corrupt input",
			mutate: func(cfg *config.Config) { cfg.InputPath = writeText(t, "data.xlsx", "garbage") },
			code:   errors.CodeCorruptFormat,
		},
		{
			name:   "Unwritable sample",
			mutate: func(cfg *config.Config) { cfg.SamplePath = filepath.Join(t.TempDir(), "no", "such", "dir.json") },
			code:   errors.CodeFileUnwritable,
		},
		{
			name:   "Empty required list",
			mutate: func(cfg *config.Config) { cfg.RequiredFields = nil },
			code:   errors.CodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, 3)
			tt.mutate(cfg)

			_, err := Run(context.Background(), cfg, &bytes.Buffer{})
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "error: %v", err)
			assert.Contains(t, ErrorMessage(err), "error reading file: "+tt.code)
		})
	}
}

func TestRunCancelled(t *testing.T) {
	cfg := testConfig(t, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, cfg, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(cfg.SamplePath)
	assert.True(t, os.IsNotExist(statErr))
}

func writeText(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
