package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/nconklindev/xlsxprobe/internal/checker"
	"github.com/nconklindev/xlsxprobe/internal/errors"
	"github.com/nconklindev/xlsxprobe/internal/report"
	"github.com/nconklindev/xlsxprobe/internal/sample"

	"github.com/joho/godotenv"
)

const (
	DefaultInputPath  = "/home/ubuntu/upload/[Nemu]Basededados.xlsx"
	DefaultSamplePath = "/home/ubuntu/sample_data.json"
	DefaultLogLevel   = "warn"
)

// Config holds everything one run needs. Values come from defaults, then a
// .env file, then the environment, then command-line flags.
type Config struct {
	InputPath      string
	SamplePath     string
	SampleRows     int
	PreviewRows    int
	RequiredFields []string
	Format         report.Format
	DetectHeader   bool
	NoColor        bool
	LogLevel       string
}

func Default() *Config {
	return &Config{
		InputPath:      DefaultInputPath,
		SamplePath:     DefaultSamplePath,
		SampleRows:     sample.DefaultRows,
		PreviewRows:    report.DefaultPreviewRows,
		RequiredFields: append([]string(nil), checker.RequiredFields...),
		Format:         report.FormatText,
		LogLevel:       DefaultLogLevel,
	}
}

// Load reads an optional .env file and the XLSXPROBE_* environment on top of
// the defaults.
func Load() (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfg := Default()
	cfg.InputPath = getEnvOrDefault("XLSXPROBE_INPUT", cfg.InputPath)
	cfg.SamplePath = getEnvOrDefault("XLSXPROBE_SAMPLE_OUTPUT", cfg.SamplePath)
	cfg.SampleRows = getEnvIntOrDefault("XLSXPROBE_SAMPLE_ROWS", cfg.SampleRows)
	cfg.PreviewRows = getEnvIntOrDefault("XLSXPROBE_PREVIEW_ROWS", cfg.PreviewRows)
	cfg.DetectHeader = getEnvBoolOrDefault("XLSXPROBE_DETECT_HEADER", cfg.DetectHeader)
	cfg.NoColor = getEnvBoolOrDefault("XLSXPROBE_NO_COLOR", cfg.NoColor)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)

	if v := os.Getenv("XLSXPROBE_REQUIRED_FIELDS"); v != "" {
		cfg.RequiredFields = ParseFieldList(v)
	}
	if v := os.Getenv("XLSXPROBE_FORMAT"); v != "" {
		format, err := report.ParseFormat(v)
		if err != nil {
			return nil, errors.WithCode(errors.CodeConfigInvalid, err, "XLSXPROBE_FORMAT")
		}
		cfg.Format = format
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.InputPath) == "" {
		return errors.ConfigInvalid("input path is required")
	}
	if strings.TrimSpace(c.SamplePath) == "" {
		return errors.ConfigInvalid("sample output path is required")
	}
	if c.SampleRows < 0 {
		return errors.ConfigInvalid("sample rows must not be negative")
	}
	if c.PreviewRows < 0 {
		return errors.ConfigInvalid("preview rows must not be negative")
	}
	if len(c.RequiredFields) == 0 {
		return errors.ConfigInvalid("at least one required field is needed")
	}
	return nil
}

// ParseFieldList splits a comma-separated list, trimming blanks.
func ParseFieldList(s string) []string {
	var fields []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			fields = append(fields, part)
		}
	}
	return fields
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
