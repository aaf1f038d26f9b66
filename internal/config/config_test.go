package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "output_dir: /tmp/reports\nreport_name_format: '{input}.xlsx'\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/reports", cfg.OutputDir)
	assert.Equal(t, "{input}.xlsx", cfg.ReportNameFormat)
	// Unset keys keep their defaults.
	assert.Equal(t, "./input", cfg.InputDir)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: ''\n"), 0o644))

	_, err := Load(path)

	assert.ErrorContains(t, err, "output_dir must not be empty")
}

func TestReportNameExpandsPlaceholders(t *testing.T) {
	cfg := Default()
	cfg.ReportNameFormat = "{input}_{timestamp}_{uuid}.xlsx"

	name := cfg.ReportName("giro_batch")

	assert.True(t, strings.HasPrefix(name, "giro_batch_"))
	assert.True(t, strings.HasSuffix(name, ".xlsx"))
	assert.NotContains(t, name, "{uuid}")
	assert.NotContains(t, name, "{timestamp}")
}
