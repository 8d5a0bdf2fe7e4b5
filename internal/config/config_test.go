package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultPassesValidation(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsUpperPriceBelowTwo(t *testing.T) {
	c := Default()
	c.Simulation.UpperPrice = 1
	require.Error(t, c.Validate())
}

func TestValidateRejectsOutOfRangeKeepTail(t *testing.T) {
	c := Default()
	c.Simulation.QuoteOpsGcThreshold = 200
	c.Simulation.QuoteOpsGcKeepTail = 300
	require.Error(t, c.Validate())
}

func TestValidateRejectsNegativeMaxOperationsToAcknowledge(t *testing.T) {
	c := Default()
	c.Simulation.MaxOperationsToAcknowledge = -1
	require.Error(t, c.Validate())
}

func TestLoadOverridesDefaultsFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.yaml")
	contents := "simulation:\n  upper_price: 20\n  seed: 7\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 20, cfg.Simulation.UpperPrice)
	require.Equal(t, int64(7), cfg.Simulation.Seed)
	require.Equal(t, "debug", cfg.Logging.Level)
	// untouched fields keep their compiled-in defaults.
	require.Equal(t, 10, cfg.Simulation.MaxOperationsToGenerateAtATime)
}

func TestLoadRejectsInvalidConfiguration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.yaml")
	contents := "simulation:\n  upper_price: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadPropagatesMissingFileError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
