package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labtdc/tdcstream/internal/config"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadParsesFullManifest(t *testing.T) {
	path := writeManifest(t, `
inputs:
  - path: box1.bin
    clock_channel: 8
    box_number: 1
  - path: box2.bin
    clock_channel: 8
    box_number: 2
    offset_path: box2.offset
max_shift: 150
time_depth: 25
n: 3
window_bins: 75
singles_path: singles.txt
coincidences_path: coincidences.txt
merged_data_path: merged.bin
`)

	manifest, err := config.Load(path)
	require.NoError(t, err)

	require.Len(t, manifest.Inputs, 2)
	assert.Equal(t, "box1.bin", manifest.Inputs[0].Path)
	assert.Equal(t, uint16(8), manifest.Inputs[0].ClockChannel)
	assert.Equal(t, uint16(1), manifest.Inputs[0].BoxNumber)
	assert.Empty(t, manifest.Inputs[0].OffsetPath)

	assert.Equal(t, "box2.offset", manifest.Inputs[1].OffsetPath)
	assert.Equal(t, 150, manifest.MaxShift)
	assert.Equal(t, 25, manifest.TimeDepth)
	assert.Equal(t, 3, manifest.N)
	assert.Equal(t, uint64(75), manifest.WindowBins)
	assert.Equal(t, "singles.txt", manifest.SinglesPath)
	assert.Equal(t, "coincidences.txt", manifest.CoincidencesPath)
	assert.Equal(t, "merged.bin", manifest.MergedDataPath)
}

func TestLoadRejectsEmptyInputs(t *testing.T) {
	path := writeManifest(t, "inputs: []\nn: 2\nwindow_bins: 50\n")

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
}
