// Package config loads the run manifest: a YAML description of a multi-box
// merge-and-coincidence run, covering the parameters the original
// executables hard-coded as file names and numeric literals. CLI flags
// remain the primary interface for the common one- or two-box case; a
// manifest exists for runs with more inputs than comfortably fit as flags
// (the four-fold.cpp composition: three files, two sequential merges, one
// coincidence pass).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// InputSpec names one box's input file and how to interpret it.
type InputSpec struct {
	Path         string `yaml:"path"`
	ClockChannel uint16 `yaml:"clock_channel"`
	BoxNumber    uint16 `yaml:"box_number"`
	OffsetPath   string `yaml:"offset_path,omitempty"`
}

// Manifest describes one end-to-end run: N inputs, merged pairwise in
// order, then scanned for n-fold coincidences.
type Manifest struct {
	Inputs []InputSpec `yaml:"inputs"`

	MaxShift     int `yaml:"max_shift,omitempty"`
	TimeDepth    int `yaml:"time_depth,omitempty"`
	MaxFitPoints int `yaml:"max_fit_points,omitempty"`

	N          int    `yaml:"n"`
	WindowBins uint64 `yaml:"window_bins"`

	SinglesPath      string `yaml:"singles_path"`
	CoincidencesPath string `yaml:"coincidences_path"`
	MergedDataPath   string `yaml:"merged_data_path,omitempty"`
}

// Load reads and parses a run manifest from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the CLI
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	if len(manifest.Inputs) < 1 {
		return nil, fmt.Errorf("manifest %s: at least one input is required", path)
	}

	return &manifest, nil
}
