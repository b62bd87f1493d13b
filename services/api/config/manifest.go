package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultSources is the built-in list of sensor log files.
var DefaultSources = []SourceEntry{
	{Path: "2021-dec16.csv"},
	{Path: "2021-oct21.csv"},
	{Path: "2022-nov16.csv"},
	{Path: "2022-oct7.csv"},
}

// SourceEntry names one tabular file and, for workbooks, its sheet.
type SourceEntry struct {
	Path  string `yaml:"path"`
	Sheet string `yaml:"sheet,omitempty"`
}

// Manifest lists the files to ingest and extra header aliases.
type Manifest struct {
	Sources []SourceEntry     `yaml:"sources"`
	Aliases map[string]string `yaml:"aliases,omitempty"`
}

// LoadManifest returns the manifest at path, or the built-in one when path
// is empty. Relative source paths are resolved against dataDir.
func LoadManifest(path, dataDir string) (Manifest, error) {
	m := Manifest{Sources: append([]SourceEntry(nil), DefaultSources...)}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Manifest{}, fmt.Errorf("read manifest: %w", err)
		}
		m = Manifest{}
		if err := yaml.Unmarshal(raw, &m); err != nil {
			return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
		}
		if len(m.Sources) == 0 {
			return Manifest{}, fmt.Errorf("manifest %s lists no sources", path)
		}
	}

	for i, s := range m.Sources {
		if s.Path == "" {
			return Manifest{}, fmt.Errorf("manifest source %d has no path", i)
		}
		if !filepath.IsAbs(s.Path) {
			m.Sources[i].Path = filepath.Join(dataDir, s.Path)
		}
	}
	return m, nil
}
