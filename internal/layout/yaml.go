package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Version is the current structured layout format.
const Version = 1

type document struct {
	Version int      `yaml:"version"`
	Width   int      `yaml:"width"`
	Height  int      `yaml:"height"`
	Records []Record `yaml:"records"`
}

// Decode reads a structured YAML layout. Records outside the grid or
// without an image set are logged and skipped.
func Decode(data []byte, log *zap.Logger) (*Layout, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	l := New(doc.Width, doc.Height)
	for _, r := range doc.Records {
		if err := l.Put(r); err != nil {
			log.Warn("skipping layout record", zap.Error(err))
		}
	}
	return l, nil
}

// Encode writes l as a structured YAML document.
func Encode(l *Layout) ([]byte, error) {
	doc := document{Version: Version, Width: l.Width, Height: l.Height}
	for _, r := range l.Records() {
		doc.Records = append(doc.Records, *r)
	}
	return yaml.Marshal(doc)
}

// Load reads a layout file, choosing the decoder by extension: .yaml and
// .yml are structured, anything else is the legacy JSON format.
func Load(path string, log *zap.Logger) (*Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	var l *Layout
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		l, err = Decode(raw, log)
	default:
		l, err = DecodeLegacy(raw, log)
	}
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", path, err)
	}
	return l, nil
}
