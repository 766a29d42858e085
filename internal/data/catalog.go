package data

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownLevel is returned when a world or level name is not in the catalog.
var ErrUnknownLevel = errors.New("unknown level")

// LevelInfo describes one playable level.
type LevelInfo struct {
	Name string `yaml:"name"`
	// Map is the layout file, relative to the levels directory.
	Map string `yaml:"map"`
	// Grades are time boundaries in milliseconds, fastest first.
	Grades []int64 `yaml:"grades"`
}

// WorldInfo is an ordered group of levels.
type WorldInfo struct {
	Name   string      `yaml:"name"`
	Levels []LevelInfo `yaml:"levels"`
}

type catalogFile struct {
	Worlds []WorldInfo `yaml:"worlds"`
}

// Catalog lists every world and level in display order.
type Catalog struct {
	worlds []WorldInfo
	byKey  map[RecordKey]*LevelInfo
}

// LoadCatalog loads levels.yaml.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level catalog: %w", err)
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes a catalog document. Duplicate level names within a
// world are rejected.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse level catalog: %w", err)
	}
	c := &Catalog{
		worlds: file.Worlds,
		byKey:  make(map[RecordKey]*LevelInfo, 32),
	}
	for wi := range c.worlds {
		w := &c.worlds[wi]
		for li := range w.Levels {
			l := &w.Levels[li]
			key := NewRecordKey(w.Name, l.Name)
			if _, dup := c.byKey[key]; dup {
				return nil, fmt.Errorf("parse level catalog: duplicate level %s", key)
			}
			c.byKey[key] = l
		}
	}
	return c, nil
}

// Worlds returns the worlds in catalog order.
func (c *Catalog) Worlds() []WorldInfo { return c.worlds }

// World returns the named world.
func (c *Catalog) World(name string) (*WorldInfo, error) {
	want := normalize(name)
	for i := range c.worlds {
		if normalize(c.worlds[i].Name) == want {
			return &c.worlds[i], nil
		}
	}
	return nil, fmt.Errorf("%w: world %q", ErrUnknownLevel, name)
}

// Level looks a level up by its record key.
func (c *Catalog) Level(key RecordKey) (*LevelInfo, error) {
	l, ok := c.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, key)
	}
	return l, nil
}

// Count returns the total number of levels.
func (c *Catalog) Count() int { return len(c.byKey) }
