// Package layout holds the tile grid a level is built from: ten z-ordered
// layers per cell, each either empty or a record naming an image set.
package layout

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Layers is the number of z layers in every cell.
const Layers = 10

var (
	// ErrMalformedRecord marks a cell record that cannot be parsed.
	ErrMalformedRecord = errors.New("malformed layout record")
	// ErrUnsupportedVersion is returned for layout documents of an unknown version.
	ErrUnsupportedVersion = errors.New("unsupported layout version")
)

// Record is one occupied cell layer.
type Record struct {
	X     int               `yaml:"x"`
	Y     int               `yaml:"y"`
	Z     int               `yaml:"z"`
	Set   string            `yaml:"set"`
	Frame int               `yaml:"frame"`
	Props map[string]string `yaml:"props,omitempty"`
}

// Prop returns a property value.
func (r *Record) Prop(key string) (string, bool) {
	v, ok := r.Props[key]
	return v, ok
}

// IntProp returns a property parsed as an integer, or def when it is
// missing or not a number.
func (r *Record) IntProp(key string, def int) int {
	v, ok := r.Props[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// BoolProp reads a flag. Values strconv.ParseBool understands are honoured;
// any other non-empty value counts as true, as the legacy editor wrote them.
func (r *Record) BoolProp(key string) bool {
	v, ok := r.Props[key]
	if !ok || v == "" {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return true
}

// Cell is the stack of layers at one grid position.
type Cell [Layers]*Record

// Layout is a width × height grid of cells, indexed [x][y].
type Layout struct {
	Width  int
	Height int
	cells  [][]Cell
}

func New(width, height int) *Layout {
	width, height = max(width, 0), max(height, 0)
	cells := make([][]Cell, width)
	for x := range cells {
		cells[x] = make([]Cell, height)
	}
	return &Layout{Width: width, Height: height, cells: cells}
}

// At returns the record at (x, y, z) or nil for an empty or out-of-range layer.
func (l *Layout) At(x, y, z int) *Record {
	if !l.inBounds(x, y, z) {
		return nil
	}
	return l.cells[x][y][z]
}

// Put stores a copy of r at its own coordinates, replacing what was there.
func (l *Layout) Put(r Record) error {
	if !l.inBounds(r.X, r.Y, r.Z) {
		return fmt.Errorf("%w: (%d,%d,%d) outside %dx%dx%d", ErrMalformedRecord, r.X, r.Y, r.Z, l.Width, l.Height, Layers)
	}
	if r.Set == "" {
		return fmt.Errorf("%w: (%d,%d,%d) has no image set", ErrMalformedRecord, r.X, r.Y, r.Z)
	}
	l.cells[r.X][r.Y][r.Z] = &r
	return nil
}

// Clear empties one layer.
func (l *Layout) Clear(x, y, z int) {
	if l.inBounds(x, y, z) {
		l.cells[x][y][z] = nil
	}
}

// Records returns every occupied layer ordered by x, then y, then z.
func (l *Layout) Records() []*Record {
	var out []*Record
	for x := range l.cells {
		for y := range l.cells[x] {
			for _, r := range l.cells[x][y] {
				if r != nil {
					out = append(out, r)
				}
			}
		}
	}
	return out
}

// Len returns the number of occupied layers.
func (l *Layout) Len() int { return len(l.Records()) }

func (l *Layout) inBounds(x, y, z int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height && z >= 0 && z < Layers
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
