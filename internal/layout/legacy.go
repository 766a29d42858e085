package layout

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// emptyLayer is how the legacy editor writes an unused layer.
const emptyLayer = "None"

// ParseRecord parses a legacy colon-delimited layer record:
//
//	x:y:z:set:frame[:key;value...]
func ParseRecord(s string) (Record, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 5 {
		return Record{}, fmt.Errorf("%w: %q has %d fields", ErrMalformedRecord, s, len(parts))
	}
	var nums [3]int
	for i := range nums {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return Record{}, fmt.Errorf("%w: %q coordinate %d: %v", ErrMalformedRecord, s, i, err)
		}
		nums[i] = n
	}
	frame, err := strconv.Atoi(strings.TrimSpace(parts[4]))
	if err != nil {
		return Record{}, fmt.Errorf("%w: %q frame: %v", ErrMalformedRecord, s, err)
	}
	r := Record{X: nums[0], Y: nums[1], Z: nums[2], Set: parts[3], Frame: frame}
	for _, kv := range parts[5:] {
		key, value, ok := strings.Cut(kv, ";")
		if !ok {
			return Record{}, fmt.Errorf("%w: %q property %q has no value", ErrMalformedRecord, s, kv)
		}
		if r.Props == nil {
			r.Props = make(map[string]string, len(parts)-5)
		}
		r.Props[key] = value
	}
	return r, nil
}

// FormatRecord is the inverse of ParseRecord. Properties are written in key order.
func FormatRecord(r *Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d:%d:%d:%s:%d", r.X, r.Y, r.Z, r.Set, r.Frame)
	for _, k := range sortedKeys(r.Props) {
		sb.WriteString(":")
		sb.WriteString(k)
		sb.WriteString(";")
		sb.WriteString(r.Props[k])
	}
	return sb.String()
}

// DecodeLegacy reads the editor's JSON document [width, height, grid] where
// grid[x][y][z] is a record string or "None". The grid position wins over
// the coordinates written inside a record. Malformed records are logged and
// skipped; only a document that is not the expected shape fails.
func DecodeLegacy(data []byte, log *zap.Logger) (*Layout, error) {
	var doc []json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode legacy layout: %w", err)
	}
	if len(doc) != 3 {
		return nil, fmt.Errorf("decode legacy layout: want [width, height, grid], got %d elements", len(doc))
	}
	var width, height int
	if err := json.Unmarshal(doc[0], &width); err != nil {
		return nil, fmt.Errorf("decode legacy layout width: %w", err)
	}
	if err := json.Unmarshal(doc[1], &height); err != nil {
		return nil, fmt.Errorf("decode legacy layout height: %w", err)
	}
	var grid [][][]string
	if err := json.Unmarshal(doc[2], &grid); err != nil {
		return nil, fmt.Errorf("decode legacy layout grid: %w", err)
	}

	l := New(width, height)
	for x := 0; x < width && x < len(grid); x++ {
		for y := 0; y < height && y < len(grid[x]); y++ {
			for z := 0; z < Layers && z < len(grid[x][y]); z++ {
				text := grid[x][y][z]
				if text == emptyLayer || text == "" {
					continue
				}
				r, err := ParseRecord(text)
				if err != nil {
					log.Warn("skipping layout record",
						zap.Int("x", x), zap.Int("y", y), zap.Int("z", z), zap.Error(err))
					continue
				}
				r.X, r.Y, r.Z = x, y, z
				if err := l.Put(r); err != nil {
					log.Warn("skipping layout record", zap.Error(err))
				}
			}
		}
	}
	return l, nil
}

// EncodeLegacy writes l in the editor's JSON format.
func EncodeLegacy(l *Layout) ([]byte, error) {
	grid := make([][][]string, l.Width)
	for x := range grid {
		grid[x] = make([][]string, l.Height)
		for y := range grid[x] {
			layers := make([]string, Layers)
			for z := range layers {
				layers[z] = emptyLayer
				if r := l.At(x, y, z); r != nil {
					layers[z] = FormatRecord(r)
				}
			}
			grid[x][y] = layers
		}
	}
	return json.Marshal([]any{l.Width, l.Height, grid})
}
