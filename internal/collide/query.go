package collide

// Query filters an area search. The zero value finds the first solid body
// overlapping the area with strict boundaries.
type Query struct {
	// Exclude lists specific bodies to ignore.
	Exclude []*Body
	Mode    Overlap
	// Only, when non-empty, restricts results to these kinds.
	Only []Kind
	// Skip drops these kinds.
	Skip        []Kind
	IgnoreSolid bool
	// All collects every match instead of stopping at the first.
	All bool
}

func (q *Query) admits(b *Body) bool {
	if len(q.Only) > 0 && !hasKind(q.Only, b.kind) {
		return false
	}
	if hasKind(q.Skip, b.kind) {
		return false
	}
	for _, e := range q.Exclude {
		if e == b {
			return false
		}
	}
	return true
}

// QueryArea returns the bodies overlapping the rectangle that pass q.
// The rectangle is tested as an ephemeral probe body that is never
// registered. Each body is reported at most once even when it spans several
// chunks. An empty region yields an empty result.
func (w *World) QueryArea(x, y, width, height float64, q Query) []*Body {
	probe := &Body{world: w, kind: KindProbe, shape: Rect, x: x, y: y, w: width, h: height, Solid: true}

	var result []*Body
	seen := make(map[ID]struct{}, 8)
	for _, c := range w.OverlappingChunks(x, y, width, height) {
		for _, m := range w.Chunk(c).members {
			if _, dup := seen[m.id]; dup {
				continue
			}
			seen[m.id] = struct{}{}
			if !q.admits(m) {
				continue
			}
			if probe.Collides(m, q.Mode, q.IgnoreSolid) {
				result = append(result, m)
				if !q.All {
					return result
				}
			}
		}
	}
	return result
}

// CheckArea reports whether any body passing q overlaps the rectangle.
func (w *World) CheckArea(x, y, width, height float64, q Query) bool {
	q.All = false
	return len(w.QueryArea(x, y, width, height, q)) > 0
}
