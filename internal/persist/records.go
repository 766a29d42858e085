package persist

import (
	"context"
	"sort"
	"sync"

	"github.com/skullrun/game/internal/data"
)

// Record is a best time for one level.
type Record struct {
	Key    data.RecordKey
	BestMS int64
}

// Records stores best completion times. Submit only replaces an existing
// record when the new time is strictly faster.
type Records interface {
	Best(ctx context.Context, key data.RecordKey) (ms int64, ok bool, err error)
	Submit(ctx context.Context, key data.RecordKey, ms int64) (improved bool, err error)
	All(ctx context.Context) ([]Record, error)
}

// faster reports whether ms should replace the stored time.
func faster(ms int64, stored int64, exists bool) bool {
	return !exists || ms < stored
}

func sortRecords(rs []Record) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Key.World != rs[j].Key.World {
			return rs[i].Key.World < rs[j].Key.World
		}
		return rs[i].Key.Level < rs[j].Key.Level
	})
}

// MemoryRecords keeps records in process memory.
type MemoryRecords struct {
	mu   sync.Mutex
	best map[data.RecordKey]int64
}

func NewMemoryRecords() *MemoryRecords {
	return &MemoryRecords{best: make(map[data.RecordKey]int64)}
}

func (m *MemoryRecords) Best(_ context.Context, key data.RecordKey) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms, ok := m.best[key]
	return ms, ok, nil
}

func (m *MemoryRecords) Submit(_ context.Context, key data.RecordKey, ms int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.best[key]
	if !faster(ms, stored, ok) {
		return false, nil
	}
	m.best[key] = ms
	return true, nil
}

// restore puts back a previous best, or forgets key when there was none.
func (m *MemoryRecords) restore(key data.RecordKey, ms int64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.best[key] = ms
	} else {
		delete(m.best, key)
	}
}

func (m *MemoryRecords) All(_ context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, 0, len(m.best))
	for k, ms := range m.best {
		out = append(out, Record{Key: k, BestMS: ms})
	}
	sortRecords(out)
	return out, nil
}
