package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/skullrun/game/internal/data"
)

// FileRecords keeps records in the legacy JSON save file, an object mapping
// "world:::level" to milliseconds. The whole file is rewritten on every
// improvement.
type FileRecords struct {
	mu   sync.Mutex
	path string
	mem  *MemoryRecords
	log  *zap.Logger
}

// OpenFileRecords reads path if it exists. Unparseable keys are logged and dropped.
func OpenFileRecords(path string, log *zap.Logger) (*FileRecords, error) {
	f := &FileRecords{path: path, mem: NewMemoryRecords(), log: log}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}
	var entries map[string]int64
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse save file %s: %w", path, err)
	}
	for k, ms := range entries {
		key, err := data.ParseRecordKey(k)
		if err != nil {
			log.Warn("dropping save entry", zap.String("key", k), zap.Error(err))
			continue
		}
		f.mem.best[key] = ms
	}
	return f, nil
}

func (f *FileRecords) Best(ctx context.Context, key data.RecordKey) (int64, bool, error) {
	return f.mem.Best(ctx, key)
}

func (f *FileRecords) Submit(ctx context.Context, key data.RecordKey, ms int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, had, err := f.mem.Best(ctx, key)
	if err != nil {
		return false, err
	}
	improved, err := f.mem.Submit(ctx, key, ms)
	if err != nil || !improved {
		return improved, err
	}
	if err := f.write(ctx); err != nil {
		// Memory must not get ahead of the file.
		f.mem.restore(key, prev, had)
		return false, err
	}
	return true, nil
}

func (f *FileRecords) All(ctx context.Context) ([]Record, error) {
	return f.mem.All(ctx)
}

// write replaces the save file atomically.
func (f *FileRecords) write(ctx context.Context) error {
	all, err := f.mem.All(ctx)
	if err != nil {
		return err
	}
	entries := make(map[string]int64, len(all))
	for _, r := range all {
		entries[r.Key.String()] = r.BestMS
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode save file: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create save dir: %w", err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace save file: %w", err)
	}
	return nil
}
