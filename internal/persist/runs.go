package persist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/skullrun/game/internal/data"
)

// Run is one finished attempt at a level.
type Run struct {
	Key    data.RecordKey
	TimeMS int64
	Deaths int
}

type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// WriteRuns writes a batch of finished runs in one transaction.
func (r *RunRepo) WriteRuns(ctx context.Context, runs []Run) error {
	if len(runs) == 0 {
		return nil
	}
	return r.db.InTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, run := range runs {
			batch.Queue(
				`INSERT INTO level_runs (world, level, time_ms, deaths) VALUES ($1, $2, $3, $4)`,
				run.Key.World, run.Key.Level, run.TimeMS, run.Deaths,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("runs insert: %w", err)
		}
		return nil
	})
}

// Attempts counts the finished runs of a level.
func (r *RunRepo) Attempts(ctx context.Context, key data.RecordKey) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM level_runs WHERE world = $1 AND level = $2`,
		key.World, key.Level,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count runs %s: %w", key, err)
	}
	return n, nil
}

// RunWriter is the sink a RunBuffer flushes into.
type RunWriter interface {
	WriteRuns(ctx context.Context, runs []Run) error
}

// RunBuffer collects finished runs during play and writes them in one batch.
// A failed flush keeps the runs for the next attempt.
type RunBuffer struct {
	w       RunWriter
	pending []Run
}

func NewRunBuffer(w RunWriter) *RunBuffer {
	return &RunBuffer{w: w}
}

func (b *RunBuffer) Add(run Run) {
	b.pending = append(b.pending, run)
}

// Pending returns the number of runs waiting to be written.
func (b *RunBuffer) Pending() int { return len(b.pending) }

func (b *RunBuffer) Flush(ctx context.Context) error {
	if len(b.pending) == 0 || b.w == nil {
		return nil
	}
	if err := b.w.WriteRuns(ctx, b.pending); err != nil {
		return err
	}
	b.pending = b.pending[:0]
	return nil
}
