package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/skullrun/game/internal/data"
)

// RecordRepo stores best times in PostgreSQL.
type RecordRepo struct {
	db *DB
}

func NewRecordRepo(db *DB) *RecordRepo {
	return &RecordRepo{db: db}
}

func (r *RecordRepo) Best(ctx context.Context, key data.RecordKey) (int64, bool, error) {
	var ms int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT best_ms FROM level_records WHERE world = $1 AND level = $2`,
		key.World, key.Level,
	).Scan(&ms)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("load record %s: %w", key, err)
	}
	return ms, true, nil
}

// Submit inserts the time or replaces a slower one in a single statement.
// The conditional update leaves equal or slower times untouched, so the
// affected row count says whether the record improved.
func (r *RecordRepo) Submit(ctx context.Context, key data.RecordKey, ms int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`INSERT INTO level_records (world, level, best_ms)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (world, level) DO UPDATE
		   SET best_ms = EXCLUDED.best_ms, updated_at = now()
		   WHERE level_records.best_ms > EXCLUDED.best_ms`,
		key.World, key.Level, ms,
	)
	if err != nil {
		return false, fmt.Errorf("submit record %s: %w", key, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RecordRepo) All(ctx context.Context) ([]Record, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT world, level, best_ms FROM level_records ORDER BY world, level`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Key.World, &rec.Key.Level, &rec.BestMS); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
