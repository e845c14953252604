package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/unklstewy/flapsim/pkg/flap"
	"github.com/unklstewy/flapsim/pkg/sweep"
)

// SweepRepository stores sweep results and their optimal configurations.
type SweepRepository struct {
	db *DB
}

// NewSweepRepository creates a new sweep repository.
func NewSweepRepository(db *DB) *SweepRepository {
	return &SweepRepository{db: db}
}

// RunSummary describes one stored sweep without its samples.
type RunSummary struct {
	ID          int64
	Variant     flap.Variant
	Model       string
	Reynolds    float64
	CreatedAt   time.Time
	SampleCount int
}

// SaveRun stores a result, its samples and its optimal configuration in a
// single transaction and returns the run ID.
func (r *SweepRepository) SaveRun(ctx context.Context, res sweep.Result, best sweep.Best, now time.Time) (int64, error) {
	if best.Variant != res.Variant {
		return 0, mismatchError(res, best)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	runID, err := insertRun(ctx, tx, res, best, now)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// SaveAll stores every result paired with its best configuration. All runs
// share one transaction, so a failed call leaves nothing behind and can be
// retried as a whole.
func (r *SweepRepository) SaveAll(ctx context.Context, results []sweep.Result, best []sweep.Best, now time.Time) ([]int64, error) {
	if len(results) != len(best) {
		return nil, fmt.Errorf("got %d results but %d best configurations", len(results), len(best))
	}
	for i := range results {
		if best[i].Variant != results[i].Variant {
			return nil, mismatchError(results[i], best[i])
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ids := make([]int64, 0, len(results))
	for i := range results {
		id, err := insertRun(ctx, tx, results[i], best[i], now)
		if err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", results[i].Variant, err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit %d runs: %w", len(ids), err)
	}
	return ids, nil
}

func mismatchError(res sweep.Result, best sweep.Best) error {
	return fmt.Errorf("best configuration for %s does not match run for %s", best.Variant, res.Variant)
}

// insertRun writes one run, its samples and its best configuration inside tx.
func insertRun(ctx context.Context, tx *sql.Tx, res sweep.Result, best sweep.Best, now time.Time) (int64, error) {
	var runID int64
	err := tx.QueryRowContext(ctx,
		`INSERT INTO sweep_runs (variant, model, reynolds, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		res.Variant.Slug(), res.Model, res.Reynolds, now,
	).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	if err := copySamples(ctx, tx, runID, res.Samples); err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO best_configurations (
			run_id, variant, optimal_index, optimal_angle,
			max_lift_to_drag, lift_coefficient, drag_coefficient
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		runID, best.Variant.Slug(), best.OptimalIndex, best.OptimalAngle,
		best.MaxLiftToDrag, best.LiftCoefficient, best.DragCoefficient,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert best configuration: %w", err)
	}
	return runID, nil
}

// copySamples bulk-loads samples with COPY.
func copySamples(ctx context.Context, tx *sql.Tx, runID int64, samples []sweep.Sample) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("sweep_samples",
		"run_id", "sample_index", "angle_deg", "lift", "drag", "lift_to_drag"))
	if err != nil {
		return fmt.Errorf("failed to prepare sample copy: %w", err)
	}
	defer stmt.Close()

	for i, s := range samples {
		if _, err := stmt.ExecContext(ctx, runID, i, s.Angle, s.Lift, s.Drag, s.LiftToDrag); err != nil {
			return fmt.Errorf("failed to copy sample %d: %w", i, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to flush samples: %w", err)
	}
	return nil
}

// ListRuns returns the newest runs first, optionally restricted to variants.
func (r *SweepRepository) ListRuns(ctx context.Context, variants []flap.Variant, limit int) ([]RunSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.id, r.variant, r.model, r.reynolds, r.created_at, COUNT(s.sample_index)
		 FROM sweep_runs r
		 LEFT JOIN sweep_samples s ON s.run_id = r.id
		 WHERE cardinality($1::text[]) = 0 OR r.variant = ANY($1)
		 GROUP BY r.id
		 ORDER BY r.created_at DESC, r.id DESC
		 LIMIT $2`,
		pq.Array(slugs(variants)), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var slug string
		if err := rows.Scan(&run.ID, &slug, &run.Model, &run.Reynolds, &run.CreatedAt, &run.SampleCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if run.Variant, err = flap.Parse(slug); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun loads a stored run with its samples in sweep order.
func (r *SweepRepository) GetRun(ctx context.Context, id int64) (sweep.Result, error) {
	var res sweep.Result
	var slug string
	err := r.db.QueryRowContext(ctx,
		`SELECT variant, model, reynolds FROM sweep_runs WHERE id = $1`, id,
	).Scan(&slug, &res.Model, &res.Reynolds)
	if err == sql.ErrNoRows {
		return sweep.Result{}, fmt.Errorf("sweep run %d not found", id)
	}
	if err != nil {
		return sweep.Result{}, fmt.Errorf("failed to query run: %w", err)
	}
	if res.Variant, err = flap.Parse(slug); err != nil {
		return sweep.Result{}, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT angle_deg, lift, drag, lift_to_drag
		 FROM sweep_samples
		 WHERE run_id = $1
		 ORDER BY sample_index`, id,
	)
	if err != nil {
		return sweep.Result{}, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s sweep.Sample
		if err := rows.Scan(&s.Angle, &s.Lift, &s.Drag, &s.LiftToDrag); err != nil {
			return sweep.Result{}, fmt.Errorf("failed to scan sample: %w", err)
		}
		res.Samples = append(res.Samples, s)
	}
	return res, rows.Err()
}

// LatestBest returns the most recent optimal configuration of every stored
// variant, in variant order.
func (r *SweepRepository) LatestBest(ctx context.Context) ([]sweep.Best, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT ON (b.variant)
			b.variant, b.optimal_index, b.optimal_angle,
			b.max_lift_to_drag, b.lift_coefficient, b.drag_coefficient
		 FROM best_configurations b
		 JOIN sweep_runs r ON r.id = b.run_id
		 ORDER BY b.variant, r.created_at DESC, r.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query best configurations: %w", err)
	}
	defer rows.Close()

	byVariant := make(map[flap.Variant]sweep.Best)
	for rows.Next() {
		var b sweep.Best
		var slug string
		if err := rows.Scan(&slug, &b.OptimalIndex, &b.OptimalAngle,
			&b.MaxLiftToDrag, &b.LiftCoefficient, &b.DragCoefficient); err != nil {
			return nil, fmt.Errorf("failed to scan best configuration: %w", err)
		}
		if b.Variant, err = flap.Parse(slug); err != nil {
			return nil, err
		}
		byVariant[b.Variant] = b
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orderByVariant(byVariant), nil
}

func orderByVariant(byVariant map[flap.Variant]sweep.Best) []sweep.Best {
	best := make([]sweep.Best, 0, len(byVariant))
	for _, v := range flap.All() {
		if b, ok := byVariant[v]; ok {
			best = append(best, b)
		}
	}
	return best
}

func slugs(variants []flap.Variant) []string {
	out := make([]string, len(variants))
	for i, v := range variants {
		out[i] = v.Slug()
	}
	return out
}
