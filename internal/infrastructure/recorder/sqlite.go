package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"origination-engine/internal/pkg/apperrors"
)

// SQLiteRecorder appends evaluation outcomes to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *slog.Logger
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *slog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so reporting reads do not block writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger.With("component", "SQLiteRecorder")}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.logger.Info("SQLite recorder opened", "path", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS evaluations (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			customer_id      TEXT NOT NULL,
			requested_amount REAL,
			tenure_months    INTEGER,
			decision         TEXT,
			current_dti      REAL,
			projected_dti    REAL,
			approved_amount  REAL,
			total_score      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_ts ON evaluations(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_customer ON evaluations(customer_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordEvaluation(ctx context.Context, rec *EvaluationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `INSERT INTO evaluations
		(timestamp, customer_id, requested_amount, tenure_months, decision,
		 current_dti, projected_dti, approved_amount, total_score)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.CustomerID, rec.RequestedAmount, rec.TenureMonths,
		rec.Decision, rec.CurrentDTI, rec.ProjectedDTI, rec.ApprovedAmount, rec.TotalScore,
	)
	if err != nil {
		return apperrors.WrapRecorderError(err, "failed to insert evaluation row")
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("Closing SQLite recorder")
	return r.db.Close()
}
