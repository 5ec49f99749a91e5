package recorder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"OptionAnalyzer/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists calculations to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	// foreign_keys is per connection, so it goes in the DSN rather than a one-off Exec.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS black_scholes_inputs (
			calculation_id   INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at       INTEGER NOT NULL,
			stock_price      REAL NOT NULL,
			strike_price     REAL NOT NULL,
			interest_rate    REAL NOT NULL,
			volatility       REAL NOT NULL,
			time_to_maturity REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_inputs_created ON black_scholes_inputs(created_at)`,

		`CREATE TABLE IF NOT EXISTS black_scholes_outputs (
			calculation_output_id INTEGER PRIMARY KEY AUTOINCREMENT,
			volatility_shock      REAL NOT NULL,
			stock_price_shock     REAL NOT NULL,
			option_price          REAL NOT NULL,
			is_call               INTEGER NOT NULL CHECK (is_call IN (0, 1)),
			calculation_id        INTEGER NOT NULL REFERENCES black_scholes_inputs(calculation_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outputs_calculation ON black_scholes_outputs(calculation_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// SaveCalculation writes the input row and every output row in one transaction.
func (r *SQLiteRecorder) SaveCalculation(ctx context.Context, rec *model.CalculationRecord) (int64, error) {
	if rec == nil || len(rec.Outputs) == 0 {
		return 0, ErrEmptyRecord
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // no-op after Commit

	in := rec.Inputs
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO black_scholes_inputs
		(created_at, stock_price, strike_price, interest_rate, volatility, time_to_maturity)
		VALUES (?,?,?,?,?,?)`,
		createdAt.Unix(), in.Spot, in.Strike, in.Rate, in.Volatility, in.TimeYears,
	)
	if err != nil {
		return 0, fmt.Errorf("insert inputs: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("inputs id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO black_scholes_outputs
		(volatility_shock, stock_price_shock, option_price, is_call, calculation_id)
		VALUES (?,?,?,?,?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare outputs: %w", err)
	}
	defer stmt.Close()

	for i, o := range rec.Outputs {
		isCall := 0
		if o.IsCall() {
			isCall = 1
		}
		if _, err := stmt.ExecContext(ctx, o.VolatilityShock, o.StockPriceShock, o.OptionPrice, isCall, id); err != nil {
			return 0, fmt.Errorf("insert output %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// LoadCalculation reads a calculation and its outputs in insertion order.
func (r *SQLiteRecorder) LoadCalculation(ctx context.Context, id int64) (*model.CalculationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := &model.CalculationRecord{ID: id}
	var createdAt int64
	err := r.db.QueryRowContext(ctx, `SELECT created_at, stock_price, strike_price, interest_rate, volatility, time_to_maturity
		FROM black_scholes_inputs WHERE calculation_id = ?`, id).
		Scan(&createdAt, &rec.Inputs.Spot, &rec.Inputs.Strike, &rec.Inputs.Rate, &rec.Inputs.Volatility, &rec.Inputs.TimeYears)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query inputs: %w", err)
	}
	rec.CreatedAt = time.Unix(createdAt, 0)

	rows, err := r.db.QueryContext(ctx, `SELECT volatility_shock, stock_price_shock, option_price, is_call
		FROM black_scholes_outputs WHERE calculation_id = ? ORDER BY calculation_output_id`, id)
	if err != nil {
		return nil, fmt.Errorf("query outputs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o model.OutputRow
		var isCall int
		if err := rows.Scan(&o.VolatilityShock, &o.StockPriceShock, &o.OptionPrice, &isCall); err != nil {
			return nil, fmt.Errorf("scan output: %w", err)
		}
		o.Kind = model.Put
		if isCall == 1 {
			o.Kind = model.Call
		}
		rec.Outputs = append(rec.Outputs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outputs: %w", err)
	}
	return rec, nil
}

// ListCalculations returns the most recent calculations first.
func (r *SQLiteRecorder) ListCalculations(ctx context.Context, limit int) ([]model.CalculationSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx, `SELECT i.calculation_id, i.created_at, i.stock_price, i.strike_price,
			i.interest_rate, i.volatility, i.time_to_maturity, COUNT(o.calculation_output_id)
		FROM black_scholes_inputs i
		LEFT JOIN black_scholes_outputs o ON o.calculation_id = i.calculation_id
		GROUP BY i.calculation_id
		ORDER BY i.calculation_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}
	defer rows.Close()

	var out []model.CalculationSummary
	for rows.Next() {
		var s model.CalculationSummary
		var createdAt int64
		if err := rows.Scan(&s.ID, &createdAt, &s.Inputs.Spot, &s.Inputs.Strike,
			&s.Inputs.Rate, &s.Inputs.Volatility, &s.Inputs.TimeYears, &s.OutputCount); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		s.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
