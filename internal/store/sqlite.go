// Package store persists accessibility runs to a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/KaramelBytes/logsum-cli/internal/accessibility"
	"github.com/KaramelBytes/logsum-cli/internal/report"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned when a run id is not in the database.
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	created_at   TEXT NOT NULL,
	dataset      TEXT NOT NULL,
	coefficients TEXT NOT NULL,
	group_col    TEXT NOT NULL,
	records      INTEGER NOT NULL,
	persons      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS group_stats (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	grp    TEXT NOT NULL,
	label  TEXT NOT NULL,
	n      INTEGER NOT NULL,
	mean   REAL,
	median REAL,
	std    REAL,
	PRIMARY KEY (run_id, grp)
);
CREATE TABLE IF NOT EXISTS person_accessibility (
	run_id        TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	person_id     TEXT NOT NULL,
	accessibility REAL,
	grp           TEXT NOT NULL,
	observed      INTEGER NOT NULL,
	PRIMARY KEY (run_id, person_id)
);
`

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps a SQLite database holding runs.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single writer keeps PRAGMAs on the one connection.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{"PRAGMA foreign_keys=ON", "PRAGMA journal_mode=WAL"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// SaveRun writes a run and both of its tables in one transaction.
func (s *Store) SaveRun(ctx context.Context, run *report.Run) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res := run.Result
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, dataset, coefficients, group_col, records, persons) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UTC().Format(timeLayout), run.Dataset, run.Coefficients, run.GroupCol, res.Records, len(res.Persons))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	gstmt, err := tx.PrepareContext(ctx, `INSERT INTO group_stats (run_id, grp, label, n, mean, median, std) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare group insert: %w", err)
	}
	defer gstmt.Close()
	for _, g := range res.Groups {
		if _, err = gstmt.ExecContext(ctx, run.ID, g.Group, g.Label, g.Count, nullable(g.Mean), nullable(g.Median), nullable(g.Std)); err != nil {
			return fmt.Errorf("insert group %s: %w", g.Group, err)
		}
	}

	pstmt, err := tx.PrepareContext(ctx, `INSERT INTO person_accessibility (run_id, person_id, accessibility, grp, observed) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare person insert: %w", err)
	}
	defer pstmt.Close()
	for _, p := range res.Persons {
		if _, err = pstmt.ExecContext(ctx, run.ID, p.PersonID, nullable(p.Accessibility), p.Group, p.Observed); err != nil {
			return fmt.Errorf("insert person %s: %w", p.PersonID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// RunSummary is a row of the runs table.
type RunSummary struct {
	ID           string
	CreatedAt    time.Time
	Dataset      string
	Coefficients string
	GroupCol     string
	Records      int
	Persons      int
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, dataset, coefficients, group_col, records, persons FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	var out []RunSummary
	for rows.Next() {
		rs, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunSummary, error) {
	var rs RunSummary
	var created string
	if err := sc.Scan(&rs.ID, &created, &rs.Dataset, &rs.Coefficients, &rs.GroupCol, &rs.Records, &rs.Persons); err != nil {
		return rs, fmt.Errorf("scan run: %w", err)
	}
	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return rs, fmt.Errorf("parse created_at: %w", err)
	}
	rs.CreatedAt = t
	return rs, nil
}

// LoadRun reads a stored run back into a report.Run.
func (s *Store) LoadRun(ctx context.Context, id string) (*report.Run, error) {
	rs, err := scanRun(s.db.QueryRowContext(ctx,
		`SELECT id, created_at, dataset, coefficients, group_col, records, persons FROM runs WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return nil, err
	}
	res := &accessibility.Result{Records: rs.Records}

	grows, err := s.db.QueryContext(ctx, `SELECT grp, label, n, mean, median, std FROM group_stats WHERE run_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer grows.Close()
	for grows.Next() {
		var g accessibility.GroupStats
		var mean, median, std sql.NullFloat64
		if err := grows.Scan(&g.Group, &g.Label, &g.Count, &mean, &median, &std); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		g.Mean, g.Median, g.Std = fromNullable(mean), fromNullable(median), fromNullable(std)
		res.Groups = append(res.Groups, g)
	}
	if err := grows.Err(); err != nil {
		return nil, err
	}

	prows, err := s.db.QueryContext(ctx, `SELECT person_id, accessibility, grp, observed FROM person_accessibility WHERE run_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("query persons: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var p accessibility.PersonAccessibility
		var acc sql.NullFloat64
		if err := prows.Scan(&p.PersonID, &acc, &p.Group, &p.Observed); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		p.Accessibility = fromNullable(acc)
		res.Persons = append(res.Persons, p)
	}
	if err := prows.Err(); err != nil {
		return nil, err
	}
	accessibility.SortGroups(res.Groups)
	accessibility.SortPersons(res.Persons)

	return &report.Run{
		ID:           rs.ID,
		Dataset:      rs.Dataset,
		Coefficients: rs.Coefficients,
		GroupCol:     rs.GroupCol,
		CreatedAt:    rs.CreatedAt,
		Result:       res,
	}, nil
}

// SQLite stores NaN as NULL; infinities survive as REAL.
func nullable(x float64) sql.NullFloat64 {
	if math.IsNaN(x) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: x, Valid: true}
}

func fromNullable(n sql.NullFloat64) float64 {
	if !n.Valid {
		return math.NaN()
	}
	return n.Float64
}
