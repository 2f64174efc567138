// Package sqlite keeps a history of projection runs in a SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/popprobe/population-simulator/internal/domain"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("run not found")

const schema = `CREATE TABLE IF NOT EXISTS runs (
  id               INTEGER PRIMARY KEY AUTOINCREMENT,
  name             TEXT    NOT NULL,
  semantics        TEXT    NOT NULL,
  start_year       INTEGER NOT NULL,
  end_year         INTEGER NOT NULL,
  final_population REAL    NOT NULL,
  config_json      TEXT    NOT NULL,
  result_json      TEXT    NOT NULL,
  created_at       INTEGER NOT NULL
)`

// nowFunc stamps saved runs (override in tests for determinism).
var nowFunc = time.Now

// RunInfo is the listing view of a stored run.
type RunInfo struct {
	ID              int64
	Name            string
	Semantics       string
	StartYear       int
	EndYear         int
	FinalPopulation float64 // thousands
	CreatedAt       time.Time
}

// StoredRun is a run with its input scenario and full result.
type StoredRun struct {
	RunInfo
	Config *domain.Configuration
	Result *domain.ProjectionResult
}

// Store persists projection runs in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (or creates) a run history database and ensures the schema exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveRun records a scenario and its result, returning the new run id.
func (s *Store) SaveRun(ctx context.Context, name string, cfg *domain.Configuration, result *domain.ProjectionResult) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	if cfg == nil || result == nil {
		return 0, fmt.Errorf("configuration and result are required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = cfg.Name
	}
	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return 0, fmt.Errorf("encode configuration: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("encode result: %w", err)
	}

	res, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO runs (
		   name,
		   semantics,
		   start_year,
		   end_year,
		   final_population,
		   config_json,
		   result_json,
		   created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		name,
		result.Semantics,
		result.Summary.StartYear,
		result.Summary.EndYear,
		result.Summary.FinalPopulation,
		string(configJSON),
		string(resultJSON),
		toMillis(nowFunc()),
	)
	if err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}
	return id, nil
}

// ListRuns returns stored runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, semantics, start_year, end_year, final_population, created_at
		   FROM runs
		  ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var (
			info    RunInfo
			created int64
		)
		if err := rows.Scan(&info.ID, &info.Name, &info.Semantics, &info.StartYear, &info.EndYear, &info.FinalPopulation, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		info.CreatedAt = fromMillis(created)
		runs = append(runs, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// LoadRun returns a stored run by id.
func (s *Store) LoadRun(ctx context.Context, id int64) (*StoredRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	var (
		run                    StoredRun
		created                int64
		configJSON, resultJSON string
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, name, semantics, start_year, end_year, final_population, config_json, result_json, created_at
		   FROM runs
		  WHERE id = ?`, id).
		Scan(&run.ID, &run.Name, &run.Semantics, &run.StartYear, &run.EndYear, &run.FinalPopulation, &configJSON, &resultJSON, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load run %d: %w", id, err)
	}
	run.CreatedAt = fromMillis(created)
	run.Config = &domain.Configuration{}
	if err := json.Unmarshal([]byte(configJSON), run.Config); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	run.Result = &domain.ProjectionResult{}
	if err := json.Unmarshal([]byte(resultJSON), run.Result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &run, nil
}
