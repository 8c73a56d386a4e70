package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"frontierlab/internal/domain"

	"github.com/google/uuid"
	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// Run is one persisted frontier sweep: the universe it ran over, the grid
// bounds, and every solved point.
type Run struct {
	RunID     uuid.UUID       `json:"runId"`
	CreatedAt time.Time       `json:"createdAt"`
	Frontier  domain.Frontier `json:"frontier"`
}

type RunRepository interface {
	Add(run *Run) error
	Get(runID uuid.UUID) (*Run, error)
	List() ([]Run, error)
}

type runRepositoryHandler struct {
	DB *sql.DB
}

func NewRunRepository(db *sql.DB) RunRepository {
	return runRepositoryHandler{DB: db}
}

func NewDb(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db at %s: %w", path, err)
	}
	// sqlite allows a single writer; a larger pool just produces
	// SQLITE_BUSY under concurrent sweeps.
	db.SetMaxOpenConns(1)
	if err := InitSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS frontier_run(
		run_id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		universe TEXT NOT NULL,
		points TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to init frontier_run schema: %w", err)
	}
	return nil
}

func (h runRepositoryHandler) Add(run *Run) error {
	if run.RunID == uuid.Nil {
		return fmt.Errorf("run is missing an id")
	}
	universeJSON, err := json.Marshal(run.Frontier.Universe)
	if err != nil {
		return fmt.Errorf("failed to encode universe: %w", err)
	}
	pointsJSON, err := json.Marshal(run.Frontier.Points)
	if err != nil {
		return fmt.Errorf("failed to encode frontier points: %w", err)
	}

	_, err = h.DB.Exec(
		`INSERT INTO frontier_run(run_id, created_at, universe, points) VALUES(?,?,?,?)`,
		run.RunID.String(),
		run.CreatedAt.UTC().Unix(),
		string(universeJSON),
		string(pointsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.RunID, err)
	}
	return nil
}

func (h runRepositoryHandler) Get(runID uuid.UUID) (*Run, error) {
	row := h.DB.QueryRow(
		`SELECT run_id, created_at, universe, points FROM frontier_run WHERE run_id = ?`,
		runID.String(),
	)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", runID, err)
	}
	return run, nil
}

func (h runRepositoryHandler) List() ([]Run, error) {
	rows, err := h.DB.Query(`SELECT run_id, created_at, universe, points FROM frontier_run ORDER BY created_at ASC, run_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*Run, error) {
	var (
		idStr        string
		createdAt    int64
		universeJSON string
		pointsJSON   string
	)
	if err := row.Scan(&idStr, &createdAt, &universeJSON, &pointsJSON); err != nil {
		return nil, err
	}

	runID, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid run id %q: %w", idStr, err)
	}
	run := &Run{
		RunID:     runID,
		CreatedAt: time.Unix(createdAt, 0).UTC(),
	}
	if err := json.Unmarshal([]byte(universeJSON), &run.Frontier.Universe); err != nil {
		return nil, fmt.Errorf("failed to decode universe: %w", err)
	}
	if err := json.Unmarshal([]byte(pointsJSON), &run.Frontier.Points); err != nil {
		return nil, fmt.Errorf("failed to decode frontier points: %w", err)
	}
	return run, nil
}
