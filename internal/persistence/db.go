// Package persistence provides SQLite-backed storage for district reference
// data and an append-only archive of flood run reports. Simulation state is
// not persisted; a flood always starts from freshly loaded districts.
package persistence

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/talgya/floodsim/internal/districts"
	"github.com/talgya/floodsim/internal/report"
)

// ErrRunNotFound is returned when no archived run has the requested ID.
var ErrRunNotFound = eris.New("persistence: run not found")

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path. ":memory:"
// gives a private in-memory database.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "persistence: open db")
	}
	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases from splitting across connections.
	conn.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, eris.Wrapf(err, "persistence: exec %s", pragma)
		}
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, eris.Wrap(err, "persistence: migrate")
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS districts (
		position INTEGER NOT NULL,
		name TEXT PRIMARY KEY,
		elevation INTEGER NOT NULL,
		population INTEGER NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		jamuna INTEGER NOT NULL,
		ganges INTEGER NOT NULL,
		meghna INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		river TEXT NOT NULL,
		severity_cm REAL NOT NULL,
		seed INTEGER NOT NULL,
		average_distance REAL NOT NULL,
		evaluated INTEGER NOT NULL,
		movers INTEGER NOT NULL,
		total_population INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_districts (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		district TEXT NOT NULL,
		status TEXT NOT NULL,
		arrivals INTEGER NOT NULL,
		population INTEGER NOT NULL,
		PRIMARY KEY (run_id, district)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type districtRow struct {
	Position   int     `db:"position"`
	Name       string  `db:"name"`
	Elevation  int     `db:"elevation"`
	Population int     `db:"population"`
	Lat        float64 `db:"lat"`
	Lon        float64 `db:"lon"`
	Jamuna     bool    `db:"jamuna"`
	Ganges     bool    `db:"ganges"`
	Meghna     bool    `db:"meghna"`
}

// SaveDistricts replaces the stored district reference data.
func (db *DB) SaveDistricts(list []*districts.District) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return eris.Wrap(err, "persistence: begin")
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM districts"); err != nil {
		return eris.Wrap(err, "persistence: clear districts")
	}

	for i, d := range list {
		row := districtRow{
			Position:   i,
			Name:       d.Name,
			Elevation:  d.Elevation,
			Population: d.Population,
			Lat:        d.Lat(),
			Lon:        d.Lon(),
			Jamuna:     d.Rivers[districts.Jamuna],
			Ganges:     d.Rivers[districts.Ganges],
			Meghna:     d.Rivers[districts.Meghna],
		}
		_, err := tx.NamedExec(`INSERT INTO districts
			(position, name, elevation, population, lat, lon, jamuna, ganges, meghna)
			VALUES (:position, :name, :elevation, :population, :lat, :lon, :jamuna, :ganges, :meghna)`, row)
		if err != nil {
			return eris.Wrapf(err, "persistence: insert district %q", d.Name)
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "persistence: commit districts")
	}
	slog.Info("districts saved", "count", len(list))
	return nil
}

// LoadDistricts returns the stored districts in their saved order.
func (db *DB) LoadDistricts() ([]*districts.District, error) {
	var rows []districtRow
	if err := db.conn.Select(&rows, "SELECT * FROM districts ORDER BY position"); err != nil {
		return nil, eris.Wrap(err, "persistence: load districts")
	}

	out := make([]*districts.District, 0, len(rows))
	for _, r := range rows {
		out = append(out, districts.New(r.Name, r.Elevation, r.Population, r.Lat, r.Lon, r.Jamuna, r.Ganges, r.Meghna))
	}
	return out, nil
}

// HasDistricts reports whether district reference data has been stored.
func (db *DB) HasDistricts() bool {
	var n int
	if err := db.conn.Get(&n, "SELECT COUNT(*) FROM districts"); err != nil {
		return false
	}
	return n > 0
}

// Run is an archived flood run.
type Run struct {
	ID              string  `db:"id" json:"id"`
	River           string  `db:"river" json:"river"`
	SeverityCm      float64 `db:"severity_cm" json:"severity_cm"`
	Seed            int64   `db:"seed" json:"seed"`
	AverageDistance float64 `db:"average_distance" json:"average_distance"`
	Evaluated       int     `db:"evaluated" json:"evaluated"`
	Movers          int     `db:"movers" json:"movers"`
	TotalPopulation int     `db:"total_population" json:"total_population"`
	CreatedUnixNano int64   `db:"created_at" json:"-"`
}

// CreatedAt returns when the run was archived.
func (r Run) CreatedAt() time.Time {
	return time.Unix(0, r.CreatedUnixNano).UTC()
}

// SaveRun archives a flood report.
func (db *DB) SaveRun(r *report.Report, seed int64) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return eris.Wrap(err, "persistence: begin")
	}
	defer tx.Rollback()

	run := Run{
		ID:              r.RunID,
		River:           r.River,
		SeverityCm:      r.SeverityCm,
		Seed:            seed,
		AverageDistance: r.AverageDistance,
		Evaluated:       r.Evaluated,
		Movers:          r.Movers,
		TotalPopulation: r.TotalPopulation,
		CreatedUnixNano: time.Now().UnixNano(),
	}
	_, err = tx.NamedExec(`INSERT INTO runs
		(id, river, severity_cm, seed, average_distance, evaluated, movers, total_population, created_at)
		VALUES (:id, :river, :severity_cm, :seed, :average_distance, :evaluated, :movers, :total_population, :created_at)`, run)
	if err != nil {
		return eris.Wrapf(err, "persistence: insert run %s", r.RunID)
	}

	for i, row := range r.Rows {
		_, err := tx.Exec(`INSERT INTO run_districts
			(run_id, position, district, status, arrivals, population)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.RunID, i, row.District, row.Status, row.Arrivals, row.Population,
		)
		if err != nil {
			return eris.Wrapf(err, "persistence: insert run %s district %q", r.RunID, row.District)
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "persistence: commit run")
	}
	slog.Info("run archived", "run_id", r.RunID, "movers", r.Movers)
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT * FROM runs ORDER BY created_at DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "persistence: list runs")
	}
	return runs, nil
}

// GetRun returns the archived run with the given ID.
func (db *DB) GetRun(id string) (*Run, error) {
	var run Run
	err := db.conn.Get(&run, "SELECT * FROM runs WHERE id = ?", id)
	if eris.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrRunNotFound, "%s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "persistence: get run %s", id)
	}
	return &run, nil
}

// Report rebuilds the report of an archived run from its stored rows.
func (r Run) Report(rows []report.Row) *report.Report {
	return &report.Report{
		RunID:           r.ID,
		River:           r.River,
		SeverityCm:      r.SeverityCm,
		AverageDistance: r.AverageDistance,
		Evaluated:       r.Evaluated,
		Movers:          r.Movers,
		TotalPopulation: r.TotalPopulation,
		Rows:            rows,
	}
}

// RunRows returns the per-district rows of an archived run in registry order.
func (db *DB) RunRows(runID string) ([]report.Row, error) {
	var rows []report.Row
	err := db.conn.Select(&rows,
		`SELECT district, status, arrivals, population
		 FROM run_districts WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "persistence: load run %s", runID)
	}
	return rows, nil
}
