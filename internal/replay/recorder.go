package replay

import (
	"database/sql"
	"fmt"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
)

const createResultsTable = `
CREATE TABLE IF NOT EXISTS replay_results (
	run_id          TEXT PRIMARY KEY,
	policy          TEXT NOT NULL,
	workload        TEXT NOT NULL,
	num_sets        INTEGER NOT NULL,
	num_ways        INTEGER NOT NULL,
	rpv_max         INTEGER NOT NULL,
	accesses        INTEGER NOT NULL,
	hits            INTEGER NOT NULL,
	misses          INTEGER NOT NULL,
	evictions       INTEGER NOT NULL,
	hit_rate        REAL NOT NULL,
	set_miss_mean   REAL NOT NULL,
	set_miss_stddev REAL NOT NULL
)`

const insertResult = `
INSERT INTO replay_results (
	run_id, policy, workload, num_sets, num_ways, rpv_max,
	accesses, hits, misses, evictions,
	hit_rate, set_miss_mean, set_miss_stddev
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectResults = `
SELECT
	run_id, policy, workload, num_sets, num_ways, rpv_max,
	accesses, hits, misses, evictions,
	hit_rate, set_miss_mean, set_miss_stddev
FROM replay_results ORDER BY rowid`

// SQLiteRecorder stores replay results in a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	closed bool
}

// NewSQLiteRecorder opens, or creates, the database at path.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if _, err := db.Exec(createResultsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create results table: %w", err)
	}

	return &SQLiteRecorder{db: db}, nil
}

// Record stores a result.
func (r *SQLiteRecorder) Record(res Result) error {
	_, err := r.db.Exec(insertResult,
		res.RunID, res.Policy, res.Workload,
		res.NumSets, res.NumWays, res.RPVMax,
		int64(res.Accesses), int64(res.Hits),
		int64(res.Misses), int64(res.Evictions),
		res.HitRate, res.SetMissMean, res.SetMissStdDev,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", res.RunID, err)
	}

	return nil
}

// Results returns all the stored results in insertion order.
func (r *SQLiteRecorder) Results() ([]Result, error) {
	rows, err := r.db.Query(selectResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			res                               Result
			accesses, hits, misses, evictions int64
		)

		err := rows.Scan(
			&res.RunID, &res.Policy, &res.Workload,
			&res.NumSets, &res.NumWays, &res.RPVMax,
			&accesses, &hits, &misses, &evictions,
			&res.HitRate, &res.SetMissMean, &res.SetMissStdDev,
		)
		if err != nil {
			return nil, err
		}

		res.Accesses = uint64(accesses)
		res.Hits = uint64(hits)
		res.Misses = uint64(misses)
		res.Evictions = uint64(evictions)
		results = append(results, res)
	}

	return results, rows.Err()
}

// Close closes the database. Closing twice is a no-op.
func (r *SQLiteRecorder) Close() error {
	if r.closed {
		return nil
	}

	r.closed = true

	return r.db.Close()
}
