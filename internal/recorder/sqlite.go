package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"MetaReader/internal/model"
)

// SQLiteRecorder persists decoded securities to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *logrus.Entry
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *logrus.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets readers query while an import is writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: logger.WithField("component", "recorder")}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.WithField("path", dbPath).Info("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS securities (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			source           TEXT NOT NULL,
			variant          TEXT NOT NULL,
			file_number      INTEGER NOT NULL,
			symbol           TEXT NOT NULL,
			name             TEXT,
			full_name        TEXT,
			start_date       TEXT,
			end_date         TEXT,
			frequency        TEXT,
			intraday_minutes INTEGER,
			field_count      INTEGER,
			row_count        INTEGER,
			updated_at       INTEGER NOT NULL,
			UNIQUE (source, file_number, symbol)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_securities_symbol ON securities(symbol)`,

		`CREATE TABLE IF NOT EXISTS bars (
			security_id   INTEGER NOT NULL REFERENCES securities(id),
			seq           INTEGER NOT NULL,
			timestamp     INTEGER NOT NULL,
			open          REAL,
			high          REAL,
			low           REAL,
			close         REAL,
			volume        REAL,
			open_interest REAL,
			PRIMARY KEY (security_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bars_ts ON bars(security_id, timestamp)`,

		`CREATE TABLE IF NOT EXISTS import_runs (
			id          TEXT PRIMARY KEY,
			source      TEXT,
			variant     TEXT,
			entries     INTEGER,
			rows        INTEGER,
			missing     INTEGER,
			failed      INTEGER,
			started_at  INTEGER,
			finished_at INTEGER
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSecurity(source string, entry *model.IndexEntry, series *model.DataSeries) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow(`INSERT INTO securities
		(source, variant, file_number, symbol, name, full_name, start_date, end_date,
		 frequency, intraday_minutes, field_count, row_count, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT (source, file_number, symbol) DO UPDATE SET
			variant = excluded.variant,
			name = excluded.name,
			full_name = excluded.full_name,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			frequency = excluded.frequency,
			intraday_minutes = excluded.intraday_minutes,
			field_count = excluded.field_count,
			row_count = excluded.row_count,
			updated_at = excluded.updated_at
		RETURNING id`,
		source, entry.Variant.String(), entry.DataFileNumber, entry.Symbol, entry.Name, entry.FullName,
		entry.StartDate.String(), entry.EndDate.String(), entry.Frequency.String(), entry.IntradayMinutes,
		series.FieldCount, len(series.Rows), time.Now().Unix(),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("upsert security %s: %w", entry.Symbol, err)
	}

	if _, err := tx.Exec(`DELETE FROM bars WHERE security_id = ?`, id); err != nil {
		return fmt.Errorf("clear bars %s: %w", entry.Symbol, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO bars
		(security_id, seq, timestamp, open, high, low, close, volume, open_interest)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare bars: %w", err)
	}
	defer stmt.Close()

	for i, row := range series.Rows {
		volume := sql.NullFloat64{Float64: row.Volume, Valid: series.HasVolume()}
		oi := sql.NullFloat64{Float64: row.OpenInterest, Valid: series.HasOpenInterest()}
		if _, err := stmt.Exec(id, i, row.Time.Unix(), row.Open, row.High, row.Low, row.Close, volume, oi); err != nil {
			return fmt.Errorf("insert bar %d of %s: %w", i, entry.Symbol, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordRun(run *ImportRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	_, err := r.db.Exec(`INSERT INTO import_runs
		(id, source, variant, entries, rows, missing, failed, started_at, finished_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		run.ID, run.Source, run.Variant, run.Entries, run.Rows, run.Missing, run.Failed,
		run.StartedAt.Unix(), run.FinishedAt.Unix(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
