package analytics

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout is the SQLite-native datetime format. Timestamps are stored as
// text in this layout so date() and lexical comparisons work on them.
const timeLayout = "2006-01-02 15:04:05"

// Store persists visits in a SQLite database, separate from the generated
// site so the build output stays deterministic.
type Store struct {
	db   *sql.DB
	salt string
}

// NewStore opens (or creates) the analytics database at path, ensures the
// schema, and loads or generates the per-installation hash salt.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, fmt.Errorf("configure analytics db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.initSalt(); err != nil {
		return nil, fmt.Errorf("init salt: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			visitor_id TEXT NOT NULL,
			ip_hash TEXT NOT NULL,
			browser TEXT NOT NULL,
			os TEXT NOT NULL,
			device TEXT NOT NULL,
			path TEXT NOT NULL,
			referrer TEXT,
			timestamp DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
		CREATE INDEX IF NOT EXISTS idx_visits_visitor_id ON visits(visitor_id);
		CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

func (s *Store) initSalt() error {
	salt, err := s.GetSetting("hash_salt")
	if err != nil {
		return err
	}
	if salt == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return fmt.Errorf("generate salt: %w", err)
		}
		salt = hex.EncodeToString(b)
		if err := s.SetSetting("hash_salt", salt); err != nil {
			return err
		}
	}
	s.salt = salt
	return nil
}

// GetSetting returns the value for key, or "" when unset.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSetting upserts a settings key.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// Record derives an anonymous visit from request data and saves it. Bot
// traffic is dropped.
func (s *Store) Record(path, ip, userAgent, referrer string) error {
	if IsBot(userAgent) {
		return nil
	}
	browser, osName, device := ParseUserAgent(userAgent)
	return s.SaveVisit(&Visit{
		VisitorID: s.VisitorID(ip, userAgent),
		IPHash:    s.HashIP(ip),
		Browser:   browser,
		OS:        osName,
		Device:    device,
		Path:      path,
		Referrer:  CleanReferrer(referrer),
		Timestamp: time.Now().UTC(),
	})
}

// SaveVisit inserts a visit row.
func (s *Store) SaveVisit(v *Visit) error {
	_, err := s.db.Exec(
		`INSERT INTO visits (visitor_id, ip_hash, browser, os, device, path, referrer, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.VisitorID, v.IPHash, v.Browser, v.OS, v.Device, v.Path, v.Referrer,
		v.Timestamp.UTC().Format(timeLayout),
	)
	return err
}

// Summarize aggregates visits between from and to for the dashboard.
func (s *Store) Summarize(from, to time.Time, topLimit int) (*Summary, error) {
	sum := &Summary{}
	fromStr := from.UTC().Format(timeLayout)
	toStr := to.UTC().Format(timeLayout)

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT visitor_id) FROM visits WHERE timestamp >= ? AND timestamp < ?`,
		fromStr, toStr,
	).Scan(&sum.TotalVisits, &sum.UniqueVisitors)
	if err != nil {
		return nil, fmt.Errorf("totals: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT path, COUNT(*) AS views FROM visits
		 WHERE timestamp >= ? AND timestamp < ?
		 GROUP BY path ORDER BY views DESC, path ASC LIMIT ?`,
		fromStr, toStr, topLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("top pages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return nil, err
		}
		sum.TopPages = append(sum.TopPages, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	dayRows, err := s.db.Query(
		`SELECT date(timestamp) AS day, COUNT(*) FROM visits
		 WHERE timestamp >= ? AND timestamp < ?
		 GROUP BY day ORDER BY day DESC`,
		fromStr, toStr,
	)
	if err != nil {
		return nil, fmt.Errorf("daily views: %w", err)
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var dc DayCount
		if err := dayRows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, err
		}
		sum.Days = append(sum.Days, dc)
	}
	return sum, dayRows.Err()
}

// CleanupOldVisits deletes visits older than retentionDays.
func (s *Store) CleanupOldVisits(retentionDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Format(timeLayout)
	_, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff)
	return err
}

// StartCleanupScheduler deletes old visits on an interval. The returned
// function stops the scheduler.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = s.CleanupOldVisits(retentionDays)
			case <-stop:
				return
			}
		}
	}()
	return func() { close(stop) }
}
