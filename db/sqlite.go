package db

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var database *sql.DB

// InitDB initializes the SQLite database
func InitDB(path string) error {
	var err error
	database, err = sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	query := `
    CREATE TABLE IF NOT EXISTS predictions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        target VARCHAR(20) NOT NULL,
        risk REAL NOT NULL,
        mode VARCHAR(10) NOT NULL,
        created_at DATETIME NOT NULL
    );
    `

	_, err = database.Exec(query)
	return err
}

// Close releases the database handle.
func Close() error {
	if database == nil {
		return nil
	}
	err := database.Close()
	database = nil
	return err
}

// PredictionRecord is one logged prediction result.
type PredictionRecord struct {
	ID        int64     `json:"id"`
	Target    string    `json:"target"`
	Risk      float64   `json:"risk"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"created_at"`
}

// SavePrediction appends a prediction result to the history log.
func SavePrediction(target string, risk float64, mode string) error {
	if database == nil {
		return errors.New("database not initialized")
	}
	if target == "" {
		return errors.New("target required")
	}
	_, err := database.Exec(`
        INSERT INTO predictions (target, risk, mode, created_at)
        VALUES (?, ?, ?, ?)`,
		target, risk, mode, time.Now().UTC())
	return err
}

// RecentPredictions returns the most recent prediction records, newest first.
func RecentPredictions(limit int) ([]PredictionRecord, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := database.Query(`
        SELECT id, target, risk, mode, created_at
        FROM predictions
        ORDER BY created_at DESC, id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]PredictionRecord, 0)
	for rows.Next() {
		var r PredictionRecord
		if err := rows.Scan(&r.ID, &r.Target, &r.Risk, &r.Mode, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
