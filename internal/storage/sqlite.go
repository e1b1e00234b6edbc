// Package storage provides SQLite-based persistence for game results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/edu-arcade/internal/bridge"
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// SortingResult is one finished Speed Sorting game.
type SortingResult struct {
	ID                string
	GameID            string
	ContentID         string
	FinalTime         int // Seconds
	TotalWords        int
	IncorrectAttempts int
	CreatedAt         time.Time
}

// MazeResult is one finished Maze Chase game.
type MazeResult struct {
	ID          string
	ContentID   string
	Score       int // Reported by the runtime
	BridgeScore int // Tallied by the host
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS sorting_results (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			content_id TEXT NOT NULL,
			final_time INTEGER NOT NULL,
			total_words INTEGER NOT NULL,
			incorrect_attempts INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sorting_results_best ON sorting_results(content_id, final_time, incorrect_attempts);

		CREATE TABLE IF NOT EXISTS maze_results (
			id TEXT PRIMARY KEY,
			content_id TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			bridge_score INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_maze_results_top ON maze_results(content_id, bridge_score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// insertScore adds an entry to the generic scores table.
func insertScore(ex execer, gameID string, score int) error {
	if _, err := ex.Exec("INSERT INTO scores (game_id, score) VALUES (?, ?)", gameID, score); err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}
	return nil
}

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes every record of the given game.
func (s *Store) ClearScores(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM sorting_results WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear sorting results: %w", err)
	}
	if gameID == bridge.GameID {
		if _, err := tx.Exec("DELETE FROM maze_results"); err != nil {
			return fmt.Errorf("storage: cannot clear maze results: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveSortingResult records a finished sorting game together with its score
// entry. Returns the generated result ID.
func (s *Store) SaveSortingResult(r SortingResult) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot save sorting result: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(
		`INSERT INTO sorting_results (id, game_id, content_id, final_time, total_words, incorrect_attempts)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.ContentID, r.FinalTime, r.TotalWords, r.IncorrectAttempts,
	); err != nil {
		return "", fmt.Errorf("storage: cannot save sorting result: %w", err)
	}

	if err := insertScore(tx, r.GameID, SortingPoints(r)); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot save sorting result: %w", err)
	}
	return r.ID, nil
}

// SortingPoints turns a sorting result into a scoreboard value: every word is
// worth 100 points, minus 10 per second and 25 per wrong drop, never below zero.
func SortingPoints(r SortingResult) int {
	return max(0, r.TotalWords*100-r.FinalTime*10-r.IncorrectAttempts*25)
}

// BestSortingResults returns the fastest games for a descriptor; fewer wrong
// drops break ties. An empty contentID covers all descriptors.
func (s *Store) BestSortingResults(contentID string, limit int) ([]SortingResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, content_id, final_time, total_words, incorrect_attempts, created_at
		 FROM sorting_results
		 WHERE ? = '' OR content_id = ?
		 ORDER BY final_time ASC, incorrect_attempts ASC, created_at ASC
		 LIMIT ?`,
		contentID, contentID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sorting results: %w", err)
	}
	defer rows.Close()

	var results []SortingResult
	for rows.Next() {
		var r SortingResult
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.ContentID, &r.FinalTime, &r.TotalWords, &r.IncorrectAttempts, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// SaveMazeResult implements bridge.ResultSaver.
func (s *Store) SaveMazeResult(data bridge.Result) error {
	_, err := s.InsertMazeResult(MazeResult{
		ContentID:   data.ContentID,
		Score:       data.RuntimeScore,
		BridgeScore: data.BridgeScore,
	})
	return err
}

var _ bridge.ResultSaver = (*Store)(nil)

// InsertMazeResult records a finished maze game together with its score entry.
func (s *Store) InsertMazeResult(r MazeResult) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot save maze result: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(
		"INSERT INTO maze_results (id, content_id, score, bridge_score) VALUES (?, ?, ?, ?)",
		r.ID, r.ContentID, r.Score, r.BridgeScore,
	); err != nil {
		return "", fmt.Errorf("storage: cannot save maze result: %w", err)
	}

	if err := insertScore(tx, bridge.GameID, r.BridgeScore); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot save maze result: %w", err)
	}
	return r.ID, nil
}

// MazeResultByID retrieves one maze result. Returns nil when it does not exist.
func (s *Store) MazeResultByID(id string) (*MazeResult, error) {
	var r MazeResult
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, content_id, score, bridge_score, created_at
		 FROM maze_results
		 WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.ContentID, &r.Score, &r.BridgeScore, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query maze result: %w", err)
	}

	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// TopMazeResults returns the best maze games, highest tallied score first.
// An empty contentID covers all descriptors.
func (s *Store) TopMazeResults(contentID string, limit int) ([]MazeResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, content_id, score, bridge_score, created_at
		 FROM maze_results
		 WHERE ? = '' OR content_id = ?
		 ORDER BY bridge_score DESC, created_at ASC
		 LIMIT ?`,
		contentID, contentID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query maze results: %w", err)
	}
	defer rows.Close()

	var results []MazeResult
	for rows.Next() {
		var r MazeResult
		var createdAt any
		if err := rows.Scan(&r.ID, &r.ContentID, &r.Score, &r.BridgeScore, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &gs.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
