package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implementa ResultStore con un archivo SQLite local
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite abre (o crea) la base de resultados
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("error creando directorio de la base: %w", err)
	}

	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("error abriendo la base: %w", err)
	}
	// Un solo jugador: una conexión evita SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error conectando a la base: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error inicializando el esquema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS round_results (
		id TEXT PRIMARY KEY,
		round_id TEXT NOT NULL,
		category TEXT NOT NULL,
		score INTEGER NOT NULL,
		total INTEGER NOT NULL,
		percentage REAL NOT NULL,
		hints_used INTEGER NOT NULL DEFAULT 0,
		expired INTEGER NOT NULL DEFAULT 0,
		finished_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_round_results_category ON round_results(category, finished_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("error creando tablas: %w", err)
	}
	return nil
}

// Save implementa ResultStore
func (s *SQLiteStore) Save(ctx context.Context, result RoundResult) error {
	result = normalize(result)
	query := `
		INSERT INTO round_results
			(id, round_id, category, score, total, percentage, hints_used, expired, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		result.ID, result.RoundID, result.Category, result.Score, result.Total,
		result.Percentage, result.HintsUsed, result.Expired, result.FinishedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("error guardando resultado: %w", err)
	}
	return nil
}

// History implementa ResultStore
func (s *SQLiteStore) History(ctx context.Context, category string, limit int) ([]RoundResult, error) {
	query := `
		SELECT id, round_id, category, score, total, percentage, hints_used, expired, finished_at
		FROM round_results
		WHERE (? = '' OR category = ?)
		ORDER BY finished_at DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, category, category, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("error obteniendo historial: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

// Best implementa ResultStore
func (s *SQLiteStore) Best(ctx context.Context) ([]RoundResult, error) {
	query := `
		SELECT id, round_id, category, score, total, percentage, hints_used, expired, finished_at
		FROM (
			SELECT *, ROW_NUMBER() OVER (
				PARTITION BY category
				ORDER BY percentage DESC, score DESC, finished_at ASC
			) AS pos
			FROM round_results
		)
		WHERE pos = 1
		ORDER BY category`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo mejores resultados: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

// Ping implementa ResultStore
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close implementa ResultStore
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanResults(rows *sql.Rows) ([]RoundResult, error) {
	results := make([]RoundResult, 0)
	for rows.Next() {
		var r RoundResult
		var finishedAt int64
		if err := rows.Scan(
			&r.ID, &r.RoundID, &r.Category, &r.Score, &r.Total,
			&r.Percentage, &r.HintsUsed, &r.Expired, &finishedAt,
		); err != nil {
			return nil, fmt.Errorf("error leyendo fila de resultados: %w", err)
		}
		r.FinishedAt = time.Unix(0, finishedAt).UTC()
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error recorriendo resultados: %w", err)
	}
	return results, nil
}
