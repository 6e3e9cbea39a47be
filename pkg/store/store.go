// Package store guarda los resultados de las rondas terminadas.
package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// RoundResult resultado de una ronda terminada
type RoundResult struct {
	ID         string    `json:"id"`
	RoundID    string    `json:"roundId"`
	Category   string    `json:"category"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage float64   `json:"percentage"`
	HintsUsed  int       `json:"hintsUsed"`
	Expired    int       `json:"expired"`
	FinishedAt time.Time `json:"finishedAt"`
}

// ResultStore define dónde se guardan los resultados
type ResultStore interface {
	// Save guarda un resultado. Completa ID y FinishedAt si faltan.
	Save(ctx context.Context, result RoundResult) error

	// History devuelve los resultados más recientes primero.
	// Con category vacía incluye todas las categorías.
	History(ctx context.Context, category string, limit int) ([]RoundResult, error)

	// Best devuelve el mejor resultado de cada categoría.
	Best(ctx context.Context) ([]RoundResult, error)

	// Ping verifica la conexión.
	Ping(ctx context.Context) error

	// Close libera la conexión.
	Close() error
}

// Backends disponibles
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Options parámetros para abrir un store
type Options struct {
	Backend       string
	DBPath        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open abre el store configurado
func Open(ctx context.Context, opts Options) (ResultStore, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendSQLite, "":
		s, err := NewSQLite(opts.DBPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendRedis:
		s, err := NewRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("backend de resultados desconocido: %s", opts.Backend)
	}
}

// DefaultHistoryLimit límite cuando no se pide uno válido
const DefaultHistoryLimit = 20

func normalize(result RoundResult) RoundResult {
	if result.ID == "" {
		result.ID = uuid.New().String()
	}
	if result.FinishedAt.IsZero() {
		result.FinishedAt = time.Now()
	}
	result.FinishedAt = result.FinishedAt.UTC()
	return result
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return limit
}

// better indica si a supera a b: mayor porcentaje, luego mayor puntaje,
// luego el más antiguo.
func better(a, b RoundResult) bool {
	if a.Percentage != b.Percentage {
		return a.Percentage > b.Percentage
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.FinishedAt.Before(b.FinishedAt)
}

func sortByCategory(results []RoundResult) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Category < results[j].Category
	})
}
