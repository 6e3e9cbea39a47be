package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

const (
	resultKeyPrefix   = "respondidos:result:"
	historyKey        = "respondidos:results"
	categoryKeyPrefix = "respondidos:results:"
	bestKey           = "respondidos:best"
)

// RedisStore implementa ResultStore sobre Redis
type RedisStore struct {
	client *redis.Client
}

// NewRedis crea el cliente y verifica la conexión
func NewRedis(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("error conectando a Redis en %s: %w", addr, err)
	}

	log.Println("✅ Conexión exitosa a Redis")
	return &RedisStore{client: rdb}, nil
}

// Save guarda el resultado, lo agrega a los historiales y actualiza el mejor
// de la categoría
func (r *RedisStore) Save(ctx context.Context, result RoundResult) error {
	result = normalize(result)
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("error serializando resultado: %w", err)
	}

	best, err := r.bestFor(ctx, result.Category)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, resultKeyPrefix+result.ID, resultJSON, 0)
	pipe.LPush(ctx, historyKey, result.ID)
	pipe.LPush(ctx, categoryKeyPrefix+result.Category, result.ID)
	if best == nil || better(result, *best) {
		pipe.HSet(ctx, bestKey, result.Category, resultJSON)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error guardando resultado: %w", err)
	}
	return nil
}

// History implementa ResultStore
func (r *RedisStore) History(ctx context.Context, category string, limit int) ([]RoundResult, error) {
	key := historyKey
	if category != "" {
		key = categoryKeyPrefix + category
	}

	ids, err := r.client.LRange(ctx, key, 0, int64(clampLimit(limit)-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("error obteniendo historial: %w", err)
	}
	results := make([]RoundResult, 0, len(ids))
	if len(ids) == 0 {
		return results, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = resultKeyPrefix + id
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("error obteniendo resultados: %w", err)
	}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			log.Printf("⚠️ Resultado %s no encontrado", ids[i])
			continue
		}
		var result RoundResult
		if err := json.Unmarshal([]byte(s), &result); err != nil {
			log.Printf("⚠️ Resultado %s inválido: %v", ids[i], err)
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

// Best implementa ResultStore
func (r *RedisStore) Best(ctx context.Context) ([]RoundResult, error) {
	all, err := r.client.HGetAll(ctx, bestKey).Result()
	if err != nil {
		return nil, fmt.Errorf("error obteniendo mejores resultados: %w", err)
	}
	results := make([]RoundResult, 0, len(all))
	for category, s := range all {
		var result RoundResult
		if err := json.Unmarshal([]byte(s), &result); err != nil {
			log.Printf("⚠️ Mejor resultado de %s inválido: %v", category, err)
			continue
		}
		results = append(results, result)
	}
	sortByCategory(results)
	return results, nil
}

func (r *RedisStore) bestFor(ctx context.Context, category string) (*RoundResult, error) {
	s, err := r.client.HGet(ctx, bestKey, category).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error obteniendo mejor resultado: %w", err)
	}
	var result RoundResult
	if err := json.Unmarshal([]byte(s), &result); err != nil {
		log.Printf("⚠️ Mejor resultado de %s inválido, se reemplaza: %v", category, err)
		return nil, nil
	}
	return &result, nil
}

// Ping verifica que Redis esté funcionando
func (r *RedisStore) Ping(ctx context.Context) error {
	if _, err := r.client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Close cierra la conexión con Redis
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// Clear elimina todos los resultados guardados
func (r *RedisStore) Clear(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "respondidos:result*").Result()
	if err != nil {
		return fmt.Errorf("error listando claves: %w", err)
	}
	keys = append(keys, bestKey)
	return r.client.Del(ctx, keys...).Err()
}
