// Package config lee la configuración del servidor desde el entorno.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/SBertone10/prog1-equipo-0X/pkg/quiz"
	"github.com/SBertone10/prog1-equipo-0X/pkg/store"
)

// Config configuración completa del servidor
type Config struct {
	Port      string
	BankDir   string
	StaticDir string
	PublicURL string
	Features  quiz.Features
	Results   store.Options
}

// Load lee la configuración de las variables de entorno. El .env, si existe,
// lo carga main antes de llamar a Load.
func Load() (*Config, error) {
	port := getEnv("PORT", "8080")
	publicURL := getEnv("PUBLIC_URL", "")
	if publicURL == "" {
		publicURL = "http://localhost:" + port + "/"
	}

	cfg := &Config{
		Port:      port,
		BankDir:   getEnv("BANK_DIR", "./preguntas"),
		StaticDir: getEnv("STATIC_DIR", "."),
		PublicURL: publicURL,
		Features: quiz.Features{
			Timer: getEnvBool("TIMER_ENABLED", true),
			Hints: getEnvBool("HINTS_ENABLED", true),
		},
		Results: store.Options{
			Backend:       strings.ToLower(getEnv("RESULTS_BACKEND", store.BackendSQLite)),
			DBPath:        getEnv("DB_PATH", "./data/resultados.db"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuración inválida: %w", err)
	}

	return cfg, nil
}

// Validate verifica los campos obligatorios
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT no puede estar vacío")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT debe ser numérico: %q", c.Port)
	}
	if c.BankDir == "" {
		return fmt.Errorf("BANK_DIR no puede estar vacío")
	}
	switch c.Results.Backend {
	case store.BackendSQLite:
		if c.Results.DBPath == "" {
			return fmt.Errorf("DB_PATH no puede estar vacío")
		}
	case store.BackendRedis:
		if c.Results.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR no puede estar vacío")
		}
		if c.Results.RedisDB < 0 {
			return fmt.Errorf("REDIS_DB debe ser >= 0")
		}
	case store.BackendMemory:
	default:
		return fmt.Errorf("RESULTS_BACKEND desconocido: %q", c.Results.Backend)
	}
	return nil
}

// Addr dirección de escucha del servidor
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "si", "sí", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
