// Package config carga la configuración de la app desde variables de entorno,
// con un .env opcional para desarrollo.
package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Mode decide qué backend usan los repositorios. Nunca se combinan: o todo
// remoto o todo local.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

type Config struct {
	Mode       Mode   `env:"PETHOME_MODE,default=remote"`
	APIBaseURL string `env:"API_BASE_URL,default=http://localhost:8080"`

	// Backend del storage local (catálogo y citas en ambos modos, mascotas
	// solo en modo local): DSN presente = postgres, ausente = memoria.
	DatabaseDSN string `env:"DB_DSN"`

	// Ruta del archivo de sesión; vacío usa la ubicación por defecto.
	SessionFile string `env:"SESSION_FILE"`

	// Con el flag apagado basta el userID guardado para considerar sesión
	// activa (comportamiento heredado); encendido exige también el token.
	SessionRequireToken bool `env:"SESSION_REQUIRE_TOKEN,default=true"`

	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT,default=30s"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=console"`
}

// Load lee .env si existe y decodifica el entorno. El .env ausente no es
// error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding environment: %w", err)
	}

	switch cfg.Mode {
	case ModeRemote, ModeLocal:
	default:
		return Config{}, fmt.Errorf("invalid PETHOME_MODE %q: must be remote or local", cfg.Mode)
	}

	return cfg, nil
}
