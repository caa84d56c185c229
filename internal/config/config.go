package config

import (
	"errors"
	"fmt"
	"io/fs"

	"boltgen/internal/calc/bolt"
	"boltgen/internal/logger"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Addr        string        `envconfig:"ADDR" default:":8080"`
	TLSCert     string        `envconfig:"TLS_CERT"`
	TLSKey      string        `envconfig:"TLS_KEY"`
	Segments    int           `envconfig:"SEGMENTS" default:"12"`
	RateLimit   float64       `envconfig:"RATE_LIMIT" default:"5"`
	RateBurst   int           `envconfig:"RATE_BURST" default:"10"`
	PresetsFile string        `envconfig:"PRESETS_FILE"`
	SolidCells  int           `envconfig:"SOLID_CELLS" default:"64"`
	Log         logger.Config `envconfig:"LOG"`
}

// Load reads an optional .env file and then the BOLT_* environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("BOLT", &cfg); err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %w", err)
	}
	if cfg.Segments < 3 || cfg.Segments > bolt.MaxSegments {
		return nil, fmt.Errorf("BOLT_SEGMENTS must be between 3 and %d, got %d", bolt.MaxSegments, cfg.Segments)
	}
	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return nil, fmt.Errorf("BOLT_TLS_CERT and BOLT_TLS_KEY must be set together")
	}
	return &cfg, nil
}

func (c *Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}
