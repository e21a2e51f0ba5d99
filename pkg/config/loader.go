package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Load parses environment variables into cfg based on `env` struct tags.
// The first call attempts to load a .env file from the working directory;
// a missing file is not an error so local development and deployed
// environments share the same code path.
//
// Example:
//
//	type RendererConfig struct {
//		ScriptPath string        `env:"PDF_SCRIPT_PATH" envDefault:"./pdf_generator.py"`
//		Timeout    time.Duration `env:"PDF_RENDER_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg RendererConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. Intended for configuration
// the process cannot start without.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
