package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure. It contains the
// runtime settings of a generation run plus the immutable tolerance
// configuration consumed by the generator core.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Output is the path of the JSON Lines file generated candidates are written to.
	Output string `env:"OUTPUT" env-default:"candidates.jsonl" yaml:"output"`

	// Workers is the number of goroutines building combinations in parallel.
	// 1 reproduces the strictly sequential sweep.
	Workers int `env:"WORKERS" env-default:"1" yaml:"workers"`

	// ContinueOnFailure selects the failure policy of a sweep: when true,
	// per-combination failures are collected and the run continues; when
	// false the run aborts on the first failure.
	ContinueOnFailure bool `env:"CONTINUE_ON_FAILURE" env-default:"false" yaml:"continueOnFailure"`

	// Metrics contains the optional Prometheus endpoint settings.
	Metrics struct {
		// Addr is the address the metrics endpoint listens on. Empty disables it.
		Addr string `env:"METRICS_ADDR" env-default:"" yaml:"addr"`
		// Path defines the URL path where metrics are exposed.
		Path string `env:"METRICS_PATH" env-default:"/metrics" yaml:"path"`
	} `yaml:"metrics"`

	// Generator holds the tolerance configuration applied to the whole run.
	// It is validated once at load time and never mutated afterward.
	Generator struct {
		// LengthTol is the relative length tolerance for lattice matching.
		LengthTol float64 `env:"GENERATOR_LENGTH_TOL" env-default:"0.08" yaml:"lengthTol"`
		// AngleTol is the angular matching tolerance in degrees.
		AngleTol float64 `env:"GENERATOR_ANGLE_TOL" env-default:"1" yaml:"angleTol"`
		// MaxArea is the largest matched-cell area considered, in square Angstrom.
		MaxArea float64 `env:"GENERATOR_MAX_AREA" env-default:"300" yaml:"maxArea"`
		// MaxAreaRatioTol is the allowed relative deviation between the two sides' matched areas.
		MaxAreaRatioTol float64 `env:"GENERATOR_MAX_AREA_RATIO_TOL" env-default:"1.0" yaml:"maxAreaRatioTol"`
		// RoundDigits is the decimal precision applied to sweep parameters before
		// naming, keeping generated names stable and deduplicated.
		RoundDigits int `env:"GENERATOR_ROUND_DIGITS" env-default:"3" yaml:"roundDigits"`
		// Vacuum is the padding added on both sides of the interface normal, so
		// the combined cell grows by twice this value.
		Vacuum float64 `env:"GENERATOR_VACUUM" env-default:"2.5" yaml:"vacuum"`
		// SurfaceVacuum is the vacuum requested from the surface-construction
		// collaborator when cutting slabs from bulk structures.
		SurfaceVacuum float64 `env:"GENERATOR_SURFACE_VACUUM" env-default:"15" yaml:"surfaceVacuum"`
		// ApplyStrain reconciles the two sides' in-plane cell vectors by
		// straining the film onto the substrate cell.
		ApplyStrain bool `env:"GENERATOR_APPLY_STRAIN" env-default:"false" yaml:"applyStrain"`
		// LowestMismatch keeps the globally lowest-mismatch match instead of the
		// first-returned one.
		LowestMismatch bool `env:"GENERATOR_LOWEST_MISMATCH" env-default:"true" yaml:"lowestMismatch"`
		// RotateXZ permutes axes 0 and 2 of the assembled interface for
		// transport-geometry conventions.
		RotateXZ bool `env:"GENERATOR_ROTATE_XZ" env-default:"false" yaml:"rotateXZ"`
		// LeadRatio partitions the assembled interface into left/middle/right
		// regions along axis 0. Negative disables partitioning.
		LeadRatio float64 `env:"GENERATOR_LEAD_RATIO" env-default:"-1" yaml:"leadRatio"`
	} `yaml:"generator"`

	// GracefulShutdownTimeout is the maximum duration to wait for in-flight
	// combination builds to finish after an interrupt.
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the tolerance configuration once so the generator core can
// assume a well-formed value for the whole run.
func (c *Config) Validate() error {
	g := c.Generator
	switch {
	case g.LengthTol <= 0:
		return fmt.Errorf("generator.lengthTol must be > 0, got %g", g.LengthTol)
	case g.AngleTol <= 0:
		return fmt.Errorf("generator.angleTol must be > 0, got %g", g.AngleTol)
	case g.MaxArea <= 0:
		return fmt.Errorf("generator.maxArea must be > 0, got %g", g.MaxArea)
	case g.RoundDigits < 0:
		return fmt.Errorf("generator.roundDigits must be >= 0, got %d", g.RoundDigits)
	case g.Vacuum < 0:
		return fmt.Errorf("generator.vacuum must be >= 0, got %g", g.Vacuum)
	case g.LeadRatio >= 0.5:
		return fmt.Errorf("generator.leadRatio must be < 0.5, got %g", g.LeadRatio)
	case c.Workers < 1:
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}

	return nil
}
