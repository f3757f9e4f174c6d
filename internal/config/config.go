// Package config loads the tank bank and exploration settings from YAML,
// merges command-line overrides and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Victor-Leroy/winemix/internal/adapters/file"
	"github.com/Victor-Leroy/winemix/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration.
type Config struct {
	Tanks        int     `mapstructure:"tanks" validate:"required,min=1"`
	Adjacency    string  `mapstructure:"adjacency" validate:"oneof=contiguous window any"`
	Reach        int     `mapstructure:"reach" validate:"min=1"`
	Distribution string  `mapstructure:"distribution" validate:"oneof=replicate split"`
	Tolerance    float64 `mapstructure:"tolerance" validate:"gt=0"`
	MaxDepth     int     `mapstructure:"max_depth" validate:"min=0"`
	MaxStates    int     `mapstructure:"max_states" validate:"min=0"`
	LogLevel     string  `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
	Seeds        []Seed  `mapstructure:"seeds" validate:"dive"`

	// baseDir resolves relative seed files; it is the config file's directory.
	baseDir string
}

// Seed places an initial mix in a tank. Exactly one of Mix, File or Pure is set.
type Seed struct {
	Tank int       `mapstructure:"tank" validate:"min=0"`
	Mix  []float64 `mapstructure:"mix" validate:"omitempty,dive,gte=0"`
	File string    `mapstructure:"file"`
	// Pure fills the tank with a single wine (index into Wines wines).
	Pure  *int `mapstructure:"pure" validate:"omitempty,min=0"`
	Wines int  `mapstructure:"wines" validate:"omitempty,min=1"`
}

// Defaults are applied before the YAML document and overrides.
func Defaults() map[string]any {
	return map[string]any{
		"adjacency":    domain.AdjacencyContiguous,
		"reach":        1,
		"distribution": string(domain.DistributeReplicate),
		"tolerance":    domain.DefaultTolerance,
		"log_level":    "info",
	}
}

var validate = validator.New()

// Load reads path (optional, may be empty), layers overrides on top and
// returns a validated Config. Override keys use the YAML names.
func Load(path string, overrides map[string]any) (*Config, error) {
	raw := Defaults()
	baseDir := "."

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		doc := map[string]any{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		for k, v := range doc {
			raw[k] = v
		}
		baseDir = filepath.Dir(path)
	}
	for k, v := range overrides {
		raw[k] = v
	}

	cfg, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	cfg.baseDir = baseDir
	return cfg, nil
}

// Decode turns a generic map into a validated Config.
func Decode(raw map[string]any) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}
	var errs []error
	seeded := make(map[int]int, len(c.Seeds))
	for i, s := range c.Seeds {
		if s.Tank >= c.Tanks {
			errs = append(errs, fmt.Errorf("seed %d: tank %d out of range [0,%d)", i, s.Tank, c.Tanks))
		}
		if first, dup := seeded[s.Tank]; dup {
			errs = append(errs, fmt.Errorf("seed %d: tank %d already seeded by seed %d", i, s.Tank, first))
		} else {
			seeded[s.Tank] = i
		}
		sources := 0
		if len(s.Mix) > 0 {
			sources++
		}
		if s.File != "" {
			sources++
		}
		if s.Pure != nil {
			sources++
			if s.Wines < 1 || *s.Pure >= s.Wines {
				errs = append(errs, fmt.Errorf("seed %d: pure wine %d needs wines > %d", i, *s.Pure, *s.Pure))
			}
		}
		if sources != 1 {
			errs = append(errs, fmt.Errorf("seed %d: exactly one of mix, file or pure is required", i))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfiguration, err)
	}
	return nil
}

// Domain converts the settings into a domain.Configuration.
func (c *Config) Domain() (domain.Configuration, error) {
	adj, err := domain.ParseAdjacency(c.Adjacency, c.Reach)
	if err != nil {
		return domain.Configuration{}, err
	}
	dist, err := domain.ParseDistribution(c.Distribution)
	if err != nil {
		return domain.Configuration{}, err
	}
	return domain.Configuration{
		NumTanks:     c.Tanks,
		Adjacency:    adj,
		Distribution: dist,
		Tolerance:    c.Tolerance,
	}, nil
}

// InitialState builds the depth-0 state described by the seeds.
func (c *Config) InitialState() (*domain.State, error) {
	dc, err := c.Domain()
	if err != nil {
		return nil, err
	}
	state, err := domain.NewState(dc)
	if err != nil {
		return nil, err
	}
	for i, s := range c.Seeds {
		m, err := c.seedMix(s)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", i, err)
		}
		if state, err = state.WithMix(s.Tank, m); err != nil {
			return nil, fmt.Errorf("seed %d: %w", i, err)
		}
	}
	return state, nil
}

func (c *Config) seedMix(s Seed) (*domain.Mix, error) {
	switch {
	case len(s.Mix) > 0:
		return domain.NewMix(s.Mix...), nil
	case s.Pure != nil:
		return domain.MixFromIndex(*s.Pure, s.Wines).Scale(1.0 / float64(c.Tanks)), nil
	default:
		path := s.File
		if !filepath.IsAbs(path) {
			base := c.baseDir
			if base == "" {
				base = "."
			}
			path = filepath.Join(base, path)
		}
		return file.LoadMixFile(path)
	}
}
