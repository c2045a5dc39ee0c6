// Package config loads the planner's settings from YAML, environment and defaults.
package config

import (
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lab1702/golf-ai/game"
	"github.com/lab1702/golf-ai/optimizer"
	"github.com/lab1702/golf-ai/transport"
)

// EnvPrefix prefixes environment overrides, e.g. GOLF_AI_OPTIMIZER_MODE=full
const EnvPrefix = "GOLF_AI"

// Config is the root configuration
type Config struct {
	Engine    EngineConfig    `mapstructure:"engine" yaml:"engine"`
	Course    CourseConfig    `mapstructure:"course" yaml:"course"`
	Optimizer OptimizerConfig `mapstructure:"optimizer" yaml:"optimizer"`
	Viewer    ViewerConfig    `mapstructure:"viewer" yaml:"viewer"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// EngineConfig locates the engine's named pipes
type EngineConfig struct {
	StatePipe    string        `mapstructure:"state_pipe" yaml:"state_pipe" validate:"required"`
	CommandPipe  string        `mapstructure:"command_pipe" yaml:"command_pipe" validate:"required"`
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval" validate:"min=1ms"`
	CreatePipes  bool          `mapstructure:"create_pipes" yaml:"create_pipes"`
}

// CourseConfig describes the terrain map and playable area
type CourseConfig struct {
	MapPath string  `mapstructure:"map_path" yaml:"map_path"`
	Width   float64 `mapstructure:"width" yaml:"width" validate:"gt=0"`
	Height  float64 `mapstructure:"height" yaml:"height" validate:"gt=0"`
	Margin  float64 `mapstructure:"margin" yaml:"margin" validate:"gte=0"`
}

// OptimizerConfig selects and tunes the shot optimizer
type OptimizerConfig struct {
	Mode        string  `mapstructure:"mode" yaml:"mode" validate:"oneof=quick full"`
	Budget      int     `mapstructure:"budget" yaml:"budget" validate:"min=1"`
	Population  int     `mapstructure:"population" yaml:"population" validate:"min=2"`
	WindSamples int     `mapstructure:"wind_samples" yaml:"wind_samples" validate:"min=1"`
	Threshold   float64 `mapstructure:"threshold" yaml:"threshold" validate:"gt=0"`
	Seed        int64   `mapstructure:"seed" yaml:"seed"` // 0 seeds from the clock
}

// ViewerConfig controls the websocket shot viewer
type ViewerConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Address string `mapstructure:"address" yaml:"address"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level        string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	PlannerDebug bool   `mapstructure:"planner_debug" yaml:"planner_debug"`
}

// DefaultConfig returns a configuration that talks to a local engine in quick mode
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			StatePipe:    transport.DefaultStatePath,
			CommandPipe:  transport.DefaultCommandPath,
			PollInterval: transport.DefaultPollInterval,
		},
		Course: CourseConfig{
			MapPath: "golf_map.png",
			Width:   game.CourseWidth,
			Height:  game.CourseHeight,
			Margin:  game.CourseMargin,
		},
		Optimizer: OptimizerConfig{
			Mode:        string(game.ModeQuick),
			Budget:      optimizer.DefaultBudget,
			Population:  optimizer.DefaultPopulation,
			WindSamples: optimizer.DefaultWindSamples,
			Threshold:   optimizer.DefaultThreshold,
		},
		Viewer: ViewerConfig{
			Address: ":8080",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Bounds returns the playable course rectangle
func (c *Config) Bounds() game.Bounds {
	return game.Bounds{Width: c.Course.Width, Height: c.Course.Height, Margin: c.Course.Margin}
}

// Mode returns the optimizer mode
func (c *Config) Mode() game.OptimizerMode {
	return game.OptimizerMode(c.Optimizer.Mode)
}

// OptimizerOptions converts the optimizer section
func (c *Config) OptimizerOptions() optimizer.Options {
	return optimizer.Options{
		Population:  c.Optimizer.Population,
		Budget:      c.Optimizer.Budget,
		WindSamples: c.Optimizer.WindSamples,
		Threshold:   c.Optimizer.Threshold,
	}
}

// TransportConfig converts the engine section
func (c *Config) TransportConfig() transport.Config {
	return transport.Config{
		StatePath:    c.Engine.StatePipe,
		CommandPath:  c.Engine.CommandPipe,
		PollInterval: c.Engine.PollInterval,
	}
}

// YAML renders the configuration
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
