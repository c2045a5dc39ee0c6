package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/lab1702/golf-ai/game"
)

// Load reads the YAML file at path over the defaults, applies GOLF_AI_* environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, game.WrapError(game.CONFIG_INVALID, "failed to read config file", err)
	}
	return decode(v)
}

// LoadWithDefaults behaves like Load, but a missing file (or an empty path) yields the
// defaults with environment overrides applied.
func LoadWithDefaults(path string) (*Config, error) {
	if path == "" {
		return decode(newViper())
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return decode(newViper())
	}
	return Load(path)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())
	return v
}

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("engine.state_pipe", d.Engine.StatePipe)
	v.SetDefault("engine.command_pipe", d.Engine.CommandPipe)
	v.SetDefault("engine.poll_interval", d.Engine.PollInterval)
	v.SetDefault("engine.create_pipes", d.Engine.CreatePipes)

	v.SetDefault("course.map_path", d.Course.MapPath)
	v.SetDefault("course.width", d.Course.Width)
	v.SetDefault("course.height", d.Course.Height)
	v.SetDefault("course.margin", d.Course.Margin)

	v.SetDefault("optimizer.mode", d.Optimizer.Mode)
	v.SetDefault("optimizer.budget", d.Optimizer.Budget)
	v.SetDefault("optimizer.population", d.Optimizer.Population)
	v.SetDefault("optimizer.wind_samples", d.Optimizer.WindSamples)
	v.SetDefault("optimizer.threshold", d.Optimizer.Threshold)
	v.SetDefault("optimizer.seed", d.Optimizer.Seed)

	v.SetDefault("viewer.enabled", d.Viewer.Enabled)
	v.SetDefault("viewer.address", d.Viewer.Address)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.planner_debug", d.Logging.PlannerDebug)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, game.WrapError(game.CONFIG_INVALID, "failed to unmarshal config", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
