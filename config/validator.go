package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/lab1702/golf-ai/game"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks cfg and returns a CONFIG_INVALID error listing every problem
func Validate(cfg *Config) error {
	if cfg == nil {
		return game.NewError(game.CONFIG_INVALID, "configuration is nil")
	}

	var problems []string
	if err := structValidator().Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return game.WrapError(game.CONFIG_INVALID, "validation error", err)
		}
		for _, e := range validationErrs {
			problems = append(problems, formatValidationError(e))
		}
	}

	if cfg.Course.Margin*2 >= cfg.Course.Width || cfg.Course.Margin*2 >= cfg.Course.Height {
		problems = append(problems, fmt.Sprintf("course.margin %.0f leaves no playable area", cfg.Course.Margin))
	}
	if cfg.Viewer.Enabled && cfg.Viewer.Address == "" {
		problems = append(problems, "viewer.address is required when the viewer is enabled")
	}
	if cfg.Engine.StatePipe != "" && cfg.Engine.StatePipe == cfg.Engine.CommandPipe {
		problems = append(problems, "engine.state_pipe and engine.command_pipe must differ")
	}

	if len(problems) > 0 {
		return game.NewError(game.CONFIG_INVALID,
			"configuration validation failed:\n  - "+strings.Join(problems, "\n  - "))
	}
	return nil
}

// formatValidationError formats a single validation error with field path and details
func formatValidationError(e validator.FieldError) string {
	fieldPath := formatFieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldPath)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s (got: %v)", fieldPath, e.Param(), e.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s (got: %v)", fieldPath, e.Param(), e.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got: %v)", fieldPath, e.Param(), e.Value())
	default:
		return fmt.Sprintf("%s failed validation '%s' (got: %v)", fieldPath, e.Tag(), e.Value())
	}
}

// formatFieldPath turns "Config.Optimizer.WindSamples" into "optimizer.wind_samples"
func formatFieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) <= 1 {
		return namespace
	}

	result := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		result = append(result, camelToSnake(part))
	}
	return strings.Join(result, ".")
}

func camelToSnake(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
