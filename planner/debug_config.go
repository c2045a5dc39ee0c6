package planner

import (
	"log/slog"

	"github.com/lab1702/golf-ai/game"
)

// Debug flags for planner decisions
var (
	Debug = false // Set to true to log every planning decision
)

// logDecision logs a planning decision when debugging is enabled
func logDecision(stage string, category game.ShotCategory, target game.Point2D, reason string) {
	if Debug {
		slog.Info("[PLANNER DEBUG] "+stage,
			"category", category.String(),
			"target_x", target.X,
			"target_y", target.Y,
			"reason", reason)
	}
}
