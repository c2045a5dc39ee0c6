// Package agent drives the engine: it watches state snapshots, and each time the ball
// comes to rest it plans, optimizes and sends exactly one shot.
package agent

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lab1702/golf-ai/game"
	"github.com/lab1702/golf-ai/optimizer"
	"github.com/lab1702/golf-ai/oracle"
	"github.com/lab1702/golf-ai/planner"
)

const tracerName = "github.com/lab1702/golf-ai/agent"

// Loop thresholds
const (
	// MoveThreshold is how far the ball must travel before it counts as a new lie
	MoveThreshold = 1.0
	// SandTravel is the travel below which the previous shot is assumed to have been
	// swallowed by sand
	SandTravel = 50.0
	// WaitLogEvery logs a waiting message once per this many empty polls
	WaitLogEvery = 50
)

// Link is the engine connection
type Link interface {
	ReadState(ctx context.Context) (game.GameState, error)
	SendCommand(shot game.ShotParameters) error
}

// Publisher receives reports for viewers. Implementations must not block.
type Publisher interface {
	PublishShot(report game.ShotReport)
	PublishHoled(strokes int32)
}

// Config wires optional collaborators
type Config struct {
	Mode           game.OptimizerMode
	Publisher      Publisher
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
}

// Agent runs the shot pipeline against one engine
type Agent struct {
	link      Link
	planner   *planner.Planner
	optimizer *optimizer.Optimizer
	oracle    oracle.Oracle
	mode      game.OptimizerMode
	publisher Publisher
	logger    *slog.Logger
	tracer    trace.Tracer

	lastShot game.Point2D // Ball position when the last shot was sent
	hasShot  bool
	shotSent bool // A shot is in flight and the ball has not moved yet
	// Stroke count at the last send. A hazard drop puts the ball back where it was
	// shot from, so a higher count is the only sign the shot was played.
	lastStrokes int32
	noData   int
	shots    int
}

// New creates an agent
func New(link Link, pl *planner.Planner, opt *optimizer.Optimizer, o oracle.Oracle, cfg Config) *Agent {
	if cfg.Mode == "" {
		cfg.Mode = game.ModeQuick
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	return &Agent{
		link:      link,
		planner:   pl,
		optimizer: opt,
		oracle:    oracle.OrPermissive(o),
		mode:      cfg.Mode,
		publisher: cfg.Publisher,
		logger:    cfg.Logger,
		tracer:    cfg.TracerProvider.Tracer(tracerName),
	}
}

// Shots returns how many commands have been sent
func (a *Agent) Shots() int {
	return a.shots
}

// Run polls the engine until the hole is won, ctx is done or the link fails.
// Holing out returns nil; cancellation returns the context error.
func (a *Agent) Run(ctx context.Context) error {
	a.logger.Info("agent started", "mode", a.mode)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		state, err := a.link.ReadState(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if game.IsRetryable(err) {
				a.noData++
				if a.noData%WaitLogEvery == 0 {
					a.logger.Info("waiting for game state", "attempts", a.noData)
				}
				continue
			}
			return err
		}
		a.noData = 0

		holed, err := a.Step(ctx, state)
		if err != nil {
			return err
		}
		if holed {
			return nil
		}
	}
}

// Step handles one state snapshot. It reports true once the hole is won.
// A retryable send failure is logged and the shot is retried on the next snapshot.
func (a *Agent) Step(ctx context.Context, state game.GameState) (bool, error) {
	if state.Won {
		a.logger.Info("hole in", "strokes", state.Strokes)
		if a.publisher != nil {
			a.publisher.PublishHoled(state.Strokes)
		}
		return true, nil
	}

	if !state.Stopped {
		a.shotSent = false
		return false, nil
	}

	moved := 0.0
	if a.hasShot {
		moved = state.Ball.DistanceTo(a.lastShot)
	}
	stroked := a.hasShot && state.Strokes > a.lastStrokes

	if a.shotSent {
		if a.hasShot && (moved > MoveThreshold || stroked) {
			a.shotSent = false
			a.logger.Debug("ball moved, ready for next shot", "moved", moved, "strokes", state.Strokes)
		}
		return false, nil
	}
	if a.hasShot && moved < MoveThreshold {
		if !stroked {
			return false, nil
		}
		// Dropped back after a hazard; the lie is not sand
		moved = 0
	}

	if err := a.shoot(ctx, state, moved); err != nil {
		if game.IsRetryable(err) {
			a.logger.Warn("shot not delivered, will retry", "error", err)
			return false, nil
		}
		return false, err
	}

	a.lastShot = state.Ball
	a.lastStrokes = state.Strokes
	a.hasShot = true
	a.shotSent = true
	a.shots++
	return false, nil
}

// lieTerrain guesses the terrain under the ball. A short previous shot means sand;
// otherwise the oracle is asked, with fairway for hazards and failures.
func (a *Agent) lieTerrain(ball game.Point2D, moved float64) game.Terrain {
	if moved > 0 && moved < SandTravel {
		return game.TerrainSand
	}
	terrain, err := oracle.Classify(a.oracle, ball)
	if err != nil || terrain.IsHazard() {
		return game.TerrainFairway
	}
	return terrain
}

func (a *Agent) shoot(ctx context.Context, state game.GameState, moved float64) error {
	terrain := a.lieTerrain(state.Ball, moved)
	distance := state.DistanceToHole()

	ctx, span := a.tracer.Start(ctx, "agent.stroke", trace.WithAttributes(
		attribute.Int("stroke", int(state.Strokes)+1),
		attribute.Float64("distance", distance),
		attribute.String("terrain", terrain.String()),
		attribute.Float64("wind", state.Wind.Strength),
	))
	defer span.End()

	a.logger.Info("stroke",
		"stroke", state.Strokes+1,
		"ball_x", state.Ball.X, "ball_y", state.Ball.Y,
		"hole_x", state.Hole.X, "hole_y", state.Hole.Y,
		"distance", distance)
	if terrain == game.TerrainSand {
		a.logger.Info("sand detected", "moved", moved)
	}

	plan := a.plan(ctx, planner.Input{Ball: state.Ball, Hole: state.Hole, Terrain: terrain, Wind: state.Wind})
	span.SetAttributes(attribute.String("category", plan.Category.String()))

	target := plan.Target
	deflection := 0.0
	if terrain != game.TerrainSand {
		d := planner.Detour(a.oracle, state.Ball, target)
		if d.Blocked {
			a.logger.Info("path blocked",
				"hazards", d.Path.Hazards, "sand", d.Path.Sand, "deflection", d.Deflection)
		}
		target, deflection = d.Target, d.Deflection
	}

	res := a.optimize(ctx, optimizer.Request{
		Ball:      state.Ball,
		Target:    target,
		AngleHint: plan.AngleHint(),
		Wind:      state.Wind,
		Terrain:   terrain,
	})

	if err := a.link.SendCommand(res.Shot); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send command")
		return err
	}

	a.logger.Info("shot sent",
		"category", plan.Category,
		"angle", res.Shot.Angle, "power", res.Shot.Power,
		"predicted_error", res.Fitness)

	if a.publisher != nil {
		a.publisher.PublishShot(game.ShotReport{
			ID:         uuid.NewString(),
			Time:       time.Now(),
			Stroke:     state.Strokes,
			Ball:       state.Ball,
			Hole:       state.Hole,
			Wind:       state.Wind,
			Terrain:    terrain.String(),
			Category:   plan.Category,
			Target:     target,
			Detour:     deflection,
			Mode:       res.Mode,
			Shot:       res.Shot,
			Predicted:  res.Predicted.Final,
			Trajectory: res.Predicted.Trajectory,
			Fitness:    res.Fitness,
		})
	}
	return nil
}

func (a *Agent) plan(ctx context.Context, in planner.Input) planner.Plan {
	_, span := a.tracer.Start(ctx, "planner.plan")
	defer span.End()

	plan := a.planner.Plan(in)
	span.SetAttributes(
		attribute.String("category", plan.Category.String()),
		attribute.String("reason", plan.Reason),
		attribute.Float64("target_x", plan.Target.X),
		attribute.Float64("target_y", plan.Target.Y),
	)
	return plan
}

func (a *Agent) optimize(ctx context.Context, req optimizer.Request) optimizer.Result {
	ctx, span := a.tracer.Start(ctx, "optimizer.optimize",
		trace.WithAttributes(attribute.String("mode", string(a.mode))))
	defer span.End()

	res := a.optimizer.Solve(ctx, a.mode, req)
	span.SetAttributes(
		attribute.Float64("fitness", res.Fitness),
		attribute.Int("evaluations", res.Evaluations),
		attribute.Bool("converged", res.Converged),
	)
	if !res.Converged {
		a.logger.Debug("optimizer did not converge", "fitness", res.Fitness)
	}
	return res
}

// IsShutdown reports whether err only signals a normal stop
func IsShutdown(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}
