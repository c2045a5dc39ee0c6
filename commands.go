package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lab1702/golf-ai/game"
	"github.com/lab1702/golf-ai/optimizer"
	"github.com/lab1702/golf-ai/oracle"
	"github.com/lab1702/golf-ai/planner"
)

func newConfigCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration after applying the config file, GOLF_AI_*
environment variables and command line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// planFlags describe one offline planning problem
type planFlags struct {
	ball     []float64
	hole     []float64
	windDir  []float64
	windSize float64
	lie      string
}

// planOutput is what the plan command prints
type planOutput struct {
	Category  game.ShotCategory   `yaml:"category"`
	Reason    string              `yaml:"reason"`
	Lie       string              `yaml:"lie"`
	Target    game.Point2D        `yaml:"target"`
	Detour    float64             `yaml:"detour_deg"`
	Mode      game.OptimizerMode  `yaml:"mode"`
	Shot      game.ShotParameters `yaml:"shot"`
	Predicted game.Point2D        `yaml:"predicted"`
	Error     float64             `yaml:"predicted_error"`
	Converged bool                `yaml:"converged"`
}

func newPlanCmd(flags *globalFlags) *cobra.Command {
	pf := &planFlags{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan and optimize a single shot without an engine",
		Example: `  golf-ai plan --ball 320,600 --hole 320,60
  golf-ai plan --ball 100,300 --hole 400,300 --wind-dir 0,1 --wind 25 --full`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, flags, pf)
		},
	}

	f := cmd.Flags()
	f.Float64SliceVar(&pf.ball, "ball", []float64{320, 600}, "ball position x,y")
	f.Float64SliceVar(&pf.hole, "hole", []float64{320, 60}, "hole position x,y")
	f.Float64SliceVar(&pf.windDir, "wind-dir", []float64{1, 0}, "wind direction x,y")
	f.Float64Var(&pf.windSize, "wind", 0, "wind strength")
	f.StringVar(&pf.lie, "lie", "", "terrain under the ball (default: read from the map)")
	return cmd
}

func point(name string, v []float64) (game.Point2D, error) {
	if len(v) != 2 {
		return game.Point2D{}, fmt.Errorf("--%s needs two values x,y, got %d", name, len(v))
	}
	return game.Point2D{X: v[0], Y: v[1]}, nil
}

func runPlan(cmd *cobra.Command, flags *globalFlags, pf *planFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())
	planner.Debug = cfg.Logging.PlannerDebug

	ball, err := point("ball", pf.ball)
	if err != nil {
		return err
	}
	hole, err := point("hole", pf.hole)
	if err != nil {
		return err
	}
	dir, err := point("wind-dir", pf.windDir)
	if err != nil {
		return err
	}
	wind := game.Wind{Dir: game.Vector2D(dir).UnitOr(game.Vector2D{}), Strength: pf.windSize}

	terrain := loadTerrain(cfg, logger)

	lie := game.TerrainFairway
	if pf.lie != "" {
		if lie, err = game.ParseTerrain(pf.lie); err != nil {
			return err
		}
	} else if t, err := oracle.Classify(terrain, ball); err == nil && !t.IsHazard() {
		lie = t
	}

	plan := planner.New(terrain, cfg.Bounds()).Plan(planner.Input{Ball: ball, Hole: hole, Terrain: lie, Wind: wind})

	target, deflection := plan.Target, 0.0
	if lie != game.TerrainSand {
		d := planner.Detour(terrain, ball, target)
		target, deflection = d.Target, d.Deflection
	}

	opt := optimizer.New(terrain, optimizer.NewRand(cfg.Optimizer.Seed), cfg.OptimizerOptions())
	res := opt.Solve(cmd.Context(), cfg.Mode(), optimizer.Request{
		Ball:      ball,
		Target:    target,
		AngleHint: plan.AngleHint(),
		Wind:      wind,
		Terrain:   lie,
	})

	out, err := yaml.Marshal(planOutput{
		Category:  plan.Category,
		Reason:    plan.Reason,
		Lie:       lie.String(),
		Target:    target,
		Detour:    deflection,
		Mode:      res.Mode,
		Shot:      res.Shot,
		Predicted: res.Predicted.Final,
		Error:     res.Fitness,
		Converged: res.Converged,
	})
	if err != nil {
		return fmt.Errorf("failed to render plan: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
