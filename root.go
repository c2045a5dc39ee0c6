package main

import (
	"context"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lab1702/golf-ai/agent"
	"github.com/lab1702/golf-ai/config"
	"github.com/lab1702/golf-ai/game"
	"github.com/lab1702/golf-ai/optimizer"
	"github.com/lab1702/golf-ai/oracle"
	"github.com/lab1702/golf-ai/planner"
	"github.com/lab1702/golf-ai/server"
	"github.com/lab1702/golf-ai/transport"
)

// globalFlags are shared by every command
type globalFlags struct {
	configFile string
	full       bool
	verbose    bool
	seed       int64
	viewer     string
}

// Execute runs the root command with signal handling
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "golf-ai",
		Short: "Plans and plays golf shots against a running engine",
		Long: `golf-ai connects to the golf engine through its named pipes, and each time
the ball comes to rest it picks a strategy, fits launch parameters and sends
one shot.

Quick mode uses a distance table with wind compensation. Use --full for the
evolution strategy optimizer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgent(cmd, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "golf-ai.yaml", "config file (missing file means defaults)")
	pf.BoolVar(&flags.full, "full", false, "use the full evolution strategy optimizer")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")
	pf.Int64Var(&flags.seed, "seed", 0, "random seed for the optimizer (0 seeds from the clock)")
	pf.StringVar(&flags.viewer, "viewer", "", "serve the shot viewer on this address, e.g. :8080")

	root.AddCommand(newConfigCmd(flags))
	root.AddCommand(newPlanCmd(flags))
	return root
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	cfg, err := config.LoadWithDefaults(flags.configFile)
	if err != nil {
		return nil, err
	}

	if flags.full {
		cfg.Optimizer.Mode = string(game.ModeFull)
	}
	if flags.verbose {
		cfg.Logging.Level = "debug"
	}
	if cmd.Flags().Changed("seed") {
		cfg.Optimizer.Seed = flags.seed
	}
	if flags.viewer != "" {
		cfg.Viewer.Enabled = true
		cfg.Viewer.Address = flags.viewer
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadTerrain loads the course map, falling back to an all-fairway course
func loadTerrain(cfg *config.Config, logger *slog.Logger) *oracle.Raster {
	raster, err := oracle.LoadRaster(cfg.Course.MapPath, cfg.Bounds())
	if err != nil {
		logger.Warn("terrain map unavailable, assuming fairway everywhere",
			"path", cfg.Course.MapPath, "error", err)
		return oracle.FallbackRaster(cfg.Bounds())
	}

	counts := raster.Counts()
	logger.Info("terrain map loaded",
		"path", cfg.Course.MapPath,
		"sand", counts[game.TerrainSand],
		"water", counts[game.TerrainWater],
		"forest", counts[game.TerrainForest])
	return raster
}

func runAgent(cmd *cobra.Command, flags *globalFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())
	slog.SetDefault(logger)
	planner.Debug = cfg.Logging.PlannerDebug

	terrain := loadTerrain(cfg, logger)

	if cfg.Engine.CreatePipes {
		if err := transport.CreateFIFOs(cfg.Engine.StatePipe, cfg.Engine.CommandPipe); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	var publisher agent.Publisher
	if cfg.Viewer.Enabled {
		viewer := server.NewServer(logger.With("component", "viewer"))
		publisher = viewer
		g.Go(func() error {
			viewer.Run(ctx)
			return nil
		})
		g.Go(func() error {
			return viewer.ListenAndServe(ctx, cfg.Viewer.Address)
		})
	}

	g.Go(func() error {
		// Holing out ends the session for every component
		defer cancel()

		tcfg := cfg.TransportConfig()
		tcfg.Logger = logger.With("component", "transport")
		pipe, err := transport.Open(ctx, tcfg)
		if err != nil {
			return err
		}
		defer pipe.Close()

		a := agent.New(pipe,
			planner.New(terrain, cfg.Bounds()),
			optimizer.New(terrain, optimizer.NewRand(cfg.Optimizer.Seed), cfg.OptimizerOptions()),
			terrain,
			agent.Config{
				Mode:      cfg.Mode(),
				Publisher: publisher,
				Logger:    logger.With("component", "agent"),
			})
		err = a.Run(ctx)
		logger.Info("agent stopped", "shots", a.Shots())
		return err
	})

	if err := g.Wait(); !agent.IsShutdown(err) {
		return err
	}
	return nil
}
