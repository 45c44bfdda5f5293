package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/plus3/ruzzle/engine"
	"github.com/plus3/ruzzle/game"
	"github.com/plus3/ruzzle/logx"
	"github.com/plus3/ruzzle/piece"
	"github.com/plus3/ruzzle/render/raster"
	"github.com/urfave/cli/v3"
)

// Options configure one stress run.
type Options struct {
	Duration       time.Duration
	Cols, Rows     int
	Seed           uint64
	Speed          float64
	Render         bool
	GCPauseMetrics bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := &cli.Command{
		Name:  "ruzzle-stress",
		Usage: "drive the simulation headless with random input and report tick timings",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "duration", Value: 10 * time.Second, Usage: "the total duration the test should run for"},
			&cli.IntFlag{Name: "cols", Value: 10, Usage: "board columns"},
			&cli.IntFlag{Name: "rows", Value: 16, Usage: "board rows"},
			&cli.Uint64Flag{Name: "seed", Value: 1, Usage: "seed for spawns and the random input"},
			&cli.Float64Flag{Name: "speed", Value: 8, Usage: "gravity multiplier"},
			&cli.BoolFlag{Name: "render", Usage: "also rasterise every frame"},
			&cli.BoolFlag{Name: "gc-pause-metrics", Usage: "enable detailed GC pause metrics in the report"},
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "logger level"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			log := logx.New(os.Stderr, c.String("log-level"), false)
			defer log.Sync()

			report, err := Run(ctx, Options{
				Duration:       c.Duration("duration"),
				Cols:           c.Int("cols"),
				Rows:           c.Int("rows"),
				Seed:           c.Uint64("seed"),
				Speed:          c.Float64("speed"),
				Render:         c.Bool("render"),
				GCPauseMetrics: c.Bool("gc-pause-metrics"),
			}, log)
			if err != nil {
				return err
			}
			return report.Generate(os.Stdout)
		},
	}
	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ruzzle-stress: %v\n", err)
		os.Exit(1)
	}
}

// Run ticks a fresh simulation as fast as possible for opts.Duration, feeding
// it one random intent per tick. Simulated time advances 1/60 s per tick.
func Run(ctx context.Context, opts Options, log logx.Logger) (*Report, error) {
	sim, err := game.New(game.Options{
		Cols:   opts.Cols,
		Rows:   opts.Rows,
		Seed:   opts.Seed,
		Speed:  opts.Speed,
		Logger: log,
	})
	if err != nil {
		return nil, err
	}

	var renderer *raster.Renderer
	if opts.Render {
		renderer = raster.New(320, 240)
		defer renderer.Close()
		if err := renderer.Init(sim.Entities(), sim.Background()); err != nil {
			return nil, err
		}
	}

	report := &Report{
		Duration:       opts.Duration,
		Cols:           sim.Board().Cols,
		Rows:           sim.Board().Rows,
		Seed:           sim.Seed(),
		Speed:          sim.Scene().Speed,
		Render:         opts.Render,
		GCPauseMetrics: opts.GCPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Infof("running simulation for %s", opts.Duration)
	ctx, cancel := context.WithTimeout(ctx, opts.Duration)
	defer cancel()

	input := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	clock := engine.NewStepClock(1.0 / 60)
	start := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		randomIntent(sim, input)

		tickStart := time.Now()
		sim.Tick(clock.Elapsed())
		if renderer != nil {
			f, err := renderer.Acquire()
			if err != nil {
				return nil, err
			}
			params := sim.Scene()
			if err := renderer.Draw(f, params.Globals(), sim.Entities(), sim.Background()); err != nil {
				return nil, err
			}
			f.Present()
		}
		report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
		report.TotalTicks++
	}

	report.TotalTime = time.Since(start)
	report.SimulatedTime = sim.Elapsed()
	report.TickTime.Finalize()
	report.Systems = sim.Scheduler().GetStats().Systems
	if renderer != nil {
		report.UploadedBytes = uint64(renderer.Uploaded())
	}
	tally := sim.Tally()
	report.Spawns = tally.Spawns
	report.Occupied = sim.Board().Occupied()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Infof("%d ticks, %d locks, %d rows cleared, %d top-outs", report.TotalTicks, tally.Locks, tally.RowsCleared, tally.TopOuts)
	return report, nil
}

// randomIntent queues at most one player request, weighted towards moves.
func randomIntent(sim *game.Simulation, r *rand.Rand) {
	switch r.IntN(16) {
	case 0, 1:
		sim.RequestMove(-1, 0)
	case 2, 3:
		sim.RequestMove(1, 0)
	case 4:
		sim.RequestMove(0, 1)
	case 5:
		sim.RequestRotate(piece.Clockwise)
	case 6:
		sim.RequestRotate(piece.CounterClockwise)
	case 7:
		sim.RequestHardDrop()
	}
}
