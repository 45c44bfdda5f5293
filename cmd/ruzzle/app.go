package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/plus3/ruzzle/config"
	"github.com/plus3/ruzzle/debugui"
	debugui_ebiten "github.com/plus3/ruzzle/debugui/ebiten"
	"github.com/plus3/ruzzle/engine"
	"github.com/plus3/ruzzle/game"
	"github.com/plus3/ruzzle/logx"
	"github.com/plus3/ruzzle/render/ebitenrender"
	"github.com/plus3/ruzzle/render/raster"
	"github.com/plus3/ruzzle/scene"
	"github.com/plus3/ruzzle/tetromino"
	"github.com/urfave/cli/v3"
)

const windowTitle = "Ruzzle"

// session is what every command starts from: the effective configuration
// and a logger stamped with a fresh session id.
type session struct {
	id    uuid.UUID
	path  string
	cfg   config.Config
	first tetromino.Kind
	log   logx.Logger
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	sizeFlags := []cli.Flag{
		&cli.IntFlag{
			Name:  "width",
			Usage: "window width in pixels",
			Value: scene.DefaultWidth,
		},
		&cli.IntFlag{
			Name:  "height",
			Usage: "window height in pixels",
			Value: scene.DefaultHeight,
		},
	}

	return &cli.Command{
		Name:      "ruzzle",
		Usage:     "falling-block puzzle",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML config (default: next to the executable)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "debug, info, warn or error; overrides log.level",
			},
			&cli.Float64Flag{
				Name:  "speed",
				Usage: "initial gravity multiplier; overrides game.speed",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "spawn sequence seed; overrides game.seed",
			},
			&cli.StringFlag{
				Name:  "spawn",
				Usage: "kind of the first piece: I, O, T, S, Z, J or L",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "open the game window",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:    "debug-ui",
						Aliases: []string{"d"},
						Usage:   "draw the ImGui inspection windows",
					},
				}, sizeFlags...),
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := newSession(c, stderr)
					if err != nil {
						return err
					}
					defer s.log.Sync()
					return play(ctx, c, s)
				},
			},
			{
				Name:  "snapshot",
				Usage: "run headless and save the last frame as PNG",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:    "frames",
						Aliases: []string{"n"},
						Usage:   "number of frames to simulate at 60 per second",
						Value:   60,
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "output file (default: ruzzle-<session>.png)",
					},
				}, sizeFlags...),
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := newSession(c, stderr)
					if err != nil {
						return err
					}
					defer s.log.Sync()
					return snapshot(ctx, c, s, stdout)
				},
			},
			{
				Name:  "config",
				Usage: "print the effective configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "write",
						Aliases: []string{"w"},
						Usage:   "save the effective configuration to the config path",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := newSession(c, stderr)
					if err != nil {
						return err
					}
					defer s.log.Sync()
					return printConfig(c, s, stdout)
				},
			},
		},
	}
}

func newSession(c *cli.Command, stderr io.Writer) (*session, error) {
	path := c.String("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	level := c.String("log-level")
	boot := logx.New(stderr, level, false)
	cfg := config.Load(path, boot)
	if level == "" {
		level = cfg.Log.Level
	}
	if c.IsSet("speed") {
		cfg.Game.Speed = c.Float64("speed")
	}
	if c.IsSet("seed") {
		cfg.Game.Seed = c.Uint64("seed")
	}

	var first tetromino.Kind
	if name := c.String("spawn"); name != "" {
		k, err := tetromino.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("--spawn: %w", err)
		}
		if k == tetromino.None {
			return nil, fmt.Errorf("--spawn: %w: %q", tetromino.ErrUnknownKind, name)
		}
		first = k
	}

	id := uuid.New()
	log := logx.New(stderr, level, cfg.Log.Development).With("session", id.String())
	return &session{id: id, path: path, cfg: cfg, first: first, log: log}, nil
}

func (s *session) gameOptions() game.Options {
	return game.Options{
		Cols:      s.cfg.Game.Cols,
		Rows:      s.cfg.Game.Rows,
		Seed:      s.cfg.Game.Seed,
		Showcase:  s.cfg.Game.Showcase,
		First:     s.first,
		Speed:     s.cfg.Game.Speed,
		Tolerance: s.cfg.Graphics.Tolerance,
		Logger:    s.log,
	}
}

func (s *session) newSimulation(width, height int) (*game.Simulation, error) {
	sim, err := game.New(s.gameOptions())
	if err != nil {
		s.log.Errorf("build simulation: %v", err)
		return nil, err
	}
	sim.Scene().Resize(width, height)
	first := sim.SpawnOrContinue()
	s.log.Infof("simulation ready: %dx%d board, seed %d, first piece %s", sim.Board().Cols, sim.Board().Rows, sim.Seed(), first.Kind)
	return sim, nil
}

func play(ctx context.Context, c *cli.Command, s *session) error {
	width, height := c.Int("width"), c.Int("height")

	// The ImGui backend owns window creation, so it goes first.
	var backend *debugui_ebiten.ImguiBackend
	if c.Bool("debug-ui") {
		backend = debugui_ebiten.New(windowTitle, width, height)
	}

	sim, err := s.newSimulation(width, height)
	if err != nil {
		return err
	}

	g, err := ebitenrender.NewGame(ctx, sim, nil, s.log)
	if err != nil {
		s.log.Errorf("init renderer: %v", err)
		return err
	}
	g.Renderer().AntiAlias = s.cfg.Graphics.SampleCount > 1
	if s.cfg.Graphics.UseLowPowerGPU {
		s.log.Debug("low power GPU preference is left to the platform")
	}
	if backend != nil {
		g.Overlay = debugui.NewOverlay(sim, backend, s.log)
	}

	return g.Run(windowTitle, width, height)
}

func snapshot(ctx context.Context, c *cli.Command, s *session, stdout io.Writer) error {
	width, height := c.Int("width"), c.Int("height")
	out := c.String("out")
	if out == "" {
		out = fmt.Sprintf("ruzzle-%s.png", s.id)
	}

	sim, err := s.newSimulation(width, height)
	if err != nil {
		return err
	}

	r := raster.New(width, height)
	defer r.Close()

	eng := engine.New(sim, r, &engine.Frames{N: c.Int("frames")},
		engine.WithClock(engine.NewStepClock(1.0/60)),
		engine.WithLogger(s.log),
	)
	if err := eng.Init(); err != nil {
		s.log.Errorf("init renderer: %v", err)
		return err
	}
	if err := eng.Run(ctx); err != nil {
		return err
	}
	if err := r.SavePNG(out); err != nil {
		return err
	}

	s.log.Infof("saved %d frames, last one to %s", r.Presented(), out)
	fmt.Fprintln(stdout, out)
	return nil
}

func printConfig(c *cli.Command, s *session, stdout io.Writer) error {
	data, err := config.Marshal(s.cfg)
	if err != nil {
		return err
	}
	if c.Bool("write") {
		if err := config.Save(s.path, s.cfg); err != nil {
			return err
		}
		s.log.Infof("configuration written to %s", s.path)
	}
	_, err = stdout.Write(data)
	return err
}
