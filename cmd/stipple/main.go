// Command stipple renders a scene of sampled shapes to an image file.
//
// Without -scene it renders the built-in grid of cardioids. The image is
// written as plain PPM to standard output unless -o names a file, in
// which case the format follows the extension (.ppm, .png, .jpg, .bmp,
// .tif).
//
//	stipple -seed 1 > cardioids.ppm
//	stipple -scene examples.toml -points 100000 -o out.png
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/stipple"
	"github.com/gogpu/stipple/internal/imageio"
	"github.com/gogpu/stipple/ppm"
	"github.com/gogpu/stipple/scene"
)

type config struct {
	scene   string
	output  string
	width   int
	height  int
	points  int
	workers int
	seed    uint64
	seeded  bool
	verbose bool
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("stipple", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.scene, "scene", "", "scene file (.toml, .yaml); default is the built-in cardioid grid")
	fs.StringVar(&cfg.output, "o", "-", "output file, or - for PPM on stdout")
	fs.IntVar(&cfg.width, "width", 0, "override the scene width")
	fs.IntVar(&cfg.height, "height", 0, "override the scene height")
	fs.IntVar(&cfg.points, "points", 0, "override the points sampled per shape")
	fs.IntVar(&cfg.workers, "workers", 0, "sampling goroutines (0 = GOMAXPROCS)")
	fs.Uint64Var(&cfg.seed, "seed", 0, "random seed for a reproducible image")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.seeded = true
		}
	})
	if cfg.width < 0 || cfg.height < 0 || cfg.points < 0 {
		return cfg, errors.New("-width, -height and -points must not be negative")
	}
	return cfg, nil
}

// loadScene returns the scene named by cfg with the flag overrides
// applied.
func loadScene(cfg config) (*scene.Scene, error) {
	s := scene.Default()
	if cfg.scene != "" {
		var err error
		if s, err = scene.Load(cfg.scene); err != nil {
			return nil, err
		}
	}
	if cfg.width > 0 {
		s.Width = cfg.width
	}
	if cfg.height > 0 {
		s.Height = cfg.height
	}
	if cfg.points > 0 {
		for i := range s.Layers {
			s.Layers[i].Points = cfg.points
		}
	}
	return s, nil
}

func canvasOptions(cfg config) []stipple.CanvasOption {
	opts := []stipple.CanvasOption{stipple.WithWorkers(cfg.workers)}
	if cfg.seeded {
		opts = append(opts, stipple.WithSeed(cfg.seed))
	}
	return opts
}

func writeImage(cfg config, stdout io.Writer, img *stipple.Raster) error {
	if cfg.output == "-" {
		w := bufio.NewWriter(stdout)
		if err := ppm.Encode(w, img); err != nil {
			return err
		}
		return w.Flush()
	}
	return imageio.Save(cfg.output, img)
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())
	stipple.SetLogger(logger)
	defer stipple.SetLogger(nil)

	s, err := loadScene(cfg)
	if err != nil {
		return err
	}

	logger.Info("rasterizing", "width", s.Width, "height", s.Height, "layers", len(s.Layers))
	start := time.Now()
	canvas, stats, err := s.Render(canvasOptions(cfg)...)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	var plotted, dropped int
	for _, st := range stats {
		plotted += st.Raster.Plotted
		dropped += st.Raster.Dropped
		logger.Debug(p.Sprintf("layer %d: %d of %d points plotted", st.Layer, st.Raster.Plotted, st.Raster.Sampled),
			"duration", st.Duration)
	}
	logger.Info(p.Sprintf("rasterized %d points, dropped %d", plotted, dropped),
		"duration", time.Since(start).Round(time.Millisecond))

	logger.Info("writing", "output", cfg.output)
	if err := writeImage(cfg, stdout, canvas.Serialize()); err != nil {
		return fmt.Errorf("write %s: %w", cfg.output, err)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "stipple:", err)
		os.Exit(1)
	}
}
