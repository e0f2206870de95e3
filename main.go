package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/df07/go-weekend-raytracer/pkg/config"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/logger"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// scenesDir is searched for YAML scenes listed by -help
const scenesDir = "scenes"

// errHelp signals that usage was printed and nothing else should run
var errHelp = errors.New("help requested")

// cliOptions holds the parsed command line
type cliOptions struct {
	writeConfig string
	sequential  bool
	config      *config.RenderConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errHelp) || errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run executes one render as described by args
func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}
	cfg := opts.config

	if opts.writeConfig != "" {
		if err := config.SaveConfig(cfg, opts.writeConfig); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Config written to %s\n", opts.writeConfig)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := createLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	log.Infof("Starting raytracer: scene %s, %dx%d, %d samples, depth %d",
		cfg.Scene, cfg.Width, cfg.Height(), cfg.SamplesPerPixel, cfg.MaxDepth)

	selectedScene, err := createScene(cfg)
	if err != nil {
		return err
	}
	log.Debugf("Scene %q has %d objects", selectedScene.Name, selectedScene.GetObjectCount())

	raytracer := renderer.NewRaytracer(selectedScene, cfg.SamplingConfig(), log)

	var img *renderer.Image
	var stats renderer.RenderStats
	if opts.sequential {
		img, stats = raytracer.RenderSequential()
	} else {
		img, stats, err = raytracer.Render(ctx)
		if err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}
	log.Infof("Rendered %d pixels at %.1f samples per pixel in %v",
		stats.TotalPixels, stats.AverageSamples, stats.Duration)

	if err := createOutputDir(cfg.Output); err != nil {
		return err
	}
	if err := output.Save(cfg.Output, img); err != nil {
		return err
	}

	log.Infof("Render saved as %s", cfg.Output)
	return nil
}

// parseFlags builds the run configuration: defaults, then the -config file,
// then any flag given explicitly on the command line.
func parseFlags(args []string, stdout io.Writer) (*cliOptions, error) {
	defaults := config.DefaultConfig()
	fs := flag.NewFlagSet("go-weekend-raytracer", flag.ContinueOnError)
	fs.SetOutput(stdout)

	configPath := fs.String("config", "", "Path to a YAML render config")
	sceneName := fs.String("scene", defaults.Scene, "Scene: built-in name or path to a .yaml scene file")
	width := fs.Int("width", defaults.Width, "Image width in pixels")
	aspect := fs.Float64("aspect", defaults.AspectRatio, "Image aspect ratio (width / height)")
	spp := fs.Int("spp", defaults.SamplesPerPixel, "Samples per pixel")
	depth := fs.Int("depth", defaults.MaxDepth, "Maximum ray bounce depth")
	tileSize := fs.Int("tile", defaults.TileSize, "Tile edge length for parallel rendering")
	workers := fs.Int("workers", defaults.NumWorkers, "Number of parallel workers (0 = use CPU count)")
	seed := fs.Int64("seed", defaults.Seed, "Random seed")
	out := fs.String("out", defaults.Output, "Output file ("+output.SupportedExtensions()+")")
	logLevel := fs.String("log-level", defaults.LogLevel, "Log level: debug, info, warn, error")
	logFile := fs.String("log-file", defaults.LogFile, "Also write the log to this file")
	sequential := fs.Bool("sequential", false, "Render on a single goroutine, scanline by scanline")
	writeConfig := fs.String("write-config", "", "Write the effective config to this path and exit")
	help := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *help {
		printHelp(stdout, fs)
		return nil, errHelp
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Explicit flags win over the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneName
		case "width":
			cfg.Width = *width
		case "aspect":
			cfg.AspectRatio = *aspect
		case "spp":
			cfg.SamplesPerPixel = *spp
		case "depth":
			cfg.MaxDepth = *depth
		case "tile":
			cfg.TileSize = *tileSize
		case "workers":
			cfg.NumWorkers = *workers
		case "seed":
			cfg.Seed = *seed
		case "out":
			cfg.Output = *out
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-file":
			cfg.LogFile = *logFile
		}
	})

	return &cliOptions{
		writeConfig: *writeConfig,
		sequential:  *sequential,
		config:      cfg,
	}, nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Weekend Raytracer")
	fmt.Fprintln(w, "Usage: go-weekend-raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")

	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		scenes = scene.ListBuiltinScenes()
	}
	for _, info := range scenes {
		fmt.Fprintf(w, "  %-30s %s\n", info.ID, info.Description)
	}
}

// createLogger logs to the console, and to cfg.LogFile as well when it is set
func createLogger(cfg *config.RenderConfig) (*logger.Logger, error) {
	if cfg.LogFile == "" {
		return logger.NewLogger(cfg.LogLevel), nil
	}
	return logger.NewMultiLogger(cfg.LogLevel, cfg.LogFile)
}

// createScene builds the configured scene with the configured aspect ratio
func createScene(cfg *config.RenderConfig) (*scene.Scene, error) {
	return scene.Load(cfg.Scene, cfg.Seed, geometry.CameraConfig{AspectRatio: cfg.AspectRatio})
}

// createOutputDir makes sure the directory of path exists
func createOutputDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	return nil
}
