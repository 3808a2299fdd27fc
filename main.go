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
	"strings"
	"time"

	"github.com/df07/image-synthesis/pkg/canvas"
	"github.com/df07/image-synthesis/pkg/core"
	"github.com/df07/image-synthesis/pkg/renderer"
	"github.com/df07/image-synthesis/pkg/scene"
)

// options holds the parsed command line
type options struct {
	Scene     string
	Mode      string // raytrace | raster | preview
	Width     int
	Height    int
	Depth     int
	Workers   int
	Step      float64
	Out       string
	ScenesDir string
	List      bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("image-synthesis", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.Scene, "scene", "default", "Built-in scene name or path to a .json scene file")
	fs.StringVar(&opts.Mode, "mode", "raytrace", "Rendering mode: 'raytrace', 'raster' or 'preview'")
	fs.IntVar(&opts.Width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&opts.Height, "height", 0, "Image height (0 = scene default)")
	fs.IntVar(&opts.Depth, "depth", 0, "Raytracing depth (0 = scene default)")
	fs.IntVar(&opts.Workers, "workers", 0, "Raytracing workers (0 = CPU count, 1 = sequential)")
	fs.Float64Var(&opts.Step, "step", renderer.DefaultRasterConfig().Step, "Parametric step for raster mode")
	fs.StringVar(&opts.Out, "out", "", "Output PNG (default output/<scene>/render_<timestamp>.png)")
	fs.StringVar(&opts.ScenesDir, "scenes", "scenes", "Directory listed by -list")
	fs.BoolVar(&opts.List, "list", false, "List available scenes and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch opts.Mode {
	case "raytrace", "raster", "preview":
	default:
		return options{}, fmt.Errorf("unknown mode %q", opts.Mode)
	}
	if opts.Width < 0 || opts.Height < 0 || opts.Depth < 0 || opts.Workers < 0 {
		return options{}, fmt.Errorf("width, height, depth and workers must not be negative")
	}
	if opts.Step <= 0 || opts.Step >= 1 {
		return options{}, fmt.Errorf("step must be in (0, 1), got %g", opts.Step)
	}
	return opts, nil
}

// createScene loads the scene named on the command line at the requested size
func createScene(opts options) (*scene.Scene, error) {
	if opts.Scene == "" {
		return nil, fmt.Errorf("no scene given")
	}
	return scene.Load(opts.Scene, opts.Width, opts.Height)
}

// render draws the scene into a gg-backed sink
func render(ctx context.Context, sc *scene.Scene, opts options, logger core.Logger) (*canvas.ContextSink, renderer.RenderStats, error) {
	sink := canvas.NewContextSink(sc.Width, sc.Height, sc.Background)

	if opts.Mode == "raster" || opts.Mode == "preview" {
		config := renderer.RasterConfig{Step: opts.Step, Preview: opts.Mode == "preview"}
		r := renderer.NewRasterizer(sc, config, logger)
		stats, err := r.RenderContext(ctx, canvas.New(sc.Width, sc.Height, sink))
		return sink, stats, err
	}

	config := renderer.DefaultConfig()
	config.MaxDepth = sc.MaxDepth
	if opts.Depth > 0 {
		config.MaxDepth = opts.Depth
	}
	config.NumWorkers = opts.Workers

	if opts.Workers == 1 {
		stats := renderer.NewRaytracer(sc, config, logger).Render(canvas.New(sc.Width, sc.Height, sink))
		return sink, stats, nil
	}
	pr := renderer.NewParallelRaytracer(sc, config, logger)
	stats, err := pr.Render(ctx, canvas.NewConcurrent(sc.Width, sc.Height, sink))
	return sink, stats, err
}

// outputPath returns -out, or a timestamped file under output/<scene>/
func outputPath(opts options, now time.Time) string {
	if opts.Out != "" {
		return opts.Out
	}
	name := strings.TrimSuffix(filepath.Base(opts.Scene), filepath.Ext(opts.Scene))
	return filepath.Join("output", name, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

func listScenes(w io.Writer, dir string) error {
	fmt.Fprintln(w, "Built-in scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-12s %s\n", info.ID, info.Description)
	}

	files, err := scene.ListSceneFiles(dir)
	if err != nil {
		return err
	}
	if len(files) > 0 {
		fmt.Fprintf(w, "Scene files in %s:\n", dir)
		for _, info := range files {
			fmt.Fprintf(w, "  %s (%s)\n", info.FilePath, info.DisplayName)
		}
	}
	return nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}
	if opts.List {
		return listScenes(stdout, opts.ScenesDir)
	}

	sc, err := createScene(opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Rendering %s (%dx%d, %s)...\n", sc.Name, sc.Width, sc.Height, opts.Mode)

	sink, stats, err := render(ctx, sc, opts, renderer.NewDefaultLogger())
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	fmt.Fprintf(stdout, "Render completed in %v, %.1f%% of pixels covered\n", stats.Duration, stats.Coverage()*100)

	filename := outputPath(opts, time.Now())
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	if err := sink.SavePNG(filename); err != nil {
		return fmt.Errorf("error saving PNG: %w", err)
	}
	fmt.Fprintf(stdout, "Render saved as %s\n", filename)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
