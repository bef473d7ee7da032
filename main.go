package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/stanpapa/computer-graphics-from-scratch/pkg/imageio"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/loaders"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/renderer"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/scene"
)

// Config holds the parsed command line
type Config struct {
	SceneType string
	Width     int
	Height    int
	Samples   int
	MaxDepth  int
	Workers   int
	Seed      int64
	Aperture  float64 // Negative keeps the scene's lens
	Output    string  // Empty means output/<scene>/render_<timestamp>.png
	Help      bool
}

// newFlagSet registers the command line flags into config
func newFlagSet(config *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.StringVar(&config.SceneType, "scene", "simple", "Built-in scene name or path to a .json scene file")
	fs.IntVar(&config.Width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&config.Height, "height", 0, "Image height in pixels (0 = keep the scene's aspect ratio)")
	fs.IntVar(&config.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&config.MaxDepth, "depth", 0, "Maximum ray bounces (0 = scene default)")
	fs.IntVar(&config.Workers, "workers", 0, "Number of parallel workers (0 = number of CPUs)")
	fs.Int64Var(&config.Seed, "seed", renderer.DefaultRenderConfig().Seed, "Random seed; equal seeds give identical images")
	fs.Float64Var(&config.Aperture, "aperture", -1, "Lens aperture (0 = pinhole, negative = scene default)")
	fs.StringVar(&config.Output, "output", "", "Output file; .png, .jpg, .bmp or .tiff")
	fs.BoolVar(&config.Help, "help", false, "Show help information")
	return fs
}

func parseFlags(args []string) (Config, error) {
	var config Config
	if err := newFlagSet(&config).Parse(args); err != nil {
		return config, err
	}
	if config.Width < 0 || config.Height < 0 || config.Samples < 0 || config.MaxDepth < 0 || config.Workers < 0 {
		return config, errors.New("width, height, samples, depth and workers must not be negative")
	}
	return config, nil
}

func main() {
	config, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(2)
	}

	if config.Help {
		showHelp()
		return
	}

	if err := run(config); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Sphere Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs := newFlagSet(&Config{})
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.List() {
		fmt.Printf("  %-10s - %s\n", info.ID, info.Description)
	}
	fmt.Println("  <file>.json - Scene description file")
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png unless -output is given")
}

func run(config Config) error {
	fmt.Println("Starting Raytracer...")

	if config.Output != "" {
		if _, err := imageio.FormatFromPath(config.Output); err != nil {
			return err
		}
	}

	sc, err := createScene(config.SceneType)
	if err != nil {
		return err
	}
	applyOverrides(sc, config)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := sc.SamplingConfig
	renderConfig := renderer.RenderConfig{
		NumWorkers:    config.Workers,
		Seed:          config.Seed,
		OnRowComplete: progressPrinter(cfg.Height),
	}

	raytracer := renderer.NewRaytracer(sc, renderConfig, renderer.NewDefaultLogger())
	buffer, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	fmt.Println()

	img := buffer.ToImage()
	fmt.Printf("Scene: %d spheres, %.0f samples/pixel, average luminance %.3f\n",
		sc.GetPrimitiveCount(), stats.AverageSamples, renderer.CalculateAverageLuminance(img))

	filename := outputPath(config, time.Now())
	if err := imageio.Save(filename, img); err != nil {
		return fmt.Errorf("error saving image: %w", err)
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene resolves a built-in scene name or a JSON scene file path
func createScene(sceneType string) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, errors.New("no scene given")
	}

	if strings.HasSuffix(strings.ToLower(sceneType), ".json") {
		fmt.Printf("Loading scene file %s...\n", sceneType)
		return loaders.LoadScene(sceneType)
	}

	fmt.Printf("Using %s scene...\n", sceneType)
	return scene.New(sceneType)
}

// applyOverrides applies the command line image, sampling and lens settings
func applyOverrides(sc *scene.Scene, config Config) {
	sc.ApplySamplingOverrides(scene.SamplingConfig{
		Width:           config.Width,
		Height:          config.Height,
		SamplesPerPixel: config.Samples,
		MaxDepth:        config.MaxDepth,
	})

	if config.Aperture >= 0 {
		camera := sc.CameraConfig
		camera.Aperture = config.Aperture
		sc.SetCamera(camera)
	}
}

// outputPath returns the -output flag or a timestamped file under output/<scene>
func outputPath(config Config, now time.Time) string {
	if config.Output != "" {
		return config.Output
	}

	name := config.SceneType
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", name, fmt.Sprintf("render_%s.png", timestamp))
}

// progressPrinter reports progress roughly every 5% of the rows
func progressPrinter(totalRows int) func(done, total int) {
	step := max(1, totalRows/20)
	return func(done, total int) {
		if done%step == 0 || done == total {
			fmt.Printf("\rRendered %d/%d rows (%.0f%%)", done, total, 100*float64(done)/float64(total))
		}
	}
}
