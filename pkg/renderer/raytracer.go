package renderer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/stanpapa/computer-graphics-from-scratch/pkg/core"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/integrator"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/scene"
)

// RenderConfig contains configuration for a render
type RenderConfig struct {
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Row y samples from a generator seeded with Seed+y

	// OnRowComplete, if set, is called after each finished row from the
	// goroutine that called Render
	OnRowComplete func(done, total int)

	// Integrator overrides the default path tracer
	Integrator integrator.Integrator
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers: 0,
		Seed:       42,
	}
}

// Raytracer renders a scene into a pixel buffer with a pool of row workers
type Raytracer struct {
	scene  *scene.Scene
	config RenderConfig
	logger core.Logger
	pool   atomic.Pointer[WorkerPool] // Pool of the render in flight
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(scene *scene.Scene, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = discardLogger{}
	}
	return &Raytracer{
		scene:  scene,
		config: config,
		logger: logger,
	}
}

// Progress returns the number of rows finished by the render in flight
func (rt *Raytracer) Progress() int {
	pool := rt.pool.Load()
	if pool == nil {
		return 0
	}
	return pool.Completed()
}

// Render validates the scene and renders every row. The image is identical for
// any worker count. If ctx is cancelled the partial image is discarded and
// ctx.Err() is returned.
func (rt *Raytracer) Render(ctx context.Context) (*PixelBuffer, RenderStats, error) {
	if err := rt.scene.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("cannot render: %w", err)
	}

	cfg := rt.scene.SamplingConfig
	buffer := NewPixelBuffer(cfg.Width, cfg.Height)

	integratorInst := rt.config.Integrator
	if integratorInst == nil {
		integratorInst = integrator.NewPathTracingIntegrator(cfg)
	}

	pool := NewWorkerPool(NewRowRenderer(rt.scene, integratorInst), cfg.Height, rt.config.NumWorkers)
	rt.pool.Store(pool)
	stats := RenderStats{Workers: pool.GetNumWorkers()}

	rt.logger.Printf("Rendering %dx%d at %d samples/pixel, max depth %d (using %d workers)...\n",
		cfg.Width, cfg.Height, cfg.SamplesPerPixel, cfg.MaxDepth, stats.Workers)

	startTime := time.Now()
	pool.Start(ctx)
	for y := 0; y < cfg.Height; y++ {
		pool.SubmitTask(RowTask{
			Row:    y,
			Pixels: buffer.Row(y),
			Seed:   rt.config.Seed + int64(y),
			TaskID: y,
		})
	}

	var renderErr error
	for i := 0; i < cfg.Height; i++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.add(result.Stats)
		if rt.config.OnRowComplete != nil {
			rt.config.OnRowComplete(stats.Rows, cfg.Height)
		}
	}
	pool.Stop()
	stats.finalize(time.Since(startTime))

	if renderErr != nil {
		rt.logger.Printf("Rendering cancelled after %d of %d rows\n", stats.Rows, cfg.Height)
		return nil, stats, renderErr
	}

	rt.logger.Printf("Render completed in %v (%d samples, %.0f samples/sec)\n",
		stats.Duration, stats.TotalSamples, stats.SamplesPerSecond())
	return buffer, stats, nil
}
