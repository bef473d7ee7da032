package main

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stanpapa/computer-graphics-from-scratch/pkg/imageio"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"simple scene", "simple", false},
		{"materials scene", "materials", false},
		{"defocus scene", "defocus", false},
		{"random scene", "random", false},

		// JSON scene files
		{"scene file", "scenes/three-spheres.json", false},
		{"scene file with named colors", "scenes/three-spheres-sunset.json", false},
		{"mirror scene file", "scenes/mirror.json", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"missing scene file", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := createScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if sc != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if err := sc.Validate(); err != nil {
				t.Errorf("Scene '%s' is not renderable: %v", tt.sceneType, err)
			}
			if sc.GetPrimitiveCount() == 0 {
				t.Errorf("Scene '%s' has no spheres", tt.sceneType)
			}
		})
	}
}

func TestCreateScene_UnknownIsErrUnknownScene(t *testing.T) {
	_, err := createScene("cornell")
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestParseFlags(t *testing.T) {
	config, err := parseFlags([]string{"-scene", "materials", "-width", "320", "-samples", "16", "-workers", "2", "-seed", "7", "-aperture", "0", "-output", "out.bmp"})
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}

	expected := Config{
		SceneType: "materials",
		Width:     320,
		Samples:   16,
		Workers:   2,
		Seed:      7,
		Aperture:  0,
		Output:    "out.bmp",
	}
	if config != expected {
		t.Errorf("Expected %+v, got %+v", expected, config)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	config, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if config.SceneType != "simple" || config.Aperture >= 0 || config.Seed != 42 {
		t.Errorf("Unexpected defaults %+v", config)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := [][]string{
		{"-width", "-5"},
		{"-samples", "-1"},
		{"-workers", "abc"},
		{"-unknown"},
	}

	for _, args := range tests {
		if _, err := parseFlags(args); err == nil {
			t.Errorf("Expected error for %v", args)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	sc, err := createScene("defocus")
	if err != nil {
		t.Fatal(err)
	}

	applyOverrides(sc, Config{Width: 200, Samples: 4, MaxDepth: 3, Aperture: 0})

	cfg := sc.SamplingConfig
	if cfg.Width != 200 || cfg.Height != 112 || cfg.SamplesPerPixel != 4 || cfg.MaxDepth != 3 {
		t.Errorf("Unexpected sampling config %+v", cfg)
	}
	if sc.Camera.LensRadius() != 0 {
		t.Errorf("Expected pinhole camera after -aperture 0, got lens radius %f", sc.Camera.LensRadius())
	}

	// A negative aperture keeps the scene's lens
	sc, _ = createScene("defocus")
	applyOverrides(sc, Config{Aperture: -1})
	if sc.Camera.LensRadius() == 0 {
		t.Error("Expected the defocus scene to keep its lens")
	}
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

	tests := []struct {
		config   Config
		expected string
	}{
		{Config{SceneType: "simple"}, filepath.Join("output", "simple", "render_20240309_140506.png")},
		{Config{SceneType: "scenes/mirror.json"}, filepath.Join("output", "mirror", "render_20240309_140506.png")},
		{Config{SceneType: "simple", Output: "out.tiff"}, "out.tiff"},
	}

	for _, tt := range tests {
		if got := outputPath(tt.config, now); got != tt.expected {
			t.Errorf("outputPath(%+v) = %s, expected %s", tt.config, got, tt.expected)
		}
	}
}

func TestRun(t *testing.T) {
	output := filepath.Join(t.TempDir(), "render.png")
	config := Config{
		SceneType: "materials",
		Width:     16,
		Height:    9,
		Samples:   2,
		MaxDepth:  4,
		Workers:   2,
		Seed:      1,
		Aperture:  -1,
		Output:    output,
	}

	if err := run(config); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	img, format, err := imageio.Load(output)
	if err != nil {
		t.Fatalf("Failed to read render: %v", err)
	}
	if format != imageio.PNG || img.Bounds().Dx() != 16 || img.Bounds().Dy() != 9 {
		t.Errorf("Expected 16x9 png, got %s %v", format, img.Bounds())
	}
}

func TestRun_RejectsUnsupportedOutput(t *testing.T) {
	err := run(Config{SceneType: "simple", Aperture: -1, Output: "render.gif"})
	if !errors.Is(err, imageio.ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}
