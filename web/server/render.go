package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/stanpapa/computer-graphics-from-scratch/pkg/imageio"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/renderer"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/scene"
)

// RenderRequest represents a render request from the client. Zero sizes and
// sampling values keep the scene defaults.
type RenderRequest struct {
	Scene    string  `json:"scene"`    // Built-in scene ID or "file:<name>"
	Width    int     `json:"width"`    // Image width
	Height   int     `json:"height"`   // Image height
	Samples  int     `json:"samples"`  // Samples per pixel
	MaxDepth int     `json:"maxDepth"` // Maximum bounces, -1 keeps the scene value
	Seed     int64   `json:"seed"`     // Render seed
	Aperture float64 `json:"aperture"` // Lens aperture, -1 keeps the scene value
	Format   string  `json:"format"`   // "png" or "json"
}

// RenderResponse is the body of a render with format=json
type RenderResponse struct {
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	ElapsedMs int64            `json:"elapsedMs"`
	Console   []ConsoleMessage `json:"console"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int64   `json:"totalSamples"`
	AverageSamples   float64 `json:"averageSamples"`
	Workers          int     `json:"workers"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// handleRender renders a scene and responds with a PNG, or a JSON document when format=json.
// The render stops when the client disconnects.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		writeJSONError(w, sceneErrorStatus(err), err.Error())
		return
	}
	applyRenderOverrides(sceneObj, req)

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	consoleChan := make(chan ConsoleMessage, 16)
	logger := NewWebLogger(renderID, consoleChan)

	startTime := time.Now()
	raytracer := renderer.NewRaytracer(sceneObj, renderer.RenderConfig{Seed: req.Seed}, logger)
	buffer, renderStats, err := raytracer.Render(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Printf("[%s] Client went away after %d of %d rows", renderID, renderStats.Rows, sceneObj.SamplingConfig.Height)
			return
		}
		if errors.Is(err, scene.ErrInvalidScene) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Render error: "+err.Error())
		return
	}
	elapsed := time.Since(startTime)

	img := buffer.ToImage()
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, imageio.PNG); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to encode image: "+err.Error())
		return
	}

	stats := Stats{
		TotalPixels:      renderStats.TotalPixels,
		TotalSamples:     int64(renderStats.TotalSamples),
		AverageSamples:   renderStats.AverageSamples,
		Workers:          renderStats.Workers,
		AverageLuminance: renderer.CalculateAverageLuminance(img),
	}

	if req.Format == "json" {
		response := RenderResponse{
			Scene:     req.Scene,
			Width:     buffer.Width,
			Height:    buffer.Height,
			ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
			Stats:     stats,
			ElapsedMs: elapsed.Milliseconds(),
			Console:   drainConsole(consoleChan),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(elapsed.Milliseconds(), 10))
	w.Header().Set("X-Render-Samples", strconv.FormatInt(stats.TotalSamples, 10))
	w.Header().Set("X-Render-Workers", strconv.Itoa(stats.Workers))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("[%s] Failed to write response: %v", renderID, err)
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene"), Format: query.Get("format")}
	if req.Scene == "" {
		req.Scene = "simple"
	}
	switch req.Format {
	case "":
		req.Format = "png"
	case "png", "json":
	default:
		return nil, fmt.Errorf("format must be png or json, got: %s", req.Format)
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", -1, 0, maxDepth); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", int(renderer.DefaultRenderConfig().Seed), 0, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)
	if req.Aperture, err = parseFloatParam(query, "aperture", -1, 0, 10); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// applyRenderOverrides applies the request's image, sampling and lens settings to the scene
func applyRenderOverrides(sc *scene.Scene, req *RenderRequest) {
	sc.ApplySamplingOverrides(scene.SamplingConfig{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.Samples,
	})
	if req.MaxDepth >= 0 {
		sc.SamplingConfig.MaxDepth = req.MaxDepth
	}
	if req.Aperture >= 0 {
		camera := sc.CameraConfig
		camera.Aperture = req.Aperture
		sc.SetCamera(camera)
	}
}
