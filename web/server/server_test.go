package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stanpapa/computer-graphics-from-scratch/pkg/scene"
)

const testSceneJSON = `{
	"name": "Test Sphere",
	"group": "Tests",
	"camera": {"center": [0, 0, 0], "lookAt": [0, 0, -1], "vfov": 90},
	"sampling": {"width": 20, "height": 10, "samplesPerPixel": 2, "maxDepth": 4},
	"spheres": [{"center": [0, 0, -1], "radius": 0.5, "material": {"type": "metal", "albedo": "gold", "fuzz": 0.1}}]
}`

// createTestServer returns a server whose scene directory holds one scene file
func createTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "test-sphere.json"), []byte(testSceneJSON), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"camera": {}}`), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	return NewServer(0, dir)
}

func doRequest(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, createTestServer(t), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleRender_PNG(t *testing.T) {
	rec := doRequest(t, createTestServer(t), "/api/render?scene=materials&width=16&height=8&samples=2&depth=3&seed=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}
	if samples := rec.Header().Get("X-Render-Samples"); samples != "256" {
		t.Errorf("Expected 256 samples, got %s", samples)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Response is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Errorf("Expected 16x8 image, got %v", img.Bounds())
	}
}

func TestHandleRender_Deterministic(t *testing.T) {
	s := createTestServer(t)
	target := "/api/render?scene=defocus&width=12&height=6&samples=3&seed=9"

	first := doRequest(t, s, target)
	second := doRequest(t, s, target)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d and %d", first.Code, second.Code)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("Equal requests should return identical images")
	}
}

func TestHandleRender_JSON(t *testing.T) {
	rec := doRequest(t, createTestServer(t), "/api/render?scene=file:test-sphere&format=json")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response RenderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if response.Width != 20 || response.Height != 10 {
		t.Errorf("Expected the file's 20x10 size, got %dx%d", response.Width, response.Height)
	}
	if response.Stats.TotalPixels != 200 || response.Stats.TotalSamples != 400 {
		t.Errorf("Unexpected stats %+v", response.Stats)
	}
	if len(response.Console) != 2 {
		t.Errorf("Expected start and finish console messages, got %+v", response.Console)
	}

	data, err := base64.StdEncoding.DecodeString(response.ImageData)
	if err != nil {
		t.Fatalf("Image data is not base64: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("Image data is not a PNG: %v", err)
	}
}

func TestHandleRender_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"unknown scene", "/api/render?scene=nonexistent", http.StatusNotFound},
		{"missing scene file", "/api/render?scene=file:nonexistent", http.StatusNotFound},
		{"path traversal", "/api/render?scene=file:../secrets", http.StatusNotFound},
		{"invalid scene file", "/api/render?scene=file:broken", http.StatusBadRequest},
		{"width too large", "/api/render?width=5000", http.StatusBadRequest},
		{"bad samples", "/api/render?samples=abc", http.StatusBadRequest},
		{"negative depth", "/api/render?depth=-2", http.StatusBadRequest},
		{"NaN aperture", "/api/render?aperture=NaN", http.StatusBadRequest},
		{"bad format", "/api/render?format=gif", http.StatusBadRequest},
	}

	s := createTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, tt.target)
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("Expected JSON error body, got %s", rec.Body.String())
			}
		})
	}
}

func TestHandleScenes(t *testing.T) {
	rec := doRequest(t, createTestServer(t), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var response scene.ScenesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(response.Groups) == 0 || len(response.Groups[0].Scenes) != len(scene.List()) {
		t.Fatalf("Expected built-in scenes first, got %+v", response.Groups)
	}

	found := false
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			if info.ID == "file:test-sphere" {
				found = true
				if group.Name != "Tests" {
					t.Errorf("Expected scene file in group Tests, got %s", group.Name)
				}
			}
		}
	}
	if !found {
		t.Error("Scene file missing from listing")
	}
}

func TestHandleSceneConfig(t *testing.T) {
	rec := doRequest(t, createTestServer(t), "/api/scene-config?scene=random")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var response struct {
		Scene    string         `json:"scene"`
		Defaults map[string]any `json:"defaults"`
		Spheres  int            `json:"spheres"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if response.Defaults["width"] != float64(1200) || response.Defaults["samplesPerPixel"] != float64(500) {
		t.Errorf("Unexpected defaults %v", response.Defaults)
	}
	if response.Spheres < 4 {
		t.Errorf("Expected the random scene's spheres, got %d", response.Spheres)
	}

	if rec := doRequest(t, createTestServer(t), "/api/scene-config?scene=nonexistent"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown scene, got %d", rec.Code)
	}
}

func TestHandleInspect(t *testing.T) {
	s := createTestServer(t)

	rec := doRequest(t, s, "/api/inspect?scene=simple&width=101&height=101&x=50&y=50")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if !response.Hit || response.MaterialType != "lambertian" || response.GeometryType != "sphere" {
		t.Errorf("Expected a lambertian sphere hit, got %+v", response)
	}
	geometry, ok := response.Properties["geometry"].(map[string]interface{})
	if !ok || geometry["radius"] != 0.5 {
		t.Errorf("Expected sphere radius 0.5, got %v", response.Properties["geometry"])
	}

	// Top-left corner looks past the sphere into the sky
	rec = doRequest(t, s, "/api/inspect?scene=simple&width=101&height=101&x=0&y=0")
	response = InspectResponse{}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if response.Hit || response.Background == nil {
		t.Errorf("Expected a miss with a background color, got %+v", response)
	}
}

func TestHandleInspect_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"missing x", "/api/inspect?scene=simple&y=1", http.StatusBadRequest},
		{"bad y", "/api/inspect?scene=simple&x=1&y=top", http.StatusBadRequest},
		{"out of bounds", "/api/inspect?scene=simple&width=10&height=10&x=10&y=0", http.StatusBadRequest},
		{"unknown scene", "/api/inspect?scene=nonexistent&x=0&y=0", http.StatusNotFound},
	}

	s := createTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := doRequest(t, s, tt.target); rec.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}
