package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/stanpapa/computer-graphics-from-scratch/pkg/core"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/geometry"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
	Background   *[3]float64            `json:"background,omitempty"` // Sky color on a miss
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(sphere *geometry.Sphere) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	if sphere == nil {
		return "unknown", properties
	}

	properties["center"] = vecArray(sphere.Center)
	properties["radius"] = sphere.Radius
	if sphere.Radius < 0 {
		properties["hollow"] = true // Normals point inward
	}
	return "sphere", properties
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Scene and image size use the same parameters as a render
	inspectReq, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}

	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(inspectReq.Scene)
	if err != nil {
		writeJSONError(w, sceneErrorStatus(err), err.Error())
		return
	}
	applyRenderOverrides(sceneObj, inspectReq)

	result, err := renderer.InspectPixel(sceneObj, pixelX, pixelY)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	if !result.Hit {
		background := [3]float64{result.Background.R, result.Background.G, result.Background.B}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InspectResponse{Hit: false, Background: &background})
		return
	}

	geometryType, geometryProps := extractGeometryInfo(result.Sphere)

	// Combine properties
	allProperties := make(map[string]interface{})
	allProperties["material"] = result.Properties
	allProperties["geometry"] = geometryProps

	response := InspectResponse{
		Hit:          true,
		MaterialType: result.MaterialType,
		GeometryType: geometryType,
		Point:        vecArray(result.Point),
		Normal:       vecArray(result.Normal),
		Distance:     result.Distance,
		FrontFace:    result.FrontFace,
		Properties:   allProperties,
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
