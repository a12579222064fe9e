// Package geo decodes GeoJSON-like feature collections and derives the
// planar area signal used to seed the economy. The shoelace area is computed
// in raw coordinate space on purpose: it is a relative size signal, not a
// projected surface area.
package geo

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// FeatureCollection is the top-level GeoJSON document.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single geographic region.
type Feature struct {
	ID         FeatureID `json:"id"`
	Properties struct {
		Name string `json:"name"`
	} `json:"properties"`
	Geometry *Geometry `json:"geometry"`
}

// Key returns the stable identifier for a feature, falling back to the
// display name when the source data carries no id.
func (f Feature) Key() string {
	if f.ID != "" {
		return string(f.ID)
	}
	return f.Properties.Name
}

// FeatureID tolerates both string and numeric ids in source data.
type FeatureID string

func (id *FeatureID) UnmarshalJSON(data []byte) error {
	// A null id is treated as absent so Key() can fall back to the name.
	if string(data) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FeatureID(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*id = FeatureID(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
	return fmt.Errorf("feature id must be a string or number, got %s", string(data))
}

// Geometry holds polygon coordinates. Only Polygon and MultiPolygon carry
// data; any other type decodes to an empty geometry with area 0.
type Geometry struct {
	Type         string
	Polygon      [][][]float64   // rings: ring -> positions -> [lon, lat, ...]
	MultiPolygon [][][][]float64 // polygons -> rings -> positions
}

func (g *Geometry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	g.Type = raw.Type
	if len(raw.Coordinates) == 0 {
		return nil
	}

	switch raw.Type {
	case "Polygon":
		return json.Unmarshal(raw.Coordinates, &g.Polygon)
	case "MultiPolygon":
		return json.Unmarshal(raw.Coordinates, &g.MultiPolygon)
	}

	// Points, lines and other types have no area; ignore their coordinates.
	return nil
}

// ParseFeatureCollection decodes a feature collection from r.
func ParseFeatureCollection(r io.Reader) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed to decode feature collection: %w", err)
	}
	return &fc, nil
}

// Area returns the summed absolute shoelace area of every outer ring in the
// geometry. Holes are ignored. Missing or degenerate geometry yields 0.
func Area(g *Geometry) float64 {
	if g == nil {
		return 0
	}

	var area float64
	switch g.Type {
	case "Polygon":
		if len(g.Polygon) > 0 {
			area += ringArea(g.Polygon[0])
		}
	case "MultiPolygon":
		for _, poly := range g.MultiPolygon {
			if len(poly) > 0 {
				area += ringArea(poly[0])
			}
		}
	}
	return area
}

// Latitude returns the latitude of the geometry's first vertex, used as a
// crude centroid stand-in for terrain coloring. Returns 0 when unknown.
func Latitude(g *Geometry) float64 {
	if g == nil {
		return 0
	}
	switch g.Type {
	case "Polygon":
		if len(g.Polygon) > 0 && len(g.Polygon[0]) > 0 && len(g.Polygon[0][0]) >= 2 {
			return g.Polygon[0][0][1]
		}
	case "MultiPolygon":
		if len(g.MultiPolygon) > 0 && len(g.MultiPolygon[0]) > 0 &&
			len(g.MultiPolygon[0][0]) > 0 && len(g.MultiPolygon[0][0][0]) >= 2 {
			return g.MultiPolygon[0][0][0][1]
		}
	}
	return 0
}

// ringArea computes the absolute shoelace area of a single ring. Rings with
// fewer than three vertices have no area.
func ringArea(points [][]float64) float64 {
	if len(points) < 3 {
		return 0
	}

	var area float64
	for i := 0; i < len(points); i++ {
		j := (i + 1) % len(points)
		if len(points[i]) < 2 || len(points[j]) < 2 {
			return 0
		}
		area += points[i][0] * points[j][1]
		area -= points[j][0] * points[i][1]
	}
	if area < 0 {
		area = -area
	}
	return area / 2
}
