package world

import "math"

// terrainColors carries hand-picked satellite-style colors for well-known
// regions; everything else falls back to a latitude heuristic.
var terrainColors = map[string]string{
	// Polar / ice
	"Antarctica": "#f1f5f9", "Greenland": "#f1f5f9", "Iceland": "#cbd5e1",
	// Boreal / tundra
	"Russia": "#5c7c55", "Canada": "#5c7c55", "Norway": "#4d6a49",
	"Sweden": "#567d46", "Finland": "#567d46",
	// Temperate
	"United States": "#658d53", "China": "#8ba870", "Japan": "#386641",
	"United Kingdom": "#4d7c38", "France": "#5d8c47", "Germany": "#507a3f",
	"Poland": "#558242", "Ukraine": "#7a9e5e",
	// Desert / arid
	"Egypt": "#dcb382", "Saudi Arabia": "#d4a373", "Iraq": "#d4a373",
	"Iran": "#c29d6f", "Algeria": "#e0c092", "Libya": "#e0c092",
	"Australia": "#cca572", "Mexico": "#8a7d56",
	// Tropical / rainforest
	"Brazil": "#1fa233", "Indonesia": "#2f7532", "India": "#7da061",
	"Congo": "#1e6b26", "Dem. Rep. Congo": "#1e6b26", "Peru": "#3e6b36",
	"Colombia": "#2d6a36",
	// Fallback tones
	"Argentina": "#759458", "South Africa": "#8ba665",
}

// TerrainColor resolves the display color for a region from its name, or
// from a latitude band when the name is unknown.
func TerrainColor(name string, lat float64) string {
	if c, ok := terrainColors[name]; ok {
		return c
	}

	absLat := math.Abs(lat)
	switch {
	case absLat > 60:
		return "#f1f5f9" // snow and ice
	case absLat > 50:
		return "#5c7c55" // boreal
	case absLat > 35:
		return "#658d53" // temperate
	case absLat > 23:
		return "#d4a373" // subtropical desert
	default:
		return "#2f7532" // tropical
	}
}
