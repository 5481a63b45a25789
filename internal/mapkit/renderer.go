// Package mapkit renders transient, standalone interactive map documents.
// The output is a single self-contained HTML file built on Leaflet, so the
// user can open it in any browser without the bot being involved.
package mapkit

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/evyataryagoni/ipmapbot/internal/logger"
	"github.com/evyataryagoni/ipmapbot/internal/metrics"
)

// DefaultZoom shows a city-scale area around the marker
const DefaultZoom = 12

// DefaultLabel is the marker popup text when the record has no city
const DefaultLabel = "Unknown location"

// mapTemplate is the full artifact document. The template is parsed once
// at package init; html/template escapes the label per context, so
// provider-supplied city names cannot inject markup or script.
var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>IP location</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map("map").setView([{{.Lat}}, {{.Lon}}], {{.Zoom}});
L.tileLayer("https://tile.openstreetmap.org/{z}/{x}/{y}.png", {
	maxZoom: 19,
	attribution: "&copy; OpenStreetMap contributors"
}).addTo(map);
L.marker([{{.Lat}}, {{.Lon}}]).addTo(map).bindPopup({{.Label}}).openPopup();
</script>
</body>
</html>
`))

// mapData is the template input
// Lat/Lon/Zoom are pre-formatted numeric literals (template.JS bypasses
// the JS escaper, which would otherwise pad numbers with spaces); they are
// built from float64/int values only, never from user input. The label is
// a plain string and gets context-escaped by the template engine.
type mapData struct {
	Lat   template.JS
	Lon   template.JS
	Zoom  template.JS
	Label string
}

// Renderer writes map artifacts into a configured directory
type Renderer struct {
	dir     string           // output directory for artifacts
	zoom    int              // initial zoom level
	metrics *metrics.Metrics // optional, can be nil
	logger  *logger.Logger
}

// NewRenderer creates a map renderer writing into dir
func NewRenderer(dir string, m *metrics.Metrics, log *logger.Logger) *Renderer {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Renderer{
		dir:     dir,
		zoom:    DefaultZoom,
		metrics: m,
		logger:  log.WithComponent("MapRenderer"),
	}
}

// Render writes a map artifact for the given coordinates and returns its
// path. The label becomes the marker popup ("Unknown location" when empty).
// The ip keys the filename; a random suffix keeps two concurrent requests
// for the same IP from colliding on the same file.
//
// Callers own the returned file and are responsible for removing it.
func (r *Renderer) Render(lat, lon float64, label, ip string) (string, error) {
	if label == "" {
		label = DefaultLabel
	}

	// ip_map_<ip>_<suffix>.html
	suffix := uuid.NewString()[:8]
	path := filepath.Join(r.dir, fmt.Sprintf("ip_map_%s_%s.html", ip, suffix))

	start := time.Now()
	err := r.write(path, mapData{
		Lat:   jsNumber(lat),
		Lon:   jsNumber(lon),
		Zoom:  template.JS(strconv.Itoa(r.zoom)),
		Label: label,
	})
	if r.metrics != nil {
		r.metrics.MapRenderDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		r.logger.Error().Err(err).Str("path", path).Msg("Failed to render map artifact")
		r.count("error")
		return "", fmt.Errorf("render map: %w", err)
	}

	r.logger.Debug().
		Str("path", path).
		Float64("lat", lat).
		Float64("lon", lon).
		Msg("Map artifact rendered")
	r.count("success")

	return path, nil
}

// write executes the template into the target file
func (r *Renderer) write(path string, data mapData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := mapTemplate.Execute(file, data); err != nil {
		file.Close()
		// A half-written artifact is useless, do not leave it behind
		os.Remove(path)
		return err
	}

	return file.Close()
}

// jsNumber formats a coordinate as a JS numeric literal
func jsNumber(f float64) template.JS {
	return template.JS(strconv.FormatFloat(f, 'f', -1, 64))
}

// count increments the render counter if metrics are enabled
func (r *Renderer) count(result string) {
	if r.metrics != nil {
		r.metrics.MapRendersTotal.WithLabelValues(result).Inc()
	}
}
