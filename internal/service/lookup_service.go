package service

import (
	"context"

	"github.com/evyataryagoni/ipmapbot/internal/geoip"
	"github.com/evyataryagoni/ipmapbot/internal/logger"
	"github.com/evyataryagoni/ipmapbot/internal/mapkit"
	"github.com/evyataryagoni/ipmapbot/internal/models"
)

// LookupService handles business logic for IP lookups
// This is the service layer - it sits between the conversation handler
// and the external collaborators
//
// Responsibilities:
//   - Call the geo lookup client
//   - Render a map artifact when coordinates are present
//   - Treat a failed render as partial success, not an error
type LookupService struct {
	geo      *geoip.Client
	renderer *mapkit.Renderer
	logger   *logger.Logger
}

// Result is what one lookup produces
// MapFile is empty when no artifact exists (no coordinates, or the render
// failed); callers discriminate failure via the error, never via MapFile
type Result struct {
	Record  *models.IPRecord
	MapFile string // path to the transient map artifact, "" when absent
}

// NewLookupService creates the lookup service
func NewLookupService(geo *geoip.Client, renderer *mapkit.Renderer, log *logger.Logger) *LookupService {
	if log == nil {
		log = logger.NewDefault()
	}
	return &LookupService{
		geo:      geo,
		renderer: renderer,
		logger:   log.WithComponent("LookupService"),
	}
}

// Lookup resolves geolocation metadata for ip and, when both coordinates
// are present, renders the map artifact alongside
//
// Flow:
//  1. Query the geo provider
//  2. On success with coordinates, render the map synchronously
//  3. Render failure downgrades to a record-only result (the reply
//     carries a warning instead of an error)
//
// Returns:
//   - *Result: record plus optional artifact path, nil on lookup failure
//   - error: a *geoip.LookupError describing the failure
func (s *LookupService) Lookup(ctx context.Context, ip string) (*Result, error) {
	record, err := s.geo.Lookup(ctx, ip)
	if err != nil {
		return nil, err
	}

	result := &Result{Record: record}

	if record.HasCoordinates() {
		mapFile, err := s.renderer.Render(*record.Latitude, *record.Longitude, record.City, record.IP)
		if err != nil {
			// Partial success: the reply still goes out, with a warning
			s.logger.Warn().Err(err).Str("ip", record.IP).Msg("Map render failed, replying without map")
		} else {
			result.MapFile = mapFile
		}
	}

	return result, nil
}
