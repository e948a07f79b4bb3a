package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ErrKMLUnavailable is returned when KML emission is requested but no KML
// encoding capability is installed on the Converter.
var ErrKMLUnavailable = errors.New("kml encoding capability unavailable")

// Converter runs the full pipeline: ingest, outlier detection, feature
// assembly, and format emission. A Converter holds no per-conversion state;
// one instance may be shared across goroutines.
type Converter struct {
	kml KMLEncoder
	log *slog.Logger
}

// NewConverter builds a Converter with the given KML capability (nil means
// KML emission is unavailable) and logger (nil means slog.Default()).
func NewConverter(enc KMLEncoder, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{kml: enc, log: logger}
}

// Convert ingests delimited audit text and assembles the feature collection.
// It never fails: structurally unusable input yields an empty Result.
func (c *Converter) Convert(csvContent string, opts Options) *Result {
	result := Assemble(ParseRecords(csvContent), opts)

	if len(result.Outliers) > 0 {
		c.log.Warn("outliers detected",
			"count", len(result.Outliers),
			"threshold_m", opts.ThresholdMeters,
			"removed", opts.RemoveOutliers)
		for _, o := range result.Outliers {
			c.log.Warn("outlier point",
				"index", o.Index,
				"lat", o.Lat,
				"lon", o.Lon,
				"event", o.Event,
				"distance_km", o.DistanceKM)
		}
	}
	return result
}

// KML serializes the result's feature collection through the installed
// capability. Callers deliver the bytes as a .kml document.
func (c *Converter) KML(r *Result) ([]byte, error) {
	if c.kml == nil {
		return nil, ErrKMLUnavailable
	}
	data, err := c.kml.EncodeKML(r.Collection)
	if err != nil {
		return nil, fmt.Errorf("encoding kml: %w", err)
	}
	return data, nil
}

// GeoJSON serializes the feature collection as an indented GeoJSON document.
// Callers deliver the bytes as a .geojson document.
func (r *Result) GeoJSON() ([]byte, error) {
	data, err := json.MarshalIndent(r.Collection, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding geojson: %w", err)
	}
	return data, nil
}
