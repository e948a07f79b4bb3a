package audit

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Record is one location-audit observation, produced from a single input row.
// Lat and Lon are WGS84 degrees after normalization. Start, End, and Accuracy
// are nil when the source field was absent or unparseable.
type Record struct {
	Lat      float64
	Lon      float64
	Event    string
	Node     string
	Start    *time.Time
	End      *time.Time
	Accuracy *float64
}

// Point returns the record position in orb's [lon, lat] order.
func (r Record) Point() orb.Point {
	return orb.Point{r.Lon, r.Lat}
}

// OutlierInfo describes one flagged record in the outlier report.
type OutlierInfo struct {
	Index      int     `json:"index"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Event      string  `json:"event"`
	DistanceKM float64 `json:"distance_km"`
}

// Result is the outcome of one conversion: the assembled feature collection,
// the outlier report in index order, and the batch statistics. TotalPoints
// counts every ingested record, ProcessedPoints only those retained in the
// output.
type Result struct {
	Collection      *geojson.FeatureCollection `json:"geojson"`
	Outliers        []OutlierInfo              `json:"outliers"`
	TotalPoints     int                        `json:"total_points"`
	ProcessedPoints int                        `json:"processed_points"`
}
