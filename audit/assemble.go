package audit

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Assemble turns an ingested record sequence into a Result. Every retained
// record becomes a Point feature carrying its attributes plus an is_outlier
// flag; when at least two points are retained, one LineString feature
// connects them in insertion order. With RemoveOutliers set, flagged records
// are excluded from both the points and the path but still count toward
// TotalPoints and the outlier report. Note that without RemoveOutliers a
// flagged record stays on the path, so the path may visibly jump to it.
func Assemble(records []Record, opts Options) *Result {
	if opts.ThresholdMeters <= 0 {
		opts.ThresholdMeters = DefaultThresholdMeters
	}

	points := make([]orb.Point, len(records))
	for i, r := range records {
		points[i] = r.Point()
	}
	outliers, distances := DetectOutliers(points, opts.ThresholdMeters)

	fc := geojson.NewFeatureCollection()
	var path orb.LineString
	for i, r := range records {
		if opts.RemoveOutliers && outliers[i] {
			continue
		}

		f := geojson.NewFeature(r.Point())
		f.Properties = geojson.Properties{
			"event":      r.Event,
			"node":       r.Node,
			"start":      timestampValue(r.Start),
			"end":        timestampValue(r.End),
			"accuracy":   accuracyValue(r.Accuracy),
			"is_outlier": outliers[i],
		}
		fc.Append(f)
		path = append(path, r.Point())
	}

	if len(path) > 1 {
		pf := geojson.NewFeature(path)
		pf.Properties = geojson.Properties{
			"name":        "Audit Path",
			"description": fmt.Sprintf("Path with %d points", len(path)),
		}
		fc.Append(pf)
	}

	return &Result{
		Collection:      fc,
		Outliers:        outlierReport(records, outliers, distances),
		TotalPoints:     len(records),
		ProcessedPoints: len(path),
	}
}

// outlierReport lists flagged records in index order, distances in kilometers
// rounded to one decimal.
func outlierReport(records []Record, outliers map[int]bool, distances map[int]float64) []OutlierInfo {
	if len(outliers) == 0 {
		return nil
	}
	indices := make([]int, 0, len(outliers))
	for i := range outliers {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	report := make([]OutlierInfo, 0, len(indices))
	for _, i := range indices {
		report = append(report, OutlierInfo{
			Index:      i,
			Lat:        records[i].Lat,
			Lon:        records[i].Lon,
			Event:      records[i].Event,
			DistanceKM: math.Round(distances[i]/100) / 10,
		})
	}
	return report
}

// timestampValue renders an optional timestamp as an RFC 3339 property value,
// or JSON null when absent.
func timestampValue(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func accuracyValue(a *float64) interface{} {
	if a == nil {
		return nil
	}
	return *a
}
