package audit

import (
	"sort"

	"github.com/paulmach/orb"
)

// MedianCenter returns the median center of a coordinate batch: the element
// at index floor(n/2) of each independently sorted axis. For even n this is
// the upper median, not an average of the two middle elements, and the two
// axes are decoupled -- the center need not coincide with any input point.
// Downstream outlier flags depend on this exact index selection.
func MedianCenter(points []orb.Point) orb.Point {
	lats := make([]float64, len(points))
	lons := make([]float64, len(points))
	for i, p := range points {
		lats[i] = p.Lat()
		lons[i] = p.Lon()
	}
	sort.Float64s(lats)
	sort.Float64s(lons)
	return orb.Point{lons[len(lons)/2], lats[len(lats)/2]}
}

// DetectOutliers flags every point whose distance from the median center
// strictly exceeds thresholdMeters. Distances are returned for every index
// regardless of outlier status. Batches of fewer than 3 points yield empty
// results: no center is statistically meaningful below that.
func DetectOutliers(points []orb.Point, thresholdMeters float64) (map[int]bool, map[int]float64) {
	outliers := make(map[int]bool)
	distances := make(map[int]float64)
	if len(points) < 3 {
		return outliers, distances
	}

	center := MedianCenter(points)
	for i, p := range points {
		d := Haversine(p, center)
		distances[i] = d
		if d > thresholdMeters {
			outliers[i] = true
		}
	}
	return outliers, distances
}
