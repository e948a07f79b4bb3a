package audit

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/paulmach/orb"
)

func testRecords() []Record {
	start := time.UnixMilli(1769780000000).UTC()
	acc := 12.5
	return []Record{
		{Lat: 52.0, Lon: 13.0, Event: "arrive", Node: "node-1", Start: &start, Accuracy: &acc},
		{Lat: 52.001, Lon: 13.001, Event: "depart", Node: "node-1"},
		{Lat: 10.0, Lon: 10.0, Event: "glitch", Node: "node-2"},
	}
}

func TestAssembleNoOutlierRemoval(t *testing.T) {
	result := Assemble(testRecords(), DefaultOptions())

	// 3 points + 1 path.
	if len(result.Collection.Features) != 4 {
		t.Fatalf("got %d features, want 4", len(result.Collection.Features))
	}
	if result.TotalPoints != 3 || result.ProcessedPoints != 3 {
		t.Errorf("stats = %d/%d, want 3/3", result.TotalPoints, result.ProcessedPoints)
	}

	// The distant record stays in the output but is flagged.
	flagged := result.Collection.Features[2]
	if isOutlier, _ := flagged.Properties["is_outlier"].(bool); !isOutlier {
		t.Error("third point feature should carry is_outlier=true")
	}
	for _, f := range result.Collection.Features[:2] {
		if isOutlier, _ := f.Properties["is_outlier"].(bool); isOutlier {
			t.Error("cluster point wrongly flagged")
		}
	}

	// The path still visits the flagged point, in insertion order.
	path, ok := result.Collection.Features[3].Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("last feature geometry is %T, want LineString", result.Collection.Features[3].Geometry)
	}
	want := orb.LineString{{13.0, 52.0}, {13.001, 52.001}, {10.0, 10.0}}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("path = %v, want %v", path, want)
	}
}

func TestAssembleRemovesOutliers(t *testing.T) {
	opts := DefaultOptions()
	opts.RemoveOutliers = true
	result := Assemble(testRecords(), opts)

	// 2 retained points + 1 path.
	if len(result.Collection.Features) != 3 {
		t.Fatalf("got %d features, want 3", len(result.Collection.Features))
	}
	if result.TotalPoints != 3 || result.ProcessedPoints != 2 {
		t.Errorf("stats = %d/%d, want 3/2", result.TotalPoints, result.ProcessedPoints)
	}

	path, ok := result.Collection.Features[2].Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("last feature geometry is %T, want LineString", result.Collection.Features[2].Geometry)
	}
	if len(path) != 2 {
		t.Errorf("path has %d coordinates, want 2 (retained points only)", len(path))
	}

	if len(result.Outliers) != 1 {
		t.Fatalf("outlier report has %d entries, want 1", len(result.Outliers))
	}
	o := result.Outliers[0]
	if o.Index != 2 || o.Event != "glitch" || o.Lat != 10.0 || o.Lon != 10.0 {
		t.Errorf("outlier report entry = %+v", o)
	}
	if o.DistanceKM != math.Round(o.DistanceKM*10)/10 {
		t.Errorf("distance_km = %v, want one decimal place", o.DistanceKM)
	}
	if o.DistanceKM < 4000 {
		t.Errorf("distance_km = %v, expected several thousand km", o.DistanceKM)
	}
}

func TestAssemblePointProperties(t *testing.T) {
	result := Assemble(testRecords(), DefaultOptions())
	props := result.Collection.Features[0].Properties

	if props["event"] != "arrive" || props["node"] != "node-1" {
		t.Errorf("event/node = %v/%v", props["event"], props["node"])
	}
	if props["start"] != "2026-01-30T13:33:20Z" {
		t.Errorf("start = %v, want RFC 3339 string", props["start"])
	}
	if props["end"] != nil {
		t.Errorf("end = %v, want nil for absent timestamp", props["end"])
	}
	if props["accuracy"] != 12.5 {
		t.Errorf("accuracy = %v, want 12.5", props["accuracy"])
	}
}

func TestAssembleNoPathBelowTwoPoints(t *testing.T) {
	result := Assemble([]Record{{Lat: 52.0, Lon: 13.0}}, DefaultOptions())

	if len(result.Collection.Features) != 1 {
		t.Fatalf("got %d features, want 1 point and no path", len(result.Collection.Features))
	}
	if _, ok := result.Collection.Features[0].Geometry.(orb.Point); !ok {
		t.Errorf("geometry is %T, want Point", result.Collection.Features[0].Geometry)
	}
}

func TestAssembleEmptyBatch(t *testing.T) {
	result := Assemble(nil, DefaultOptions())

	if len(result.Collection.Features) != 0 {
		t.Errorf("got %d features, want 0", len(result.Collection.Features))
	}
	if result.TotalPoints != 0 || result.ProcessedPoints != 0 || len(result.Outliers) != 0 {
		t.Errorf("stats = %+v, want all zero", result)
	}
}

func TestAssembleIsIdempotent(t *testing.T) {
	opts := DefaultOptions()
	opts.RemoveOutliers = true

	first := Assemble(testRecords(), opts)
	second := Assemble(testRecords(), opts)

	a, err := first.GeoJSON()
	if err != nil {
		t.Fatal(err)
	}
	b, err := second.GeoJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("two runs over the same input produced different output")
	}
	if !reflect.DeepEqual(first.Outliers, second.Outliers) {
		t.Error("two runs produced different outlier reports")
	}
}

func TestAssembleRoundTripCount(t *testing.T) {
	// N nearby records, no outliers: exactly N point features + 1 path.
	records := []Record{
		{Lat: 52.0, Lon: 13.0},
		{Lat: 52.001, Lon: 13.001},
		{Lat: 52.002, Lon: 13.002},
		{Lat: 52.003, Lon: 13.003},
	}
	result := Assemble(records, DefaultOptions())

	if len(result.Collection.Features) != len(records)+1 {
		t.Fatalf("got %d features, want %d", len(result.Collection.Features), len(records)+1)
	}
	if len(result.Outliers) != 0 {
		t.Errorf("outlier report = %v, want empty", result.Outliers)
	}
	path := result.Collection.Features[len(records)].Geometry.(orb.LineString)
	for i, r := range records {
		if path[i] != r.Point() {
			t.Errorf("path[%d] = %v, want %v", i, path[i], r.Point())
		}
	}
}
