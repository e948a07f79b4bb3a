package audit

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	kml "github.com/twpayne/go-kml/v2"
)

// KMLEncoder is the XML emission capability. It is injected into the
// Converter so the pipeline can run, and be tested, without a concrete XML
// serialization in play; a Converter without one reports ErrKMLUnavailable.
type KMLEncoder interface {
	EncodeKML(fc *geojson.FeatureCollection) ([]byte, error)
}

// Path line style matching the original exports: pure blue, width 3.
var pathLineColor = color.RGBA{B: 0xff, A: 0xff}

const pathLineWidth = 3

// GoKMLEncoder renders a feature collection as a KML document: one placemark
// per Point feature and a single styled path placemark for the first
// LineString feature. Additional LineString features are ignored.
type GoKMLEncoder struct{}

// NewKMLEncoder returns the default go-kml backed encoder.
func NewKMLEncoder() GoKMLEncoder {
	return GoKMLEncoder{}
}

func (GoKMLEncoder) EncodeKML(fc *geojson.FeatureCollection) ([]byte, error) {
	doc := kml.Document()
	pathAdded := false

	for _, f := range fc.Features {
		switch geom := f.Geometry.(type) {
		case orb.Point:
			doc.Add(pointPlacemark(geom, f.Properties))
		case orb.LineString:
			if pathAdded {
				continue
			}
			doc.Add(pathPlacemark(geom, f.Properties))
			pathAdded = true
		}
	}

	var buf bytes.Buffer
	if err := kml.KML(doc).WriteIndent(&buf, "", "  "); err != nil {
		return nil, fmt.Errorf("writing kml: %w", err)
	}
	return buf.Bytes(), nil
}

func pointPlacemark(p orb.Point, props geojson.Properties) kml.Element {
	name := stringProp(props, "event")
	if name == "" {
		name = "Unknown"
	}

	children := []kml.Element{kml.Name(name)}
	if desc := pointDescription(props); desc != "" {
		children = append(children, kml.Description(desc))
	}
	children = append(children,
		kml.Point(kml.Coordinates(kml.Coordinate{Lon: p.Lon(), Lat: p.Lat()})))
	return kml.Placemark(children...)
}

// pointDescription joins the non-empty optional attributes into the labeled
// lines the original exports used.
func pointDescription(props geojson.Properties) string {
	var lines []string
	if v := stringProp(props, "node"); v != "" {
		lines = append(lines, "Node: "+v)
	}
	if v := stringProp(props, "start"); v != "" {
		lines = append(lines, "Start: "+v)
	}
	if v := stringProp(props, "end"); v != "" {
		lines = append(lines, "End: "+v)
	}
	if v, ok := props["accuracy"].(float64); ok {
		lines = append(lines, fmt.Sprintf("Accuracy: %vm", v))
	}
	return strings.Join(lines, "\n")
}

func pathPlacemark(ls orb.LineString, props geojson.Properties) kml.Element {
	coords := make([]kml.Coordinate, len(ls))
	for i, p := range ls {
		coords[i] = kml.Coordinate{Lon: p.Lon(), Lat: p.Lat()}
	}

	name := stringProp(props, "name")
	if name == "" {
		name = "Audit Path"
	}
	return kml.Placemark(
		kml.Name(name),
		kml.Description(stringProp(props, "description")),
		kml.Style(
			kml.LineStyle(
				kml.Color(pathLineColor),
				kml.Width(pathLineWidth),
			),
		),
		kml.LineString(kml.Coordinates(coords...)),
	)
}

func stringProp(props geojson.Properties, key string) string {
	s, _ := props[key].(string)
	return s
}
