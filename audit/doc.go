// Package audit converts tabular location-audit exports into geospatial
// feature collections.
//
// Audit exports are delimited text (comma or semicolon) with one timestamped
// lat/lon observation per row. Numeric fields arrive in a mix of standard and
// European locale formats, coordinates are sometimes scaled integers, and
// timestamps are millisecond epochs that may use scientific notation. The
// pipeline disambiguates all of that, flags geometric outliers against a
// median center, and assembles Point features plus a connecting path,
// emittable as GeoJSON or KML.
package audit
