package audit

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strings"
)

// columnIndex maps header names to their field positions.
type columnIndex map[string]int

// field returns the named column's value for a row, or "" when the column is
// missing from the header or the row is too short.
func (c columnIndex) field(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// ParseRecords parses delimited tabular text into an ordered sequence of
// Records. The delimiter is sniffed from the header line: comma when present,
// semicolon otherwise. Rows whose latitude or longitude fails to parse are
// dropped silently. Empty input, a header-only blob, or a header without the
// coordinate columns all produce an empty sequence rather than an error.
func ParseRecords(content string) []Record {
	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = detectDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil
	}
	cols := make(columnIndex, len(header))
	for i, name := range header {
		cols[name] = i
	}
	if _, ok := cols["latitude"]; !ok {
		return nil
	}
	if _, ok := cols["longitude"]; !ok {
		return nil
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed rows are skipped like unparseable ones; anything
			// else means the reader cannot make progress.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			break
		}

		lat, ok := ParseDecimal(cols.field(row, "latitude"))
		if !ok {
			continue
		}
		lon, ok := ParseDecimal(cols.field(row, "longitude"))
		if !ok {
			continue
		}
		lat, lon = normalizeCoordinates(lat, lon)

		rec := Record{
			Lat:   lat,
			Lon:   lon,
			Event: cols.field(row, "event"),
			Node:  cols.field(row, "node"),
		}
		if t, ok := DecodeEpochMillis(cols.field(row, "start")); ok {
			rec.Start = &t
		}
		if t, ok := DecodeEpochMillis(cols.field(row, "end")); ok {
			rec.End = &t
		}
		if a, ok := ParseDecimal(cols.field(row, "accuracy")); ok {
			rec.Accuracy = &a
		}
		records = append(records, rec)
	}
	return records
}

// detectDelimiter inspects the first line of the input. Comma wins when both
// delimiters appear.
func detectDelimiter(content string) rune {
	firstLine, _, _ := strings.Cut(content, "\n")
	if strings.Contains(firstLine, ",") {
		return ','
	}
	return ';'
}

// normalizeCoordinates recovers coordinates exported as scaled integers:
// a magnitude beyond the valid WGS84 range means both values were multiplied
// by 1e7 at export time.
func normalizeCoordinates(lat, lon float64) (float64, float64) {
	if math.Abs(lat) > 90 || math.Abs(lon) > 180 {
		lat /= 10000000
		lon /= 10000000
	}
	return lat, lon
}
