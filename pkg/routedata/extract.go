package routedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fieldops/route-audit/pkg/geo"
)

const mixedFormatAnomaly = "Mixed format detected: Multiple coordinate pairs per row"

// Extraction is the outcome of pulling coordinates out of one Table.
// Points preserves source row order. Anomalies carries row-level findings
// from the mixed-pair heuristic; silently dropped invalid pairs are only
// reflected in the TotalRows / len(Points) gap.
type Extraction struct {
	Points    []geo.Coordinate
	TotalRows int
	Anomalies []string
}

// Extractor turns a Table into an ordered sequence of valid coordinates.
// It probes for labelled latitude/longitude columns first and falls back to
// the mixed-pair heuristic when none are found. Extraction never fails: any
// row it cannot make sense of contributes zero points.
type Extractor struct {
	Validator geo.Validator
}

func NewExtractor(v geo.Validator) *Extractor {
	return &Extractor{Validator: v}
}

func (e *Extractor) Extract(t *Table) Extraction {
	ext := Extraction{TotalRows: len(t.Rows)}
	latCol, lonCol, ok := probeColumns(t.Header)
	if ok {
		ext.Points = e.extractStandard(t, latCol, lonCol)
		return ext
	}
	ext.Points, ext.Anomalies = e.extractMixed(t)
	return ext
}

// probeColumns scans the header for latitude/longitude name variants
// (case-insensitive substring match). The last matching column wins when
// several match, mirroring how operators label these sheets in practice.
func probeColumns(header []string) (latCol, lonCol int, ok bool) {
	latCol, lonCol = -1, -1
	for i, name := range header {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "lat") {
			latCol = i
		}
		if strings.Contains(lower, "lon") {
			lonCol = i
		}
	}
	return latCol, lonCol, latCol >= 0 && lonCol >= 0
}

// extractStandard reads one pair per row from the labelled columns.
// Invalid pairs are dropped without comment.
func (e *Extractor) extractStandard(t *Table, latCol, lonCol int) []geo.Coordinate {
	var points []geo.Coordinate
	for i := range t.Rows {
		if c, ok := e.Validator.ParseValid(t.Cell(i, latCol), t.Cell(i, lonCol)); ok {
			points = append(points, c)
		}
	}
	return points
}

// extractMixed is the MixedPairHeuristic: collect the numeric cells of each
// row and branch on how many there are. Four numerics are treated as two
// packed pairs, two as one pair, three as a malformed row whose first two
// values are still attempted; anything else contributes nothing. The
// branching is a historical heuristic and is preserved as-is, quirks
// included.
func (e *Extractor) extractMixed(t *Table) ([]geo.Coordinate, []string) {
	var points []geo.Coordinate
	var anomalies []string
	mixedFormat := false

	for i := range t.Rows {
		var numeric []float64
		for _, cell := range t.Rows[i] {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			numeric = append(numeric, v)
		}

		switch len(numeric) {
		case 4:
			mixedFormat = true
			if e.Validator.Valid(numeric[0], numeric[1]) {
				points = append(points, geo.Coordinate{Lat: numeric[0], Lon: numeric[1]})
			}
			if e.Validator.Valid(numeric[2], numeric[3]) {
				points = append(points, geo.Coordinate{Lat: numeric[2], Lon: numeric[3]})
			}
		case 2:
			if e.Validator.Valid(numeric[0], numeric[1]) {
				points = append(points, geo.Coordinate{Lat: numeric[0], Lon: numeric[1]})
			}
		case 3:
			anomalies = append(anomalies, fmt.Sprintf("Row %d: Found 3 values, expected 2 or 4", i))
			if e.Validator.Valid(numeric[0], numeric[1]) {
				points = append(points, geo.Coordinate{Lat: numeric[0], Lon: numeric[1]})
			}
		}
	}

	if mixedFormat {
		anomalies = append(anomalies, mixedFormatAnomaly)
	}
	return points, anomalies
}
