package routedata

import (
	"strings"
	"testing"

	"github.com/fieldops/route-audit/pkg/geo"
)

func newTestExtractor() *Extractor {
	return NewExtractor(geo.NewValidator(geo.DefaultRegionBounds))
}

func TestExtractStandardLayout(t *testing.T) {
	table := &Table{
		Header: []string{"Timestamp", "Latitude", "Longitude"},
		Rows: [][]string{
			{"08:00", "17.40", "78.40"},
			{"08:01", "17.41", "78.41"},
			{"08:02", "bogus", "78.42"},
			{"08:03", "55.00", "78.43"}, // outside region
			{"08:04", "17.44", "78.44"},
		},
	}
	ext := newTestExtractor().Extract(table)
	if ext.TotalRows != 5 {
		t.Errorf("TotalRows = %d, want 5", ext.TotalRows)
	}
	if len(ext.Points) != 3 {
		t.Fatalf("expected 3 valid points, got %d", len(ext.Points))
	}
	// Invalid rows are dropped silently, not reported.
	if len(ext.Anomalies) != 0 {
		t.Errorf("expected no anomalies, got %v", ext.Anomalies)
	}
	if ext.Points[0] != (geo.Coordinate{Lat: 17.40, Lon: 78.40}) {
		t.Errorf("unexpected first point %v", ext.Points[0])
	}
	if ext.Points[2] != (geo.Coordinate{Lat: 17.44, Lon: 78.44}) {
		t.Errorf("unexpected last point %v", ext.Points[2])
	}
}

func TestProbeColumnsVariants(t *testing.T) {
	cases := []struct {
		header []string
		ok     bool
	}{
		{[]string{"LATITUDE", "LONGITUDE"}, true},
		{[]string{"lat", "long"}, true},
		{[]string{"Start Lat", "Start Lon"}, true},
		{[]string{"Latitude"}, false},
		{[]string{"x", "y"}, false},
		{[]string{}, false},
	}
	for _, c := range cases {
		if _, _, ok := probeColumns(c.header); ok != c.ok {
			t.Errorf("probeColumns(%v) ok = %v, want %v", c.header, ok, c.ok)
		}
	}
}

func TestProbeColumnsLastMatchWins(t *testing.T) {
	latCol, lonCol, ok := probeColumns([]string{"lat_raw", "lon_raw", "Latitude", "Longitude"})
	if !ok {
		t.Fatal("expected match")
	}
	if latCol != 2 || lonCol != 3 {
		t.Errorf("got lat=%d lon=%d, want lat=2 lon=3", latCol, lonCol)
	}
}

func TestExtractMixedFourValueRows(t *testing.T) {
	table := &Table{
		Header: []string{"a", "b", "c", "d"},
		Rows: [][]string{
			{"17.40", "78.40", "17.41", "78.41"},
			{"17.42", "78.42", "17.43", "78.43"},
		},
	}
	ext := newTestExtractor().Extract(table)
	if len(ext.Points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(ext.Points))
	}
	// The mixed-format flag is global: once per file, not per row.
	count := 0
	for _, a := range ext.Anomalies {
		if strings.Contains(a, "Mixed format detected") {
			count++
		}
	}
	if count != 1 {
		t.Errorf("mixed-format anomaly emitted %d times, want 1", count)
	}
}

func TestExtractMixedTwoValueRows(t *testing.T) {
	table := &Table{
		Header: []string{"a", "b"},
		Rows: [][]string{
			{"17.40", "78.40"},
			{"17.41", "78.41"},
		},
	}
	ext := newTestExtractor().Extract(table)
	if len(ext.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(ext.Points))
	}
	if len(ext.Anomalies) != 0 {
		t.Errorf("expected no anomalies, got %v", ext.Anomalies)
	}
}

func TestExtractMixedThreeValueRow(t *testing.T) {
	table := &Table{
		Header: []string{"a", "b", "c"},
		Rows: [][]string{
			{"17.40", "78.40", "99"},
		},
	}
	ext := newTestExtractor().Extract(table)
	// The first two values are still attempted as a pair.
	if len(ext.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(ext.Points))
	}
	if len(ext.Anomalies) != 1 || !strings.Contains(ext.Anomalies[0], "Found 3 values, expected 2 or 4") {
		t.Errorf("unexpected anomalies %v", ext.Anomalies)
	}
	if !strings.HasPrefix(ext.Anomalies[0], "Row 0:") {
		t.Errorf("row index should be 0-based: %q", ext.Anomalies[0])
	}
}

func TestExtractMixedSkippedRows(t *testing.T) {
	table := &Table{
		Header: []string{"a", "b", "c", "d", "e"},
		Rows: [][]string{
			{},                          // empty
			{"17.40"},                   // one numeric
			{"depot", "north", "gate3"}, // no numerics
			{"17.40", "78.40", "17.41", "78.41", "12.0"}, // five numerics
		},
	}
	ext := newTestExtractor().Extract(table)
	if len(ext.Points) != 0 {
		t.Errorf("expected 0 points, got %d", len(ext.Points))
	}
	if len(ext.Anomalies) != 0 {
		t.Errorf("expected no anomalies, got %v", ext.Anomalies)
	}
	if ext.TotalRows != 4 {
		t.Errorf("TotalRows = %d, want 4", ext.TotalRows)
	}
}

func TestExtractMixedNonNumericCellsIgnored(t *testing.T) {
	table := &Table{
		Header: []string{"a", "b", "c"},
		Rows: [][]string{
			{"bus-17", "17.40", "78.40"},
		},
	}
	ext := newTestExtractor().Extract(table)
	if len(ext.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(ext.Points))
	}
	if ext.Points[0] != (geo.Coordinate{Lat: 17.40, Lon: 78.40}) {
		t.Errorf("unexpected point %v", ext.Points[0])
	}
}

func TestReadXLSXMissingFile(t *testing.T) {
	if _, err := ReadXLSX("testdata/no-such-file.xlsx"); err == nil {
		t.Error("expected error for missing workbook")
	}
}
