package nearby

import (
	"testing"

	"github.com/fieldops/route-audit/pkg/audit"
	"github.com/fieldops/route-audit/pkg/geo"
)

func result(id, start string, km float64) audit.RouteResult {
	return audit.RouteResult{
		FileID:          id,
		Filename:        id + ".xlsx",
		Status:          audit.StatusGood,
		StartLocation:   start,
		TotalDistanceKM: km,
	}
}

func TestNewIndexSkipsUnparseableStarts(t *testing.T) {
	results := []audit.RouteResult{
		result("1527_0041000139", "17.400000, 78.400000", 42.0),
		result("1530_0041000140", "", 0), // file not found, no start
		result("1531_0041000141", "21.100000, 79.000000", 12.0),
	}
	ix := NewIndex(results)
	if ix.Len() != 2 {
		t.Errorf("indexed %d routes, want 2", ix.Len())
	}
}

func TestWithinOrdersByDistance(t *testing.T) {
	results := []audit.RouteResult{
		result("far", "17.900000, 78.900000", 10),
		result("near", "17.410000, 78.410000", 10),
		result("mid", "17.500000, 78.500000", 10),
		result("other-region", "21.100000, 79.000000", 10),
	}
	ix := NewIndex(results)
	center := geo.Coordinate{Lat: 17.40, Lon: 78.40}
	matches := ix.Within(center, 100)
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}
	if matches[0].FileID != "near" || matches[1].FileID != "mid" || matches[2].FileID != "far" {
		t.Errorf("wrong order: %s, %s, %s", matches[0].FileID, matches[1].FileID, matches[2].FileID)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].DistanceKM < matches[i-1].DistanceKM {
			t.Errorf("matches not sorted by distance")
		}
	}
}

func TestWithinRadiusCut(t *testing.T) {
	results := []audit.RouteResult{
		result("near", "17.410000, 78.410000", 10),
		result("far", "18.400000, 79.400000", 10),
	}
	ix := NewIndex(results)
	matches := ix.Within(geo.Coordinate{Lat: 17.40, Lon: 78.40}, 5)
	if len(matches) != 1 || matches[0].FileID != "near" {
		t.Errorf("expected only the near route, got %v", matches)
	}
}

func TestWithinEmptyIndex(t *testing.T) {
	ix := NewIndex(nil)
	if matches := ix.Within(geo.Coordinate{Lat: 17.4, Lon: 78.4}, 10); matches != nil {
		t.Errorf("expected nil, got %v", matches)
	}
}
