// Package nearby builds a spatial index over the start points of audited
// routes so finished reports can be probed by location.
package nearby

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/fieldops/route-audit/pkg/audit"
	"github.com/fieldops/route-audit/pkg/geo"
)

// Size (in degrees) of the bounding box around a start point.
const entryRectSize = 0.0001

// Kilometres per degree of latitude, and per degree of longitude at the
// equator. Good enough for sizing a candidate search box; exact filtering
// is done with geodesic distances afterwards.
const (
	kmPerLatDegree = 110.574
	kmPerLonDegree = 111.320
)

// Entry is one audited route anchored at its start coordinate.
type Entry struct {
	FileID   string
	Filename string
	Status   audit.Status
	Start    geo.Coordinate
	RouteKM  float64
}

func (e *Entry) Bounds() rtreego.Rect {
	return rtreego.Point{e.Start.Lon, e.Start.Lat}.ToRect(entryRectSize)
}

// Match pairs an entry with its geodesic distance from the query point.
type Match struct {
	*Entry
	DistanceKM float64
}

type Index struct {
	tree *rtreego.Rtree
	size int
}

// NewIndex indexes every result with a parseable start location. Results
// without one (missing or unreadable files) are skipped.
func NewIndex(results []audit.RouteResult) *Index {
	var objs []rtreego.Spatial
	for _, res := range results {
		start, err := geo.ParseCoordinate(res.StartLocation)
		if err != nil {
			continue
		}
		objs = append(objs, &Entry{
			FileID:   res.FileID,
			Filename: res.Filename,
			Status:   res.Status,
			Start:    start,
			RouteKM:  res.TotalDistanceKM,
		})
	}
	return &Index{tree: rtreego.NewTree(2, 25, 50, objs...), size: len(objs)}
}

// Len returns the number of indexed routes.
func (ix *Index) Len() int { return ix.size }

// Within returns the routes whose start lies within radiusKM of center,
// nearest first. The r-tree narrows the candidates with a degree-space
// bounding box; the final cut uses geodesic distance.
func (ix *Index) Within(center geo.Coordinate, radiusKM float64) []Match {
	if ix.size == 0 || radiusKM <= 0 {
		return nil
	}
	latDelta := radiusKM / kmPerLatDegree
	lonScale := math.Cos(center.Lat * math.Pi / 180)
	if lonScale < 0.01 {
		lonScale = 0.01
	}
	lonDelta := radiusKM / (kmPerLonDegree * lonScale)

	rect, err := rtreego.NewRect(
		rtreego.Point{center.Lon - lonDelta, center.Lat - latDelta},
		[]float64{2 * lonDelta, 2 * latDelta})
	if err != nil {
		return nil
	}

	var matches []Match
	for _, s := range ix.tree.SearchIntersect(rect) {
		e := s.(*Entry)
		d, err := geo.Distance(center, e.Start)
		if err != nil || d > radiusKM {
			continue
		}
		matches = append(matches, Match{Entry: e, DistanceKM: d})
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].DistanceKM < matches[j].DistanceKM
	})
	return matches
}
