package audit

import (
	"fmt"
	"math"
	"strings"

	"github.com/fieldops/route-audit/pkg/geo"
)

// Detector runs the fixed battery of heuristic checks over a route's point
// sequence and segment distances. Checks are independent and never fail;
// each contributes at most one summary line.
type Detector struct {
	LargeJumpKM         float64
	StationaryKM        float64
	StationaryCount     int
	AlternationFraction float64
}

// Detect runs the duplicate-point, large-jump and stationary-cluster checks,
// in that order.
func (d Detector) Detect(points []geo.Coordinate, segments []float64) []string {
	var anomalies []string

	duplicates := 0
	for i := 0; i < len(points)-1; i++ {
		if points[i] == points[i+1] {
			duplicates++
		}
	}
	if duplicates > 0 {
		anomalies = append(anomalies, fmt.Sprintf("Found %d duplicate consecutive points", duplicates))
	}

	var jumps []int
	for i, dist := range segments {
		if dist > d.LargeJumpKM {
			jumps = append(jumps, i)
		}
	}
	if len(jumps) > 0 {
		anomalies = append(anomalies,
			fmt.Sprintf("Large jumps (>%gkm) at positions: %v", d.LargeJumpKM, jumps))
	}

	stationary := 0
	for _, dist := range segments {
		if dist > 0 && dist < d.StationaryKM {
			stationary++
		}
	}
	if stationary > d.StationaryCount {
		meters := math.Round(d.StationaryKM*1000*1e6) / 1e6
		anomalies = append(anomalies,
			fmt.Sprintf("Many stationary points (%d segments < %gm)", stationary, meters))
	}

	return anomalies
}

// AlternatingRegions buckets points by truncated-integer latitude and flags
// routes that span more than one bucket. When transitions between buckets
// exceed the configured fraction of the point count, a second finding is
// emitted.
func (d Detector) AlternatingRegions(points []geo.Coordinate) []string {
	if len(points) < 2 {
		return nil
	}

	counts := make(map[int]int)
	var order []int
	for _, p := range points {
		prefix := int(p.Lat)
		if _, seen := counts[prefix]; !seen {
			order = append(order, prefix)
		}
		counts[prefix]++
	}
	if len(order) < 2 {
		return nil
	}

	descs := make([]string, len(order))
	for i, prefix := range order {
		descs[i] = fmt.Sprintf("%d° (%d points)", prefix, counts[prefix])
	}
	anomalies := []string{
		"Route spans multiple latitude regions: " + strings.Join(descs, ", "),
	}

	alternations := 0
	prev := int(points[0].Lat)
	for _, p := range points[1:] {
		curr := int(p.Lat)
		if curr != prev {
			alternations++
			prev = curr
		}
	}
	if float64(alternations) > float64(len(points))*d.AlternationFraction {
		anomalies = append(anomalies,
			fmt.Sprintf("Frequent alternation between regions detected (%d times)", alternations))
	}

	return anomalies
}
