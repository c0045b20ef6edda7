package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fieldops/route-audit/pkg/audit"
	"github.com/fieldops/route-audit/pkg/geo"
	"github.com/fieldops/route-audit/pkg/nearby"
)

func main() {
	log.SetFlags(0)
	lat := flag.Float64("lat", 0, "Latitude of the query point")
	lon := flag.Float64("lon", 0, "Longitude of the query point")
	radius := flag.Float64("radius", 25, "Search radius in kilometres")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("Usage: %s -lat LAT -lon LON [-radius KM] SUMMARY.csv", os.Args[0])
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	results, err := audit.ReadResults(f)
	f.Close()
	if err != nil {
		log.Fatal(err)
	}

	ix := nearby.NewIndex(results)
	log.Printf("indexed %d of %d routes", ix.Len(), len(results))

	matches := ix.Within(geo.Coordinate{Lat: *lat, Lon: *lon}, *radius)
	if len(matches) == 0 {
		log.Printf("no routes start within %.1f km of (%.6f, %.6f)", *radius, *lat, *lon)
		return
	}
	for _, m := range matches {
		fmt.Printf("%-24s %8.2f km away  route %7.2f km  %s\n",
			m.FileID, m.DistanceKM, m.RouteKM, m.Status)
	}
}
