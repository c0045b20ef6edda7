package main

import (
	"encoding/xml"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/twpayne/go-gpx"

	"github.com/fieldops/route-audit/pkg/geo"
	"github.com/fieldops/route-audit/pkg/routedata"
)

func main() {
	log.SetFlags(0)
	out := flag.String("out", "", "Output GPX file (default: stdout)")
	minLat := flag.Float64("min-lat", geo.DefaultRegionBounds.MinLat, "Southern edge of the region of interest")
	maxLat := flag.Float64("max-lat", geo.DefaultRegionBounds.MaxLat, "Northern edge of the region of interest")
	minLon := flag.Float64("min-lon", geo.DefaultRegionBounds.MinLon, "Western edge of the region of interest")
	maxLon := flag.Float64("max-lon", geo.DefaultRegionBounds.MaxLon, "Eastern edge of the region of interest")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("Usage: %s [-out TRACK.gpx] ROUTE.xlsx", os.Args[0])
	}
	filename := flag.Arg(0)

	table, err := routedata.ReadXLSX(filename)
	if err != nil {
		log.Fatal(err)
	}
	validator := geo.NewValidator(geo.Bounds{MinLat: *minLat, MaxLat: *maxLat, MinLon: *minLon, MaxLon: *maxLon})
	ext := routedata.NewExtractor(validator).Extract(table)
	if len(ext.Points) == 0 {
		log.Fatalf("no valid coordinates found in %s", filename)
	}
	for _, a := range ext.Anomalies {
		log.Println(a)
	}
	total, _ := geo.Profile(ext.Points)
	log.Printf("%d of %d rows valid, %.2f km", len(ext.Points), ext.TotalRows, total)

	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("error creating output file %s: %v", *out, err)
		}
		defer f.Close()
		w = f
	}
	if err := writeTrack(w, trackName(filename), ext.Points); err != nil {
		log.Fatal(err)
	}
}

func trackName(filename string) string {
	base := filepath.Base(filename)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

func writeTrack(w io.Writer, name string, points []geo.Coordinate) error {
	trkPts := make([]*gpx.WptType, len(points))
	for i, p := range points {
		trkPts[i] = &gpx.WptType{Lat: p.Lat, Lon: p.Lon}
	}
	g := &gpx.GPX{
		Version: "1.1",
		Creator: "route-gpx",
		Trk: []*gpx.TrkType{{
			Name:   name,
			TrkSeg: []*gpx.TrkSegType{{TrkPt: trkPts}},
		}},
	}
	if _, err := fmt.Fprint(w, xml.Header); err != nil {
		return err
	}
	return g.WriteIndent(w, "", "  ")
}
