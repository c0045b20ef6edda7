package audit

import (
	"math"
	"path/filepath"

	"github.com/fieldops/route-audit/pkg/geo"
	"github.com/fieldops/route-audit/pkg/routedata"
)

// TableLoader loads a route's coordinate table. The default reads Excel
// workbooks from disk; tests substitute their own.
type TableLoader func(path string) (*routedata.Table, error)

// Evaluator runs the extract → distance → detect pipeline over one route's
// data file and assembles a RouteResult. It holds no per-route state and is
// safe for concurrent use.
type Evaluator struct {
	Extractor        *routedata.Extractor
	Detector         Detector
	PoorQualityYield float64
	Load             TableLoader
}

// NewEvaluator wires an evaluator from the configured thresholds.
func NewEvaluator(cfg Config) *Evaluator {
	return &Evaluator{
		Extractor:        routedata.NewExtractor(geo.NewValidator(cfg.Region)),
		Detector:         cfg.Detector(),
		PoorQualityYield: cfg.PoorQualityYield,
		Load:             routedata.ReadXLSX,
	}
}

// Evaluate processes the table at path. rec may be nil when the file is
// evaluated ad hoc, outside any index; the passthrough columns are then
// left unset. Evaluate returns a result for every failure mode rather than
// an error: the status is the outcome.
func (e *Evaluator) Evaluate(path string, rec *IndexRecord) RouteResult {
	filename := filepath.Base(path)
	res := newResult(fileID(filename), filename, rec)

	table, err := e.Load(path)
	if err != nil {
		res.Status = StatusErrorReading
		res.Anomalies = AnomalyList{"Could not read Excel file"}
		return res
	}

	ext := e.Extractor.Extract(table)
	res.TotalPoints = ext.TotalRows
	res.ValidPoints = len(ext.Points)

	if len(ext.Points) == 0 {
		res.Status = StatusNoValidCoordinates
		res.Anomalies = append(AnomalyList{"No valid coordinates found"}, ext.Anomalies...)
		return res
	}

	total, segments := geo.Profile(ext.Points)
	res.TotalDistanceKM = math.Round(total*100) / 100
	res.StartLocation = ext.Points[0].String()
	res.EndLocation = ext.Points[len(ext.Points)-1].String()

	var anomalies AnomalyList
	anomalies = append(anomalies, e.Detector.Detect(ext.Points, segments)...)
	anomalies = append(anomalies, e.Detector.AlternatingRegions(ext.Points)...)
	anomalies = append(anomalies, ext.Anomalies...)

	switch {
	case float64(res.ValidPoints) < float64(res.TotalPoints)*e.PoorQualityYield:
		res.Status = StatusPoorQuality
	case len(anomalies) > 0:
		res.Status = StatusHasAnomalies
	default:
		res.Status = StatusGood
	}

	if len(anomalies) == 0 {
		anomalies = AnomalyList{NoneDetected}
	}
	res.Anomalies = anomalies
	return res
}
