package audit

import (
	"strings"
)

// Status classifies the outcome of evaluating one route. Every RouteResult
// carries exactly one.
type Status string

const (
	StatusGood               Status = "Good"
	StatusHasAnomalies       Status = "Has anomalies"
	StatusPoorQuality        Status = "Poor quality data"
	StatusNoValidCoordinates Status = "No valid coordinates"
	StatusErrorReading       Status = "Error reading file"
	StatusProcessingError    Status = "Processing error"
	StatusFileNotFound       Status = "File not found"
)

// NoneDetected is the sentinel recorded when a route produced no anomalies.
const NoneDetected = "None detected"

// AnomalyList serializes a route's anomaly findings as a single
// semicolon-separated report cell.
type AnomalyList []string

func (a AnomalyList) MarshalCSV() ([]byte, error) {
	return []byte(strings.Join(a, "; ")), nil
}

func (a *AnomalyList) UnmarshalCSV(data []byte) error {
	s := string(data)
	if s == "" {
		*a = nil
		return nil
	}
	*a = strings.Split(s, "; ")
	return nil
}

// IndexRecord is one row of the driving index CSV. The four fields are the
// first four columns, passed through verbatim into every RouteResult; the
// first and third are also the filename-derivation inputs.
type IndexRecord struct {
	GroupCode   string
	Location    string
	RowLabel    string
	DisplayName string
}

// Filename derives the per-route data filename. This mapping is the join
// key between the index and the data folder and must not change.
func (r IndexRecord) Filename(ext string) string {
	return r.GroupCode + "_" + r.RowLabel + ext
}

// RouteResult is the immutable per-route outcome. Passthrough columns are
// pointers: nil when no index row was available (ad hoc file evaluation),
// as opposed to present-but-empty.
type RouteResult struct {
	FileID          string      `csv:"file_id"`
	Filename        string      `csv:"filename"`
	GroupCode       *string     `csv:"csv_col1"`
	Location        *string     `csv:"csv_col2"`
	RowLabel        *string     `csv:"csv_col3"`
	DisplayName     *string     `csv:"csv_col4"`
	Status          Status      `csv:"status"`
	TotalPoints     int         `csv:"total_points"`
	ValidPoints     int         `csv:"valid_points"`
	TotalDistanceKM float64     `csv:"total_distance_km"`
	StartLocation   string      `csv:"start_location"`
	EndLocation     string      `csv:"end_location"`
	Anomalies       AnomalyList `csv:"anomalies"`
}

// newResult builds the identity portion of a RouteResult, copying the
// passthrough columns when an index record is present.
func newResult(fileID, filename string, rec *IndexRecord) RouteResult {
	res := RouteResult{FileID: fileID, Filename: filename}
	if rec != nil {
		res.GroupCode = &rec.GroupCode
		res.Location = &rec.Location
		res.RowLabel = &rec.RowLabel
		res.DisplayName = &rec.DisplayName
	}
	return res
}

// fileID strips everything from the first dot of a filename, matching the
// historical identifier format.
func fileID(filename string) string {
	if i := strings.IndexByte(filename, '.'); i >= 0 {
		return filename[:i]
	}
	return filename
}
