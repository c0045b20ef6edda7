package audit

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WriteResults renders results as a CSV report, one row per route.
func WriteResults(w io.Writer, results []RouteResult) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	for i := range results {
		if err := enc.Encode(results[i]); err != nil {
			return fmt.Errorf("error encoding result for %s: %v", results[i].Filename, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadResults parses a report previously written by WriteResults.
func ReadResults(r io.Reader) ([]RouteResult, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("error reading report header: %v", err)
	}
	var results []RouteResult
	for {
		var res RouteResult
		if err := dec.Decode(&res); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("error decoding report row: %v", err)
		}
		results = append(results, res)
	}
	return results, nil
}

func writeResultsFile(path string, results []RouteResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating report %s: %v", path, err)
	}
	if err := WriteResults(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteReports writes the full summary plus the two filtered reports: all
// non-Good routes, and all routes whose data file was missing. The filtered
// reports are only written when they would be non-empty.
func WriteReports(cfg Config, results []RouteResult, log *zap.SugaredLogger) error {
	if err := writeResultsFile(cfg.SummaryFile, results); err != nil {
		return err
	}
	log.Infof("detailed results saved to %s", cfg.SummaryFile)

	var problems, missing []RouteResult
	for _, res := range results {
		if res.Status != StatusGood {
			problems = append(problems, res)
		}
		if res.Status == StatusFileNotFound {
			missing = append(missing, res)
		}
	}
	if len(problems) > 0 {
		if err := writeResultsFile(cfg.ProblemFile, problems); err != nil {
			return err
		}
		log.Infof("problem routes saved to %s", cfg.ProblemFile)
	}
	if len(missing) > 0 {
		if err := writeResultsFile(cfg.MissingFile, missing); err != nil {
			return err
		}
		log.Infof("missing files list saved to %s", cfg.MissingFile)
	}
	return nil
}

// LogSummary prints the batch statistics: per-status counts and the
// distance distribution over routes that covered any ground.
func LogSummary(results []RouteResult, log *zap.SugaredLogger) {
	counts := make(map[Status]int)
	var distances []float64
	for _, res := range results {
		counts[res.Status]++
		if res.TotalDistanceKM > 0 {
			distances = append(distances, res.TotalDistanceKM)
		}
	}

	log.Infof("total files processed: %d", len(results))
	log.Infof("files found: %d", len(results)-counts[StatusFileNotFound])
	log.Infof("files not found: %d", counts[StatusFileNotFound])
	log.Infof("files with good data: %d", counts[StatusGood])
	log.Infof("files with anomalies: %d", counts[StatusHasAnomalies])
	log.Infof("files with poor quality: %d", counts[StatusPoorQuality])
	log.Infof("files with errors: %d", counts[StatusErrorReading]+counts[StatusProcessingError])

	if len(distances) > 0 {
		log.Infof("total distance covered: %.2f km", floats.Sum(distances))
		log.Infof("average route distance: %.2f km", stat.Mean(distances, nil))
		log.Infof("shortest route: %.2f km", floats.Min(distances))
		log.Infof("longest route: %.2f km", floats.Max(distances))
	}
}
