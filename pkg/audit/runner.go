package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Runner fans the evaluator out over every index record. Routes are
// independent; the only cross-route requirement is that the result slice
// keeps index order, so each route writes into its own position-indexed
// slot and no further merging is needed.
type Runner struct {
	DataDir  string
	Ext      string
	Parallel bool
	Workers  int
	Eval     *Evaluator
	Log      *zap.SugaredLogger
}

func NewRunner(cfg Config, eval *Evaluator, log *zap.SugaredLogger) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{
		DataDir:  cfg.DataDir,
		Ext:      cfg.DataExt,
		Parallel: cfg.Parallel,
		Workers:  cfg.Workers,
		Eval:     eval,
		Log:      log,
	}
}

// Run evaluates every record and returns exactly one result per record, in
// record order, regardless of execution mode. A route's failure never
// aborts the batch.
func (r *Runner) Run(records []IndexRecord) []RouteResult {
	results := make([]RouteResult, len(records))
	if r.Parallel && len(records) > 1 {
		r.runParallel(records, results)
	} else {
		for i := range records {
			r.progress(i, len(records))
			results[i] = r.evaluateRoute(&records[i])
		}
	}
	r.Log.Infof("completed processing %d routes", len(results))
	return results
}

func (r *Runner) runParallel(records []IndexRecord, results []RouteResult) {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() - 1
	}
	if workers < 1 {
		workers = 1
	}
	r.Log.Infof("processing %d routes with %d workers", len(records), workers)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r.progress(i, len(records))
				results[i] = r.evaluateRoute(&records[i])
			}
		}()
	}
	for i := range records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

func (r *Runner) progress(i, n int) {
	if i%100 == 0 {
		r.Log.Infof("processing route %d/%d", i+1, n)
	}
}

// evaluateRoute resolves one index record to a data file and evaluates it.
// A missing file short-circuits without touching the pipeline; a panic
// anywhere below degrades to a ProcessingError result for this route only.
func (r *Runner) evaluateRoute(rec *IndexRecord) (res RouteResult) {
	filename := rec.Filename(r.Ext)
	path := filepath.Join(r.DataDir, filename)

	defer func() {
		if p := recover(); p != nil {
			r.Log.Errorf("unexpected failure processing %s: %v", filename, p)
			res = newResult(fileID(filename), filename, rec)
			res.Status = StatusProcessingError
			res.Anomalies = AnomalyList{fmt.Sprintf("Error: %v", p)}
		}
	}()

	if _, err := os.Stat(path); err != nil {
		res = newResult(fileID(filename), filename, rec)
		res.Status = StatusFileNotFound
		res.Anomalies = AnomalyList{"Excel file not found in data folder"}
		return res
	}
	return r.Eval.Evaluate(path, rec)
}
