package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fieldops/route-audit/pkg/routedata"
)

// writeFakeData drops an empty placeholder file for each record so the
// runner's existence check passes; the stub loader supplies the table.
func writeFakeData(t *testing.T, dir string, records []IndexRecord) {
	t.Helper()
	for _, rec := range records {
		path := filepath.Join(dir, rec.Filename(".xlsx"))
		if err := os.WriteFile(path, []byte("placeholder"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func testRecords(n int) []IndexRecord {
	records := make([]IndexRecord, n)
	for i := range records {
		records[i] = IndexRecord{
			GroupCode:   fmt.Sprintf("15%02d", i),
			Location:    "Hyderabad",
			RowLabel:    fmt.Sprintf("0041%04d", i),
			DisplayName: fmt.Sprintf("Route %d", i),
		}
	}
	return records
}

func newTestRunner(t *testing.T, parallel bool, load TableLoader) (*Runner, []IndexRecord) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Parallel = parallel
	cfg.Workers = 4
	records := testRecords(20)
	writeFakeData(t, cfg.DataDir, records)
	eval := NewEvaluator(cfg)
	eval.Load = load
	return NewRunner(cfg, eval, nil), records
}

func checkOrder(t *testing.T, records []IndexRecord, results []RouteResult) {
	t.Helper()
	if len(results) != len(records) {
		t.Fatalf("got %d results for %d records", len(results), len(records))
	}
	for i, res := range results {
		want := records[i].Filename(".xlsx")
		if res.Filename != want {
			t.Errorf("result %d is %q, want %q", i, res.Filename, want)
		}
	}
}

func TestRunSequentialOrder(t *testing.T) {
	r, records := newTestRunner(t, false, staticTable(standardTable(5, 0)))
	checkOrder(t, records, r.Run(records))
}

func TestRunParallelOrder(t *testing.T) {
	r, records := newTestRunner(t, true, staticTable(standardTable(5, 0)))
	results := r.Run(records)
	checkOrder(t, records, results)
	for i, res := range results {
		if res.Status != StatusGood {
			t.Errorf("result %d status = %q, want %q", i, res.Status, StatusGood)
		}
	}
}

func TestRunFileNotFound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	records := testRecords(3)
	// Only the middle record gets a data file.
	writeFakeData(t, cfg.DataDir, records[1:2])
	eval := NewEvaluator(cfg)
	eval.Load = staticTable(standardTable(5, 0))
	results := NewRunner(cfg, eval, nil).Run(records)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for _, i := range []int{0, 2} {
		res := results[i]
		if res.Status != StatusFileNotFound {
			t.Errorf("result %d status = %q, want %q", i, res.Status, StatusFileNotFound)
		}
		if res.TotalPoints != 0 || res.ValidPoints != 0 {
			t.Errorf("result %d should carry zero points", i)
		}
		if len(res.Anomalies) != 1 || res.Anomalies[0] != "Excel file not found in data folder" {
			t.Errorf("result %d anomalies = %v", i, res.Anomalies)
		}
		if res.GroupCode == nil || *res.GroupCode != records[i].GroupCode {
			t.Errorf("result %d lost its passthrough columns", i)
		}
	}
	if results[1].Status != StatusGood {
		t.Errorf("result 1 status = %q, want %q", results[1].Status, StatusGood)
	}
}

func TestRunIsolatesPanics(t *testing.T) {
	boom := func(path string) (*routedata.Table, error) {
		if filepath.Base(path) == "1502_00410002.xlsx" {
			panic("corrupt shared string table")
		}
		return standardTable(5, 0), nil
	}
	for _, parallel := range []bool{false, true} {
		r, records := newTestRunner(t, parallel, boom)
		results := r.Run(records)
		checkOrder(t, records, results)
		for i, res := range results {
			if res.Filename == "1502_00410002.xlsx" {
				if res.Status != StatusProcessingError {
					t.Errorf("parallel=%v: panicking route status = %q", parallel, res.Status)
				}
				if len(res.Anomalies) != 1 || res.Anomalies[0] != "Error: corrupt shared string table" {
					t.Errorf("parallel=%v: anomalies = %v", parallel, res.Anomalies)
				}
			} else if res.Status != StatusGood {
				t.Errorf("parallel=%v: result %d status = %q, want %q", parallel, i, res.Status, StatusGood)
			}
		}
	}
}
