package audit

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

var bom = [3]byte{0xef, 0xbb, 0xbf}

func skipBOM(br *bufio.Reader) error {
	xs, err := br.Peek(3)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if xs[0] == bom[0] && xs[1] == bom[1] && xs[2] == bom[2] {
		br.Discard(3)
	}
	return nil
}

// LoadIndex reads the driving index CSV. The first row is a header; every
// following row must carry at least the four passthrough columns. Extra
// columns are ignored.
func LoadIndex(r io.Reader) ([]IndexRecord, error) {
	br := bufio.NewReader(r)
	if err := skipBOM(br); err != nil {
		return nil, err
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header := true
	var records []IndexRecord
	for {
		row, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("error parsing index: %v", err)
		}
		if header {
			header = false
			continue
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("index row %d has %d columns, expected at least 4",
				len(records)+1, len(row))
		}
		records = append(records, IndexRecord{
			GroupCode:   row[0],
			Location:    row[1],
			RowLabel:    row[2],
			DisplayName: row[3],
		})
	}
	return records, nil
}

// LoadIndexFile is LoadIndex over a file on disk.
func LoadIndexFile(path string) ([]IndexRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening index %s: %v", path, err)
	}
	defer f.Close()
	return LoadIndex(f)
}
