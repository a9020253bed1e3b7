package bom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one row of an external parts list, keyed by column name.
type Record map[string]string

// ReadRecordsFile reads external records from a CSV file.
func ReadRecordsFile(filename string) ([]Record, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadRecords(file)
}

// ReadRecords reads CSV data whose first row names the columns. Short rows
// leave the missing columns unset; cells beyond the header are ignored.
func ReadRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("bom: records header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bom: records: %w", err)
		}

		rec := make(Record, len(header))
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			rec[header[i]] = cell
		}
		records = append(records, rec)
	}
	return records, nil
}
