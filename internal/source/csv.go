package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

var columns = []string{"date", "time", "kind", "duration", "label", "style"}

// readCSV reads a table whose header names the record columns in any order
// and case.
func readCSV(path string) ([]rawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	columnMap := make(map[string]int)
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	if _, ok := columnMap["date"]; !ok {
		return nil, fmt.Errorf("date column not found in CSV. Available columns: %v", header)
	}

	var raws []rawRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		raws = append(raws, fromColumns(columnMap, func(i int) string {
			if i < len(record) {
				return record[i]
			}
			return ""
		}))
	}
	return raws, nil
}

// fromColumns builds a raw record through a name-to-index map.
func fromColumns(columnMap map[string]int, value func(int) string) rawRecord {
	get := func(name string) string {
		if i, ok := columnMap[name]; ok {
			return value(i)
		}
		return ""
	}
	return rawRecord{
		Date:     get("date"),
		Time:     get("time"),
		Kind:     get("kind"),
		Duration: get("duration"),
		Label:    get("label"),
		Style:    get("style"),
	}
}
