package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// NormalizeName rewrites a column header to alphanumeric-plus-underscore,
// collapsing runs of other characters into a single underscore.
func NormalizeName(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(name) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if isAlnum {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore && b.Len() > 0 {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}

type CSVReader struct {
	filename string
}

func NewCSVReader(filename string) *CSVReader {
	return &CSVReader{filename: filename}
}

// LoadFrame reads the whole table, normalizes headers, and parses every cell
// as float64. A missing or non-numeric cell is fatal: the pipeline assumes a
// complete numeric table.
func (cr *CSVReader) LoadFrame() (*Frame, error) {
	file, err := os.Open(cr.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%w: file %s has no data rows", ErrDataIntegrity, cr.filename)
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = NormalizeName(h)
	}

	rows := make([][]float64, len(records)-1)
	for i, record := range records[1:] {
		rows[i] = make([]float64, len(record))
		for j, cell := range record {
			value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %q: %q is not numeric",
					ErrDataIntegrity, i+1, headers[j], cell)
			}
			rows[i][j] = value
		}
	}

	return NewFrame(headers, rows)
}
