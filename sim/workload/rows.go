package workload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// row is one CSV record with its source line.
type row struct {
	line   int
	fields []string
}

// readRows reads comma-separated rows with exactly columns fields each.
// Blank lines and lines starting with '#' are skipped; fields are trimmed.
func readRows(source string, r io.Reader, columns int) ([]row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = columns
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	rows := make([]row, 0)
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				if errors.Is(pe.Err, csv.ErrFieldCount) {
					return nil, &ParseError{Source: source, Line: pe.Line,
						Err: fmt.Errorf("%w: expected %d columns, got %d", ErrMalformedRow, columns, len(fields))}
				}
				return nil, &ParseError{Source: source, Line: pe.Line, Err: fmt.Errorf("%w: %v", ErrMalformedRow, pe.Err)}
			}
			return nil, &ParseError{Source: source, Err: fmt.Errorf("reading input: %w", err)}
		}
		line, _ := reader.FieldPos(0)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		rows = append(rows, row{line: line, fields: fields})
	}
	return rows, nil
}

// intField parses a non-negative integer column.
func intField(source string, r row, col int, name string) (int, error) {
	raw := r.fields[col]
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, &ParseError{Source: source, Line: r.line,
			Err: fmt.Errorf("%w: %s %q must be a non-negative integer", ErrInvalidNumber, name, raw)}
	}
	return v, nil
}

// nameField returns a non-empty name column.
func nameField(source string, r row, col int) (string, error) {
	name := r.fields[col]
	if name == "" {
		return "", &ParseError{Source: source, Line: r.line, Err: fmt.Errorf("%w: empty name", ErrMalformedRow)}
	}
	return name, nil
}
