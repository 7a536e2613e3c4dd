package source

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// readCSV reads a comma or semicolon separated file; the first record is the header.
func readCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if first, err := br.Peek(4096); err == nil || errors.Is(err, io.EOF) {
		reader.Comma = sniffDelimiter(string(first))
	}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	b := newTableBuilder(header)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}
		b.add(record)
	}
	return b.table(), nil
}

// sniffDelimiter picks ';' when the header line uses it and has no commas, as spreadsheet
// exports in Spanish locales do.
func sniffDelimiter(head string) rune {
	line, _, _ := strings.Cut(head, "\n")
	if strings.Contains(line, ";") && !strings.Contains(line, ",") {
		return ';'
	}
	return ','
}
