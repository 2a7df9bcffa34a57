package tasks

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const maxLineSize = 16 * 1024 * 1024

type row struct {
	path   string
	line   int
	fields []string
}

// readTSV reads a tab-separated file. Quotes carry no meaning in these
// corpora, so fields are split on tabs only.
func readTSV(path string) ([]row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DataFormatError{Path: path,
			Reason: "cannot open corpus file", Err: err}
	}
	defer file.Close()

	rows := make([]row, 0)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		rows = append(rows, row{
			path:   path,
			line:   lineNum,
			fields: strings.Split(line, "\t"),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, &DataFormatError{Path: path, Line: lineNum + 1,
			Reason: "cannot read corpus file", Err: err}
	}
	return rows, nil
}

func readCorpus(dataDir string, name string) ([]row, error) {
	return readTSV(filepath.Join(dataDir, name))
}

// field returns column idx of the row; negative indexes count from the end.
func (r row) field(idx int) (string, error) {
	pos := idx
	if pos < 0 {
		pos += len(r.fields)
	}
	if pos < 0 || pos >= len(r.fields) {
		need := idx + 1
		if idx < 0 {
			need = -idx
		}
		return "", &DataFormatError{Path: r.path, Line: r.line,
			Reason: fmt.Sprintf("expected at least %d columns, found %d",
				need, len(r.fields))}
	}
	return r.fields[pos], nil
}

// columns returns several columns at once, failing on the first one that
// is out of range.
func (r row) columns(idxs ...int) ([]string, error) {
	values := make([]string, len(idxs))
	for i, idx := range idxs {
		value, err := r.field(idx)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}
