// Package inspect reports missing values per column of a CSV file.
package inspect

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// naValues are the cell spellings treated as missing, after trimming.
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// Options controls how the file is read.
type Options struct {
	// SkipRows discards this many leading records before the header.
	SkipRows int
	// Encoding is a WHATWG encoding label such as "gbk" or "gb18030".
	// Empty means UTF-8.
	Encoding string
}

// Column is the missing-value count of one column.
type Column struct {
	Name    string
	Missing int
}

// Report summarizes a CSV file.
type Report struct {
	Rows    int
	Columns []Column
}

// MissingTotal is the number of missing cells across all columns.
func (r Report) MissingTotal() int {
	var n int
	for _, c := range r.Columns {
		n += c.Missing
	}
	return n
}

// Inspect reads a header and data rows from r and counts missing cells per
// column. Rows shorter than the header count their absent cells as missing.
func Inspect(r io.Reader, opts Options) (Report, error) {
	if opts.SkipRows < 0 {
		return Report{}, fmt.Errorf("skip rows must be non-negative, got %d", opts.SkipRows)
	}
	dec, err := decoder(opts.Encoding)
	if err != nil {
		return Report{}, err
	}
	if dec != nil {
		r = transform.NewReader(r, dec.NewDecoder())
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	for i := range opts.SkipRows {
		if _, err := cr.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return Report{}, fmt.Errorf("file ends before skipping %d rows", opts.SkipRows)
			}
			return Report{}, fmt.Errorf("skip row %d: %w", i+1, err)
		}
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Report{}, errors.New("no header row")
	}
	if err != nil {
		return Report{}, fmt.Errorf("read header: %w", err)
	}

	rep := Report{Columns: make([]Column, len(header))}
	for i, h := range header {
		rep.Columns[i].Name = strings.TrimSpace(h)
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Report{}, fmt.Errorf("read row %d: %w", rep.Rows+1, err)
		}
		rep.Rows++
		for i := range rep.Columns {
			if i >= len(rec) || isMissing(rec[i]) {
				rep.Columns[i].Missing++
			}
		}
	}
	return rep, nil
}

// Write prints one "name  count" line per column.
func (r Report) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range r.Columns {
		if _, err := fmt.Fprintf(tw, "%s\t%d\n", c.Name, c.Missing); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func isMissing(cell string) bool {
	_, ok := naValues[strings.TrimSpace(cell)]
	return ok
}

// decoder resolves an encoding label. UTF-8 needs no transform and yields nil.
func decoder(label string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	return enc, nil
}
