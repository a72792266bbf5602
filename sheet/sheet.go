// Package sheet reads the fixed-layout annotation spreadsheets produced by
// the annotation rounds: one file per document and annotator, a header row,
// then one row per sentence with five label pairs after the id and text.
package sheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	// Ext is the only accepted spreadsheet extension.
	Ext = ".xlsx"

	// attrCols is the width of the label-pair window following the id and
	// text columns. Only the second cell of each pair holds an attribute
	// name.
	attrCols = 10
)

// Source identifies one input file. The file name encodes it as
// <doc>_<annotator> or <doc>_<annotator>_<date>.
type Source struct {
	Path      string
	Doc       string
	Annotator string
	Date      string
}

// ParseSource derives the source descriptor from a file path. The annotator
// name is lower-cased.
func ParseSource(path string) (Source, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext != Ext {
		return Source{}, fmt.Errorf("sheet: %s: unexpected extension %q, want %q", path, ext, Ext)
	}

	name := strings.TrimSuffix(base, ext)
	parts := strings.Split(name, "_")

	src := Source{Path: path}
	switch len(parts) {
	case 2:
		src.Doc, src.Annotator = parts[0], parts[1]
	case 3:
		src.Doc, src.Annotator, src.Date = parts[0], parts[1], parts[2]
	default:
		return Source{}, fmt.Errorf("sheet: cannot split %q into doc and annotator", name)
	}
	src.Annotator = strings.ToLower(src.Annotator)
	return src, nil
}

// Row is one data row of a sheet: the sentence id, its text and the raw
// attribute cells in column order.
type Row struct {
	ID    string
	Text  string
	Attrs []string
}

// Read loads the active sheet of an xlsx file and returns its data rows.
// The first cell of the header row must equal sentinel. An entirely blank
// second row is tolerated; a blank sentence id anywhere else is an error.
func Read(path, sentinel string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("sheet: open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	if err != nil {
		return nil, fmt.Errorf("sheet: read %s: %w", path, err)
	}

	var out []Row
	for i, row := range rows {
		if i == 0 {
			if cell(row, 0) != sentinel {
				return nil, fmt.Errorf("sheet: unexpected header in %s: %v", path, row)
			}
			continue
		}
		if cell(row, 0) == "" {
			if i != 1 {
				return nil, fmt.Errorf("sheet: empty sentence id in %s row %d", path, i+1)
			}
			continue
		}

		r := Row{ID: cell(row, 0), Text: cell(row, 1)}
		for j := 1; j < attrCols; j += 2 {
			if a := cell(row, 2+j); a != "" {
				r.Attrs = append(r.Attrs, a)
			}
		}
		out = append(out, r)
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
