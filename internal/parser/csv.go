package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/KWARC/llamapun/internal/doctree"
)

// CSVParser handles CSV files as a single table. The first record is the
// header row.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.Tree, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	tree, body := skeleton(titleFromFilename(filename))
	if len(records) == 0 {
		return tree, nil
	}

	table := tree.AppendElement(body, "", "", "table", nil)
	for i, row := range records {
		tr := tree.AppendElement(table, "", "", "tr", nil)
		cell := "td"
		if i == 0 {
			cell = "th"
		}
		for _, value := range row {
			td := tree.AppendElement(tr, "", "", cell, nil)
			tree.AppendText(td, value)
		}
	}

	return tree, nil
}
