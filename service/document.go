package service

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

// ErrDocumentUnreadable marks a source document that cannot be opened or
// read at all. It is the only error the extraction pipeline surfaces.
var ErrDocumentUnreadable = errors.New("document unreadable")

// Document is the source collaborator the extraction pipeline runs against:
// a paged document offering raw text and detected tables per page.
type Document interface {
	PageCount() int
	PageText(pageIndex int) (string, error)
	PageTables(pageIndex int) ([]Table, error)
}

// Table is one detected table: an ordered sequence of rows, each an ordered
// sequence of cell texts. Cells may be empty.
type Table [][]string

// cellGap is the horizontal distance (in points) between two text fragments
// beyond which they belong to different table cells.
const cellGap = 12.0

// PDFDocument adapts a takvimi PDF file to the Document interface using
// per-page text rows; cells are clustered from word positions.
type PDFDocument struct {
	file   *os.File
	reader *pdf.Reader
}

// OpenDocument validates and opens a PDF file. Any open or validation
// failure is reported as ErrDocumentUnreadable.
func OpenDocument(path string) (*PDFDocument, error) {
	if err := pdfapi.ValidateFile(path, nil); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocumentUnreadable, path, err)
	}
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocumentUnreadable, path, err)
	}
	return &PDFDocument{file: f, reader: r}, nil
}

func (d *PDFDocument) Close() error {
	return d.file.Close()
}

func (d *PDFDocument) PageCount() int {
	return d.reader.NumPage()
}

// PageText returns the page's text with one line per detected row.
func (d *PDFDocument) PageText(pageIndex int) (string, error) {
	rows, err := d.pageRows(pageIndex)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, cells := range rows {
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// PageTables returns the page's detected tables. The row/cell grid built
// from word positions is exposed as a single table; pages without any
// multi-cell rows yield no tables.
func (d *PDFDocument) PageTables(pageIndex int) ([]Table, error) {
	rows, err := d.pageRows(pageIndex)
	if err != nil {
		return nil, err
	}
	var table Table
	for _, cells := range rows {
		if len(cells) > 1 {
			table = append(table, cells)
		}
	}
	if len(table) == 0 {
		return nil, nil
	}
	return []Table{table}, nil
}

// pageRows clusters each text row's fragments into cells by X gap.
func (d *PDFDocument) pageRows(pageIndex int) ([][]string, error) {
	if pageIndex < 0 || pageIndex >= d.reader.NumPage() {
		return nil, nil
	}
	p := d.reader.Page(pageIndex + 1)
	if p.V.IsNull() {
		return nil, nil
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("%w: page %d: %v", ErrDocumentUnreadable, pageIndex+1, err)
	}

	var out [][]string
	for _, row := range rows {
		var cells []string
		var cell strings.Builder
		prevEnd := 0.0
		for i, word := range row.Content {
			if i > 0 {
				gap := word.X - prevEnd
				if gap > cellGap {
					cells = append(cells, strings.TrimSpace(cell.String()))
					cell.Reset()
				} else if gap > 1.0 {
					cell.WriteString(" ")
				}
			}
			cell.WriteString(word.S)
			prevEnd = word.X + word.W
		}
		if cell.Len() > 0 {
			cells = append(cells, strings.TrimSpace(cell.String()))
		}
		if len(cells) > 0 {
			out = append(out, cells)
		}
	}
	return out, nil
}

// ExtractPageTable exports one page's first detected table for diagnostics.
// When the page has no table, the page's raw text is returned as the error
// message instead of failing hard.
func ExtractPageTable(doc Document, pageIndex int) (Table, error) {
	if pageIndex < 0 || pageIndex >= doc.PageCount() {
		return nil, errors.New("invalid page number")
	}
	tables, err := doc.PageTables(pageIndex)
	if err != nil {
		return nil, err
	}
	if len(tables) > 0 && len(tables[0]) > 0 {
		return tables[0], nil
	}
	text, err := doc.PageText(pageIndex)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		text = "no tables found on this page"
	}
	return nil, errors.New(text)
}
