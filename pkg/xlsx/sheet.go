// Package xlsx reads one fixed worksheet layout out of a zip-packaged
// SpreadsheetML workbook. It is deliberately not a general spreadsheet
// parser: it understands exactly the parts needed to materialize a named
// worksheet into a header-indexed table: the workbook manifest, the
// relationship map, the optional shared-string pool, and worksheet rows.
package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"path"
	"strings"

	"github.com/schoolkeuze/duosync/pkg/errors"
)

const (
	workbookPart      = "xl/workbook.xml"
	relationshipsPart = "xl/_rels/workbook.xml.rels"

	relNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Table is a fully materialized worksheet: headers in canonical column
// order, and data rows projected onto that order. Every row has exactly
// len(Headers) values; cells a row did not declare are invalid Values.
type Table struct {
	Headers []string
	Rows    []Row
}

// Row is one data row, positionally aligned to Table.Headers.
type Row []Value

type workbookXML struct {
	Sheets []struct {
		Name  string `xml:"name,attr"`
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sheets>sheet"`
}

type relationshipsXML struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type worksheetXML struct {
	Rows []struct {
		Cells []cellXML `xml:"c"`
	} `xml:"sheetData>row"`
}

// partReader reads named parts from the workbook archive.
type partReader interface {
	// read returns the part contents, or ok=false if the part is absent.
	read(name string) (data []byte, ok bool, err error)
}

type zipParts struct {
	r *zip.Reader
}

func (z zipParts) read(name string) ([]byte, bool, error) {
	for _, f := range z.r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, false, errors.WrapIO("open", name, err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				return nil, false, errors.WrapIO("read", name, err)
			}
			return data, true, nil
		}
	}
	return nil, false, nil
}

// Workbook is an opened workbook archive with its manifest, relationship
// map, and shared-string pool already materialized. Its lifetime is one
// ingestion call: open, read the needed sheets, close.
type Workbook struct {
	parts  partReader
	shared []string
	sheets map[string]string // sheet name -> worksheet part path
	closer io.Closer
}

// Open opens the workbook archive at path.
func Open(name string) (*Workbook, error) {
	zr, err := zip.OpenReader(name)
	if err != nil {
		return nil, errors.WrapIO("open", name, err)
	}
	wb, err := New(&zr.Reader)
	if err != nil {
		zr.Close()
		return nil, err
	}
	wb.closer = zr
	return wb, nil
}

// New builds a Workbook from an already-opened zip archive.
func New(r *zip.Reader) (*Workbook, error) {
	parts := zipParts{r: r}

	wbData, ok, err := parts.read(workbookPart)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewParseError("xlsx", workbookPart, "workbook manifest missing", nil)
	}
	var manifest workbookXML
	if err := xml.Unmarshal(wbData, &manifest); err != nil {
		return nil, errors.WrapParse("xml", workbookPart, err)
	}

	relData, ok, err := parts.read(relationshipsPart)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewParseError("xlsx", relationshipsPart, "relationship map missing", nil)
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(relData, &rels); err != nil {
		return nil, errors.WrapParse("xml", relationshipsPart, err)
	}
	relMap := make(map[string]string, len(rels.Rels))
	for _, rel := range rels.Rels {
		relMap[rel.ID] = rel.Target
	}

	sheets := make(map[string]string, len(manifest.Sheets))
	for _, s := range manifest.Sheets {
		if target, ok := relMap[s.RelID]; ok {
			sheets[s.Name] = resolveTarget(target)
		}
	}

	shared, err := readSharedStrings(parts)
	if err != nil {
		return nil, err
	}

	return &Workbook{parts: parts, shared: shared, sheets: sheets}, nil
}

// Close releases the underlying archive, if this Workbook owns one.
func (wb *Workbook) Close() error {
	if wb.closer == nil {
		return nil
	}
	return wb.closer.Close()
}

// resolveTarget turns a relationship target into an archive part path.
// Targets are relative to xl/ unless written in absolute form.
func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join("xl", target)
}

// Table materializes the named worksheet. The first row is the header row;
// remaining rows are data rows projected onto the canonical column order
// derived from the header cells' column references. A worksheet that is not
// listed in the manifest is a schema error and aborts the run.
func (wb *Workbook) Table(sheetName string) (*Table, error) {
	part, ok := wb.sheets[sheetName]
	if !ok {
		return nil, errors.NewSchemaError(sheetName, "")
	}

	data, ok, err := wb.parts.read(part)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewParseError("xlsx", part, "worksheet part missing", nil)
	}

	var sheet worksheetXML
	if err := xml.Unmarshal(data, &sheet); err != nil {
		return nil, errors.WrapParse("xml", part, err)
	}
	if len(sheet.Rows) == 0 {
		return &Table{}, nil
	}

	// Header row: record (column ref, header text), then sort by the codec
	// key so sparse or reordered cell elements cannot scramble columns.
	cols := make([]string, 0, len(sheet.Rows[0].Cells))
	headerByCol := make(map[string]Value, len(sheet.Rows[0].Cells))
	for i := range sheet.Rows[0].Cells {
		c := &sheet.Rows[0].Cells[i]
		col := columnOf(c.Ref)
		cols = append(cols, col)
		headerByCol[col] = c.resolve(wb.shared)
	}
	if err := sortColumns(cols); err != nil {
		return nil, errors.NewParseError("xlsx", part, err.Error(), err)
	}

	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = headerByCol[col].String
	}

	rows := make([]Row, 0, len(sheet.Rows)-1)
	for _, raw := range sheet.Rows[1:] {
		byCol := make(map[string]Value, len(raw.Cells))
		for i := range raw.Cells {
			c := &raw.Cells[i]
			byCol[columnOf(c.Ref)] = c.resolve(wb.shared)
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			row[i] = byCol[col] // zero Value when the row skipped this column
		}
		rows = append(rows, row)
	}

	return &Table{Headers: headers, Rows: rows}, nil
}
