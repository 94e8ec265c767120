package xlsx

import (
	"encoding/xml"
	"strings"

	"github.com/schoolkeuze/duosync/pkg/errors"
)

const sharedStringsPart = "xl/sharedStrings.xml"

// textRuns collects the character content of every <t> element beneath the
// element it is unmarshalled from, in document order. Rich-text formatting
// runs are discarded; only their text survives.
type textRuns struct {
	text string
}

// UnmarshalXML implements xml.Unmarshaler.
func (tr *textRuns) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 1
	inText := false
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			depth--
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	tr.text = b.String()
	return nil
}

type sharedStringsXML struct {
	Items []textRuns `xml:"si"`
}

// readSharedStrings extracts the de-duplicated string pool from the archive.
// A nil pool with a nil error means the part is absent, which is legal:
// workbooks that inline every string omit it.
func readSharedStrings(parts partReader) ([]string, error) {
	data, ok, err := parts.read(sharedStringsPart)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var sst sharedStringsXML
	if err := xml.Unmarshal(data, &sst); err != nil {
		return nil, errors.WrapParse("xml", sharedStringsPart, err)
	}

	pool := make([]string, len(sst.Items))
	for i, si := range sst.Items {
		pool[i] = si.text
	}
	return pool, nil
}
