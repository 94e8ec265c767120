// Package report writes the delimited text reports of an import run.
package report

import (
	"encoding/csv"
	"os"

	"github.com/schoolkeuze/duosync/pkg/duo"
	"github.com/schoolkeuze/duosync/pkg/errors"
	"github.com/schoolkeuze/duosync/pkg/store"
)

var unmatchedHeader = []string{
	"duo_school_id",
	"vestigingsnaam",
	"postcode",
	"straat",
	"huisnr",
	"huisnr_suffix",
}

// WriteUnmatched writes one row per unmatched seed record so the table can
// be turned into a manual-match file. Nothing is written when rows is
// empty.
func WriteUnmatched(path string, rows []duo.School) error {
	if len(rows) == 0 {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(unmatchedHeader); err != nil {
		return errors.WrapIO("write", path, err)
	}
	for _, r := range rows {
		record := []string{r.DUOID, r.Name, r.Postcode, r.Street, r.HouseNr, r.HouseSuffix}
		if err := w.Write(record); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return f.Close()
}

var idMapHeader = []string{
	"school_id",
	"name",
	"address",
	"website_url",
}

// WriteSchoolIDs dumps the canonical id-to-name mapping used to hand-build
// manual-match tables.
func WriteSchoolIDs(path string, schools []store.School) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(idMapHeader); err != nil {
		return errors.WrapIO("write", path, err)
	}
	for _, s := range schools {
		if err := w.Write([]string{s.ID, s.Name, s.Address, s.WebsiteURL}); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return f.Close()
}
