package cards

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadContactsCSV reads one contact per row from a CSV file. The header row
// names the columns using the JSON field names; snake_case and a few
// human labels are accepted too.
func LoadContactsCSV(path string) ([]ContactInfo, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	cs, err := ReadContactsCSV(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cs, nil
}

// ReadContactsCSV is LoadContactsCSV over an arbitrary reader.
func ReadContactsCSV(r io.Reader) ([]ContactInfo, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv has no header")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		if f, ok := columnField(h); ok {
			cols[f] = i
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("csv header has no known columns")
	}

	out := []ContactInfo{}
	for n, row := range rows[1:] {
		var c ContactInfo
		empty := true
		for field, idx := range cols {
			if idx >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[idx])
			if v == "" {
				continue
			}
			empty = false
			if c, err = c.With(field, v); err != nil {
				return nil, fmt.Errorf("row %d: %w", n+2, err)
			}
		}
		if empty {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

var columnAliases = map[string]string{
	"job_title": "jobTitle",
	"jobtitle":  "jobTitle",
	"title":     "jobTitle",
	"tel":       "phone",
	"mail":      "email",
	"org":       "company",
	"url":       "website",
}

func columnField(header string) (string, bool) {
	h := strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	for _, f := range Fields {
		if strings.EqualFold(h, f) {
			return f, true
		}
	}
	if f, ok := columnAliases[strings.ToLower(h)]; ok {
		return f, true
	}
	return "", false
}
