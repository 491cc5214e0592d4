package cards

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadCardsFromDataDir loads the offline catalog from a data directory.
// It expects cards.csv; custom_cards.csv is optional and appended after it.
func LoadCardsFromDataDir(dataDir string) ([]Card, error) {
	files := []string{
		filepath.Join(dataDir, "cards.csv"),
		filepath.Join(dataDir, "custom_cards.csv"),
	}

	var all []Card
	var found bool
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			// skip missing files
			continue
		}
		found = true
		cs, err := loadSingleCSV(f)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
		all = append(all, cs...)
	}
	if !found {
		return nil, fmt.Errorf("no input CSVs found in %s", dataDir)
	}
	return all, nil
}

func loadSingleCSV(path string) ([]Card, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	header := rows[0]
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	if _, ok := cols["RuleName"]; !ok {
		return nil, fmt.Errorf("csv %s has no RuleName column", path)
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return row[idx]
		}
		return ""
	}

	out := []Card{}
	for _, row := range rows[1:] {
		c := Card{
			Name:                   get(row, "Name"),
			RuleName:               get(row, "RuleName"),
			Type:                   get(row, "Type"),
			Symbol:                 Value(get(row, "Symbol")),
			Cost:                   Value(get(row, "Cost")),
			CColor:                 Value(get(row, "C Color")),
			Gem:                    Value(get(row, "Gem")),
			GColor:                 Value(get(row, "G Color")),
			OnlyOne:                Flag(ParseFlag(get(row, "is_only_one"))),
			AllowedCopies:          ParseCopies(get(row, "AllowedCopies")),
			RestrictionTypeGroupID: strings.TrimSpace(get(row, "RestrictionTypeGroupID")),
			GroupID:                Value(strings.TrimSpace(get(row, "GroupID"))),
			ImageURL:               get(row, "image_url"),
		}
		if strings.TrimSpace(c.RuleName) == "" {
			continue
		}
		if c.Name == "" {
			c.Name = c.RuleName
		}
		out = append(out, c)
	}
	return out, nil
}
