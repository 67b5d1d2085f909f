// Package xlsx reads bulk word lists out of spreadsheet files.
package xlsx

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/at-ishikawa/tango/internal/word"
)

// ReadWords extracts normalized words from the first column of the named
// sheet, or the first sheet when sheet is empty. Blank cells are skipped and
// duplicates are collapsed; order follows the sheet.
func ReadWords(path, sheet string) ([]string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenFile > %w", err)
	}
	defer file.Close()

	if sheet == "" {
		sheets := file.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("no sheets in %s", path)
		}
		sheet = sheets[0]
	}
	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("file.GetRows > %w", err)
	}

	var words []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		words = append(words, word.SplitWords(row[0])...)
	}
	return lo.Uniq(words), nil
}
