package match

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// readCSV reads the whole table including the header row.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "match: open csv %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "match: read csv %s", path)
	}
	return records, nil
}

// readXLSX reads the first sheet of an XLSX workbook, header row included.
// Supports the common workflow of dropping the Sheets export in as-is
// instead of converting it to CSV first.
func readXLSX(path string) ([][]string, error) {
	wb, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "match: open xlsx %s", path)
	}
	if len(wb.Sheets) == 0 {
		return nil, eris.Errorf("match: xlsx %s has no sheets", path)
	}

	sheet := wb.Sheets[0]
	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, cell.String())
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
