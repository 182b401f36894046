package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/workday-roster/pkg/core/model"
)

// SheetName is the worksheet the roster is written to
const SheetName = "Roster"

// WriteWeekWorkbook writes the roster table as an XLSX workbook: the week title in row 1,
// the column header in row 2 and one workday per row below
func WriteWeekWorkbook(w io.Writer, table *model.RosterTable) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	grid := table.Grid()
	columns := len(grid[0])
	lastCol := colName(columns - 1)

	if err := f.SetColWidth(SheetName, "A", "A", 18); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if columns > 1 {
		if err := f.SetColWidth(SheetName, "B", lastCol, 40); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	// Title row
	if err := f.SetCellValue(SheetName, "A1", table.Title()); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	if columns > 1 {
		if err := f.MergeCell(SheetName, "A1", cell(lastCol, 1)); err != nil {
			return fmt.Errorf("failed to merge title: %w", err)
		}
	}
	if err := f.SetCellStyle(SheetName, "A1", cell(lastCol, 2), headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	// Header and data rows
	for r, cells := range grid {
		for c, value := range cells {
			if err := f.SetCellValue(SheetName, cell(colName(c), r+2), value); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
