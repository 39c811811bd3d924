package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Jobs"

// writeXLSX regenerates the workbook from the accumulated rows.
// Caller holds w.mu.
func (w *Writer) writeXLSX() error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	for col, name := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return err
		}
	}

	for i, j := range w.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &[]any{
			j.Company, j.Title, j.Location, j.URL, j.JobID,
			j.ScrapedAt.Format("2006-01-02 15:04:05"), j.Source,
		}); err != nil {
			return err
		}
	}

	// freeze the header row
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}

	if err := setColumnWidths(f); err != nil {
		return err
	}

	if err := f.SaveAs(w.xlsxPath); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	return nil
}

var columnWidths = map[string]float64{
	"A": 14, // company
	"B": 48, // title
	"C": 28, // location
	"D": 64, // url
	"E": 14, // job_id
	"F": 20, // timestamp
	"G": 18, // source
}

func setColumnWidths(f *excelize.File) error {
	for col, width := range columnWidths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return err
		}
	}
	return nil
}
