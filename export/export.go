package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/wonderhao123/pdf-parse/tables"
)

var headers = []string{"#", "Description", "Quantity", "Unit Price", "Total"}

// WriteXLSX renders line items as an XLSX workbook and returns its bytes.
// A grand total row is appended after the items.
func WriteXLSX(items []tables.LineItem) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Line Items"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	var grandTotal float64
	for _, item := range items {
		total := rowTotal(item)
		grandTotal += total

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, item.ID)
		write(2, item.Description)
		write(3, item.Quantity)
		write(4, item.Price)
		write(5, fmt.Sprintf("%.2f", total))

		row++
	}

	totalLabel, _ := excelize.CoordinatesToCellName(4, row)
	totalCell, _ := excelize.CoordinatesToCellName(5, row)
	_ = f.SetCellValue(sheet, totalLabel, "Grand Total")
	_ = f.SetCellValue(sheet, totalCell, fmt.Sprintf("%.2f", grandTotal))

	_ = f.SetColWidth(sheet, "A", "A", 6)  // id
	_ = f.SetColWidth(sheet, "B", "B", 48) // description
	_ = f.SetColWidth(sheet, "C", "E", 12) // amounts

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveXLSX renders line items and writes the workbook to path.
func SaveXLSX(path string, items []tables.LineItem) error {
	data, err := WriteXLSX(items)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteCSV renders line items as CSV with the same columns and grand total
// row as the XLSX export.
func WriteCSV(w io.Writer, items []tables.LineItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}

	var grandTotal float64
	for _, item := range items {
		total := rowTotal(item)
		grandTotal += total

		record := []string{
			strconv.Itoa(item.ID),
			item.Description,
			strconv.FormatFloat(item.Quantity, 'f', -1, 64),
			item.Price,
			fmt.Sprintf("%.2f", total),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	if err := cw.Write([]string{"", "", "", "Grand Total", fmt.Sprintf("%.2f", grandTotal)}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// rowTotal is the item's quantity times its unit price; an unparseable price
// contributes zero.
func rowTotal(item tables.LineItem) float64 {
	price, err := strconv.ParseFloat(item.Price, 64)
	if err != nil {
		return 0
	}
	return price * item.Quantity
}
