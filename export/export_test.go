package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/wonderhao123/pdf-parse/tables"
)

func makeItems() []tables.LineItem {
	return []tables.LineItem{
		{ID: 1, Description: "Widget A", Quantity: 2, Price: "10.00"},
		{ID: 2, Description: "Consulting services", Quantity: 1, Price: "150.00"},
	}
}

func TestWriteXLSX(t *testing.T) {
	data, err := WriteXLSX(makeItems())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	const sheet = "Line Items"
	checks := map[string]string{
		"B1": "Description",
		"B2": "Widget A",
		"C2": "2",
		"D2": "10.00",
		"E2": "20.00",
		"B3": "Consulting services",
		"E3": "150.00",
		"D4": "Grand Total",
		"E4": "170.00",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("Cell %s: expected %q, got %q", cell, want, got)
		}
	}
}

func TestWriteXLSX_SingleSheet(t *testing.T) {
	data, err := WriteXLSX(makeItems())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Line Items" {
		t.Errorf("Expected a single 'Line Items' sheet, got %v", sheets)
	}
}

func TestWriteXLSX_Empty(t *testing.T) {
	data, err := WriteXLSX(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Line Items", "E2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if got != "0.00" {
		t.Errorf("Expected zero grand total, got %q", got)
	}
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.xlsx")
	if err := SaveXLSX(path, makeItems()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open saved workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Line Items", "B2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if got != "Widget A" {
		t.Errorf("Unexpected cell value %q", got)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, makeItems()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := "#,Description,Quantity,Unit Price,Total\n" +
		"1,Widget A,2,10.00,20.00\n" +
		"2,Consulting services,1,150.00,150.00\n" +
		",,,Grand Total,170.00\n"
	if buf.String() != want {
		t.Errorf("Expected CSV:\n%s\ngot:\n%s", want, buf.String())
	}
}
