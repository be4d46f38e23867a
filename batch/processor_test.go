package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	pdfparse "github.com/wonderhao123/pdf-parse"
	"github.com/wonderhao123/pdf-parse/tables"
)

// makeTranscript builds a one-page transcript whose lines form a simple
// item table.
func makeTranscript() []byte {
	return []byte(`{
		"pageCount": 1,
		"pages": [{
			"pageNumber": 1,
			"fragments": [
				{"text": "Description Qty Price", "x": 10, "y": 100, "width": 100, "height": 10},
				{"text": "Widget A 2 10.00", "x": 10, "y": 85, "width": 80, "height": 10},
				{"text": "Total: 20.00", "x": 10, "y": 70, "width": 60, "height": 10}
			]
		}]
	}`)
}

func makeFieldsTranscript() []byte {
	return []byte(`{
		"pageCount": 1,
		"pages": [{
			"pageNumber": 1,
			"fragments": [
				{"text": "Invoice #: INV-2024-001", "x": 10, "y": 100, "width": 100, "height": 10},
				{"text": "Amount: $1,250.50", "x": 10, "y": 85, "width": 80, "height": 10}
			]
		}]
	}`)
}

func TestProcess_TableMode(t *testing.T) {
	p := NewProcessor(ModeTable, zap.NewNop())

	results := p.Process(context.Background(), []Input{
		{Name: "invoice.json", Data: makeTranscript()},
	})

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.Err != nil {
		t.Fatalf("Unexpected error: %v", r.Err)
	}
	if r.ID == uuid.Nil {
		t.Error("Expected a non-nil result ID")
	}
	if len(r.Items) != 1 || r.Items[0].Description != "Widget A" {
		t.Errorf("Unexpected items %+v", r.Items)
	}
}

func TestProcess_FieldsMode(t *testing.T) {
	p := NewProcessor(ModeFields, zap.NewNop())

	results := p.Process(context.Background(), []Input{
		{Name: "invoice.json", Data: makeFieldsTranscript()},
	})

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.Err != nil {
		t.Fatalf("Unexpected error: %v", r.Err)
	}
	if r.Fields.InvoiceNumber.Value != "INV-2024-001" {
		t.Errorf("Unexpected invoice number %q", r.Fields.InvoiceNumber.Value)
	}
	if r.Fields.Price.Value != "1250.50" {
		t.Errorf("Unexpected price %q", r.Fields.Price.Value)
	}
	if len(r.Items) != 0 {
		t.Errorf("Expected no items in fields mode, got %+v", r.Items)
	}
}

func TestProcess_FailureIsolation(t *testing.T) {
	p := NewProcessor(ModeTable, zap.NewNop())

	results := p.Process(context.Background(), []Input{
		{Name: "broken.json", Data: []byte(`not json`)},
		{Name: "good.json", Data: makeTranscript()},
	})

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Err == nil {
		t.Error("Expected an error for the broken transcript")
	}
	if results[1].Err != nil {
		t.Errorf("Expected the good transcript to process, got %v", results[1].Err)
	}
	if len(results[1].Items) != 1 {
		t.Errorf("Unexpected items %+v", results[1].Items)
	}
}

func TestProcess_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProcessor(ModeTable, zap.NewNop())
	results := p.Process(ctx, []Input{
		{Name: "a.json", Data: makeTranscript()},
		{Name: "b.json", Data: makeTranscript()},
	})

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Err == nil {
			t.Errorf("Expected context error for %s", r.Name)
		}
	}
}

func TestProcessTranscripts(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, makeTranscript(), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.json")

	p := NewProcessor(ModeTable, zap.NewNop())
	results := p.ProcessTranscripts(context.Background(), []string{good, missing})

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("Unexpected error for existing file: %v", results[0].Err)
	}
	if results[0].Name != "good.json" {
		t.Errorf("Unexpected name %q", results[0].Name)
	}
	if results[1].Err == nil {
		t.Error("Expected an error for the missing file")
	}
}

func TestCollectItems(t *testing.T) {
	results := []Result{
		{Items: []tables.LineItem{{ID: 1, Description: "Widget A", Quantity: 2, Price: "10.00"}}},
		{Err: errors.New("decode failed")},
		{Items: []tables.LineItem{{ID: 1, Description: "Widget B", Quantity: 1, Price: "5.00"}}},
	}

	items := CollectItems(results)

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].ID != 1 || items[1].ID != 2 {
		t.Errorf("Expected sequential IDs across the batch, got %d and %d", items[0].ID, items[1].ID)
	}
	if items[1].Description != "Widget B" {
		t.Errorf("Unexpected item %+v", items[1])
	}
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Items: []tables.LineItem{{ID: 1, Description: "Widget A", Quantity: 2, Price: "10.00"}}},
		{Items: []tables.LineItem{
			{ID: 1, Description: "Widget B", Quantity: 1, Price: "5.00"},
			{ID: 2, Description: "Widget C", Quantity: 3, Price: "2.50"},
		}, Warnings: []pdfparse.Warning{{Code: pdfparse.WarnPageFailed, Page: 2}}},
		{Err: errors.New("decode failed")},
	}

	s := Summarize(results)

	want := Summary{Documents: 3, Failed: 1, Items: 3, Warnings: 1}
	if s != want {
		t.Errorf("Expected %+v, got %+v", want, s)
	}
}
