package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	pdfparse "github.com/wonderhao123/pdf-parse"
	"github.com/wonderhao123/pdf-parse/fields"
	"github.com/wonderhao123/pdf-parse/tables"
)

// Mode selects which extraction variant runs on each document. The two
// modes are mutually exclusive views of the same text, not a pipeline.
type Mode int

const (
	// ModeTable extracts the line item table from each document.
	ModeTable Mode = iota

	// ModeFields extracts the scalar invoice fields from each document.
	ModeFields
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeTable:
		return "table"
	case ModeFields:
		return "fields"
	default:
		return "unknown"
	}
}

// Input is one transcript to process.
type Input struct {
	Name string
	Data []byte
}

// Result is the outcome for one document. Exactly one of Items or Fields is
// populated, per the processor's mode; Err is set when the document could
// not be decoded at all.
type Result struct {
	ID       uuid.UUID
	Name     string
	Items    []tables.LineItem
	Fields   fields.FieldSet
	Warnings []pdfparse.Warning
	Err      error
}

// Processor runs one extraction mode over a batch of transcripts.
type Processor struct {
	mode   Mode
	logger *zap.Logger
}

// NewProcessor creates a processor for the given mode. A nil logger
// disables logging.
func NewProcessor(mode Mode, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{mode: mode, logger: logger}
}

// Process runs the batch in input order, one document at a time. Each result
// carries a fresh ID; results from earlier batches are never merged in. Once
// ctx is done the remaining documents are recorded with the context's error.
func (p *Processor) Process(ctx context.Context, inputs []Input) []Result {
	results := make([]Result, 0, len(inputs))
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{ID: uuid.New(), Name: in.Name, Err: err})
			continue
		}
		results = append(results, p.processOne(in))
	}
	return results
}

// ProcessTranscripts reads and processes transcript files in path order. A
// file that cannot be read is recorded as a failed result.
func (p *Processor) ProcessTranscripts(ctx context.Context, paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		name := filepath.Base(path)
		if err := ctx.Err(); err != nil {
			results = append(results, Result{ID: uuid.New(), Name: name, Err: err})
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			p.logger.Warn("transcript read failed", zap.String("path", path), zap.Error(err))
			results = append(results, Result{ID: uuid.New(), Name: name, Err: fmt.Errorf("read transcript: %w", err)})
			continue
		}
		results = append(results, p.processOne(Input{Name: name, Data: data}))
	}
	return results
}

func (p *Processor) processOne(in Input) Result {
	res := Result{ID: uuid.New(), Name: in.Name}
	ext := pdfparse.FromBytes(in.Data)

	switch p.mode {
	case ModeFields:
		res.Fields, res.Warnings, res.Err = ext.Fields()
	default:
		res.Items, res.Warnings, res.Err = ext.Items()
	}

	if res.Err != nil {
		p.logger.Warn("document failed",
			zap.String("name", in.Name),
			zap.String("id", res.ID.String()),
			zap.Error(res.Err),
		)
		return res
	}

	p.logger.Info("document processed",
		zap.String("name", in.Name),
		zap.String("id", res.ID.String()),
		zap.String("mode", p.mode.String()),
		zap.Int("items", len(res.Items)),
		zap.Int("warnings", len(res.Warnings)),
	)
	return res
}

// CollectItems flattens the items of all successful results into one list,
// renumbering IDs sequentially across the batch.
func CollectItems(results []Result) []tables.LineItem {
	var items []tables.LineItem
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		items = append(items, r.Items...)
	}
	for i := range items {
		items[i].ID = i + 1
	}
	return items
}

// Summary aggregates a batch's results.
type Summary struct {
	Documents int
	Failed    int
	Items     int
	Warnings  int
}

// Summarize tallies results into a Summary.
func Summarize(results []Result) Summary {
	s := Summary{Documents: len(results)}
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			continue
		}
		s.Items += len(r.Items)
		s.Warnings += len(r.Warnings)
	}
	return s
}
