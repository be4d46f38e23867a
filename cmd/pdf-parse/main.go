package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	pdfparse "github.com/wonderhao123/pdf-parse"
	"github.com/wonderhao123/pdf-parse/batch"
	"github.com/wonderhao123/pdf-parse/export"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		dir     = flag.String("dir", "", "directory of transcript JSON files to process (required)")
		out     = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		mode    = flag.String("mode", "table", "extraction mode: table or fields")
		csvPath = flag.String("csv", "", "also write a CSV export to this path (table mode only)")
	)
	flag.Parse()

	// Validate required flags
	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	var procMode batch.Mode
	switch *mode {
	case "table":
		procMode = batch.ModeTable
	case "fields":
		procMode = batch.ModeFields
	default:
		printError("Error: --mode must be table or fields\n")
		os.Exit(1)
	}

	// If output file not specified, use parent directory with default filename
	if *out == "" {
		parentDir := filepath.Dir(*dir)
		*out = filepath.Join(parentDir, "items.xlsx")
	}

	// Env (optional .env file)
	_ = godotenv.Load()

	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Collect transcripts
	paths, err := filepath.Glob(filepath.Join(*dir, "*.json"))
	if err != nil {
		log.Fatalf("scanning directory: %v", err)
	}
	if len(paths) == 0 {
		log.Fatalf("no transcript files found in %s", *dir)
	}
	sort.Strings(paths)

	// Process the batch
	log.Infow("starting batch", "dir", *dir, "documents", len(paths), "mode", *mode)
	processor := batch.NewProcessor(procMode, logger)
	results := processor.ProcessTranscripts(ctx, paths)

	summary := batch.Summarize(results)
	log.Infow("batch finished",
		"documents", summary.Documents,
		"failed", summary.Failed,
		"items", summary.Items,
		"warnings", summary.Warnings,
	)

	for _, r := range results {
		if r.Err != nil {
			log.Warnw("document failed", "name", r.Name, "error", r.Err)
			continue
		}
		if len(r.Warnings) > 0 {
			log.Warnw("document warnings", "name", r.Name, "detail", pdfparse.FormatWarnings(r.Warnings))
		}
	}

	switch procMode {
	case batch.ModeFields:
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			fmt.Printf("%s\tinvoice=%s\titem=%s\tprice=%s\n",
				r.Name, r.Fields.InvoiceNumber.Value, r.Fields.Item.Value, r.Fields.Price.Value)
		}

	default:
		items := batch.CollectItems(results)
		if err := export.SaveXLSX(*out, items); err != nil {
			log.Fatalf("writing XLSX: %v", err)
		}
		log.Infow("wrote XLSX", "path", *out, "items", len(items))

		if *csvPath != "" {
			f, err := os.Create(*csvPath)
			if err != nil {
				log.Fatalf("creating CSV: %v", err)
			}
			if err := export.WriteCSV(f, items); err != nil {
				f.Close()
				log.Fatalf("writing CSV: %v", err)
			}
			if err := f.Close(); err != nil {
				log.Fatalf("closing CSV: %v", err)
			}
			log.Infow("wrote CSV", "path", *csvPath, "items", len(items))
		}
	}
}
