package decoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/wonderhao123/pdf-parse/model"
	"github.com/wonderhao123/pdf-parse/text"
)

// transcriptSchema describes the serialized form of engine output: page
// count, optional metadata, and per-page fragment lists. A page may carry an
// error string instead of fragments when the engine failed on that page.
const transcriptSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["pageCount", "pages"],
	"properties": {
		"pageCount": {"type": "integer", "minimum": 0},
		"metadata": {
			"type": "object",
			"properties": {
				"title": {"type": "string"},
				"author": {"type": "string"},
				"subject": {"type": "string"},
				"creator": {"type": "string"},
				"producer": {"type": "string"},
				"creationDate": {"type": "string"},
				"modificationDate": {"type": "string"}
			}
		},
		"pages": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["pageNumber"],
				"properties": {
					"pageNumber": {"type": "integer", "minimum": 1},
					"error": {"type": "string"},
					"fragments": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["text"],
							"properties": {
								"text": {"type": "string"},
								"x": {"type": "number"},
								"y": {"type": "number"},
								"width": {"type": "number"},
								"height": {"type": "number"}
							}
						}
					}
				}
			}
		}
	}
}`

var compiledTranscriptSchema = mustCompileSchema(transcriptSchema)

func mustCompileSchema(schemaJSON string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("transcript.json", strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("add transcript schema: %v", err))
	}
	schema, err := compiler.Compile("transcript.json")
	if err != nil {
		panic(fmt.Sprintf("compile transcript schema: %v", err))
	}
	return schema
}

// transcript mirrors the JSON wire form.
type transcript struct {
	PageCount int                `json:"pageCount"`
	Metadata  transcriptMetadata `json:"metadata"`
	Pages     []transcriptPage   `json:"pages"`
}

type transcriptMetadata struct {
	Title            string `json:"title"`
	Author           string `json:"author"`
	Subject          string `json:"subject"`
	Creator          string `json:"creator"`
	Producer         string `json:"producer"`
	CreationDate     string `json:"creationDate"`
	ModificationDate string `json:"modificationDate"`
}

type transcriptPage struct {
	PageNumber int                  `json:"pageNumber"`
	Error      string               `json:"error"`
	Fragments  []transcriptFragment `json:"fragments"`
}

type transcriptFragment struct {
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// JSONDecoder is a Decoder over a serialized engine transcript. It validates
// the payload against the transcript schema on construction; a payload that
// fails validation is a decode failure for the whole document.
type JSONDecoder struct {
	doc transcript
}

// NewJSONDecoder parses and validates a transcript payload.
func NewJSONDecoder(data []byte) (*JSONDecoder, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}
	if err := compiledTranscriptSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("transcript does not match schema: %w", err)
	}

	var doc transcript
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}

	return &JSONDecoder{doc: doc}, nil
}

// OpenTranscript reads and validates a transcript file.
func OpenTranscript(path string) (*JSONDecoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	dec, err := NewJSONDecoder(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dec, nil
}

// PageCount returns the page count the engine reported.
func (d *JSONDecoder) PageCount() int {
	return d.doc.PageCount
}

// Metadata returns the document properties, defaulting Title and Author to
// "Unknown" when the engine reported none.
func (d *JSONDecoder) Metadata() model.Metadata {
	m := d.doc.Metadata
	meta := model.Metadata{
		Title:            m.Title,
		Author:           m.Author,
		Subject:          m.Subject,
		Creator:          m.Creator,
		Producer:         m.Producer,
		CreationDate:     m.CreationDate,
		ModificationDate: m.ModificationDate,
	}
	if meta.Title == "" {
		meta.Title = "Unknown"
	}
	if meta.Author == "" {
		meta.Author = "Unknown"
	}
	return meta
}

// PageFragments returns the fragments of one 0-based page. A page the engine
// flagged with an error, or a page missing from the transcript, returns an
// error so the document fold records the failure and moves on.
func (d *JSONDecoder) PageFragments(pageIndex int) ([]text.Fragment, error) {
	if pageIndex < 0 || pageIndex >= d.doc.PageCount {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", pageIndex+1, d.doc.PageCount)
	}
	if pageIndex >= len(d.doc.Pages) {
		return nil, fmt.Errorf("page %d missing from transcript", pageIndex+1)
	}

	page := d.doc.Pages[pageIndex]
	if page.Error != "" {
		return nil, fmt.Errorf("page %d: %s", page.PageNumber, page.Error)
	}

	fragments := make([]text.Fragment, len(page.Fragments))
	for i, f := range page.Fragments {
		fragments[i] = text.Fragment{
			Text:   f.Text,
			X:      f.X,
			Y:      f.Y,
			Width:  f.Width,
			Height: f.Height,
		}
	}
	return fragments, nil
}
