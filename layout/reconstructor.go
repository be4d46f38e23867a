package layout

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/wonderhao123/pdf-parse/text"
)

// Config holds configuration for line reconstruction.
type Config struct {
	// LineBreakFactor is the fraction of the average fragment height that a
	// vertical gap must exceed to start a new line (default: 0.8)
	LineBreakFactor float64

	// ParagraphBreakFactor is the multiple of the average fragment height
	// above which a vertical gap becomes a paragraph break (default: 2.0)
	ParagraphBreakFactor float64

	// WordGapThreshold is the horizontal gap, in page units, above which a
	// space is inserted between fragments on the same line (default: 5)
	WordGapThreshold float64

	// DefaultFragmentHeight substitutes for fragments that report no height
	// (default: 10)
	DefaultFragmentHeight float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		LineBreakFactor:       0.8,
		ParagraphBreakFactor:  2.0,
		WordGapThreshold:      5.0,
		DefaultFragmentHeight: 10.0,
	}
}

// Reconstructor converts a page's fragment set into a single string with
// explicit line and paragraph breaks.
type Reconstructor struct {
	config Config
}

// NewReconstructor creates a reconstructor with default configuration.
func NewReconstructor() *Reconstructor {
	return &Reconstructor{config: DefaultConfig()}
}

// NewReconstructorWithConfig creates a reconstructor with custom configuration.
func NewReconstructorWithConfig(config Config) *Reconstructor {
	return &Reconstructor{config: config}
}

var (
	multiSpaceRe    = regexp.MustCompile(` +`)
	lineLeadSpaceRe = regexp.MustCompile(`\n +`)
	lineTailSpaceRe = regexp.MustCompile(` +\n`)
)

// Reconstruct orders the fragments geometrically and assembles the page text.
// Single newlines separate lines, double newlines separate paragraphs. The
// result depends only on the fragment set: identical input, in any order,
// yields identical output. An empty fragment set yields an empty string.
func (r *Reconstructor) Reconstruct(fragments []text.Fragment) string {
	if len(fragments) == 0 {
		return ""
	}

	sorted := r.sortFragments(fragments)

	avgHeight := r.averageHeight(sorted)
	lineThreshold := avgHeight * r.config.LineBreakFactor
	paragraphThreshold := avgHeight * r.config.ParagraphBreakFactor

	var sb strings.Builder
	var lastY, lastEndX float64
	var lastByte byte
	first := true

	for _, frag := range sorted {
		if !first {
			yDiff := math.Abs(lastY - frag.Y)
			if yDiff > lineThreshold {
				if yDiff > paragraphThreshold {
					sb.WriteString("\n\n")
				} else {
					sb.WriteString("\n")
				}
				lastByte = '\n'
			} else if frag.X-lastEndX > r.config.WordGapThreshold && lastByte != ' ' && lastByte != '\n' {
				sb.WriteString(" ")
				lastByte = ' '
			}
		}

		sb.WriteString(frag.Text)
		if frag.Text != "" {
			lastByte = frag.Text[len(frag.Text)-1]
		}
		lastY = frag.Y
		lastEndX = frag.EndX()
		first = false
	}

	return cleanWhitespace(norm.NFKC.String(sb.String()))
}

// sortFragments orders fragments by descending Y (top of page first), then by
// ascending X for fragments judged to share a line. Whole-unit Y differences
// decide line membership during the sort; finer separation happens in the
// threshold walk afterwards.
func (r *Reconstructor) sortFragments(fragments []text.Fragment) []text.Fragment {
	sorted := make([]text.Fragment, len(fragments))
	copy(sorted, fragments)

	sort.SliceStable(sorted, func(i, j int) bool {
		yDiff := math.Round(sorted[i].Y - sorted[j].Y)
		if yDiff != 0 {
			return yDiff > 0
		}
		return sorted[i].X < sorted[j].X
	})

	return sorted
}

// averageHeight returns the mean fragment height, substituting the configured
// default for fragments that report none.
func (r *Reconstructor) averageHeight(fragments []text.Fragment) float64 {
	if len(fragments) == 0 {
		return r.config.DefaultFragmentHeight
	}
	total := 0.0
	for _, f := range fragments {
		h := f.Height
		if h <= 0 {
			h = r.config.DefaultFragmentHeight
		}
		total += h
	}
	return total / float64(len(fragments))
}

// cleanWhitespace collapses runs of spaces, strips spaces adjacent to line
// breaks, and trims the result.
func cleanWhitespace(s string) string {
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = lineLeadSpaceRe.ReplaceAllString(s, "\n")
	s = lineTailSpaceRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
