// Package extractor turns input documents into segments: titled text blocks
// tied to a document page. PDF and HTML sources are supported; both emit
// the same Segment records so the rest of the pipeline never sees the
// source format.
package extractor

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dtnitsch/personadoc/models"
)

// Extractor produces the finite segment sequence of one document. Extract
// must not mutate global state; segments are returned in reading order.
type Extractor interface {
	Extract(path string) ([]models.Segment, error)
}

// ForPath returns the extractor for a file based on its extension.
func ForPath(path string) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported document type: %s", filepath.Base(path))
	}
}

// SupportedFile reports whether a filename has a recognized extension.
func SupportedFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".html", ".htm":
		return true
	}
	return false
}

// headingPatterns match numbered and labeled headings:
// "1. Introduction", "2.3 Results", "ALL CAPS HEADINGS", "Chapter 4".
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\.\s+\p{Lu}`),
	regexp.MustCompile(`^\d+\.\d+\s+\p{Lu}`),
	regexp.MustCompile(`^[\p{Lu}][\p{Lu}\s]{3,}$`),
	regexp.MustCompile(`^Chapter\s+\d+`),
	regexp.MustCompile(`^Section\s+\d+`),
}

// headingKeywords are section names that mark a line as a heading even
// without numbering or capitalization cues.
var headingKeywords = map[string]struct{}{
	"introduction": {}, "overview": {}, "summary": {}, "conclusion": {},
	"abstract": {}, "background": {}, "methodology": {}, "results": {},
	"discussion": {}, "references": {},
}

// IsHeading classifies a text line as a section heading.
func IsHeading(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) < 3 || len(text) > 200 {
		return false
	}
	for _, pattern := range headingPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	lower := strings.ToLower(strings.TrimRight(text, ":."))
	if _, ok := headingKeywords[lower]; ok {
		return true
	}
	// Short title-cased lines without terminal punctuation read as headings.
	if len(text) <= 80 && !strings.ContainsAny(text, ".!?") {
		words := strings.Fields(text)
		if len(words) >= 1 && len(words) <= 8 {
			first := []rune(words[0])
			if first[0] >= 'A' && first[0] <= 'Z' {
				titled := 0
				for _, w := range words {
					r := []rune(w)
					if r[0] >= 'A' && r[0] <= 'Z' {
						titled++
					}
				}
				return titled*2 >= len(words)
			}
		}
	}
	return false
}

// maxBodyBlocks caps how many body paragraphs attach to one heading before
// a new untitled segment starts.
const maxBodyBlocks = 5

// pageSegments assembles the segments of one page from classified blocks.
// A heading opens a titled segment that absorbs the following body blocks;
// body text before any heading becomes an untitled content segment with a
// synthesized title.
func pageSegments(document string, page int, blocks []string) []models.Segment {
	var segments []models.Segment
	var title string
	var body []string
	titled := false

	flush := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		if title == "" && text == "" {
			body = nil
			return
		}
		if text == "" {
			text = title
		}
		seg := models.NewSegment(document, page, title, text)
		seg.Heading = titled
		if title == "" {
			seg.SectionTitle = fmt.Sprintf("Content from page %d", page)
		}
		segments = append(segments, seg)
		body = nil
	}

	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if IsHeading(block) {
			flush()
			title = block
			titled = true
			continue
		}
		if len(body) >= maxBodyBlocks {
			flush()
			title = ""
			titled = false
		}
		body = append(body, block)
	}
	flush()
	return segments
}
