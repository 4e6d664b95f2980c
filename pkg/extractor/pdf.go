package extractor

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/dtnitsch/personadoc/models"
)

// PDFExtractor reads page-scoped text from PDF content streams via pdfcpu.
type PDFExtractor struct{}

// Extract returns the segments of one PDF in page order. Pages with no
// extractable text are skipped; a document where no page yields text is an
// extraction error.
func (e *PDFExtractor) Extract(path string) ([]models.Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	document := filepath.Base(path)
	var segments []models.Segment
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pageText := extractPageText(ctx, pageNr)
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		segments = append(segments, pageSegments(document, pageNr, splitBlocks(pageText))...)
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("no text content found in %s", document)
	}
	return segments, nil
}

// extractPageText pulls the raw text of a single page from its content
// stream.
func extractPageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return textFromStream(data)
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)`)

// textFromStream walks the content-stream operators that carry text.
// Tj/TJ/' show text; Td/TD/T* reposition, which we map to separators so
// distinct lines do not run together.
func textFromStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(decodePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		case bytes.HasSuffix(line, []byte("ET")):
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// decodePDFString resolves the escape sequences of a PDF literal string.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r', 'f', 'b':
			sb.WriteByte(' ')
		case '(', ')', '\\':
			sb.WriteByte(raw[i])
		default:
			// Octal escapes: up to three digits.
			if raw[i] >= '0' && raw[i] <= '7' {
				val := 0
				digits := 0
				for digits < 3 && i < len(raw) && raw[i] >= '0' && raw[i] <= '7' {
					val = val*8 + int(raw[i]-'0')
					i++
					digits++
				}
				i--
				if val >= 32 && val < 127 {
					sb.WriteByte(byte(val))
				}
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

// splitBlocks cuts page text into paragraph-like blocks. Blank lines are
// hard separators; single newlines inside a paragraph are joined.
func splitBlocks(pageText string) []string {
	var blocks []string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		blocks = append(blocks, strings.Join(current, " "))
		current = nil
	}

	for _, line := range strings.Split(pageText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		// A heading line is its own block even without surrounding blanks.
		if IsHeading(line) {
			flush()
			blocks = append(blocks, line)
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}
