package extractor

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/dtnitsch/personadoc/models"
)

// HTMLExtractor distills an HTML document with go-readability and walks the
// clean content with goquery. HTML has no page structure, so every segment
// reports page 1.
type HTMLExtractor struct{}

// Extract returns the segments of one HTML file in reading order.
func (e *HTMLExtractor) Extract(path string) ([]models.Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open html: %w", err)
	}
	defer f.Close()

	document := filepath.Base(path)
	pageURL, _ := url.Parse("file:///" + document)

	parser := readability.NewParser()
	article, err := parser.Parse(f, pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability parse: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("content parse: %w", err)
	}

	var segments []models.Segment
	var title string
	var body []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		if title == "" && text == "" {
			body = nil
			return
		}
		if text == "" {
			text = title
		}
		seg := models.NewSegment(document, 1, title, text)
		seg.Heading = title != ""
		if title == "" {
			seg.SectionTitle = "Content from page 1"
		}
		segments = append(segments, seg)
		body = nil
	}

	doc.Find("h1,h2,h3,h4,p,li").Each(func(_ int, s *goquery.Selection) {
		text := normalizeWhitespace(s.Text())
		if text == "" {
			return
		}
		switch goquery.NodeName(s) {
		case "h1", "h2", "h3", "h4":
			flush()
			title = text
		default:
			if len(body) >= maxBodyBlocks {
				flush()
				title = ""
			}
			body = append(body, text)
		}
	})
	flush()

	if len(segments) == 0 {
		return nil, fmt.Errorf("no text content found in %s", document)
	}
	return segments, nil
}

// normalizeWhitespace collapses runs of whitespace and trims the result.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
