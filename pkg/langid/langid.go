// Package langid wraps lingua-go behind the pipeline's language-detection
// contract: Detect(text) returns an ISO 639-1 code or "unknown".
package langid

import (
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/dtnitsch/personadoc/models"
)

// Detector classifies the language of a text block.
type Detector interface {
	Detect(text string) string
}

// minTextLength guards against classifying fragments too short to carry a
// reliable language signal.
const minTextLength = 10

// supported mirrors the languages the knowledge base carries keyword or
// stop-word data for. Restricting the detector keeps classification fast
// and avoids spurious matches against languages we cannot score anyway.
var supported = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Hindi,
}

type linguaDetector struct {
	detector lingua.LanguageDetector
}

// New builds a detector over the supported language set. Model loading is
// lazy inside lingua; construction itself is cheap.
func New() Detector {
	return &linguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(supported...).
			Build(),
	}
}

func (d *linguaDetector) Detect(text string) string {
	text = strings.TrimSpace(text)
	if len(text) < minTextLength {
		return models.LanguageUnknown
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return models.LanguageUnknown
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
