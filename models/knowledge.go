package models

// PersonaProfile describes a user role's content preferences. Keyword sets
// are keyed by ISO 639-1 language code; weights use the 1-10 scale where 10
// marks the strongest signal for the persona. Profiles are loaded once at
// startup and treated as read-only.
type PersonaProfile struct {
	ID             string                    `yaml:"id"`
	Keywords       map[string]map[string]int `yaml:"keywords"`
	Sections       []string                  `yaml:"sections"`
	FocusAreas     []string                  `yaml:"focus_areas"`
	ContentWeights map[string]float64        `yaml:"content_weights"`
}

// KeywordsFor returns the keyword set for a language, falling back to the
// "en" set when the language has no dedicated entries. The second return
// value reports whether a fallback happened.
func (p PersonaProfile) KeywordsFor(lang string) (map[string]int, bool) {
	if kw, ok := p.Keywords[lang]; ok && len(kw) > 0 {
		return kw, false
	}
	return p.Keywords["en"], lang != "en"
}

// JobPattern describes a job-to-be-done: the task context that shapes which
// content is valuable. Same lifecycle and language keying as PersonaProfile.
type JobPattern struct {
	ID             string                    `yaml:"id"`
	Focus          string                    `yaml:"focus"`
	Keywords       map[string]map[string]int `yaml:"keywords"`
	Sections       []string                  `yaml:"sections"`
	ContentWeights map[string]float64        `yaml:"content_weights"`
}

// KeywordsFor returns the job keyword set for a language with "en" fallback.
func (j JobPattern) KeywordsFor(lang string) (map[string]int, bool) {
	if kw, ok := j.Keywords[lang]; ok && len(kw) > 0 {
		return kw, false
	}
	return j.Keywords["en"], lang != "en"
}
