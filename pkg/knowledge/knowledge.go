// Package knowledge holds the static persona and job lookup tables. The
// built-in tables cover the shipped personas and jobs; a YAML file can
// extend or override them at startup. After loading, a Base is read-only.
package knowledge

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/dtnitsch/personadoc/models"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownPersona = errors.New("unknown persona id")
	ErrUnknownJob     = errors.New("unknown job id")
)

// Base is the immutable knowledge base handed to the pipeline at startup.
type Base struct {
	personas map[string]models.PersonaProfile
	jobs     map[string]models.JobPattern
}

// Default returns a Base with the built-in personas and jobs.
func Default() *Base {
	return &Base{personas: defaultPersonas(), jobs: defaultJobs()}
}

// fileFormat is the YAML layout of a knowledge override file.
type fileFormat struct {
	Personas []models.PersonaProfile `yaml:"personas"`
	Jobs     []models.JobPattern     `yaml:"jobs"`
}

// LoadFile merges persona and job definitions from a YAML file over the
// built-in tables. Entries with an existing id replace the built-in entry.
func LoadFile(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge file: %w", err)
	}

	var file fileFormat
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge file: %w", err)
	}

	base := Default()
	for _, p := range file.Personas {
		if p.ID == "" {
			return nil, fmt.Errorf("knowledge file: persona with empty id")
		}
		if len(p.Keywords["en"]) == 0 {
			return nil, fmt.Errorf("knowledge file: persona %q has no \"en\" keyword set", p.ID)
		}
		base.personas[p.ID] = p
	}
	for _, j := range file.Jobs {
		if j.ID == "" {
			return nil, fmt.Errorf("knowledge file: job with empty id")
		}
		if len(j.Keywords["en"]) == 0 {
			return nil, fmt.Errorf("knowledge file: job %q has no \"en\" keyword set", j.ID)
		}
		base.jobs[j.ID] = j
	}
	return base, nil
}

// Persona returns the profile for an id. A missing id is a configuration
// error, not a fallback.
func (b *Base) Persona(id string) (models.PersonaProfile, error) {
	p, ok := b.personas[id]
	if !ok {
		return models.PersonaProfile{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownPersona, id, b.PersonaIDs())
	}
	return p, nil
}

// Job returns the pattern for an id; a missing id is a configuration error.
func (b *Base) Job(id string) (models.JobPattern, error) {
	j, ok := b.jobs[id]
	if !ok {
		return models.JobPattern{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownJob, id, b.JobIDs())
	}
	return j, nil
}

// PersonaIDs returns the known persona ids in sorted order.
func (b *Base) PersonaIDs() []string {
	ids := make([]string, 0, len(b.personas))
	for id := range b.personas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// JobIDs returns the known job ids in sorted order.
func (b *Base) JobIDs() []string {
	ids := make([]string, 0, len(b.jobs))
	for id := range b.jobs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SectionKeywords returns the localized names of high-value document
// sections for a language, defaulting to English.
func SectionKeywords(lang string) []string {
	if kw, ok := sectionKeywords[lang]; ok {
		return kw
	}
	return sectionKeywords["en"]
}

// TechnicalTerms returns localized technical vocabulary markers for a
// language, defaulting to English.
func TechnicalTerms(lang string) []string {
	if terms, ok := technicalTerms[lang]; ok {
		return terms
	}
	return technicalTerms["en"]
}
