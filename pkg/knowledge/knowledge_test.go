package knowledge

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLookup(t *testing.T) {
	base := Default()

	tests := []struct {
		name    string
		persona string
		wantErr bool
	}{
		{name: "researcher exists", persona: "researcher"},
		{name: "student exists", persona: "student"},
		{name: "analyst exists", persona: "analyst"},
		{name: "unknown persona", persona: "ghostwriter", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := base.Persona(tt.persona)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownPersona) {
					t.Fatalf("Persona(%q) error = %v, want ErrUnknownPersona", tt.persona, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Persona(%q) unexpected error: %v", tt.persona, err)
			}
			if len(p.Keywords["en"]) == 0 {
				t.Errorf("persona %q has empty en keyword set", tt.persona)
			}
			if len(p.FocusAreas) == 0 {
				t.Errorf("persona %q has no focus areas", tt.persona)
			}
		})
	}
}

func TestJobLookup(t *testing.T) {
	base := Default()

	if _, err := base.Job("literature_review"); err != nil {
		t.Fatalf("Job(literature_review) error: %v", err)
	}
	if _, err := base.Job("juggling"); !errors.Is(err, ErrUnknownJob) {
		t.Fatalf("Job(juggling) error = %v, want ErrUnknownJob", err)
	}
}

func TestKeywordLanguageFallback(t *testing.T) {
	base := Default()
	p, err := base.Persona("researcher")
	if err != nil {
		t.Fatal(err)
	}

	// Spanish has a dedicated set.
	kw, fell := p.KeywordsFor("es")
	if fell {
		t.Error("es keyword lookup reported fallback")
	}
	if _, ok := kw["metodología"]; !ok {
		t.Error("es keyword set missing metodología")
	}

	// German does not; must fall back to en.
	kw, fell = p.KeywordsFor("de")
	if !fell {
		t.Error("de keyword lookup did not report fallback")
	}
	if _, ok := kw["methodology"]; !ok {
		t.Error("fallback keyword set missing methodology")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "knowledge.yaml")
	content := `
personas:
  - id: journalist
    keywords:
      en:
        scoop: 10
        interview: 8
        source: 7
    focus_areas:
      - storytelling
    content_weights:
      narrative: 0.9
jobs:
  - id: fact_check
    focus: verify claims against evidence
    keywords:
      en:
        claim: 9
        evidence: 10
        verify: 8
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	base, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}

	// New entries are merged in.
	p, err := base.Persona("journalist")
	if err != nil {
		t.Fatalf("Persona(journalist) error: %v", err)
	}
	if p.Keywords["en"]["scoop"] != 10 {
		t.Errorf("journalist scoop weight = %d, want 10", p.Keywords["en"]["scoop"])
	}
	j, err := base.Job("fact_check")
	if err != nil {
		t.Fatalf("Job(fact_check) error: %v", err)
	}
	if j.Focus != "verify claims against evidence" {
		t.Errorf("job focus = %q", j.Focus)
	}

	// Built-ins survive the merge.
	if _, err := base.Persona("researcher"); err != nil {
		t.Errorf("built-in researcher lost after merge: %v", err)
	}
}

func TestLoadFileRejectsMissingEnglishSet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	content := `
personas:
  - id: broken
    keywords:
      fr:
        enquête: 9
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("LoadFile accepted persona without en keyword set")
	}
}

func TestSectionKeywordsFallback(t *testing.T) {
	if got := SectionKeywords("xx"); len(got) == 0 || got[0] != "introduction" {
		t.Errorf("SectionKeywords(xx) = %v, want english set", got)
	}
	es := SectionKeywords("es")
	if es[0] != "introducción" {
		t.Errorf("SectionKeywords(es) = %v", es)
	}
}
