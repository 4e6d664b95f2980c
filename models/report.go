package models

// ReportMetadata summarizes a single analysis run. Field names are part of
// the output contract and must stay stable.
type ReportMetadata struct {
	InputDocuments        []string `json:"input_documents"`
	Persona               string   `json:"persona"`
	JobToBeDone           string   `json:"job_to_be_done"`
	ProcessingTimestamp   string   `json:"processing_timestamp"`
	TotalSectionsFound    int      `json:"total_sections_found"`
	TotalSubsectionsFound int      `json:"total_subsections_found"`
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
	DetectedLanguages     []string `json:"detected_languages"`
	Partial               bool     `json:"partial,omitempty"`
	PartialReason         string   `json:"partial_reason,omitempty"`
	SectionShortfall      bool     `json:"section_shortfall,omitempty"`
	SkippedDocuments      []string `json:"skipped_documents,omitempty"`
}

// ExtractedSection is one ranked entry in the section-level result.
type ExtractedSection struct {
	Document           string  `json:"document"`
	Page               int     `json:"page"`
	SectionTitle       string  `json:"section_title"`
	ImportanceRank     int     `json:"importance_rank"`
	RelevanceScore     float64 `json:"relevance_score"`
	SelectionReasoning string  `json:"selection_reasoning"`
	ContentPreview     string  `json:"content_preview"`
	Language           string  `json:"language"`
}

// SubsectionEntry is one refined-text entry in the sub-section analysis.
type SubsectionEntry struct {
	Document           string   `json:"document"`
	Page               int      `json:"page"`
	SectionTitle       string   `json:"section_title"`
	RefinedText        string   `json:"refined_text"`
	RelevanceScore     float64  `json:"relevance_score"`
	SelectionReasoning string   `json:"selection_reasoning"`
	PersonaFocus       []string `json:"persona_focus"`
	JobAlignment       string   `json:"job_alignment"`
	Language           string   `json:"language"`
}

// Report is the final output of a run. It is assembled once and never
// mutated afterwards.
type Report struct {
	Metadata           ReportMetadata     `json:"metadata"`
	ExtractedSections  []ExtractedSection `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionEntry  `json:"subsection_analysis"`
}
