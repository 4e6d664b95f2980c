package knowledge

import "github.com/dtnitsch/personadoc/models"

// Built-in knowledge tables. Keyword weights use a 1-10 scale where 10 is
// the strongest signal for the persona or job.

func defaultPersonas() map[string]models.PersonaProfile {
	return map[string]models.PersonaProfile{
		"researcher": {
			ID: "researcher",
			Keywords: map[string]map[string]int{
				"en": {
					"methodology": 10, "hypothesis": 9, "experiment": 9, "analysis": 8,
					"findings": 8, "conclusion": 8, "literature review": 10, "data": 7,
					"statistics": 8, "results": 8, "discussion": 8, "research question": 9,
					"sampling": 7, "variables": 7, "correlation": 8, "significance": 8,
					"peer review": 9, "citation": 7, "references": 7, "abstract": 8,
					"background": 7, "objectives": 8, "limitations": 7, "future work": 7,
				},
				"es": {
					"metodología": 10, "hipótesis": 9, "experimento": 9, "análisis": 8,
					"hallazgos": 8, "conclusión": 8, "revisión literaria": 10, "datos": 7,
					"estadísticas": 8, "resultados": 8, "discusión": 8, "muestreo": 7,
					"variables": 7, "correlación": 8, "significancia": 8, "cita": 7,
					"referencias": 7, "resumen": 8, "antecedentes": 7, "objetivos": 8,
					"limitaciones": 7, "trabajo futuro": 7,
				},
			},
			Sections:   []string{"introduction", "methodology", "results", "discussion", "conclusion", "abstract", "literature review"},
			FocusAreas: []string{"research design", "data analysis", "statistical methods", "findings interpretation"},
			ContentWeights: map[string]float64{
				"technical_depth":      0.9,
				"methodology_focus":    0.8,
				"data_analysis":        0.9,
				"conceptual_framework": 0.7,
			},
		},
		"student": {
			ID: "student",
			Keywords: map[string]map[string]int{
				"en": {
					"concept": 9, "definition": 9, "example": 8, "explanation": 8,
					"theory": 8, "principle": 8, "formula": 8, "step-by-step": 9,
					"tutorial": 9, "practice": 8, "exercise": 8, "summary": 8,
					"key points": 9, "learning objectives": 9, "overview": 7,
					"introduction": 7, "basics": 8, "fundamentals": 8, "guide": 8,
					"how to": 8, "tips": 7, "common mistakes": 8, "review": 7,
				},
			},
			Sections:   []string{"introduction", "overview", "examples", "summary", "key concepts", "practice problems"},
			FocusAreas: []string{"fundamental concepts", "practical examples", "step-by-step explanations"},
			ContentWeights: map[string]float64{
				"clarity":      0.9,
				"examples":     0.8,
				"step_by_step": 0.8,
				"basics_focus": 0.9,
			},
		},
		"analyst": {
			ID: "analyst",
			Keywords: map[string]map[string]int{
				"en": {
					"trend": 9, "pattern": 9, "insight": 9, "analysis": 8,
					"comparison": 8, "benchmark": 8, "metric": 8, "kpi": 9,
					"performance": 8, "evaluation": 8, "assessment": 8, "recommendation": 9,
					"forecast": 9, "projection": 8, "market": 8, "industry": 7,
					"competitive": 8, "strategy": 8, "optimization": 8, "efficiency": 7,
					"roi": 9, "growth": 8, "opportunity": 8, "risk": 8,
				},
			},
			Sections:   []string{"executive summary", "analysis", "findings", "recommendations", "conclusions"},
			FocusAreas: []string{"data interpretation", "trend analysis", "business insights"},
			ContentWeights: map[string]float64{
				"data_driven": 0.9,
				"insights":    0.9,
				"actionable":  0.8,
				"strategic":   0.8,
			},
		},
	}
}

func defaultJobs() map[string]models.JobPattern {
	return map[string]models.JobPattern{
		"literature_review": {
			ID:    "literature_review",
			Focus: "comprehensive overview of existing research",
			Keywords: map[string]map[string]int{
				"en": {
					"literature": 10, "review": 9, "research": 8, "study": 8,
					"paper": 7, "publication": 7, "methodology": 8, "findings": 8,
					"conclusion": 8, "citation": 7, "references": 7, "background": 7,
					"existing work": 8, "previous research": 8, "gap": 8, "contribution": 7,
				},
			},
			Sections: []string{"literature review", "related work", "background", "methodology", "references"},
			ContentWeights: map[string]float64{
				"comprehensive": 0.9,
				"analytical":    0.8,
				"synthesis":     0.8,
				"critical":      0.7,
			},
		},
		"exam_preparation": {
			ID:    "exam_preparation",
			Focus: "essential concepts and examples for testing",
			Keywords: map[string]map[string]int{
				"en": {
					"concept": 9, "definition": 9, "formula": 8, "example": 8,
					"practice": 8, "key points": 9, "summary": 8, "review": 8,
					"important": 8, "essential": 8, "core": 8, "fundamental": 8,
					"test": 7, "exam": 7, "question": 7, "answer": 7,
				},
			},
			Sections: []string{"summary", "key concepts", "examples", "practice problems", "review"},
			ContentWeights: map[string]float64{
				"essential": 0.9,
				"clear":     0.8,
				"memorable": 0.7,
				"practical": 0.8,
			},
		},
	}
}

// sectionKeywords names the canonical document sections per language. Used
// by the structural signal to recognize high-value headings in running text.
var sectionKeywords = map[string][]string{
	"en": {"introduction", "methodology", "results", "discussion", "conclusion"},
	"es": {"introducción", "metodología", "resultados", "discusión", "conclusión"},
	"fr": {"introduction", "méthodologie", "résultats", "discussion", "conclusion"},
	"de": {"einführung", "methodik", "ergebnisse", "diskussion", "schlussfolgerung"},
	"hi": {"परिचय", "पद्धति", "परिणाम", "चर्चा", "निष्कर्ष"},
}

// technicalTerms marks vocabulary that signals technical depth per language.
var technicalTerms = map[string][]string{
	"en": {"analysis", "method", "process", "system", "data", "result"},
	"es": {"análisis", "método", "proceso", "sistema", "datos", "resultado"},
	"fr": {"analyse", "méthode", "processus", "système", "données", "résultat"},
	"de": {"analyse", "methode", "prozess", "system", "daten", "ergebnis"},
	"hi": {"विश्लेषण", "विधि", "प्रक्रिया", "सिस्टम", "डेटा", "परिणाम"},
}
