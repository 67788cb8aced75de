package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/healthmate/healthmate-api/internal/model"
)

// Default values substituted for fields the model omitted
const (
	DefaultSummaryEnglish = "Analysis completed"
	DefaultSummaryUrdu    = "Tahleel mukammal ho gayi"
	DefaultHealthScore    = 70
)

// ParseError reports that the model's text was not valid JSON after
// fence-stripping. Raw carries the cleaned text for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InsightFields is the normalized shape of the model's reply
type InsightFields struct {
	SummaryEnglish  string              `json:"summaryEnglish"`
	SummaryUrdu     string              `json:"summaryUrdu"`
	KeyFindings     []model.Finding     `json:"keyFindings"`
	Recommendations model.BilingualList `json:"recommendations"`
	DoctorQuestions model.BilingualList `json:"doctorQuestions"`
	Suggestions     model.Suggestions   `json:"suggestions"`
	HealthScore     *int                `json:"healthScore"`
}

// fieldDefaults is the declarative field-to-default mapping applied after
// parse. Each entry substitutes one missing field.
var fieldDefaults = []func(*InsightFields){
	func(f *InsightFields) {
		if f.SummaryEnglish == "" {
			f.SummaryEnglish = DefaultSummaryEnglish
		}
	},
	func(f *InsightFields) {
		if f.SummaryUrdu == "" {
			f.SummaryUrdu = DefaultSummaryUrdu
		}
	},
	func(f *InsightFields) {
		if f.KeyFindings == nil {
			f.KeyFindings = []model.Finding{}
		}
	},
	func(f *InsightFields) {
		if f.Recommendations.English == nil {
			f.Recommendations.English = []string{}
		}
		if f.Recommendations.Urdu == nil {
			f.Recommendations.Urdu = []string{}
		}
	},
	func(f *InsightFields) {
		if f.DoctorQuestions.English == nil {
			f.DoctorQuestions.English = []string{}
		}
		if f.DoctorQuestions.Urdu == nil {
			f.DoctorQuestions.Urdu = []string{}
		}
	},
	func(f *InsightFields) {
		if f.Suggestions.Foods == nil {
			f.Suggestions.Foods = []string{}
		}
		if f.Suggestions.Lifestyle == nil {
			f.Suggestions.Lifestyle = []string{}
		}
		if f.Suggestions.Precautions == nil {
			f.Suggestions.Precautions = []string{}
		}
	},
	func(f *InsightFields) {
		if f.HealthScore == nil {
			score := DefaultHealthScore
			f.HealthScore = &score
		}
	},
}

// Normalize strips any code-fence markers the model wrapped its answer in,
// parses the remainder as JSON, and substitutes defaults for missing fields.
// Sub-field values (finding status, etc.) are stored as given.
func Normalize(raw string) (*InsightFields, error) {
	clean := stripFences(raw)

	var fields InsightFields
	if err := json.Unmarshal([]byte(clean), &fields); err != nil {
		return nil, &ParseError{Raw: clean, Err: err}
	}

	for _, apply := range fieldDefaults {
		apply(&fields)
	}
	return &fields, nil
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
