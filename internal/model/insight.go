package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Disclaimer is attached to every stored insight
const Disclaimer = "This AI analysis is for informational purposes only and should not replace professional medical advice."

// FindingStatus tags a key finding. Model output is stored as given; the
// closed set below is what the prompt asks for.
type FindingStatus string

const (
	FindingStatusNormal   FindingStatus = "normal"
	FindingStatusHigh     FindingStatus = "high"
	FindingStatusLow      FindingStatus = "low"
	FindingStatusCritical FindingStatus = "critical"
)

// Finding is one key finding extracted from a report
type Finding struct {
	Parameter   string        `json:"parameter"`
	Value       string        `json:"value"`
	NormalRange string        `json:"normalRange"`
	Status      FindingStatus `json:"status"`
	Explanation string        `json:"explanation"`
}

// BilingualList pairs English and Roman Urdu phrasings
type BilingualList struct {
	English []string `json:"english"`
	Urdu    []string `json:"urdu"`
}

// Suggestions groups lifestyle advice by category
type Suggestions struct {
	Foods       []string `json:"foods"`
	Lifestyle   []string `json:"lifestyle"`
	Precautions []string `json:"precautions"`
}

// Insight is the structured bilingual AI analysis of one report. At most one
// insight exists per report, enforced by a unique index on report_id.
type Insight struct {
	Base
	ReportID uuid.UUID `json:"report_id" db:"report_id"`
	UserID   uuid.UUID `json:"user_id" db:"user_id"`

	SummaryEnglish string `json:"summary_english" db:"summary_english"`
	SummaryUrdu    string `json:"summary_urdu" db:"summary_urdu"`

	KeyFindingsJSON     json.RawMessage `json:"-" db:"key_findings"`
	RecommendationsJSON json.RawMessage `json:"-" db:"recommendations"`
	DoctorQuestionsJSON json.RawMessage `json:"-" db:"doctor_questions"`
	SuggestionsJSON     json.RawMessage `json:"-" db:"suggestions"`

	KeyFindings     []Finding     `json:"key_findings" db:"-"`
	Recommendations BilingualList `json:"recommendations" db:"-"`
	DoctorQuestions BilingualList `json:"doctor_questions" db:"-"`
	Suggestions     Suggestions   `json:"suggestions" db:"-"`

	HealthScore int    `json:"health_score" db:"health_score"`
	Disclaimer  string `json:"disclaimer" db:"disclaimer"`
}
