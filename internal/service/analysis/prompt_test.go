package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthmate/healthmate-api/internal/model"
)

func TestBuildReportPrompt(t *testing.T) {
	prompt := BuildReportPrompt(model.ReportTypeBloodTest)

	assert.Contains(t, prompt, "Analyze this blood_test report/prescription")
	assert.Contains(t, prompt, "summaryEnglish")
	assert.Contains(t, prompt, "summaryUrdu")
	assert.Contains(t, prompt, "keyFindings")
	assert.Contains(t, prompt, "doctorQuestions")
	assert.Contains(t, prompt, "healthScore")
	assert.Contains(t, prompt, "Roman Urdu")

	// deterministic for a given category
	assert.Equal(t, prompt, BuildReportPrompt(model.ReportTypeBloodTest))
	assert.NotEqual(t, prompt, BuildReportPrompt(model.ReportTypeXRay))
}
