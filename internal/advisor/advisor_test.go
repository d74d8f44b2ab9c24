package advisor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkanyika/shamba/internal/domain"
)

func TestParseDiagnosisPlainJSON(t *testing.T) {
	raw := `{
		"disease": "Leaf Spot Disease",
		"confidence": 0.85,
		"description": "Fungal infection",
		"treatments": {"organic": ["Neem oil"], "chemical": ["Mancozeb"], "preventive": ["Rotation"]},
		"severity": "medium"
	}`

	diag := ParseDiagnosis(raw)
	require.NotNil(t, diag)
	assert.Equal(t, "Leaf Spot Disease", diag.Disease)
	assert.Equal(t, 0.85, diag.Confidence)
	assert.Equal(t, domain.SeverityMedium, diag.Severity)
	assert.Equal(t, []string{"Neem oil"}, diag.Treatments.Organic)
}

func TestParseDiagnosisWrappedInProse(t *testing.T) {
	raw := `Here is my analysis of the symptoms:

{"disease": "Powdery Mildew", "confidence": 0.78, "description": "White coating", "treatments": {"organic": [], "chemical": [], "preventive": []}, "severity": "low"}

Let me know if you need more detail.`

	diag := ParseDiagnosis(raw)
	assert.Equal(t, "Powdery Mildew", diag.Disease)
	assert.Equal(t, domain.SeverityLow, diag.Severity)
}

func TestParseDiagnosisFallsBack(t *testing.T) {
	cases := map[string]string{
		"no json":          "I could not determine the disease.",
		"broken json":      `{"disease": "X", "confidence": }`,
		"missing disease":  `{"confidence": 0.9, "severity": "low"}`,
		"invalid severity": `{"disease": "X", "severity": "catastrophic"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			diag := ParseDiagnosis(raw)
			require.NotNil(t, diag)
			assert.Equal(t, "Unable to determine specific disease", diag.Disease)
			assert.Equal(t, 0.5, diag.Confidence)
			assert.Equal(t, domain.SeverityMedium, diag.Severity)
		})
	}
}

func TestSystemPrompt(t *testing.T) {
	plain := SystemPrompt("")
	assert.Contains(t, plain, "agricultural AI assistant")
	assert.NotContains(t, plain, "farm context")

	scoped := SystemPrompt("2.5 acre farm in Kilifi growing maize, beans")
	assert.Contains(t, scoped, "2.5 acre farm in Kilifi")
}

func TestDiagnosisPromptMentionsCropAndSymptoms(t *testing.T) {
	p := DiagnosisPrompt("maize", "yellowing leaves", "")
	assert.True(t, strings.Contains(p, "maize"))
	assert.True(t, strings.Contains(p, "yellowing leaves"))
	assert.Contains(t, p, `"severity"`)
}
