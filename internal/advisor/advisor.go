// Package advisor defines the AI advice surface: free-form chat with a
// farming assistant and structured crop disease diagnosis. Adapters live in
// subpackages; the mock adapter is the default so the app runs without any
// API key.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mkanyika/shamba/internal/domain"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Advisor interface {
	// Chat answers a conversation, optionally grounded in a farm context
	// string (crops, location, size). farmContext may be empty.
	Chat(ctx context.Context, messages []Message, farmContext string) (string, error)

	// Diagnose analyzes reported symptoms for a crop and returns a
	// structured diagnosis.
	Diagnose(ctx context.Context, cropName, symptoms, farmContext string) (*domain.Diagnosis, error)
}

// SystemPrompt builds the assistant persona, folding in farm context when
// available.
func SystemPrompt(farmContext string) string {
	base := "You are an expert agricultural AI assistant specializing in farming, crop management, and agricultural advice."
	if farmContext == "" {
		return base + " Provide helpful, accurate, and practical advice for farmers."
	}
	return fmt.Sprintf("%s You have access to the following farm context: %s. Provide helpful, accurate, and practical advice based on this information.", base, farmContext)
}

// DiagnosisPrompt asks the model for a JSON diagnosis in the shape
// ParseDiagnosis expects.
func DiagnosisPrompt(cropName, symptoms, farmContext string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following crop disease symptoms for %s:\nSymptoms: %s\n\n", cropName, symptoms)
	if farmContext != "" {
		fmt.Fprintf(&b, "Farm context: %s\n\n", farmContext)
	}
	b.WriteString(`Please provide a detailed analysis including:
1. Most likely disease
2. Confidence level (0-1)
3. Description of the disease
4. Treatment recommendations (organic and chemical)
5. Preventive measures
6. Severity level (low/medium/high)

Format your response as JSON with the following structure:
{
  "disease": "Disease Name",
  "confidence": 0.85,
  "description": "Detailed description",
  "treatments": {
    "organic": ["treatment1", "treatment2"],
    "chemical": ["treatment1", "treatment2"],
    "preventive": ["measure1", "measure2"]
  },
  "severity": "medium"
}`)
	return b.String()
}

// ParseDiagnosis extracts the first JSON object from a model response and
// decodes it. Models often wrap the JSON in prose, so everything before the
// first '{' and after the last '}' is discarded. A response with no usable
// JSON yields FallbackDiagnosis rather than an error.
func ParseDiagnosis(raw string) *domain.Diagnosis {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return FallbackDiagnosis()
	}

	var diag domain.Diagnosis
	if err := json.Unmarshal([]byte(raw[start:end+1]), &diag); err != nil {
		return FallbackDiagnosis()
	}
	if diag.Disease == "" || !diag.Severity.Valid() {
		return FallbackDiagnosis()
	}
	return &diag
}

// FallbackDiagnosis is returned when the model response cannot be parsed.
func FallbackDiagnosis() *domain.Diagnosis {
	return &domain.Diagnosis{
		Disease:     "Unable to determine specific disease",
		Confidence:  0.5,
		Description: "Based on the symptoms provided, further analysis may be needed. Please consult with a local agricultural expert for accurate diagnosis.",
		Treatments: domain.Treatments{
			Organic:    []string{"Monitor the crop closely", "Improve air circulation", "Ensure proper watering"},
			Chemical:   []string{"Consult local agricultural extension service"},
			Preventive: []string{"Regular crop monitoring", "Proper field sanitation", "Crop rotation"},
		},
		Severity: domain.SeverityMedium,
	}
}
