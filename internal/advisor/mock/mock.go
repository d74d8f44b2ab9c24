// Package mock provides an offline Advisor with canned responses. It is the
// default backend so the app works end to end without an API key.
package mock

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/mkanyika/shamba/internal/advisor"
	"github.com/mkanyika/shamba/internal/domain"
)

type MockAdvisor struct{}

func New() *MockAdvisor {
	return &MockAdvisor{}
}

var diagnoses = []domain.Diagnosis{
	{
		Disease:     "Leaf Spot Disease",
		Confidence:  0.85,
		Description: "Common fungal infection affecting leaves, causing brown spots with yellow halos.",
		Treatments: domain.Treatments{
			Organic:    []string{"Neem oil spray", "Copper fungicide", "Remove affected leaves"},
			Chemical:   []string{"Mancozeb spray", "Propiconazole treatment"},
			Preventive: []string{"Improve air circulation", "Avoid overhead watering", "Crop rotation"},
		},
		Severity: domain.SeverityMedium,
	},
	{
		Disease:     "Powdery Mildew",
		Confidence:  0.78,
		Description: "Fungal disease causing white powdery coating on leaves and stems.",
		Treatments: domain.Treatments{
			Organic:    []string{"Baking soda spray", "Milk solution", "Neem oil"},
			Chemical:   []string{"Sulfur fungicide", "Myclobutanil"},
			Preventive: []string{"Reduce humidity", "Increase air circulation", "Avoid overcrowding"},
		},
		Severity: domain.SeverityLow,
	},
	{
		Disease:     "Bacterial Blight",
		Confidence:  0.92,
		Description: "Bacterial infection causing water-soaked lesions and yellowing.",
		Treatments: domain.Treatments{
			Organic:    []string{"Copper-based bactericide", "Remove infected parts"},
			Chemical:   []string{"Streptomycin spray", "Copper oxychloride"},
			Preventive: []string{"Avoid overhead irrigation", "Use disease-free seeds", "Crop rotation"},
		},
		Severity: domain.SeverityHigh,
	},
}

func (m *MockAdvisor) Chat(_ context.Context, messages []advisor.Message, farmContext string) (string, error) {
	last := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == advisor.RoleUser {
			last = messages[i].Content
			break
		}
	}
	reply := fmt.Sprintf("Thanks for your question about %q. As a general rule: monitor your crops regularly, keep records of every field activity, and consult your local agricultural extension officer for region-specific advice.", truncate(last, 80))
	if farmContext != "" {
		reply += " Given your farm (" + farmContext + "), pay particular attention to soil moisture and pest pressure this season."
	}
	return reply, nil
}

// Diagnose picks one of the canned diagnoses deterministically from the crop
// and symptoms, so repeated calls for the same input agree.
func (m *MockAdvisor) Diagnose(_ context.Context, cropName, symptoms, _ string) (*domain.Diagnosis, error) {
	h := fnv.New32a()
	// Write on hash.Hash32 never fails.
	_, _ = h.Write([]byte(strings.ToLower(cropName + "|" + symptoms)))
	diag := diagnoses[h.Sum32()%uint32(len(diagnoses))]
	return &diag, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
