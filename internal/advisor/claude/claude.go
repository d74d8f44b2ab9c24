// Package claude implements advisor.Advisor on the Anthropic Messages API.
package claude

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/mkanyika/shamba/internal/advisor"
	"github.com/mkanyika/shamba/internal/domain"
)

// maxTokens is generous for both chat replies and the JSON diagnosis payload.
const maxTokens = 1024

type ClaudeAdvisor struct {
	client *anthropic.Client
	model  anthropic.Model
}

func New(apiKey, model string) *ClaudeAdvisor {
	return &ClaudeAdvisor{
		client: anthropic.NewClient(apiKey),
		model:  anthropic.Model(model),
	}
}

func (a *ClaudeAdvisor) Chat(ctx context.Context, messages []advisor.Message, farmContext string) (string, error) {
	req := anthropic.MessagesRequest{
		Model:     a.model,
		System:    advisor.SystemPrompt(farmContext),
		MaxTokens: maxTokens,
		Messages:  toAnthropic(messages),
	}

	resp, err := a.client.CreateMessages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("claude chat: %w", err)
	}
	text := resp.GetFirstContentText()
	if text == "" {
		return "", fmt.Errorf("claude chat: empty response")
	}
	return text, nil
}

func (a *ClaudeAdvisor) Diagnose(ctx context.Context, cropName, symptoms, farmContext string) (*domain.Diagnosis, error) {
	req := anthropic.MessagesRequest{
		Model:     a.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(advisor.DiagnosisPrompt(cropName, symptoms, farmContext)),
		},
	}

	resp, err := a.client.CreateMessages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("claude diagnose: %w", err)
	}
	return advisor.ParseDiagnosis(resp.GetFirstContentText()), nil
}

func toAnthropic(messages []advisor.Message) []anthropic.Message {
	out := make([]anthropic.Message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case advisor.RoleAssistant:
			out = append(out, anthropic.NewAssistantTextMessage(m.Content))
		default:
			out = append(out, anthropic.NewUserTextMessage(m.Content))
		}
	}
	return out
}
