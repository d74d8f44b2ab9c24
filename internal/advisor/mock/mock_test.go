package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkanyika/shamba/internal/advisor"
)

func TestDiagnoseIsDeterministic(t *testing.T) {
	m := New()
	ctx := context.Background()

	first, err := m.Diagnose(ctx, "maize", "brown spots on leaves", "")
	require.NoError(t, err)
	second, err := m.Diagnose(ctx, "maize", "brown spots on leaves", "")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.NotEmpty(t, first.Disease)
	assert.True(t, first.Severity.Valid())
	assert.Greater(t, first.Confidence, 0.0)
}

func TestChatEchoesFarmContext(t *testing.T) {
	m := New()
	reply, err := m.Chat(context.Background(), []advisor.Message{
		{Role: advisor.RoleUser, Content: "When should I plant maize?"},
	}, "2.5 acres in Kilifi")
	require.NoError(t, err)
	assert.Contains(t, reply, "When should I plant maize?")
	assert.Contains(t, reply, "2.5 acres in Kilifi")
}
