package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type":        "object",
		"description": "advice",
		"properties": map[string]any{
			"advice": map[string]any{"type": "string"},
			"tier":   map[string]any{"type": "string", "enum": []any{"best", "ordinary"}},
			"scores": map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
			"odd":    map[string]any{"type": "null"},
		},
		"required": []string{"advice"},
	})

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, "advice", s.Description)
	require.Len(t, s.Properties, 4)
	assert.Equal(t, genai.TypeString, s.Properties["advice"].Type)
	assert.Equal(t, []string{"best", "ordinary"}, s.Properties["tier"].Enum)
	assert.Equal(t, genai.TypeArray, s.Properties["scores"].Type)
	assert.Equal(t, genai.TypeInteger, s.Properties["scores"].Items.Type)
	assert.Equal(t, genai.TypeString, s.Properties["odd"].Type)
	assert.Equal(t, []string{"advice"}, s.Required)
}

func TestGeminiSchemaForAdvice(t *testing.T) {
	s := geminiSchema(adviceLike.Definition)
	assert.Equal(t, []string{"advice"}, s.Required)
}
