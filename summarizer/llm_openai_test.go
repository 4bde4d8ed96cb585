package summarizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAILLMValidation(t *testing.T) {
	_, err := NewOpenAILLM(nil)
	require.Error(t, err)

	_, err = NewOpenAILLM(&LLMSettings{APIKey: "sk-test"})
	require.Error(t, err)

	llm, err := NewOpenAILLM(&LLMSettings{Model: "gpt-4o", APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", llm.Model)
}

func TestNewOpenAILLMAcceptsMissingKey(t *testing.T) {
	// The key is only required once a completion is attempted.
	llm, err := NewOpenAILLM(&LLMSettings{Model: "gpt-4o"})
	require.NoError(t, err)

	_, err = llm.Complete(context.Background(), BuildSummaryPrompt("conteúdo"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}
