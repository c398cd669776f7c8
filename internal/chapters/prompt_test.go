package chapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_ExactCount(t *testing.T) {
	prompt := BuildPrompt("some transcript", PromptOptions{ChapterCount: 7})

	assert.Contains(t, prompt, "Create exactly 7 logical chapters.")
	assert.Contains(t, prompt, "- Create exactly 7 chapters")
	assert.NotContains(t, prompt, "between")
	assert.Contains(t, prompt, "Here's the transcript:\n\nsome transcript")
}

func TestBuildPrompt_DefaultRange(t *testing.T) {
	prompt := BuildPrompt("some transcript", PromptOptions{})

	assert.Contains(t, prompt, "Keep the number of chapters between 5-10")
	assert.Contains(t, prompt, "- Maximum 10 chapters")
}

func TestBuildPrompt_ConfiguredRange(t *testing.T) {
	prompt := BuildPrompt("t", PromptOptions{MinChapters: 4, MaxChapters: 8})

	assert.Contains(t, prompt, "between 4-8")
	assert.Contains(t, prompt, "- Maximum 8 chapters")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	opts := PromptOptions{MinChapters: 5, MaxChapters: 10}
	assert.Equal(t, BuildPrompt("abc", opts), BuildPrompt("abc", opts))
}
