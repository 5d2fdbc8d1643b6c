package gemini

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScores(t *testing.T) {
	scores, err := parseScores(`[0.1, 0.95, 0.0]`, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.95, 0.0}, scores)
}

func TestParseScores_CodeFence(t *testing.T) {
	scores, err := parseScores("```json\n[0.2, 0.8]\n```", 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.2, 0.8}, scores)
}

func TestParseScores_ClampsOutOfRange(t *testing.T) {
	scores, err := parseScores(`[-0.5, 1.5]`, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, scores)
}

func TestParseScores_WrongCount(t *testing.T) {
	_, err := parseScores(`[0.1, 0.2]`, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 3 scores, got 2")
}

func TestParseScores_NotJSON(t *testing.T) {
	_, err := parseScores(`the photo shows a kitchen`, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse scores")
}

func TestScorePrompt(t *testing.T) {
	prompt := scorePrompt([]string{"toilet", "a bed"})
	assert.Contains(t, prompt, "JSON array")
	assert.Contains(t, prompt, "toilet\na bed")
	// One line per phrase, no trailing newline
	assert.False(t, strings.HasSuffix(prompt, "\n"))
}
