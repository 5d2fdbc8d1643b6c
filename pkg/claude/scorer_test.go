package claude

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	lastReq MessageRequest
	resp    *MessageResponse
	err     error
}

func (m *mockClient) CreateMessage(_ context.Context, req MessageRequest) (*MessageResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func TestScore(t *testing.T) {
	mc := &mockClient{resp: &MessageResponse{Text: `[0.1, 0.9]`}}
	s := NewScorer(mc, "claude-haiku-4-5-20251001")

	scores, err := s.Score(context.Background(), []byte("jpeg-bytes"), []string{"toilet", "a sink"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.9}, scores)

	// One user message: image block first, then the prompt.
	require.Len(t, mc.lastReq.Messages, 1)
	content := mc.lastReq.Messages[0].Content
	require.Len(t, content, 2)
	assert.Equal(t, "image", content[0].Type)
	assert.Equal(t, []byte("jpeg-bytes"), content[0].ImageJPEG)
	assert.Equal(t, "text", content[1].Type)
	assert.Contains(t, content[1].Text, "toilet\na sink")
	assert.Equal(t, scoreSystem, mc.lastReq.System)
}

func TestScore_DefaultModel(t *testing.T) {
	mc := &mockClient{resp: &MessageResponse{Text: `[0.5]`}}
	s := NewScorer(mc, "")

	_, err := s.Score(context.Background(), nil, []string{"toilet"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, mc.lastReq.Model)
}

func TestScore_ClientError(t *testing.T) {
	mc := &mockClient{err: assert.AnError}
	s := NewScorer(mc, "")

	_, err := s.Score(context.Background(), nil, []string{"toilet"})
	require.Error(t, err)
}

func TestParseScores_CodeFence(t *testing.T) {
	scores, err := parseScores("```json\n[0.3, 0.7]\n```", 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3, 0.7}, scores)
}

func TestParseScores_WrongCount(t *testing.T) {
	_, err := parseScores(`[0.3]`, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 scores")
}

func TestParseScores_Clamps(t *testing.T) {
	scores, err := parseScores(`[2, -1]`, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, scores)
}
