package claude

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const scoreMaxTokens = 1024

const scoreSystem = "You label real estate listing photos. Respond with only JSON."

// Scorer asks Claude for a confidence per vocabulary phrase.
type Scorer struct {
	client Client
	model  string
}

// NewScorer creates a Scorer. An empty model falls back to DefaultModel.
func NewScorer(client Client, model string) *Scorer {
	if model == "" {
		model = DefaultModel
	}
	return &Scorer{client: client, model: model}
}

// Score sends the photo and vocabulary in a single message and parses the
// JSON array reply. The returned slice is parallel to the vocabulary.
func (s *Scorer) Score(ctx context.Context, imageJPEG []byte, vocabulary []string) ([]float64, error) {
	resp, err := s.client.CreateMessage(ctx, MessageRequest{
		Model:     s.model,
		MaxTokens: scoreMaxTokens,
		System:    scoreSystem,
		Messages: []Message{
			{
				Role: "user",
				Content: []ContentBlock{
					{Type: "image", ImageJPEG: imageJPEG},
					{Type: "text", Text: scorePrompt(vocabulary)},
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	scores, err := parseScores(resp.Text, len(vocabulary))
	if err != nil {
		return nil, err
	}

	zap.L().Debug("claude scored image",
		zap.String("model", s.model),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
	)
	return scores, nil
}

func scorePrompt(vocabulary []string) string {
	var b strings.Builder
	b.WriteString("For each phrase below, give a confidence between 0 and 1 that it matches this photo. ")
	b.WriteString("Reply with only a JSON array of numbers, one per phrase, in order.\nPhrases:\n")
	b.WriteString(strings.Join(vocabulary, "\n"))
	return b.String()
}

func parseScores(text string, want int) ([]float64, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var scores []float64
	if err := json.Unmarshal([]byte(text), &scores); err != nil {
		return nil, eris.Wrap(err, "claude: parse scores")
	}
	if len(scores) != want {
		return nil, eris.Errorf("claude: expected %d scores, got %d", want, len(scores))
	}
	for i, sc := range scores {
		if sc < 0 {
			scores[i] = 0
		}
		if sc > 1 {
			scores[i] = 1
		}
	}
	return scores, nil
}
