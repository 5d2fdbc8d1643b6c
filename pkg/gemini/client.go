// Package gemini scores listing photos against a phrase vocabulary using the
// Google Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

// Scorer queries Gemini with an image and a vocabulary and returns one
// confidence per phrase.
type Scorer struct {
	client *genai.Client
	model  string
}

// New creates a Scorer using an API key. An empty model falls back to
// DefaultModel.
func New(ctx context.Context, apiKey, model string) (*Scorer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}
	if model == "" {
		model = DefaultModel
	}
	return &Scorer{client: client, model: model}, nil
}

// Score asks the model for a confidence in [0,1] for every phrase. The
// returned slice is parallel to the vocabulary.
func (s *Scorer) Score(ctx context.Context, imageJPEG []byte, vocabulary []string) ([]float64, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(imageJPEG, "image/jpeg"),
			genai.NewPartFromText(scorePrompt(vocabulary)),
		}, genai.RoleUser),
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, eris.Wrap(err, "gemini: generate content")
	}

	scores, err := parseScores(resp.Text(), len(vocabulary))
	if err != nil {
		return nil, err
	}

	zap.L().Debug("gemini scored image",
		zap.String("model", s.model),
		zap.Int("vocabulary_size", len(vocabulary)),
	)
	return scores, nil
}

// scorePrompt builds the instruction sent alongside the photo.
func scorePrompt(vocabulary []string) string {
	var b strings.Builder
	b.WriteString("Look at this real estate listing photo. For each phrase below, ")
	b.WriteString("output a confidence between 0 and 1 that the phrase matches what the photo shows. ")
	b.WriteString("Respond with ONLY a JSON array of numbers, one per phrase, in order.\nPhrases:\n")
	for i, phrase := range vocabulary {
		b.WriteString(strings.TrimSpace(phrase))
		if i < len(vocabulary)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// parseScores extracts a JSON float array from model output, tolerating
// markdown code fences.
func parseScores(text string, want int) ([]float64, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var scores []float64
	if err := json.Unmarshal([]byte(text), &scores); err != nil {
		return nil, eris.Wrapf(err, "gemini: parse scores from %q", truncate(text, 120))
	}
	if len(scores) != want {
		return nil, eris.Errorf("gemini: expected %d scores, got %d", want, len(scores))
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

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
