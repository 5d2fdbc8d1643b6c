// Package gvision scores listing photos against a phrase vocabulary using
// Google Cloud Vision label detection.
package gvision

import (
	"context"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const maxLabels = 50

// annotator is the slice of ImageAnnotatorClient the scorer uses.
type annotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
	Close() error
}

// Scorer maps Vision API labels onto a caller-supplied vocabulary. Vision
// returns free-form labels, so each vocabulary phrase gets the score of the
// best label that textually matches it, or zero.
type Scorer struct {
	client annotator
}

// New creates a Scorer using application default credentials, or the given
// credentials file when set.
func New(ctx context.Context, credentialsFile string) (*Scorer, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, eris.Wrap(err, "gvision: create client")
	}
	return &Scorer{client: client}, nil
}

// Close releases the underlying API client.
func (s *Scorer) Close() error {
	return s.client.Close()
}

// Score runs label detection and projects the labels onto the vocabulary.
func (s *Scorer) Score(ctx context.Context, imageJPEG []byte, vocabulary []string) ([]float64, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageJPEG},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: maxLabels},
				},
			},
		},
	}

	resp, err := s.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "gvision: batch annotate")
	}
	if len(resp.Responses) == 0 {
		return nil, eris.New("gvision: empty response")
	}
	if apiErr := resp.Responses[0].Error; apiErr != nil {
		return nil, eris.Errorf("gvision: annotate error: %s", apiErr.Message)
	}

	labels := resp.Responses[0].LabelAnnotations
	zap.L().Debug("vision labeled image", zap.Int("labels", len(labels)))

	scores := make([]float64, len(vocabulary))
	for i, phrase := range vocabulary {
		scores[i] = bestMatch(phrase, labels)
	}
	return scores, nil
}

// bestMatch returns the highest score among labels that textually match the
// phrase, comparing case-insensitively and ignoring leading articles.
func bestMatch(phrase string, labels []*visionpb.EntityAnnotation) float64 {
	needle := normalizePhrase(phrase)
	var best float64
	for _, label := range labels {
		hay := strings.ToLower(label.Description)
		if hay == needle || strings.Contains(hay, needle) || strings.Contains(needle, hay) {
			if float64(label.Score) > best {
				best = float64(label.Score)
			}
		}
	}
	return best
}

func normalizePhrase(phrase string) string {
	p := strings.ToLower(strings.TrimSpace(phrase))
	for _, article := range []string{"a ", "an ", "the "} {
		if strings.HasPrefix(p, article) {
			return strings.TrimPrefix(p, article)
		}
	}
	return p
}
