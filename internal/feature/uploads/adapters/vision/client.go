// Package vision provides an image moderation client backed by the Google
// Cloud Vision SafeSearch API.
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"microblog/internal/feature/uploads/usecase"
)

// SafeSearchModerator classifies uploaded images using SafeSearch annotations.
type SafeSearchModerator struct {
	client *gvision.ImageAnnotatorClient
}

// Compile-time check that SafeSearchModerator implements Moderator.
var _ usecase.Moderator = (*SafeSearchModerator)(nil)

// NewSafeSearchModerator creates a new SafeSearchModerator using ADC.
func NewSafeSearchModerator(ctx context.Context) (*SafeSearchModerator, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &SafeSearchModerator{client: client}, nil
}

// Close releases the Vision API client.
func (m *SafeSearchModerator) Close() error {
	return m.client.Close()
}

// Classify reports whether the image is safe to publish. Adult, violent or
// racy content at LIKELY or above rejects the image.
func (m *SafeSearchModerator) Classify(ctx context.Context, imageData []byte) (bool, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_SAFE_SEARCH_DETECTION},
				},
			},
		},
	}

	resp, err := m.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return false, fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return true, nil
	}
	if resp.Responses[0].Error != nil {
		return false, fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	annotation := resp.Responses[0].SafeSearchAnnotation
	if annotation == nil {
		return true, nil
	}
	return annotation.Adult < visionpb.Likelihood_LIKELY &&
		annotation.Violence < visionpb.Likelihood_LIKELY &&
		annotation.Racy < visionpb.Likelihood_LIKELY, nil
}
