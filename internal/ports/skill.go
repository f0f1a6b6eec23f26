package ports

import (
	"context"

	"github.com/seu-repo/cognitunes/internal/domain"
)

// EmotionClassifier turns a user phrase into one of the known emotion labels.
// Exactly one of the label or the error is set.
type EmotionClassifier interface {
	Classify(ctx context.Context, phrase string) (domain.EmotionLabel, error)
}

// MoodCatalog maps a validated label to the content used in the reply
type MoodCatalog interface {
	Describe(label domain.EmotionLabel) (domain.Mood, error)
}

// SkillService handles one decoded inbound event and produces one response
type SkillService interface {
	Handle(ctx context.Context, envelope *domain.RequestEnvelope) *domain.ResponseEnvelope
}
