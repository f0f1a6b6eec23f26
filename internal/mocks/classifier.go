package mocks

import (
	"context"
	"sync"

	"github.com/seu-repo/cognitunes/internal/domain"
)

// MockEmotionClassifier is a mock implementation of EmotionClassifier interface
type MockEmotionClassifier struct {
	ClassifyFunc func(ctx context.Context, phrase string) (domain.EmotionLabel, error)

	mu      sync.Mutex
	phrases []string
}

func (m *MockEmotionClassifier) Classify(ctx context.Context, phrase string) (domain.EmotionLabel, error) {
	m.mu.Lock()
	m.phrases = append(m.phrases, phrase)
	m.mu.Unlock()

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, phrase)
	}
	return domain.EmotionJoy, nil
}

// Calls returns the phrases the mock was called with
func (m *MockEmotionClassifier) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.phrases...)
}

// MockMoodCatalog is a mock implementation of MoodCatalog interface
type MockMoodCatalog struct {
	DescribeFunc func(label domain.EmotionLabel) (domain.Mood, error)
}

func (m *MockMoodCatalog) Describe(label domain.EmotionLabel) (domain.Mood, error) {
	if m.DescribeFunc != nil {
		return m.DescribeFunc(label)
	}
	return domain.Mood{Label: label, Adjective: "fine", MediaURL: "https://example.com/" + string(label) + ".mp3"}, nil
}

// MockSkillService is a mock implementation of SkillService interface
type MockSkillService struct {
	HandleFunc func(ctx context.Context, envelope *domain.RequestEnvelope) *domain.ResponseEnvelope
}

func (m *MockSkillService) Handle(ctx context.Context, envelope *domain.RequestEnvelope) *domain.ResponseEnvelope {
	if m.HandleFunc != nil {
		return m.HandleFunc(ctx, envelope)
	}
	return domain.Envelope(domain.Tell("ok"), nil)
}
