package voice

import (
	"fmt"
	"strings"

	"github.com/seu-repo/cognitunes/internal/domain"
)

const DefaultMediaBaseURL = "https://s3.amazonaws.com/bean-mrjob"

var adjectives = map[domain.EmotionLabel]string{
	domain.EmotionJoy:     "happy",
	domain.EmotionAnger:   "angry",
	domain.EmotionFear:    "scared",
	domain.EmotionDisgust: "disgusted",
	domain.EmotionSadness: "sad",
}

// EmotionCatalog resolves labels to an adjective and a track. Read-only after construction.
type EmotionCatalog struct {
	moods map[domain.EmotionLabel]domain.Mood
}

// NewEmotionCatalog builds the catalog with one mp3 per label under baseURL.
func NewEmotionCatalog(baseURL string) *EmotionCatalog {
	if baseURL == "" {
		baseURL = DefaultMediaBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	moods := make(map[domain.EmotionLabel]domain.Mood, len(adjectives))
	for _, label := range domain.EmotionLabels() {
		moods[label] = domain.Mood{
			Label:     label,
			Adjective: adjectives[label],
			MediaURL:  fmt.Sprintf("%s/%s.mp3", baseURL, label),
		}
	}
	return &EmotionCatalog{moods: moods}
}

// Describe returns the mood for a label. Unknown labels are an error, never a default.
func (c *EmotionCatalog) Describe(label domain.EmotionLabel) (domain.Mood, error) {
	mood, ok := c.moods[label]
	if !ok {
		return domain.Mood{}, fmt.Errorf("%w: %q", domain.ErrUnknownEmotion, string(label))
	}
	return mood, nil
}
