package domain

import (
	"errors"
	"fmt"
	"strings"
)

// EmotionLabel is the closed set of labels the classifier may return
type EmotionLabel string

const (
	EmotionJoy     EmotionLabel = "joy"
	EmotionAnger   EmotionLabel = "anger"
	EmotionFear    EmotionLabel = "fear"
	EmotionDisgust EmotionLabel = "disgust"
	EmotionSadness EmotionLabel = "sadness"
)

var ErrUnknownEmotion = errors.New("unknown emotion label")

// EmotionLabels lists every known label in a stable order
func EmotionLabels() []EmotionLabel {
	return []EmotionLabel{EmotionJoy, EmotionAnger, EmotionFear, EmotionDisgust, EmotionSadness}
}

func (l EmotionLabel) Valid() bool {
	switch l {
	case EmotionJoy, EmotionAnger, EmotionFear, EmotionDisgust, EmotionSadness:
		return true
	}
	return false
}

// ParseEmotionLabel validates a raw label. Anything outside the known set is an error.
func ParseEmotionLabel(raw string) (EmotionLabel, error) {
	label := EmotionLabel(strings.TrimSpace(raw))
	if !label.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEmotion, raw)
	}
	return label, nil
}

// Mood is what a label resolves to for the response
type Mood struct {
	Label     EmotionLabel `json:"label"`
	Adjective string       `json:"adjective"`
	MediaURL  string       `json:"media_url"`
}
