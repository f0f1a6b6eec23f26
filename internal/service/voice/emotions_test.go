package voice

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/seu-repo/cognitunes/internal/domain"
)

func TestEmotionCatalog_DescribeAllLabels(t *testing.T) {
	catalog := NewEmotionCatalog("")

	for _, label := range domain.EmotionLabels() {
		mood, err := catalog.Describe(label)
		if err != nil {
			t.Fatalf("Describe(%s) failed: %v", label, err)
		}
		if mood.Adjective == "" {
			t.Errorf("Describe(%s) returned empty adjective", label)
		}
		u, err := url.Parse(mood.MediaURL)
		if err != nil || !u.IsAbs() || u.Scheme != "https" {
			t.Errorf("Describe(%s) returned malformed url %q", label, mood.MediaURL)
		}
		if !strings.HasSuffix(u.Path, "/"+string(label)+".mp3") {
			t.Errorf("Describe(%s) url %q does not point at the label track", label, mood.MediaURL)
		}
	}
}

func TestEmotionCatalog_Adjectives(t *testing.T) {
	catalog := NewEmotionCatalog("")

	tests := []struct {
		label     domain.EmotionLabel
		adjective string
	}{
		{domain.EmotionJoy, "happy"},
		{domain.EmotionAnger, "angry"},
		{domain.EmotionFear, "scared"},
		{domain.EmotionDisgust, "disgusted"},
		{domain.EmotionSadness, "sad"},
	}

	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			mood, err := catalog.Describe(tt.label)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mood.Adjective != tt.adjective {
				t.Errorf("expected adjective '%s', got '%s'", tt.adjective, mood.Adjective)
			}
		})
	}
}

func TestEmotionCatalog_UnknownLabel(t *testing.T) {
	catalog := NewEmotionCatalog("")

	for _, raw := range []string{"euphoria", "", "JOY", "surprise"} {
		_, err := catalog.Describe(domain.EmotionLabel(raw))
		if !errors.Is(err, domain.ErrUnknownEmotion) {
			t.Errorf("Describe(%q): expected ErrUnknownEmotion, got %v", raw, err)
		}
	}
}

func TestEmotionCatalog_CustomBaseURL(t *testing.T) {
	catalog := NewEmotionCatalog("https://cdn.example.com/tracks/")

	mood, err := catalog.Describe(domain.EmotionFear)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mood.MediaURL != "https://cdn.example.com/tracks/fear.mp3" {
		t.Errorf("unexpected media url: %s", mood.MediaURL)
	}
}
