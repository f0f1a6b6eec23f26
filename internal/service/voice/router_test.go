package voice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/cognitunes/internal/domain"
	"github.com/seu-repo/cognitunes/internal/mocks"
)

func newTestRouter(classifier *mocks.MockEmotionClassifier) *Router {
	return NewRouter(classifier, NewEmotionCatalog(""), zap.NewNop())
}

func dialogIntent(phrase *string) *domain.Intent {
	intent := &domain.Intent{Name: IntentDialog, Slots: map[string]domain.Slot{}}
	if phrase != nil {
		intent.Slots[SlotPhrase] = domain.Slot{Name: SlotPhrase, Value: *phrase}
	}
	return intent
}

func strPtr(s string) *string { return &s }

func TestRouter_DialogWithoutPhrase(t *testing.T) {
	tests := []struct {
		name   string
		intent *domain.Intent
	}{
		{"slot absent", dialogIntent(nil)},
		{"slot empty", dialogIntent(strPtr(""))},
		{"slot blank", dialogIntent(strPtr("   "))},
		{"nil slots", &domain.Intent{Name: IntentDialog}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := &mocks.MockEmotionClassifier{}
			router := newTestRouter(classifier)

			resp := router.HandleIntent(context.Background(), tt.intent, &domain.Session{})

			if resp.ShouldEndSession {
				t.Error("expected an ask response that keeps the session open")
			}
			if resp.Reprompt == nil || resp.Reprompt.OutputSpeech.Text != speechNoPhraseRepeat {
				t.Error("expected the reprompt asking the user to try again")
			}
			if resp.OutputSpeech.Text != speechNoPhrase {
				t.Errorf("unexpected speech: %q", resp.OutputSpeech.Text)
			}
			if calls := classifier.Calls(); len(calls) != 0 {
				t.Errorf("expected zero classifier calls, got %d", len(calls))
			}
		})
	}
}

func TestRouter_DialogWithPhrase(t *testing.T) {
	classifier := &mocks.MockEmotionClassifier{
		ClassifyFunc: func(ctx context.Context, phrase string) (domain.EmotionLabel, error) {
			return domain.EmotionJoy, nil
		},
	}
	router := newTestRouter(classifier)

	resp := router.HandleIntent(context.Background(), dialogIntent(strPtr("I am thrilled")), &domain.Session{})

	if !resp.ShouldEndSession {
		t.Error("expected a tell response that ends the session")
	}
	if resp.OutputSpeech.Type != domain.SpeechTypeSSML {
		t.Fatalf("expected SSML speech, got %s", resp.OutputSpeech.Type)
	}
	if !strings.Contains(resp.OutputSpeech.SSML, `<audio src="https://s3.amazonaws.com/bean-mrjob/joy.mp3"/>`) {
		t.Errorf("speech does not play the joy track: %s", resp.OutputSpeech.SSML)
	}
	if !strings.Contains(resp.OutputSpeech.SSML, "happy") {
		t.Errorf("speech does not narrate the adjective: %s", resp.OutputSpeech.SSML)
	}
	if resp.Card == nil || resp.Card.Title != "Cognitunes" {
		t.Error("expected a Cognitunes card")
	}

	calls := classifier.Calls()
	if len(calls) != 1 || calls[0] != "I am thrilled" {
		t.Errorf("expected one call with the phrase, got %v", calls)
	}
}

func TestRouter_DialogClassifierFailure(t *testing.T) {
	classifier := &mocks.MockEmotionClassifier{
		ClassifyFunc: func(ctx context.Context, phrase string) (domain.EmotionLabel, error) {
			return "", errors.New("connection refused")
		},
	}
	router := newTestRouter(classifier)

	resp := router.HandleIntent(context.Background(), dialogIntent(strPtr("meh")), &domain.Session{})

	if !resp.ShouldEndSession {
		t.Error("expected the session to end after the apology")
	}
	if resp.OutputSpeech.Text != speechClassifierDown {
		t.Errorf("unexpected speech: %q", resp.OutputSpeech.Text)
	}
}

func TestRouter_DialogUnvalidatedLabel(t *testing.T) {
	classifier := &mocks.MockEmotionClassifier{
		ClassifyFunc: func(ctx context.Context, phrase string) (domain.EmotionLabel, error) {
			return domain.EmotionLabel("euphoria"), nil
		},
	}
	router := newTestRouter(classifier)

	resp := router.HandleIntent(context.Background(), dialogIntent(strPtr("wow")), &domain.Session{})

	if resp.OutputSpeech.Text != speechClassifierDown {
		t.Errorf("expected apology for unknown label, got %+v", resp.OutputSpeech)
	}
}

func TestRouter_DialogCatalogFailure(t *testing.T) {
	catalog := &mocks.MockMoodCatalog{
		DescribeFunc: func(label domain.EmotionLabel) (domain.Mood, error) {
			return domain.Mood{}, domain.ErrUnknownEmotion
		},
	}
	router := NewRouter(&mocks.MockEmotionClassifier{}, catalog, zap.NewNop())

	resp := router.HandleIntent(context.Background(), dialogIntent(strPtr("fine")), &domain.Session{})

	if resp.OutputSpeech.Text != speechClassifierDown {
		t.Errorf("expected apology when the mood lookup fails, got %+v", resp.OutputSpeech)
	}
}

func TestRouter_DialogMoodWithoutMedia(t *testing.T) {
	catalog := &mocks.MockMoodCatalog{
		DescribeFunc: func(label domain.EmotionLabel) (domain.Mood, error) {
			return domain.Mood{Label: label, Adjective: "happy"}, nil
		},
	}
	router := NewRouter(&mocks.MockEmotionClassifier{}, catalog, zap.NewNop())

	resp := router.HandleIntent(context.Background(), dialogIntent(strPtr("fine")), &domain.Session{})

	if resp.OutputSpeech.Text != speechClassifierDown {
		t.Errorf("expected apology for a mood without media, got %+v", resp.OutputSpeech)
	}
}

func TestRouter_HelpStopCancel(t *testing.T) {
	router := newTestRouter(&mocks.MockEmotionClassifier{})
	ctx := context.Background()

	help := router.HandleIntent(ctx, &domain.Intent{Name: IntentHelp}, &domain.Session{})
	if help.ShouldEndSession {
		t.Error("help should keep the session open")
	}
	if help.Reprompt == nil {
		t.Error("help should reprompt")
	}

	for _, name := range []string{IntentStop, IntentCancel} {
		resp := router.HandleIntent(ctx, &domain.Intent{Name: name}, &domain.Session{})
		if !resp.ShouldEndSession {
			t.Errorf("%s should end the session", name)
		}
		if resp.OutputSpeech.Text != "Goodbye" {
			t.Errorf("%s: unexpected speech %q", name, resp.OutputSpeech.Text)
		}
	}
}

func TestRouter_UnknownIntentFailsClosed(t *testing.T) {
	classifier := &mocks.MockEmotionClassifier{}
	router := newTestRouter(classifier)

	for _, intent := range []*domain.Intent{{Name: "PlayMusicIntent"}, {Name: ""}, nil} {
		resp := router.HandleIntent(context.Background(), intent, &domain.Session{})
		if resp == nil {
			t.Fatal("expected a response")
		}
		if resp.OutputSpeech.Text != speechNotUnderstood {
			t.Errorf("unexpected speech: %q", resp.OutputSpeech.Text)
		}
		if !resp.ShouldEndSession {
			t.Error("expected the session to end")
		}
	}
	if len(classifier.Calls()) != 0 {
		t.Error("unknown intents must not reach the classifier")
	}
}
