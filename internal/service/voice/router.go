package voice

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/cognitunes/internal/domain"
	"github.com/seu-repo/cognitunes/internal/ports"
)

const (
	IntentDialog = "DialogIntent"
	IntentHelp   = "AMAZON.HelpIntent"
	IntentStop   = "AMAZON.StopIntent"
	IntentCancel = "AMAZON.CancelIntent"

	SlotPhrase = "Phrase"

	skillTitle = "Cognitunes"
)

const (
	speechWelcome         = "Welcome to Cognitunes. Tell me how you're feeling and I'll pick some music for you."
	speechWelcomeReprompt = "Tell me how you're feeling, for example, I had a great day."
	speechHelp            = "Cognitunes plays music that matches your mood. Just tell me how you're doing, for example, I am thrilled, or, today was rough."
	speechHelpReprompt    = "How are you feeling right now?"
	speechNoPhrase        = "What's going on with you?"
	speechNoPhraseRepeat  = "Please try again, let me know how you're doing, so I can customize your music for you"
	speechGoodbye         = "Goodbye"
	speechClassifierDown  = "Sorry, my friend IBM Watson is experiencing issues. Please try again."
	speechNotUnderstood   = "Sorry, I didn't understand that. Please try again."
)

type intentHandler func(ctx context.Context, intent *domain.Intent, session *domain.Session) *domain.Response

// Router dispatches an intent to exactly one handler by exact name
type Router struct {
	classifier ports.EmotionClassifier
	catalog    ports.MoodCatalog
	handlers   map[string]intentHandler
	log        *zap.Logger
}

func NewRouter(classifier ports.EmotionClassifier, catalog ports.MoodCatalog, log *zap.Logger) *Router {
	r := &Router{
		classifier: classifier,
		catalog:    catalog,
		log:        log,
	}
	r.handlers = map[string]intentHandler{
		IntentDialog: r.handleDialog,
		IntentHelp:   r.handleHelp,
		IntentStop:   r.handleGoodbye,
		IntentCancel: r.handleGoodbye,
	}
	return r
}

// HandleIntent always returns a response; unknown intents fail closed.
func (r *Router) HandleIntent(ctx context.Context, intent *domain.Intent, session *domain.Session) *domain.Response {
	if intent == nil {
		r.log.Warn("Intent request without intent")
		return domain.Tell(speechNotUnderstood)
	}

	handler, ok := r.handlers[intent.Name]
	if !ok {
		r.log.Warn("Unrecognized intent", zap.String("intent", intent.Name))
		return domain.Tell(speechNotUnderstood)
	}
	return handler(ctx, intent, session)
}

// Handles reports whether the intent name has a registered handler
func (r *Router) Handles(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Welcome is spoken on launch
func (r *Router) Welcome() *domain.Response {
	return domain.AskWithCard(speechWelcome, speechWelcomeReprompt, skillTitle, speechWelcomeReprompt)
}

func (r *Router) handleDialog(ctx context.Context, intent *domain.Intent, session *domain.Session) *domain.Response {
	phrase, ok := intent.SlotValue(SlotPhrase)
	if !ok {
		return domain.Ask(speechNoPhrase, speechNoPhraseRepeat)
	}
	return r.handlePhrase(ctx, phrase)
}

func (r *Router) handlePhrase(ctx context.Context, phrase string) *domain.Response {
	mood, err := r.moodFor(ctx, phrase)
	if err != nil {
		r.log.Warn("Falling back to apology", zap.Error(err))
		return domain.TellWithCard(speechClassifierDown, skillTitle, speechClassifierDown)
	}

	speech := domain.SSML(fmt.Sprintf(
		"I can tell you're feeling %s. Here's something for that mood. <audio src=\"%s\"/>",
		domain.EscapeSSML(mood.Adjective),
		domain.EscapeSSML(mood.MediaURL),
	))
	card := fmt.Sprintf("You sound %s, so here's some %s music.", mood.Adjective, mood.Label)
	return domain.TellWithCard(speech, skillTitle, card)
}

func (r *Router) moodFor(ctx context.Context, phrase string) (domain.Mood, error) {
	label, err := r.classifier.Classify(ctx, phrase)
	if err != nil {
		return domain.Mood{}, err
	}
	// labels from the port are re-checked here
	if !label.Valid() {
		return domain.Mood{}, fmt.Errorf("%w: %q", domain.ErrUnknownEmotion, string(label))
	}
	mood, err := r.catalog.Describe(label)
	if err != nil {
		return domain.Mood{}, err
	}
	if mood.MediaURL == "" {
		return domain.Mood{}, errors.New("mood has no media url")
	}
	return mood, nil
}

func (r *Router) handleHelp(ctx context.Context, intent *domain.Intent, session *domain.Session) *domain.Response {
	return domain.Ask(speechHelp, speechHelpReprompt)
}

func (r *Router) handleGoodbye(ctx context.Context, intent *domain.Intent, session *domain.Session) *domain.Response {
	return domain.Tell(speechGoodbye)
}
