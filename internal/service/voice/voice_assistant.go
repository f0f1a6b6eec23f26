package voice

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/cognitunes/internal/domain"
	"github.com/seu-repo/cognitunes/internal/observability/telemetry"
	"github.com/seu-repo/cognitunes/internal/ports"
)

// VoiceAssistant handles one skill event per call. It keeps no state between calls.
type VoiceAssistant struct {
	router *Router
	log    *zap.Logger
}

func NewVoiceAssistant(
	classifier ports.EmotionClassifier,
	catalog ports.MoodCatalog,
	logger *zap.Logger,
) *VoiceAssistant {
	return &VoiceAssistant{
		router: NewRouter(classifier, catalog, logger),
		log:    logger,
	}
}

// Handle dispatches on request type and wraps the result for the wire.
// Session attributes are echoed back unchanged.
func (va *VoiceAssistant) Handle(ctx context.Context, envelope *domain.RequestEnvelope) *domain.ResponseEnvelope {
	start := time.Now()
	req := envelope.Request
	session := &envelope.Session

	log := va.log.With(
		zap.String("request_id", req.RequestID),
		zap.String("session_id", session.SessionID),
	)

	if session.New {
		log.Info("Session started")
	}

	intentName := ""
	if req.Intent != nil {
		intentName = req.Intent.Name
	}

	typeLabel := string(req.Type)
	var resp *domain.Response
	switch req.Type {
	case domain.RequestTypeLaunch:
		log.Info("Launch request")
		resp = va.router.Welcome()

	case domain.RequestTypeIntent:
		log.Info("Intent request", zap.String("intent", intentName))
		resp = va.router.HandleIntent(ctx, req.Intent, session)

	case domain.RequestTypeSessionEnded:
		log.Info("Session ended", zap.String("reason", req.Reason))
		resp = nil

	default:
		log.Warn("Unsupported request type", zap.String("type", string(req.Type)))
		resp = domain.Tell(speechNotUnderstood)
		typeLabel = "unknown"
	}

	if intentName != "" && !va.router.Handles(intentName) {
		intentName = "unknown"
	}
	telemetry.SkillRequestsTotal.WithLabelValues(typeLabel, intentName).Inc()
	telemetry.SkillLatency.Observe(time.Since(start).Seconds())

	return domain.Envelope(resp, session.Attributes)
}
