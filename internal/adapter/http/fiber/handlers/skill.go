package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/cognitunes/internal/domain"
	"github.com/seu-repo/cognitunes/internal/ports"
)

// SkillHandler is the HTTPS endpoint the voice platform posts events to
type SkillHandler struct {
	skill         ports.SkillService
	applicationID string
	log           *zap.Logger
}

// NewSkillHandler creates the handler. An empty applicationID accepts every skill ID.
func NewSkillHandler(skill ports.SkillService, applicationID string, log *zap.Logger) *SkillHandler {
	return &SkillHandler{
		skill:         skill,
		applicationID: applicationID,
		log:           log,
	}
}

func (h *SkillHandler) Handle(c *fiber.Ctx) error {
	var envelope domain.RequestEnvelope
	if err := json.Unmarshal(c.Body(), &envelope); err != nil {
		h.log.Debug("Failed to decode skill event", zap.Error(err))
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if envelope.Request.Type == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing request type")
	}

	if h.applicationID != "" && envelope.ApplicationID() != h.applicationID {
		h.log.Warn("Rejected event for another application",
			zap.String("application_id", envelope.ApplicationID()),
			zap.String("request_id", envelope.Request.RequestID),
		)
		return fiber.NewError(fiber.StatusForbidden, "invalid application id")
	}

	resp := h.skill.Handle(c.UserContext(), &envelope)
	return c.Status(fiber.StatusOK).JSON(resp)
}
