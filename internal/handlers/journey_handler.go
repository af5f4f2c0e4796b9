package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/unmaphq/unmap-backend/internal/dto"
	"github.com/unmaphq/unmap-backend/internal/journey"
	"github.com/unmaphq/unmap-backend/internal/middleware"
)

// JourneyHandler exposes the stage flows and the reconciliation engine.
type JourneyHandler struct {
	journey *journey.Service
}

func NewJourneyHandler(journeySvc *journey.Service) *JourneyHandler {
	return &JourneyHandler{journey: journeySvc}
}

func (h *JourneyHandler) userID(c *fiber.Ctx) (uuid.UUID, error) {
	return middleware.GetUserID(c)
}

func (h *JourneyHandler) stage(c *fiber.Ctx) (int, error) {
	stage, err := strconv.Atoi(c.Params("stage"))
	if err != nil {
		return 0, errors.New("stage must be a number")
	}
	return stage, nil
}

// Bootstrap reconciles remote state into the session and returns the
// resolved view. Called on every sign-in and app start.
func (h *JourneyHandler) Bootstrap(c *fiber.Ctx) error {
	userID, err := h.userID(c)
	if err != nil {
		return unauthorized(c)
	}
	return c.JSON(h.journey.Bootstrap(c.Context(), userID))
}

func (h *JourneyHandler) State(c *fiber.Ctx) error {
	userID, err := h.userID(c)
	if err != nil {
		return unauthorized(c)
	}
	return c.JSON(h.journey.StateView(userID))
}

func (h *JourneyHandler) Flow(c *fiber.Ctx) error {
	userID, err := h.userID(c)
	if err != nil {
		return unauthorized(c)
	}
	stage, err := h.stage(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	view, err := h.journey.FlowView(userID, stage)
	if err != nil {
		return journeyError(c, err)
	}
	return c.JSON(view)
}

func (h *JourneyHandler) Answer(c *fiber.Ctx) error {
	userID, err := h.userID(c)
	if err != nil {
		return unauthorized(c)
	}
	stage, err := h.stage(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.QuestionID == "" {
		return badRequest(c, "question_id is required")
	}
	view, err := h.journey.SetAnswer(userID, stage, req.QuestionID, req.Value)
	if err != nil {
		return journeyError(c, err)
	}
	return c.JSON(view)
}

func (h *JourneyHandler) Advance(c *fiber.Ctx) error {
	userID, err := h.userID(c)
	if err != nil {
		return unauthorized(c)
	}
	stage, err := h.stage(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	view, err := h.journey.Advance(userID, stage)
	if err != nil {
		return journeyError(c, err)
	}
	return c.JSON(view)
}

func (h *JourneyHandler) Back(c *fiber.Ctx) error {
	userID, err := h.userID(c)
	if err != nil {
		return unauthorized(c)
	}
	stage, err := h.stage(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	view, err := h.journey.Back(userID, stage)
	if err != nil {
		return journeyError(c, err)
	}
	return c.JSON(view)
}

// RetryReflection re-issues generation for a completed stage without
// touching the persisted answers.
func (h *JourneyHandler) RetryReflection(c *fiber.Ctx) error {
	userID, err := h.userID(c)
	if err != nil {
		return unauthorized(c)
	}
	stage, err := h.stage(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	view, err := h.journey.RetryReflection(userID, stage)
	if err != nil {
		return journeyError(c, err)
	}
	return c.JSON(view)
}

// Continue advances the canonical stage after the user has read their
// reflection.
func (h *JourneyHandler) Continue(c *fiber.Ctx) error {
	userID, err := h.userID(c)
	if err != nil {
		return unauthorized(c)
	}
	stage, err := h.stage(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	view, err := h.journey.Continue(userID, stage)
	if err != nil {
		return journeyError(c, err)
	}
	return c.JSON(view)
}

// Resync pushes the whole session state back through the store.
func (h *JourneyHandler) Resync(c *fiber.Ctx) error {
	userID, err := h.userID(c)
	if err != nil {
		return unauthorized(c)
	}
	return c.JSON(h.journey.Resync(c.Context(), userID))
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

func journeyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, journey.ErrUnknownStage):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, journey.ErrStageNotComplete), errors.Is(err, journey.ErrNoRoadmapAnswers):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}
