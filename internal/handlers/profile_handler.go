package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/unmaphq/unmap-backend/internal/dto"
	"github.com/unmaphq/unmap-backend/internal/journey"
	"github.com/unmaphq/unmap-backend/internal/middleware"
)

// ProfileHandler covers everything outside the stage flows: name, wheel
// scores, check-ins, reflections and the roadmap plan.
type ProfileHandler struct {
	journey *journey.Service
}

func NewProfileHandler(journeySvc *journey.Service) *ProfileHandler {
	return &ProfileHandler{journey: journeySvc}
}

func (h *ProfileHandler) SetName(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.NameRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return badRequest(c, "name is required")
	}
	return c.JSON(h.journey.SetName(userID, req.Name))
}

func (h *ProfileHandler) GetWheel(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	return c.JSON(h.journey.StateView(userID).Wheel)
}

// SaveWheel overwrites all eight areas at once.
func (h *ProfileHandler) SaveWheel(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.WheelRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	for _, v := range []int{req.Career, req.Health, req.Relationships, req.Money, req.Growth, req.Fun, req.Environment, req.Purpose} {
		if v < 0 || v > 10 {
			return badRequest(c, "wheel scores must be between 0 and 10")
		}
	}
	view := h.journey.SaveWheel(userID, journey.WheelScores{
		Career:        req.Career,
		Health:        req.Health,
		Relationships: req.Relationships,
		Money:         req.Money,
		Growth:        req.Growth,
		Fun:           req.Fun,
		Environment:   req.Environment,
		Purpose:       req.Purpose,
	})
	return c.JSON(view)
}

func (h *ProfileHandler) AddCheckin(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.CheckinRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.MoodScore < 1 || req.MoodScore > 10 {
		return badRequest(c, "mood_score must be between 1 and 10")
	}
	view := h.journey.AddCheckin(userID, req.MoodScore, req.Note)
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *ProfileHandler) ListCheckins(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	return c.JSON(fiber.Map{"checkins": h.journey.StateView(userID).Checkins})
}

func (h *ProfileHandler) ListReflections(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	entries, err := h.journey.Reflections(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load reflections",
		})
	}
	return c.JSON(fiber.Map{"reflections": entries})
}

func (h *ProfileHandler) GetPlan(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	plan := h.journey.Plan(userID)
	if plan == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "No roadmap plan yet",
		})
	}
	return c.JSON(plan)
}

func (h *ProfileHandler) GeneratePlan(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	plan, err := h.journey.GeneratePlan(c.Context(), userID)
	if err != nil {
		if errors.Is(err, journey.ErrNoRoadmapAnswers) {
			return journeyError(c, err)
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Couldn't generate your plan, try again",
		})
	}
	return c.JSON(plan)
}
