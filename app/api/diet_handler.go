package api

import (
	"github.com/gofiber/fiber/v2"

	"petcare/diet"
	"petcare/types"
)

// DietHandler serves the diet-plan endpoint.
type DietHandler struct {
	planner *diet.Planner
}

func NewDietHandler(planner *diet.Planner) *DietHandler {
	return &DietHandler{planner: planner}
}

func (h *DietHandler) HandleGenerateDietPlan(c *fiber.Ctx) error {
	var params types.DietPlanParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	plan, err := h.planner.GeneratePlan(c.UserContext(), params.PetProfile, params.DietaryPreferences)
	if err != nil {
		return err
	}

	return c.JSON(types.StatusResponse{
		Status: "success",
		Data:   plan,
	})
}
