package types

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

type Validater interface {
	Validate() map[string]string
}

func Validate(v Validater) map[string]string {
	return v.Validate()
}

// QueryParams is the body of POST /generate_answer.
type QueryParams struct {
	Query    string `json:"query" validate:"required"`
	Language string `json:"language" validate:"required"`
}

func (params *QueryParams) Validate() map[string]string {
	return validateStruct(params)
}

// AnswerResponse is returned for a successful chat request.
type AnswerResponse struct {
	RefinedQuery string `json:"refined_query"`
	Response     string `json:"response"`
}

// NoContextResponse is returned when retrieval finds no relevant passages.
// The generator is never invoked in that case.
type NoContextResponse struct {
	Message  string `json:"message"`
	Response string `json:"response"`
}

// PetProfile describes the pet a diet plan is generated for. Weight arrives
// as a string from the frontend and must parse as a number.
type PetProfile struct {
	Name             string   `json:"name" validate:"required"`
	Age              string   `json:"age" validate:"required"`
	Breed            string   `json:"breed" validate:"required"`
	Weight           string   `json:"weight" validate:"required"`
	ActivityLevel    string   `json:"activityLevel" validate:"required,oneof=Low Medium High"`
	HealthConditions []string `json:"healthConditions"`
}

// WeightKg parses the profile weight. Validation guarantees it succeeds for
// requests that passed Validate.
func (p PetProfile) WeightKg() (float64, error) {
	w, err := strconv.ParseFloat(p.Weight, 64)
	if err != nil {
		return 0, fmt.Errorf("weight must be a valid number: %w", err)
	}
	return w, nil
}

type DietaryPreferences struct {
	FoodTypes          []string `json:"foodTypes"`
	Allergens          []string `json:"allergens"`
	CustomRestrictions string   `json:"customRestrictions"`
}

// DietPlanParams is the body of POST /generate-diet-plan.
type DietPlanParams struct {
	PetProfile         PetProfile         `json:"petProfile" validate:"required"`
	DietaryPreferences DietaryPreferences `json:"dietaryPreferences"`
}

func (params *DietPlanParams) Validate() map[string]string {
	errors := validateStruct(params)
	if errors == nil {
		errors = make(map[string]string)
	}
	if params.PetProfile.Weight != "" {
		if _, err := params.PetProfile.WeightKg(); err != nil {
			errors["Weight"] = "must be a valid number"
		}
	}
	if len(errors) == 0 {
		return nil
	}
	return errors
}

// StatusResponse wraps the diet-plan and image-analysis payloads.
type StatusResponse struct {
	Status   string `json:"status"`
	Data     string `json:"data,omitempty"`
	Analysis string `json:"analysis,omitempty"`
}

func validateStruct(params any) map[string]string {
	validate := validator.New()
	if err := validate.Struct(params); err != nil {
		errs := err.(validator.ValidationErrors)
		errors := make(map[string]string)
		for _, e := range errs {
			errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}
