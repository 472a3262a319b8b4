// Package diet generates personalized pet diet plans: caloric needs from
// the pet's weight and activity level, commercial food candidates from the
// Open Pet Food Facts catalog, and a markdown plan from the generator.
package diet

import (
	"context"
	"fmt"
	"math"
	"strings"

	"petcare/model"
	"petcare/types"
)

const (
	planTemperature = 0.3
	planMaxTokens   = 2048
)

// Planner composes diet plans. The food client is optional for tests.
type Planner struct {
	generator model.GeneratorInterface
	foods     *PetFoodClient
}

func NewPlanner(generator model.GeneratorInterface, foods *PetFoodClient) *Planner {
	return &Planner{
		generator: generator,
		foods:     foods,
	}
}

// DailyCalories computes the pet's daily caloric needs from its resting
// energy requirement, RER = 70 * kg^0.75, scaled by an activity factor.
// Unknown activity levels fall back to the Medium factor.
func DailyCalories(weightKg float64, activityLevel string) float64 {
	rer := 70 * math.Pow(weightKg, 0.75)
	factor := 1.4
	switch activityLevel {
	case "Low":
		factor = 1.2
	case "Medium":
		factor = 1.4
	case "High":
		factor = 1.6
	}
	return rer * factor
}

// GeneratePlan builds the plan prompt from the profile, preferences,
// calculated calories and food candidates, and runs it through the
// generator. Food catalog failures never fail the request; a generation
// failure does.
func (p *Planner) GeneratePlan(ctx context.Context, profile types.PetProfile, prefs types.DietaryPreferences) (string, error) {
	weight, err := profile.WeightKg()
	if err != nil {
		return "", err
	}
	calories := DailyCalories(weight, profile.ActivityLevel)

	var foods []FoodProduct
	if p.foods != nil {
		foods = p.foods.Search(ctx, prefs.FoodTypes, profile.HealthConditions, prefs.Allergens)
	}

	prompt := buildPlanPrompt(profile, prefs, calories, foods)
	return p.generator.Generate(ctx, prompt, planTemperature, planMaxTokens)
}

func buildPlanPrompt(profile types.PetProfile, prefs types.DietaryPreferences, calories float64, foods []FoodProduct) string {
	healthConditions := strings.Join(profile.HealthConditions, ", ")
	if healthConditions == "" {
		healthConditions = "None"
	}
	restrictions := prefs.CustomRestrictions
	if restrictions == "" {
		restrictions = "None"
	}

	var foodRecs strings.Builder
	for i, food := range foods {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&foodRecs, "- **Name**: %s, **Brand**: %s, **Nutrition**: %s\n", food.Name, food.Brands, food.NutritionGrades)
	}

	return fmt.Sprintf(`Generate a detailed and comprehensive diet plan for a pet with the following information:

Pet Profile:
- Name: %s
- Age: %s
- Breed: %s
- Weight: %s kg
- Activity Level: %s

Health Conditions: %s

Dietary Preferences:
- Preferred Food Types: %s
- Allergens to Avoid: %s
- Additional Restrictions: %s

Calculated Daily Caloric Needs: %.2f calories

Available Commercial Foods:
%s
Health Conditions and Dietary Considerations:
- Diabetes: Requires consistent meal timing and low-glycemic foods
- Heart Disease: Needs low-sodium diet with monitored fluid intake
- Kidney Disease: Requires low-protein, high-quality protein sources
- Joint Issues: Benefits from omega-3 supplementation
- Food Allergies: Must avoid specific allergens

Please provide a comprehensive diet plan that includes:
1. Detailed daily meal schedule (breakfast, lunch, dinner) with specific portions and timing
2. Precise nutrient breakdown (protein, fat, carbs percentages)
3. Specific food recommendations and portions from the available commercial foods
4. Supplement recommendations if needed
5. Special feeding instructions based on health conditions
6. Tips for maintaining proper hydration
7. Guidance for treats and snacks
8. Weekly meal rotation suggestions
9. Signs to monitor for diet effectiveness
10. Instructions for transitioning to the new diet

The response should be in markdown format.
- Use headings ('##' for sections)
- Use bold ('**bold text**') for important words
- Use bullet points ('- item') where necessary
- Do not use JSON format or structured data.`,
		profile.Name, profile.Age, profile.Breed, profile.Weight, profile.ActivityLevel,
		healthConditions,
		strings.Join(prefs.FoodTypes, ", "), strings.Join(prefs.Allergens, ", "), restrictions,
		calories,
		foodRecs.String())
}
