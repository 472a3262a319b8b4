package diet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare/types"
)

type stubGenerator struct {
	reply      string
	err        error
	lastPrompt string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string, _ float32, _ int) (string, error) {
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func testProfile() types.PetProfile {
	return types.PetProfile{
		Name:             "Rex",
		Age:              "4",
		Breed:            "Labrador",
		Weight:           "30",
		ActivityLevel:    "High",
		HealthConditions: []string{"Joint Issues"},
	}
}

func TestDailyCalories(t *testing.T) {
	tests := []struct {
		name     string
		weightKg float64
		activity string
		want     float64
	}{
		{"low activity", 10, "Low", 70 * 5.623413251903491 * 1.2},
		{"medium activity", 10, "Medium", 70 * 5.623413251903491 * 1.4},
		{"high activity", 10, "High", 70 * 5.623413251903491 * 1.6},
		{"unknown falls back to medium", 10, "Extreme", 70 * 5.623413251903491 * 1.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DailyCalories(tt.weightKg, tt.activity), 0.01)
		})
	}
}

func TestGeneratePlan(t *testing.T) {
	gen := &stubGenerator{reply: "## Diet Plan"}
	p := NewPlanner(gen, nil)

	plan, err := p.GeneratePlan(context.Background(), testProfile(), types.DietaryPreferences{
		FoodTypes:          []string{"Dry Food"},
		Allergens:          []string{"Chicken"},
		CustomRestrictions: "No grains",
	})
	require.NoError(t, err)
	assert.Equal(t, "## Diet Plan", plan)

	assert.Contains(t, gen.lastPrompt, "Name: Rex")
	assert.Contains(t, gen.lastPrompt, "Weight: 30 kg")
	assert.Contains(t, gen.lastPrompt, "Joint Issues")
	assert.Contains(t, gen.lastPrompt, "Dry Food")
	assert.Contains(t, gen.lastPrompt, "Chicken")
	assert.Contains(t, gen.lastPrompt, "No grains")
	assert.Contains(t, gen.lastPrompt, "markdown format")
}

func TestGeneratePlanInvalidWeight(t *testing.T) {
	p := NewPlanner(&stubGenerator{}, nil)

	profile := testProfile()
	profile.Weight = "heavy"

	_, err := p.GeneratePlan(context.Background(), profile, types.DietaryPreferences{})
	assert.Error(t, err)
}

func TestGeneratePlanPropagatesGeneratorError(t *testing.T) {
	genErr := errors.New("provider down")
	p := NewPlanner(&stubGenerator{err: genErr}, nil)

	_, err := p.GeneratePlan(context.Background(), testProfile(), types.DietaryPreferences{})
	assert.ErrorIs(t, err, genErr)
}

func TestBuildPlanPromptDefaults(t *testing.T) {
	profile := testProfile()
	profile.HealthConditions = nil

	prompt := buildPlanPrompt(profile, types.DietaryPreferences{}, 1000, nil)

	assert.Contains(t, prompt, "Health Conditions: None")
	assert.Contains(t, prompt, "Additional Restrictions: None")
	assert.Contains(t, prompt, "1000.00 calories")
}

func TestBuildPlanPromptLimitsFoodRecommendations(t *testing.T) {
	foods := []FoodProduct{
		{Name: "Food A", Brands: "Brand A", NutritionGrades: "a"},
		{Name: "Food B", Brands: "Brand B", NutritionGrades: "b"},
		{Name: "Food C", Brands: "Brand C", NutritionGrades: "c"},
		{Name: "Food D", Brands: "Brand D", NutritionGrades: "d"},
	}

	prompt := buildPlanPrompt(testProfile(), types.DietaryPreferences{}, 1000, foods)

	assert.Contains(t, prompt, "Food A")
	assert.Contains(t, prompt, "Food C")
	assert.NotContains(t, prompt, "Food D")
}
