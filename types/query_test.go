package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryParamsValidate(t *testing.T) {
	valid := &QueryParams{Query: "how to feed a kitten", Language: "English"}
	assert.Nil(t, valid.Validate())

	missing := &QueryParams{Query: "how to feed a kitten"}
	errs := missing.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "Language")
}

func TestPetProfileWeightKg(t *testing.T) {
	p := PetProfile{Weight: "12.5"}
	w, err := p.WeightKg()
	require.NoError(t, err)
	assert.Equal(t, 12.5, w)

	p.Weight = "heavy"
	_, err = p.WeightKg()
	assert.Error(t, err)
}

func TestDietPlanParamsValidate(t *testing.T) {
	valid := &DietPlanParams{
		PetProfile: PetProfile{
			Name: "Rex", Age: "4", Breed: "Labrador",
			Weight: "30", ActivityLevel: "High",
		},
	}
	assert.Nil(t, valid.Validate())

	badActivity := &DietPlanParams{
		PetProfile: PetProfile{
			Name: "Rex", Age: "4", Breed: "Labrador",
			Weight: "30", ActivityLevel: "Extreme",
		},
	}
	errs := badActivity.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "ActivityLevel")

	badWeight := &DietPlanParams{
		PetProfile: PetProfile{
			Name: "Rex", Age: "4", Breed: "Labrador",
			Weight: "heavy", ActivityLevel: "High",
		},
	}
	errs = badWeight.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, "must be a valid number", errs["Weight"])
}
