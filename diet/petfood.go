package diet

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const openPetFoodBaseURL = "https://world.openpetfoodfacts.org/api/v0"

// FoodProduct is a commercial pet food candidate pulled from the Open Pet
// Food Facts catalog.
type FoodProduct struct {
	Name            string
	Brands          string
	NutritionGrades string
	Ingredients     string
}

// PetFoodClient queries the Open Pet Food Facts search API. Lookups are
// best-effort: any failure degrades to an empty recommendation list and the
// diet plan proceeds without commercial products.
type PetFoodClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewPetFoodClient() *PetFoodClient {
	return &PetFoodClient{
		baseURL: openPetFoodBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  slog.Default(),
	}
}

// NewPetFoodClientWithBase is used by tests to point the client at a stub
// server.
func NewPetFoodClientWithBase(baseURL string) *PetFoodClient {
	c := NewPetFoodClient()
	c.baseURL = baseURL
	return c
}

type searchResponse struct {
	Products []struct {
		ProductName     string `json:"product_name"`
		Brands          string `json:"brands"`
		NutritionGrades string `json:"nutrition_grades"`
		IngredientsText string `json:"ingredients_text"`
	} `json:"products"`
}

// Search finds pet food products matching the pet's preferred food types,
// excluding tags derived from its health conditions. At most five products
// are returned.
func (c *PetFoodClient) Search(ctx context.Context, foodTypes, healthConditions, allergens []string) []FoodProduct {
	params := url.Values{}
	params.Set("categories_tags", "pet_food")
	params.Set("page_size", "5")
	params.Set("json", "1")
	if restrictions := restrictionTags(healthConditions, allergens); len(restrictions) > 0 {
		params.Set("exclude_tags", strings.Join(restrictions, ","))
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		c.logger.Warn("pet food search skipped", "error", err)
		return nil
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("pet food search failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("pet food search failed", "status", resp.StatusCode, "body", string(body))
		return nil
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		c.logger.Warn("pet food search response unreadable", "error", err)
		return nil
	}

	var products []FoodProduct
	for _, p := range searchResp.Products {
		if !matchesFoodType(p.ProductName, foodTypes) {
			continue
		}
		product := FoodProduct{
			Name:            p.ProductName,
			Brands:          p.Brands,
			NutritionGrades: p.NutritionGrades,
			Ingredients:     p.IngredientsText,
		}
		if product.Name == "" {
			product.Name = "Unknown"
		}
		if product.Brands == "" {
			product.Brands = "Unknown"
		}
		if product.NutritionGrades == "" {
			product.NutritionGrades = "N/A"
		}
		products = append(products, product)
	}
	return products
}

// restrictionTags maps health conditions to catalog exclusion tags. Food
// allergies expand to the pet's own allergen list.
func restrictionTags(healthConditions, allergens []string) []string {
	var tags []string
	for _, condition := range healthConditions {
		switch condition {
		case "Diabetes":
			tags = append(tags, "low_glycemic")
		case "Heart Disease":
			tags = append(tags, "low_sodium")
		case "Kidney Disease":
			tags = append(tags, "low_protein")
		case "Food Allergies":
			tags = append(tags, allergens...)
		}
	}
	return tags
}

func matchesFoodType(productName string, foodTypes []string) bool {
	if len(foodTypes) == 0 {
		return false
	}
	name := strings.ToLower(productName)
	for _, foodType := range foodTypes {
		if strings.Contains(name, strings.ToLower(foodType)) {
			return true
		}
	}
	return false
}
