package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"backend/models"

	lru "github.com/hashicorp/golang-lru/v2"
)

// RecipeService talks to the recipe-recommendation API: weekly AI plans and
// per-recipe nutrition lookups.
type RecipeService struct {
	apiKey string
	client *http.Client
	cache  *lru.Cache[int64, *models.Meal]
}

func NewRecipeService() *RecipeService {
	cache, _ := lru.New[int64, *models.Meal](256)
	return &RecipeService{
		apiKey: os.Getenv("RECIPE_API_KEY"),
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  cache,
	}
}

// GenerateWeeklyPlan asks the recipe API for a 7-day plan. The body is
// returned raw and stored untouched (the normalizer owns its shape) after a
// sanity check that it at least carries a week mapping.
func (s *RecipeService) GenerateWeeklyPlan(targetCalories float64, diet string) (json.RawMessage, error) {
	u := fmt.Sprintf(
		"https://api.spoonacular.com/mealplanner/generate?timeFrame=week&targetCalories=%.0f&diet=%s&apiKey=%s",
		targetCalories, url.QueryEscape(diet), s.apiKey,
	)

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call recipe planner: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read planner response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recipe planner API error %d: %s", resp.StatusCode, string(body))
	}

	var probe struct {
		Week map[string]json.RawMessage `json:"week"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse planner JSON: %w", err)
	}
	if len(probe.Week) == 0 {
		return nil, fmt.Errorf("planner response has no week")
	}
	return body, nil
}

// GetRecipe fetches one recipe with nutrition included. Responses are
// immutable upstream, so hits are cached.
func (s *RecipeService) GetRecipe(id int64) (*models.Meal, error) {
	if m, ok := s.cache.Get(id); ok {
		return m, nil
	}

	u := fmt.Sprintf(
		"https://api.spoonacular.com/recipes/%d/information?includeNutrition=true&apiKey=%s",
		id, s.apiKey,
	)
	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call recipe API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recipe API error %d: %s", resp.StatusCode, string(body))
	}

	var meal models.Meal
	if err := json.Unmarshal(body, &meal); err != nil {
		return nil, fmt.Errorf("failed to parse recipe JSON: %w", err)
	}
	s.cache.Add(id, &meal)
	return &meal, nil
}
