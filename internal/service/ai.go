package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/metrics"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/types"
)

const recipePrompt = `Generate exactly ONE recipe using ONLY the ingredients provided below.
You may add basic items like salt, pepper, oil, or water if necessary.

Output ONLY a JSON object, without markdown or explanations, following this schema exactly:
{
  "title": "string",
  "description": "string",
  "ingredients": [{"name": "string", "quantity": "string"}],
  "steps": [{"stepNumber": number, "instruction": "string"}],
  "cookingTime": number,
  "difficulty": "easy | medium | hard",
  "category": "breakfast | lunch | dinner | snack | dessert | beverage",
  "cuisine": "indian | italian | chinese | mexican | american | thai | other"
}

INGREDIENTS:
%s`

var errGeneratorMissing = errors.New("no text generator configured")

// GeneratedRecipe is a recipe proposed by the model. It is not persisted
// until the caller saves it.
type GeneratedRecipe struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Ingredients models.Ingredients `json:"ingredients"`
	Steps       models.Steps       `json:"steps"`
	CookingTime int                `json:"cookingTime"`
	Difficulty  string             `json:"difficulty,omitempty"`
	Category    string             `json:"category,omitempty"`
	Cuisine     string             `json:"cuisine,omitempty"`
}

// looseText accepts a JSON string or number. Models are inconsistent about
// quantities and times.
type looseText string

func (t *looseText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = looseText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*t = looseText(n.String())
	return nil
}

// leadingInt reads the number t starts with ("25 minutes" -> 25). Anything
// outside 1..limit reads as 0.
func (t looseText) leadingInt(limit int) int {
	fields := strings.Fields(string(t))
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || !(n >= 1 && n <= float64(limit)) {
		return 0
	}
	return int(n)
}

const (
	maxCookingMinutes = 7 * 24 * 60
	maxStepNumber     = 1000
)

type generatedPayload struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Ingredients []struct {
		Name     string    `json:"name" validate:"required"`
		Quantity looseText `json:"quantity"`
	} `json:"ingredients" validate:"required,min=1,dive"`
	Steps []struct {
		StepNumber  looseText `json:"stepNumber"`
		Instruction string    `json:"instruction" validate:"required"`
	} `json:"steps" validate:"required,min=1,dive"`
	CookingTime looseText `json:"cookingTime"`
	Difficulty  string    `json:"difficulty"`
	Category    string    `json:"category"`
	Cuisine     string    `json:"cuisine"`
}

// AIRecipeService generates recipes with a TextGenerator and keeps the ones
// an account chooses to save. Saved AI recipes are private to their owner.
type AIRecipeService struct {
	db        *gorm.DB
	generator TextGenerator
	validate  *validator.Validate
}

func NewAIRecipeService(db *gorm.DB, generator TextGenerator) *AIRecipeService {
	return &AIRecipeService{
		db:        db,
		generator: generator,
		validate:  validator.New(),
	}
}

// Generate asks the model for a recipe built from ingredients.
func (s *AIRecipeService) Generate(ctx context.Context, ingredients []string) (*GeneratedRecipe, error) {
	cleaned := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			cleaned = append(cleaned, ing)
		}
	}
	if len(cleaned) == 0 {
		return nil, apperrors.BadRequest("Ingredients array is required")
	}

	log := logging.Ctx(ctx)
	if s.generator == nil {
		metrics.AIGenerations.WithLabelValues("upstream_error").Inc()
		return nil, apperrors.Server("Failed to generate recipe", errGeneratorMissing)
	}

	text, err := s.generator.Generate(ctx, fmt.Sprintf(recipePrompt, strings.Join(cleaned, ", ")))
	if err != nil {
		metrics.AIGenerations.WithLabelValues("upstream_error").Inc()
		log.Error().Err(err).Msg("recipe generation failed")
		return nil, apperrors.Server("Failed to generate recipe", err)
	}

	raw := stripCodeFence(text)
	var payload generatedPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		metrics.AIGenerations.WithLabelValues("invalid_json").Inc()
		log.Warn().Err(err).Msg("model returned invalid JSON")
		return nil, apperrors.Server("AI returned invalid JSON", err).WithRaw(text)
	}
	if err := s.validate.Struct(&payload); err != nil {
		metrics.AIGenerations.WithLabelValues("missing_fields").Inc()
		return nil, apperrors.Server("AI response missing required fields", err).WithRaw(text)
	}

	metrics.AIGenerations.WithLabelValues("ok").Inc()
	return payload.recipe(), nil
}

func (p *generatedPayload) recipe() *GeneratedRecipe {
	r := &GeneratedRecipe{
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		Ingredients: make(models.Ingredients, 0, len(p.Ingredients)),
		Steps:       make(models.Steps, 0, len(p.Steps)),
		Difficulty:  knownValue(p.Difficulty, models.IsDifficulty),
		Category:    knownValue(p.Category, models.IsCategory),
		Cuisine:     knownValue(p.Cuisine, models.IsCuisine),
	}
	for _, ing := range p.Ingredients {
		r.Ingredients = append(r.Ingredients, models.Ingredient{Name: ing.Name, Quantity: string(ing.Quantity)})
	}
	for _, step := range p.Steps {
		r.Steps = append(r.Steps, models.Step{StepNumber: step.StepNumber.leadingInt(maxStepNumber), Instruction: step.Instruction})
	}
	r.Steps = r.Steps.Numbered()
	r.CookingTime = p.CookingTime.leadingInt(maxCookingMinutes)
	return r
}

// knownValue lower-cases v and returns it when valid, "" otherwise.
func knownValue(v string, valid func(string) bool) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if valid(v) {
		return v
	}
	return ""
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		t = t[i+1:]
	} else {
		t = strings.TrimPrefix(t, "json")
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}

// Save keeps a generated recipe for its owner.
func (s *AIRecipeService) Save(ctx context.Context, ownerID uuid.UUID, req *types.SaveAIRecipeRequest) (*models.AIRecipe, error) {
	if strings.TrimSpace(req.Title) == "" || len(req.Ingredients) == 0 || len(req.Steps) == 0 {
		return nil, apperrors.BadRequest("Invalid recipe data")
	}

	recipe := &models.AIRecipe{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Ingredients: req.Ingredients,
		Steps:       req.Steps.Numbered(),
		CookingTime: req.CookingTime,
		Difficulty:  req.Difficulty,
		Category:    req.Category,
		Cuisine:     req.Cuisine,
		Source:      models.SourceAI,
		CreatedByID: ownerID,
	}
	if err := s.db.WithContext(ctx).Omit("CreatedBy").Create(recipe).Error; err != nil {
		return nil, apperrors.Server("Failed to save AI recipe", err)
	}
	return recipe, nil
}

func (s *AIRecipeService) List(ctx context.Context, ownerID uuid.UUID) ([]models.AIRecipe, error) {
	recipes := []models.AIRecipe{}
	err := s.db.WithContext(ctx).
		Where("created_by_id = ?", ownerID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, apperrors.Server("Failed to fetch AI recipes", err)
	}
	return recipes, nil
}

// Get returns one of the owner's AI recipes. Another owner's recipe is
// reported as not found.
func (s *AIRecipeService) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.AIRecipe, error) {
	var recipe models.AIRecipe
	err := s.db.WithContext(ctx).
		Where("id = ? AND created_by_id = ?", id, ownerID).
		First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Recipe not found")
	}
	if err != nil {
		return nil, apperrors.Server("Failed to fetch recipe", err)
	}
	return &recipe, nil
}

func (s *AIRecipeService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND created_by_id = ?", id, ownerID).
		Delete(&models.AIRecipe{})
	if result.Error != nil {
		return apperrors.Server("Failed to delete recipe", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("Recipe not found")
	}
	return nil
}
