package main

import (
	"context"
	"flag"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

var pantries = [][]string{
	{"spaghetti", "garlic", "olive oil", "chili flakes", "parsley"},
	{"chickpeas", "cucumber", "tomato", "red onion", "feta"},
	{"oats", "banana", "milk", "peanut butter"},
	{"chicken thighs", "coconut milk", "curry paste", "jasmine rice"},
	{"eggs", "flour", "butter", "sugar", "vanilla"},
	{"tofu", "soy sauce", "broccoli", "ginger", "sesame oil"},
	{"corn tortillas", "black beans", "avocado", "lime", "cilantro"},
	{"salmon", "lemon", "dill", "potatoes"},
	{"miso", "dashi", "tofu", "spring onion", "wakame"},
	{"lentils", "carrot", "celery", "cumin", "vegetable stock"},
}

func main() {
	_ = godotenv.Load()

	owner := flag.String("owner", "", "email of the account that will own the recipes")
	count := flag.Int("count", len(pantries), "number of recipes to generate")
	pause := flag.Duration("pause", 2*time.Second, "delay between generation calls")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log := logging.WithComponent("seed_recipes")

	if cfg.AIAPIKey == "" {
		log.Fatal().Msg("AI_API_KEY is required to generate recipes")
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close(db)

	var user models.User
	if err := db.Where("email = ?", *owner).First(&user).Error; err != nil {
		log.Fatal().Err(err).Str("email", *owner).Msg("owner account not found")
	}

	generator := service.NewChatCompletionClient(cfg.AIAPIKey, cfg.AIAPIURL, cfg.AIModel)
	created := seed(context.Background(), service.NewAIRecipeService(db, generator), service.NewRecipeService(db), user.ID, *count, *pause)
	log.Info().Int("created", created).Int("requested", *count).Msg("seeding finished")
}

// seed generates count recipes from the pantry list and publishes them as
// ownerID. Failed generations are skipped. It returns how many were stored.
func seed(ctx context.Context, ai *service.AIRecipeService, recipes *service.RecipeService, ownerID uuid.UUID, count int, pause time.Duration) int {
	log := logging.WithComponent("seed_recipes")

	created := 0
	for i := 0; i < count; i++ {
		genCtx, cancel := context.WithTimeout(ctx, 90*time.Second)
		generated, err := ai.Generate(genCtx, pantries[i%len(pantries)])
		if err != nil {
			cancel()
			log.Warn().Err(err).Int("index", i).Msg("generation failed, skipping")
			continue
		}

		recipe, err := recipes.CreateRecipe(genCtx, ownerID, publishable(generated))
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("title", generated.Title).Msg("failed to store recipe")
			continue
		}
		created++
		log.Info().Str("recipe_id", recipe.ID.String()).Str("title", recipe.Title).Msg("seeded recipe")

		if i+1 < count && pause > 0 {
			time.Sleep(pause)
		}
	}
	return created
}

// publishable fills the fields a public recipe requires but a generated one
// may leave out.
func publishable(g *service.GeneratedRecipe) *types.RecipeRequest {
	req := &types.RecipeRequest{
		Title:       g.Title,
		Description: g.Description,
		Ingredients: g.Ingredients,
		Steps:       g.Steps,
		CookingTime: g.CookingTime,
		Difficulty:  g.Difficulty,
		Category:    g.Category,
		Cuisine:     g.Cuisine,
	}
	if req.CookingTime <= 0 {
		req.CookingTime = 30
	}
	if req.Category == "" {
		req.Category = "dinner"
	}
	if req.Cuisine == "" {
		req.Cuisine = "other"
	}
	return req
}
