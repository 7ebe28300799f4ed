package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/pageza/tastyshare/backend/config"
	"github.com/pageza/tastyshare/backend/internal/database"
	"github.com/pageza/tastyshare/backend/internal/logging"
	"github.com/pageza/tastyshare/backend/internal/models"
	"github.com/pageza/tastyshare/backend/internal/service"
	"github.com/pageza/tastyshare/backend/internal/types"
)

const seedPassword = "testpassword123"

var seedUsers = []string{
	"john.doe@example.com",
	"jane.smith@example.com",
	"sam.cook@example.com",
}

func main() {
	numRecipes := flag.Int("recipes", 25, "Number of recipes to generate")
	seed := flag.Int64("seed", 42, "Random seed for generated content")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)

	if err := run(context.Background(), cfg, logger, *numRecipes, *seed); err != nil {
		logger.Error("Seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, numRecipes int, seed int64) error {
	db, err := database.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db, logger); err != nil {
		return err
	}

	images, err := service.NewLocalImageStore(cfg.ImageDir, int64(cfg.ImageMaxUploadMB)<<20, logger)
	if err != nil {
		return err
	}
	auth := service.NewAuthService(db, service.NewMemorySessionStore(), images, cfg.JWTSecret, cfg.TokenTTL, logger)
	recipes := service.NewRecipeService(db, images, logger)

	var owners []uint
	for _, email := range seedUsers {
		user, err := auth.Register(ctx, email, seedPassword)
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			user, err = auth.Authenticate(ctx, email, seedPassword)
			if err != nil {
				return err
			}
			if user == nil {
				logger.Warn("Seed user exists with a different password, skipping", slog.String("email", email))
				continue
			}
		case err != nil:
			return fmt.Errorf("failed to create seed user %s: %w", email, err)
		}
		owners = append(owners, user.ID)
	}
	if len(owners) == 0 {
		return errors.New("no seed users available")
	}

	faker := gofakeit.New(seed)
	categories := models.Categories()
	for i := 0; i < numRecipes; i++ {
		input := types.RecipeInput{
			Title:       fmt.Sprintf("%s %s", faker.Adjective(), faker.Dinner()),
			Ingredients: fakeIngredients(faker),
			Steps:       faker.Paragraph(1, 4, 10, "\n"),
			Category:    categories[faker.Number(0, len(categories)-1)],
			CookingTime: fmt.Sprintf("%dm", faker.Number(5, 120)),
		}
		owner := owners[i%len(owners)]
		recipe, err := recipes.Create(ctx, owner, input)
		if err != nil {
			return fmt.Errorf("failed to create recipe %d: %w", i+1, err)
		}
		logger.Info("Seeded recipe", slog.Uint64("id", uint64(recipe.ID)), slog.String("title", recipe.Title))
	}

	logger.Info("Seeding complete",
		slog.Int("users", len(owners)),
		slog.Int("recipes", numRecipes),
		slog.String("password", seedPassword),
	)
	return nil
}

func fakeIngredients(faker *gofakeit.Faker) string {
	n := faker.Number(3, 7)
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			items = append(items, strings.ToLower(faker.Vegetable()))
		} else {
			items = append(items, strings.ToLower(faker.Fruit()))
		}
	}
	return strings.Join(items, ", ")
}
