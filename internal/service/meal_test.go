package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Amyat103/meal-max/internal/config"
	"github.com/Amyat103/meal-max/internal/database"
	"github.com/Amyat103/meal-max/internal/domain"
	"github.com/Amyat103/meal-max/internal/repository"
	"github.com/Amyat103/meal-max/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func newMealService(t *testing.T) *service.MealService {
	t.Helper()

	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "meals.db")}
	db, err := database.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := repository.NewMealRepository(db, zerolog.Nop())
	return service.NewMealService(repo, zerolog.Nop())
}

func TestMealService_CreateMeal(t *testing.T) {
	svc := newMealService(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		meal       string
		cuisine    string
		price      decimal.Decimal
		difficulty domain.Difficulty
		wantErr    error
	}{
		{
			name:       "valid meal",
			meal:       "Sushi",
			cuisine:    "Japanese",
			price:      decimal.NewFromFloat(15.0),
			difficulty: domain.DifficultyHigh,
		},
		{
			name:       "zero price",
			meal:       "Freebie",
			cuisine:    "None",
			price:      decimal.Zero,
			difficulty: domain.DifficultyLow,
			wantErr:    domain.ErrInvalidPrice,
		},
		{
			name:       "negative price",
			meal:       "Refund",
			cuisine:    "None",
			price:      decimal.NewFromFloat(-2.5),
			difficulty: domain.DifficultyLow,
			wantErr:    domain.ErrInvalidPrice,
		},
		{
			name:       "unknown difficulty",
			meal:       "Mystery",
			cuisine:    "Fusion",
			price:      decimal.NewFromFloat(9.0),
			difficulty: "HARD",
			wantErr:    domain.ErrInvalidDifficulty,
		},
		{
			name:       "empty name",
			meal:       "",
			cuisine:    "Italian",
			price:      decimal.NewFromFloat(9.0),
			difficulty: domain.DifficultyMed,
			wantErr:    domain.ErrInvalidName,
		},
		{
			name:       "empty cuisine",
			meal:       "Pasta",
			cuisine:    "",
			price:      decimal.NewFromFloat(9.0),
			difficulty: domain.DifficultyMed,
			wantErr:    domain.ErrInvalidCuisine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meal, err := svc.CreateMeal(ctx, tt.meal, tt.cuisine, tt.price, tt.difficulty)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateMeal: %v", err)
			}
			if meal.ID == 0 {
				t.Error("expected a non-zero id")
			}
		})
	}
}

func TestMealService_RoundTrip(t *testing.T) {
	svc := newMealService(t)
	ctx := context.Background()

	created, err := svc.CreateMeal(ctx, "Burger", "American", decimal.NewFromFloat(8.0), domain.DifficultyLow)
	if err != nil {
		t.Fatalf("CreateMeal: %v", err)
	}

	got, err := svc.GetMealByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetMealByID: %v", err)
	}
	if got.Name != "Burger" {
		t.Errorf("expected Burger, got %q", got.Name)
	}

	if err := svc.DeleteMeal(ctx, created.ID); err != nil {
		t.Fatalf("DeleteMeal: %v", err)
	}
	if _, err := svc.GetMealByID(ctx, created.ID); !errors.Is(err, domain.ErrMealDeleted) {
		t.Errorf("expected ErrMealDeleted, got %v", err)
	}
}
