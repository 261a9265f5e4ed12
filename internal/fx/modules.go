package fx

import (
	"github.com/Amyat103/meal-max/internal/battle"
	"github.com/Amyat103/meal-max/internal/config"
	"github.com/Amyat103/meal-max/internal/database"
	"github.com/Amyat103/meal-max/internal/logger"
	"github.com/Amyat103/meal-max/internal/repository"
	"github.com/Amyat103/meal-max/internal/server"
	"github.com/Amyat103/meal-max/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideBattleManager(repo *repository.MealRepository, log zerolog.Logger) *battle.Manager {
	return battle.NewManager(repo, log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewMealRepository),
	// battle engine
	fx.Provide(ProvideBattleManager),
	// svc
	fx.Provide(service.NewMealService),
	fx.Provide(service.NewBattleService),
	// server
	fx.Provide(server.New),
)
