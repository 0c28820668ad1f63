package fx

import (
	"bedwars-tracker/internal/api"
	"bedwars-tracker/internal/config"
	"bedwars-tracker/internal/database"
	"bedwars-tracker/internal/logger"
	"bedwars-tracker/internal/ranked"
	"bedwars-tracker/internal/repository"
	"bedwars-tracker/internal/server"
	"bedwars-tracker/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(database.NewSqlx),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewMatchRepository),
	// api client
	fx.Provide(api.NewStatsClient),
	// rank engine
	fx.Provide(ranked.NewEngine),
	// svc
	fx.Provide(service.NewLeaderboardService),
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewRankedService),
	// server
	fx.Provide(server.NewTrackerServer),
)
