package main

import (
	"os"

	"github.com/soltgard/battleforge/internal/api"
	"github.com/soltgard/battleforge/internal/config"
	"github.com/soltgard/battleforge/internal/constants"
	"github.com/soltgard/battleforge/internal/engine"
	"github.com/soltgard/battleforge/internal/logging"
	"github.com/soltgard/battleforge/internal/storage"
	"github.com/soltgard/battleforge/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	// Load the battle configuration file (required). Path may be provided
	// via BATTLEFORGE_CONFIG or defaults to ./battleforge_config.json in
	// the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid battle configuration", err, logging.Fields{
			"config_path": configPath,
			"hint":        "create a battleforge_config.json with an 'actions' array plus optional environments, ai_profiles, battle_types and server.address",
		})
	}

	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = constants.DefaultDBPath
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db)
	eng := engine.New(cfg.Actions, cfg.AIProfiles, nil)
	handler := api.NewBattleHandler(repo, cfg, eng)

	startTimeoutScanner(repo, eng, cfg.ActionTimeout)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.POST(constants.RouteBattles, handler.CreateBattle)
		apiRoutes.GET(constants.RouteBattles, handler.ListBattles)
		apiRoutes.GET(constants.RouteBattleByID, handler.GetBattle)
		apiRoutes.POST(constants.RouteBattleAction, handler.SubmitAction)
		apiRoutes.POST(constants.RouteBattleAITurn, handler.AdvanceAITurn)
		apiRoutes.POST(constants.RouteBattleAbandon, handler.AbandonBattle)
		apiRoutes.POST(constants.RouteBattlePause, handler.PauseBattle)
		apiRoutes.POST(constants.RouteBattleResume, handler.ResumeBattle)
		apiRoutes.GET(constants.RouteBattleLog, handler.GetCombatLog)
		apiRoutes.GET(constants.RouteRecords, handler.ListRecords)
	}

	addr := cfg.ServerAddress
	if env := os.Getenv(constants.EnvAddress); env != "" {
		addr = env
	}
	if addr == "" {
		addr = constants.DefaultAddress
	}
	logging.Info("Server started", logging.Fields{
		constants.LogFieldAddr: addr,
		"build":                version.String(),
	})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
