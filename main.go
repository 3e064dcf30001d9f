package main

import (
	"github.com/screenwise/screenwise/config"
	"github.com/screenwise/screenwise/models"
	"github.com/screenwise/screenwise/routes"
	"github.com/screenwise/screenwise/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.ScreenTimeEntry{},
		&models.Reward{},
		&models.Redemption{},
	)

	// Warm the cache client so the first request doesn't pay the dial
	utils.GetRedis()

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
