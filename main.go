package main

import (
	"context"
	"embed"
	"fmt"
	"log"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"gorm.io/gorm/logger"

	"linkdraft/internal/browser"
	"linkdraft/internal/database"
	"linkdraft/internal/events"
	"linkdraft/internal/services"
	"linkdraft/internal/utils"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	if err := utils.LoadEnv(); err != nil {
		log.Printf("no .env loaded: %v", err)
	}

	app := NewApp()

	db, err := database.Init(database.Config{
		LogLevel: logger.Info,
	})
	if err != nil {
		fmt.Println("Error opening database:", err)
		return
	}

	if sqlDB, err := db.DB(); err == nil {
		app.dbClose = sqlDB.Close
	}

	//Create each service
	dbService := services.NewDbServices(db)
	tabReader := browser.NewReader("")
	generationService := services.NewGenerationService(dbService.Preferences, dbService.Tasks, dbService.History, tabReader)
	profileService := services.NewProfileService(dbService.Preferences, tabReader)
	app.generation = generationService

	// Create application with options
	err = wails.Run(&options.App{
		Title:  "Linkdraft",
		Width:  440,
		Height: 680,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "Linkdraft",
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup: func(ctx context.Context) {
			app.startup(ctx)
			events.EnableRuntimeEmitter()
			dbService.StartDbServices(ctx)
			generationService.Startup(ctx)
			profileService.Startup(ctx)
		},
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
			dbService.Preferences,
			dbService.Tasks,
			dbService.History,
			generationService,
			profileService,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
