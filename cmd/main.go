package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/datamaphq/datamap/internal/config"
	"github.com/datamaphq/datamap/internal/http"
	"github.com/datamaphq/datamap/internal/seed"
	"go.uber.org/zap"
)

func main() {
	runSeed := flag.Bool("seed", false, "provision the demo catalog and exit")
	flag.Parse()

	// Initialize context
	ctx, err := config.InitContext()
	if err != nil {
		log.Fatalf("Failed to initialize context: %v", err)
	}

	defer func() {
		if err := ctx.Logger.Sync(); err != nil {
			fmt.Printf("Failed to sync logger: %v\n", err)
		}
	}()

	// Ensure the database connection is closed when the application exits
	sqlDB, err := ctx.DB.DB()
	if err != nil {
		ctx.Logger.Fatal("Failed to get underlying SQL DB from GORM DB", zap.Error(err))
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			ctx.Logger.Fatal("Failed to close database connection", zap.Error(err))
		}
	}()

	if *runSeed {
		if err := seed.Run(ctx); err != nil {
			ctx.Logger.Fatal("Failed to provision demo catalog", zap.Error(err))
		}
		return
	}

	// Initialize HTTP service
	service := http.NewHTTPService(ctx)

	// Start the server
	if err := service.Engine().Run(":8080"); err != nil {
		ctx.Logger.Fatal("Failed to start the server", zap.Error(err))
	}
}
