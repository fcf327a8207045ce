package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/pitwall/paddockpress/internal/server"
	"github.com/pitwall/paddockpress/internal/server/config"
)

func main() {

	// A local .env is optional; the environment overlay picks up whatever it
	// sets.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
