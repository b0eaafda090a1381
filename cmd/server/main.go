package main

import (
	"context"
	"log"

	"github.com/mkropacheva/storefront/internal/server"
	"github.com/mkropacheva/storefront/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
