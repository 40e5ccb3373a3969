package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/formacontact/leadbot/core/cmd"
	"github.com/formacontact/leadbot/internal/app"
)

func main() {
	// Local development convenience; production sets real env vars.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}

	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return app.LoadConfig(path)
		},
		Bootstrap: app.Bootstrap,
	})
	if err != nil {
		log.Fatalf("leadbot: %v", err)
	}
}
