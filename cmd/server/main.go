// Command server runs the GramSeva HTTP API.
//
// Configuration is read from config.yaml (CONFIG_PATH to override) and
// environment variables. The process shuts down gracefully on SIGINT or
// SIGTERM.
package main

import (
	"context"
	"log"

	"github.com/gramseva/gramseva-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
