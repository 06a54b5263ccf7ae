package main

import (
	"log"

	"github.com/avc/storefront/internal/app"
)

func main() {
	application, err := app.NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize storefront: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Failed to run storefront: %v", err)
	}
}
