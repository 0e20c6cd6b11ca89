package main

import (
	"log"

	"github.com/joho/godotenv"

	"stockpile/config"
	"stockpile/handlers"
	"stockpile/models"
	"stockpile/storage"
	"stockpile/store"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	adapter, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Unable to open storage: %v", err)
	}
	defer adapter.Close()

	users, err := adapter.LoadCredentials()
	if err != nil {
		log.Printf("warning: could not read credential document, starting empty: %v", err)
		users = models.Credentials{}
	}

	cli := handlers.New(cfg, adapter, store.NewCredentialStore(adapter, users))
	cli.Run()
}
