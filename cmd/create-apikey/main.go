package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/beyondslim/checkout-api/internal/config"
	"github.com/beyondslim/checkout-api/internal/domain"
	"github.com/beyondslim/checkout-api/internal/repository/postgres"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/create-apikey/main.go <name> <api-key>")
		fmt.Println("Example: go run cmd/create-apikey/main.go \"Ops Dashboard\" \"ops-api-key-12345\"")
		os.Exit(1)
	}

	name := os.Args[1]
	apiKey := os.Args[2]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// Hash the API key
	keyHash, err := bcrypt.GenerateFromPassword([]byte(apiKey), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash API key: %v\n", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(db, logger)

	key := &domain.APIKey{
		Name:     name,
		KeyHash:  string(keyHash),
		IsActive: true,
	}

	if err := repos.APIKeys.Create(context.Background(), key); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create API key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("API key created successfully!\n\n")
	fmt.Printf("Key ID: %s\n", key.ID.String())
	fmt.Printf("Name: %s\n", key.Name)
	fmt.Printf("API Key: %s\n", apiKey)
	fmt.Printf("\nIMPORTANT: Save this API key securely! You won't be able to see it again.\n")
	fmt.Printf("\nUse this API key in the Authorization header:\n")
	fmt.Printf("Authorization: Bearer %s\n", apiKey)
}
