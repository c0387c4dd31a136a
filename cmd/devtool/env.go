package main

import (
	"errors"
	"os"
	"strings"

	"github.com/osse101/TheDigger_Go/internal/client"
)

const (
	defaultAPIURL   = "http://localhost:8080"
	devtoolPlayerID = "devtool"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// newAPIClient builds a client for API_URL acting as playerID. Requests carry
// API_KEY so admin routes and trusted identity headers work.
func newAPIClient(playerID string) (*client.APIClient, error) {
	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		return nil, errors.New("API_KEY is required")
	}
	return client.New(client.Config{
		BaseURL:  strings.TrimRight(getEnv("API_URL", defaultAPIURL), "/"),
		APIKey:   apiKey,
		PlayerID: playerID,
	})
}
