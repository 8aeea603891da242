package config

import (
	"log"
	"os"
)

// GetEnv reads a single environment variable. The .env file is loaded once
// by main before any config is read.
func GetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("[ENV] %s is not set", key)
	}
	return value
}

// GetEnvOrDefault reads an environment variable with a fallback value.
func GetEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
