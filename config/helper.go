package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads CONFIG_FILE when set, otherwise .env. A missing file is
// not an error: containers pass plain environment variables.
func loadEnvFiles() {
	if configFile := os.Getenv("CONFIG_FILE"); configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
			return
		}
		log.Printf("Loaded configuration from %s", configFile)
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, relying on system env vars")
	}
}
