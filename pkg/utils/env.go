package utils

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads a .env file if one is present next to the binary.
// Missing files are not an error; real environment variables always win.
func LoadDotEnv() bool {
	if err := godotenv.Load(".env"); err != nil {
		return false
	}
	return true
}

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or its value is empty, Getenv returns the fallback string.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}
