package env

import "os"

// Get returns the environment variable value, falling back when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
