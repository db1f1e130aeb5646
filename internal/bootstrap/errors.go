package bootstrap

import "errors"

var (
	errMissingDatabaseURL = errors.New("DATABASE_URL is required")
	errMissingAPIKey      = errors.New("OPENROUTER_API_KEY is required")
)
