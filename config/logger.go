package config

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger builds the service logger: production encoding when PROD is set,
// development encoding otherwise.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv("PROD") == "true" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
