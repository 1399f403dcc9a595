package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a zap logger for the given mode ("dev" or "prod").
func New(mode string) (*zap.Logger, error) {
	switch mode {
	case "", "dev":
		return zap.NewDevelopment()
	case "prod":
		return zap.NewProduction()
	default:
		return nil, fmt.Errorf("unknown log mode %q", mode)
	}
}
