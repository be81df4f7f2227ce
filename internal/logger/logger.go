package logger

import (
	"go.uber.org/zap"

	"github.com/myflowlab/stem-certification-quiz/internal/config"
)

// New returns a JSON production logger in production and a console development logger otherwise.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
