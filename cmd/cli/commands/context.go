package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/internal/config"
	"github.com/jakechorley/workday-roster/pkg/db"
	"github.com/jakechorley/workday-roster/pkg/metrics"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env      string
	Cfg      *config.Config
	Database db.Database
	Recorder *metrics.Recorder
	Logger   *zap.Logger
	Ctx      context.Context
}
