package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/undiescoverd/stomp-scheduler/internal/config"
	"github.com/undiescoverd/stomp-scheduler/pkg/clients/rosterclient"
	"github.com/undiescoverd/stomp-scheduler/pkg/core/services"
	"github.com/undiescoverd/stomp-scheduler/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg          *config.Config
	RosterClient *rosterclient.Client
	Database     db.ScheduleStore
	Logger       *zap.Logger
	Ctx          context.Context
}

// rosterClient returns the roster client as the service interface. A nil
// pointer stays a nil interface so the services fall back to the configured
// roster.
func (app *AppContext) rosterClient() services.RosterClient {
	if app.RosterClient == nil {
		return nil
	}
	return app.RosterClient
}
