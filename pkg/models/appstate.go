package models

import (
	"github.com/medctx/medctx/config"
)

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	ContextModel ContextModel
	Config       *config.Config
}
