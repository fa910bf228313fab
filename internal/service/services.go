package service

import (
	"github.com/pkalugin/ironlog/internal/logger"
	"github.com/pkalugin/ironlog/internal/store"
)

// ClientServices groups the facade, the engine, and the scheduler into a
// single value handed to the client application.
type ClientServices struct {
	Data      DataService
	Engine    SyncEngine
	Scheduler SyncScheduler
}

// NewClientServices wires the service layer over the client storages and the
// external collaborators.
func NewClientServices(storages *store.ClientStorages, engineCfg SyncEngineConfig, log *logger.Logger) *ClientServices {
	engine := NewSyncEngine(storages, engineCfg, log)

	return &ClientServices{
		Data:      NewDataService(storages, log),
		Engine:    engine,
		Scheduler: NewSyncScheduler(engine, log),
	}
}
