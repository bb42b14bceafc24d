package services

import (
	portsrepo "github.com/atlaspos/pos-backend/internal/core/ports/repositories"
	portssvc "github.com/atlaspos/pos-backend/internal/core/ports/services"
	"github.com/atlaspos/pos-backend/internal/storage"
)

// NewContainer creates the service container with properly initialized dependencies.
func NewContainer(repos *portsrepo.RepositoryProvider, storageProvider *storage.Provider, opts ...SyncOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Sync:        NewSyncService(repos, opts...),
		Propagation: NewPropagationService(repos, storageProvider),
	}
}
