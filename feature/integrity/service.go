package integrity

import (
	"context"

	"asset-sync/core/reconcile"
	"asset-sync/feature/integrity/checks"
	"asset-sync/feature/synchronizer"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	sync   *synchronizer.Synchronizer
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new integrity service. db may be nil when the cache
// is not backed by a database.
func NewService(sync *synchronizer.Synchronizer, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		sync:   sync,
		db:     db,
		logger: logger,
	}
}

// CheckManifest compares the Persisted Manifest with the served build.
func (s *Service) CheckManifest(ctx context.Context) (*checks.ManifestReport, error) {
	return checks.CheckManifest(ctx, s.sync)
}

// CheckShell returns the shell paths missing from the Content Cache.
func (s *Service) CheckShell(ctx context.Context) ([]string, error) {
	return checks.CheckShell(ctx, s.sync)
}

// FixShell refetches the missing shell paths.
func (s *Service) FixShell(ctx context.Context, missing []string) error {
	return checks.FixShell(ctx, s.sync, s.logger, missing)
}

// CheckStale returns the dry-run reconciliation plan.
func (s *Service) CheckStale(ctx context.Context) (*reconcile.Plan, error) {
	return checks.CheckStale(ctx, s.sync)
}

// CheckServer validates the sql cache schema.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	return checks.CheckServerIntegrity(s.db)
}
