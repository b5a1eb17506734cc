package resource

import (
	"context"

	"asset-sync/feature/resource/models"
	"asset-sync/feature/synchronizer"

	"go.uber.org/zap"
)

// Service handles resource detail lookups.
type Service struct {
	sync   *synchronizer.Synchronizer
	logger *zap.Logger
}

// NewService creates a new resource service.
func NewService(sync *synchronizer.Synchronizer, logger *zap.Logger) *Service {
	return &Service{sync: sync, logger: logger}
}

// GetResourceDetail returns the detail report for a single path.
func (s *Service) GetResourceDetail(ctx context.Context, path string) (*models.ResourceDetailReport, error) {
	return CheckResource(ctx, s.sync, NormalizeKey(path))
}
