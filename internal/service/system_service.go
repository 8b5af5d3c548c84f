package service

import (
	"context"
	"log/slog"

	"github.com/mediahub/internal/config"
	"github.com/mediahub/internal/domain"
	"github.com/mediahub/internal/system"
)

// systemService implements the SystemService interface
type systemService struct {
	collector *system.Collector
	logger    *slog.Logger
}

// NewSystemService creates a new system service
func NewSystemService(cfg *config.Config, logger *slog.Logger) domain.SystemService {
	return &systemService{
		collector: system.NewCollector(cfg.MediaDir),
		logger:    logger,
	}
}

// GetSystemStats retrieves host statistics for the dashboard
func (s *systemService) GetSystemStats(ctx context.Context) (*system.SystemStats, error) {
	s.logger.DebugContext(ctx, "collecting system stats")
	return s.collector.Collect()
}
