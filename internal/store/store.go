// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"sell-monitor/internal/models"
)

// SnapshotStore persists the engine's cross-cycle state between process
// runs. The engine itself never touches the store; the host restores
// trackers at startup and snapshots after cycles.
type SnapshotStore interface {
	// Alerts
	SaveAlert(ctx context.Context, entry models.AlertEntry) error
	GetAlerts(ctx context.Context, limit int) ([]models.AlertEntry, error)

	// High-water marks
	SaveHighWaterMarks(ctx context.Context, marks []models.HighWaterMark) error
	LoadHighWaterMarks(ctx context.Context) ([]models.HighWaterMark, error)

	// Lifecycle
	Close() error
}
