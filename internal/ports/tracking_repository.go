package ports

import (
	"context"

	"github.com/bnema/techrelay/internal/domain"
)

// TrackingRepository persists the tracking snapshot as a single document.
// Save always replaces the whole document.
type TrackingRepository interface {
	Load(ctx context.Context) (domain.TrackingSnapshot, error)
	Save(ctx context.Context, snapshot domain.TrackingSnapshot) error
}
