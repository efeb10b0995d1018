package out

import (
	"context"

	"focusguard/internal/modules/notify/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	Deliver(ctx context.Context, manifest domain.Manifest, notification domain.Notification) error
}
