package salonRepo

import (
	"context"

	"salonbook/models"
)

// Repository is the persistence collaborator: Load runs once at startup,
// Apply mirrors each store mutation afterwards.
type Repository interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Apply(ctx context.Context, evt models.Event) error
}
