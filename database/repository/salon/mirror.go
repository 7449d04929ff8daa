package salonRepo

import (
	"context"

	"salonbook/models"

	"go.uber.org/zap"
)

// Mirror returns a bus handler that writes each event through repo. Errors
// are logged; the in-memory state stays authoritative.
func Mirror(repo Repository, logger *zap.Logger) func(models.Event) {
	return func(evt models.Event) {
		if err := repo.Apply(context.Background(), evt); err != nil {
			logger.Error("failed to mirror mutation",
				zap.String("kind", string(evt.Kind)),
				zap.String("action", string(evt.Action)),
				zap.String("id", evt.ID),
				zap.Error(err))
		}
	}
}
