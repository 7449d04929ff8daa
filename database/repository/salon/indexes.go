package salonRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique id index on every collection plus the
// lookup indexes used by slot and package queries.
func (r *MongoSalonRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for kind := range collectionNames {
		coll, _ := r.coll(kind)
		indexModels := []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("unique_id"),
			},
		}
		switch kind {
		case models.KindAppointment:
			indexModels = append(indexModels,
				mongo.IndexModel{
					Keys:    bson.D{{Key: "professional.id", Value: 1}, {Key: "date", Value: 1}},
					Options: options.Index().SetName("professional_date_idx"),
				},
				mongo.IndexModel{
					Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "status", Value: 1}},
					Options: options.Index().SetName("client_status_idx"),
				})
		case models.KindClientPackage:
			indexModels = append(indexModels, mongo.IndexModel{
				Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "expiryDate", Value: 1}},
				Options: options.Index().SetName("client_expiry_idx"),
			})
		}
		if _, err := coll.Indexes().CreateMany(ctx, indexModels); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", coll.Name(), err)
		}
	}
	return nil
}
