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

var collectionNames = map[models.EventKind]string{
	models.KindAppointment:     "appointments",
	models.KindClientPackage:   "clientPackages",
	models.KindPackageTemplate: "packageTemplates",
	models.KindService:         "services",
	models.KindProfessional:    "professionals",
	models.KindClient:          "clients",
	models.KindDiscount:        "weeklyDiscounts",
}

// MongoSalonRepo keeps one collection per entity kind, keyed by "id".
type MongoSalonRepo struct {
	db *mongo.Database
}

// NewMongoSalonRepo constructs a new instance of MongoSalonRepo.
func NewMongoSalonRepo(db *mongo.Database) *MongoSalonRepo {
	return &MongoSalonRepo{db: db}
}

func (r *MongoSalonRepo) coll(kind models.EventKind) (*mongo.Collection, error) {
	name, ok := collectionNames[kind]
	if !ok {
		return nil, fmt.Errorf("no collection for kind %q", kind)
	}
	return r.db.Collection(name), nil
}

func loadAll[T any](ctx context.Context, r *MongoSalonRepo, kind models.EventKind) ([]T, error) {
	coll, err := r.coll(kind)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", coll.Name(), err)
	}
	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", coll.Name(), err)
	}
	return out, nil
}

// Load reads every collection.
func (r *MongoSalonRepo) Load(ctx context.Context) (*models.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var (
		snap models.Snapshot
		err  error
	)
	if snap.Services, err = loadAll[models.Service](ctx, r, models.KindService); err != nil {
		return nil, err
	}
	if snap.Professionals, err = loadAll[models.Professional](ctx, r, models.KindProfessional); err != nil {
		return nil, err
	}
	if snap.Clients, err = loadAll[models.Client](ctx, r, models.KindClient); err != nil {
		return nil, err
	}
	if snap.PackageTemplates, err = loadAll[models.PackageTemplate](ctx, r, models.KindPackageTemplate); err != nil {
		return nil, err
	}
	if snap.ClientPackages, err = loadAll[models.ClientPackage](ctx, r, models.KindClientPackage); err != nil {
		return nil, err
	}
	if snap.Discounts, err = loadAll[models.WeeklyDiscount](ctx, r, models.KindDiscount); err != nil {
		return nil, err
	}
	if snap.Appointments, err = loadAll[models.Appointment](ctx, r, models.KindAppointment); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Apply replaces or deletes the document named by the event.
func (r *MongoSalonRepo) Apply(ctx context.Context, evt models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	coll, err := r.coll(evt.Kind)
	if err != nil {
		return err
	}
	filter := bson.M{"id": evt.ID}

	switch evt.Action {
	case models.ActionUpsert:
		if _, err := coll.ReplaceOne(ctx, filter, evt.Payload, options.Replace().SetUpsert(true)); err != nil {
			return fmt.Errorf("error saving %s %s: %w", evt.Kind, evt.ID, err)
		}
	case models.ActionDelete:
		if _, err := coll.DeleteOne(ctx, filter); err != nil {
			return fmt.Errorf("error deleting %s %s: %w", evt.Kind, evt.ID, err)
		}
	default:
		return fmt.Errorf("unknown action %q", evt.Action)
	}
	return nil
}
