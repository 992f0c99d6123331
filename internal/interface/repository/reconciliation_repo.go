package repository

import (
	"context"
	"errors"

	"flightlog-reconciler/internal/domain/entity"
	"flightlog-reconciler/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReconciliationRepository implements ReconciliationRepository
type MongoReconciliationRepository struct {
	collection *mongo.Collection
}

// NewMongoReconciliationRepository creates a new reconciliation repository
func NewMongoReconciliationRepository(db *mongo.Database) repository.ReconciliationRepository {
	collection := db.Collection("reconciliations")

	// Latest run per date
	ctx := context.Background()
	collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "date", Value: 1},
			{Key: "runAt", Value: -1},
		},
	})

	return &MongoReconciliationRepository{
		collection: collection,
	}
}

// Save stores the run, replacing a previous save with the same id
func (r *MongoReconciliationRepository) Save(ctx context.Context, rec *entity.Reconciliation) error {
	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": rec.ID},
		rec,
		options.Replace().SetUpsert(true),
	)
	return err
}

// FindLatestByDate returns the most recent run for date
func (r *MongoReconciliationRepository) FindLatestByDate(ctx context.Context, date string) (*entity.Reconciliation, error) {
	var rec entity.Reconciliation
	opts := options.FindOne().SetSort(bson.D{{Key: "runAt", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{"date": date}, opts).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
