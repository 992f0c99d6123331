package repository

import (
	"context"
	"fmt"
	"time"

	"flightlog-reconciler/internal/domain/entity"
	"flightlog-reconciler/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlightRecordRepository implements FlightRecordRepository
type MongoFlightRecordRepository struct {
	collection *mongo.Collection
}

type flightRecordDocument struct {
	RecordKey           string    `bson:"recordKey"`
	Date                string    `bson:"date"`
	entity.FlightRecord `bson:",inline"`
	UpdatedAt           time.Time `bson:"updatedAt"`
}

// NewMongoFlightRecordRepository creates a new flight record repository
func NewMongoFlightRecordRepository(db *mongo.Database) repository.FlightRecordRepository {
	collection := db.Collection("flight_records")

	ctx := context.Background()
	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.M{"recordKey": 1},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "source", Value: 1},
				{Key: "date", Value: 1},
			},
		},
	})

	return &MongoFlightRecordRepository{
		collection: collection,
	}
}

// RecordKey identifies a flight across runs: uuids are only unique per source and date
func RecordKey(source entity.Source, date, uuid string) string {
	return fmt.Sprintf("%s:%s:%s", source, date, uuid)
}

// ReplaceDay upserts the records of one source and date, then removes stored
// flights of that source and date the new batch no longer contains
func (r *MongoFlightRecordRepository) ReplaceDay(ctx context.Context, source entity.Source, date string, records []entity.FlightRecord) error {
	now := time.Now()
	keys := make([]string, 0, len(records))
	models := make([]mongo.WriteModel, 0, len(records))
	for _, record := range records {
		doc := flightRecordDocument{
			RecordKey:    RecordKey(source, date, record.UUID),
			Date:         date,
			FlightRecord: record,
			UpdatedAt:    now,
		}
		doc.Source = source
		keys = append(keys, doc.RecordKey)
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"recordKey": doc.RecordKey}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	if len(models) > 0 {
		if _, err := r.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
			return err
		}
	}

	_, err := r.collection.DeleteMany(ctx, bson.M{
		"source":    source,
		"date":      date,
		"recordKey": bson.M{"$nin": keys},
	})
	return err
}

// FindBySourceAndDate returns the stored flights of one source for date
func (r *MongoFlightRecordRepository) FindBySourceAndDate(ctx context.Context, source entity.Source, date string) ([]entity.FlightRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seqNo", Value: 1}, {Key: "takeoff", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"source": source, "date": date}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []flightRecordDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]entity.FlightRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.FlightRecord)
	}
	return records, nil
}
