package historyRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pilgrimpath/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a booking record and returns its ID.
func (r *mongoHistoryRepo) Create(ctx context.Context, record models.BookingHistoryRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := r.coll.InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrDuplicateBooking
	}
	if err != nil {
		return "", fmt.Errorf("insert booking record: %w", err)
	}
	return record.ID, nil
}

// GetByID returns a booking record by its booking ID, or nil when absent.
func (r *mongoHistoryRepo) GetByID(ctx context.Context, id string) (*models.BookingHistoryRecord, error) {
	var record models.BookingHistoryRecord
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *mongoHistoryRepo) ListBySession(ctx context.Context, sessionID string) ([]models.BookingHistoryRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.BookingHistoryRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
