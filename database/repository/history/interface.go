package historyRepo

import (
	"context"
	"errors"

	"pilgrimpath/models"

	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "booking_history"

var ErrDuplicateBooking = errors.New("booking already recorded")

// BookingHistoryRepository stores completed darshan bookings.
type BookingHistoryRepository interface {
	Create(ctx context.Context, record models.BookingHistoryRecord) (string, error)
	GetByID(ctx context.Context, id string) (*models.BookingHistoryRecord, error)
	// ListBySession returns the session's bookings, newest first.
	ListBySession(ctx context.Context, sessionID string) ([]models.BookingHistoryRecord, error)
}

type mongoHistoryRepo struct {
	coll *mongo.Collection
}

// NewMongoHistoryRepo returns a BookingHistoryRepository backed by db and
// makes sure its indexes exist.
func NewMongoHistoryRepo(db *mongo.Database) (BookingHistoryRepository, error) {
	r := &mongoHistoryRepo{coll: db.Collection(collectionName)}
	if err := r.ensureIndexes(); err != nil {
		return nil, err
	}
	return r, nil
}
