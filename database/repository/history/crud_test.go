package historyRepo

import (
	"context"
	"testing"
	"time"

	"pilgrimpath/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoHistoryRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "pilgrimpath." + collectionName

	mt.Run("create assigns defaults", func(mt *mtest.T) {
		repo := &mongoHistoryRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Create(context.Background(), models.BookingHistoryRecord{SessionID: "s1"})
		require.NoError(mt, err)
		assert.NotEmpty(mt, id)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := &mongoHistoryRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := repo.Create(context.Background(), models.BookingHistoryRecord{ID: "BK1"})
		assert.ErrorIs(mt, err, ErrDuplicateBooking)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := &mongoHistoryRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "id", Value: "BK1"},
			{Key: "sessionId", Value: "s1"},
			{Key: "slotTime", Value: "16:00 - 17:00"},
			{Key: "totalMembers", Value: 4},
		}))

		rec, err := repo.GetByID(context.Background(), "BK1")
		require.NoError(mt, err)
		require.NotNil(mt, rec)
		assert.Equal(mt, "16:00 - 17:00", rec.SlotTime)
		assert.Equal(mt, 4, rec.TotalMembers)
	})

	mt.Run("get by id missing", func(mt *mtest.T) {
		repo := &mongoHistoryRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		rec, err := repo.GetByID(context.Background(), "nope")
		require.NoError(mt, err)
		assert.Nil(mt, rec)
	})

	mt.Run("list by session", func(mt *mtest.T) {
		repo := &mongoHistoryRepo{coll: mt.Coll}
		newer := time.Date(2026, 10, 17, 11, 0, 0, 0, time.UTC)
		older := newer.Add(-time.Hour)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "id", Value: "BK2"}, {Key: "sessionId", Value: "s1"}, {Key: "createdAt", Value: newer}},
			bson.D{{Key: "id", Value: "BK1"}, {Key: "sessionId", Value: "s1"}, {Key: "createdAt", Value: older}},
		))

		records, err := repo.ListBySession(context.Background(), "s1")
		require.NoError(mt, err)
		require.Len(mt, records, 2)
		assert.Equal(mt, "BK2", records[0].ID)
		assert.True(mt, records[0].CreatedAt.Equal(newer))
	})

	mt.Run("list empty", func(mt *mtest.T) {
		repo := &mongoHistoryRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		records, err := repo.ListBySession(context.Background(), "none")
		require.NoError(mt, err)
		assert.NotNil(mt, records)
		assert.Empty(mt, records)
	})
}
