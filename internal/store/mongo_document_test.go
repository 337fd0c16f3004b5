package store

import (
	"testing"
	"time"

	"github.com/MKhiriev/planner-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoDocumentStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newStore := func(mt *mtest.T) *mongoDocumentStore {
		s := newMongoDocumentStore(mt.Client, mt.Coll)
		s.now = func() time.Time { return now }
		return s
	}

	mt.Run("get found", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "secretKey", Value: "ABCDEFGH"},
			{Key: "data", Value: `{"a":2}`},
			{Key: "version", Value: int64(2)},
			{Key: "lastSync", Value: now},
		}))

		doc, err := newStore(mt).GetDocument(testContext(), "ABCDEFGH")
		require.NoError(t, err)
		assert.Equal(t, "ABCDEFGH", doc.SecretKey)
		assert.Equal(t, models.Snapshot(`{"a":2}`), doc.Content)
		assert.Equal(t, int64(2), doc.Version)
		assert.True(t, now.Equal(doc.LastSync))
	})

	mt.Run("get embedded content with string lastSync", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "secretKey", Value: "ABCDEFGH"},
			{Key: "content", Value: bson.D{
				{Key: "a", Value: int32(2)},
				{Key: "columns", Value: bson.A{bson.D{{Key: "id", Value: "c1"}}}},
			}},
			{Key: "version", Value: int32(2)},
			{Key: "lastSync", Value: "2025-01-01T00:00:00.000Z"},
		}))

		doc, err := newStore(mt).GetDocument(testContext(), "ABCDEFGH")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":2,"columns":[{"id":"c1"}]}`, string(doc.Content))
		assert.Equal(t, int64(2), doc.Version)
		assert.True(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Equal(doc.LastSync))
		assert.True(t, doc.CreatedAt.IsZero())
	})

	mt.Run("get unsupported content", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "secretKey", Value: "ABCDEFGH"},
			{Key: "content", Value: int32(7)},
			{Key: "version", Value: int64(1)},
		}))

		_, err := newStore(mt).GetDocument(testContext(), "ABCDEFGH")
		assert.ErrorIs(t, err, ErrExecutingQuery)
	})

	mt.Run("push stores object snapshot as embedded content", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "secretKey", Value: "ABCDEFGH"},
			{Key: "content", Value: bson.D{{Key: "a", Value: int32(3)}}},
			{Key: "version", Value: int64(3)},
			{Key: "lastSync", Value: now},
		}}))

		_, err := newStore(mt).PushDocument(testContext(), "ABCDEFGH", models.Snapshot(`{"a":3}`))
		require.NoError(t, err)

		cmd := mt.GetStartedEvent().Command
		content := cmd.Lookup("update", "$set", "content")
		assert.Equal(t, bsontype.EmbeddedDocument, content.Type)
		assert.Equal(t, int32(3), content.Document().Lookup("a").Int32())
		assert.Equal(t, bsontype.EmbeddedDocument, cmd.Lookup("update", "$unset").Type)
	})

	mt.Run("get not found", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := newStore(mt).GetDocument(testContext(), "ABCDEFGH")
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	mt.Run("push first version", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "secretKey", Value: "ABCDEFGH"},
			{Key: "data", Value: `{"a":1}`},
			{Key: "version", Value: int64(1)},
			{Key: "lastSync", Value: now},
		}}))

		res, err := newStore(mt).PushDocument(testContext(), "ABCDEFGH", models.Snapshot(`{"a":1}`))
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Version)
		assert.True(t, res.Created)
		assert.True(t, now.Equal(res.LastSync))
	})

	mt.Run("push retries duplicate key", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "secretKey", Value: "ABCDEFGH"},
				{Key: "version", Value: int64(2)},
				{Key: "lastSync", Value: now},
			}}),
		)

		res, err := newStore(mt).PushDocument(testContext(), "ABCDEFGH", models.Snapshot(`{"a":2}`))
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.Version)
		assert.False(t, res.Created)
	})

	mt.Run("push command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad value"}))

		_, err := newStore(mt).PushDocument(testContext(), "ABCDEFGH", models.Snapshot(`{}`))
		assert.ErrorIs(t, err, ErrExecutingStatement)
	})

	mt.Run("delete is idempotent", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.NoError(t, newStore(mt).DeleteDocument(testContext(), "ABCDEFGH"))
	})

	mt.Run("migrate creates index and unsets field", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}, bson.E{Key: "nModified", Value: 3}),
		)

		assert.NoError(t, newStore(mt).Migrate(testContext()))
	})
}
