package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// mongoSyncDocument is the stored layout. A snapshot that is a JSON object
// lives under content as an embedded document, the same shape the hosted
// deployment already holds. Anything else is kept as a JSON string.
//
// Content and LastSync are decoded raw: existing documents carry lastSync as
// an ISO-8601 string instead of a BSON date.
type mongoSyncDocument struct {
	SecretKey string        `bson:"secretKey"`
	Content   bson.RawValue `bson:"content"`
	// Data is the string layout of earlier planner-sync releases.
	Data      string        `bson:"data,omitempty"`
	Version   int64         `bson:"version"`
	LastSync  bson.RawValue `bson:"lastSync"`
	CreatedAt bson.RawValue `bson:"createdAt"`
	UpdatedAt bson.RawValue `bson:"updatedAt"`
}

// mongoPushAttempts bounds retries of an upsert that lost the race of two
// first pushes for the same key.
const mongoPushAttempts = 3

type mongoDocumentStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// NewConnectMongo connects to MongoDB, pings the primary, ensures the unique
// secretKey index and strips the deprecated previousVersion field.
func NewConnectMongo(ctx context.Context, cfg config.DB, log *logger.Logger) (DocumentStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.DSN))
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	if err = client.Ping(connectCtx, readpref.Primary()); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting database (ping)")
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("error connecting database: %w", err)
	}
	log.Info().Str("func", "NewConnectMongo").Str("database", cfg.Name).Msg("connected to database successfully")

	store := newMongoDocumentStore(client, client.Database(cfg.Name).Collection(cfg.Collection))
	if err = store.Migrate(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return store, nil
}

func newMongoDocumentStore(client *mongo.Client, coll *mongo.Collection) *mongoDocumentStore {
	return &mongoDocumentStore{client: client, coll: coll, now: time.Now}
}

// Migrate creates the unique index on secretKey and unsets previousVersion
// on documents written by older releases.
func (m *mongoDocumentStore) Migrate(ctx context.Context) error {
	log := logger.FromContext(ctx)

	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "secretKey", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("error creating secretKey index: %w", err)
	}

	res, err := m.coll.UpdateMany(ctx,
		bson.D{{Key: "previousVersion", Value: bson.D{{Key: "$exists", Value: true}}}},
		bson.D{{Key: "$unset", Value: bson.D{{Key: "previousVersion", Value: ""}}}},
	)
	if err != nil {
		return fmt.Errorf("error removing deprecated fields: %w", err)
	}
	if res.ModifiedCount > 0 {
		log.Info().Int64("documents", res.ModifiedCount).Msg("removed deprecated previousVersion field")
	}

	return nil
}

func (m *mongoDocumentStore) GetDocument(ctx context.Context, secretKey string) (models.SyncDocument, error) {
	var doc mongoSyncDocument
	err := m.coll.FindOne(ctx, bson.D{{Key: "secretKey", Value: secretKey}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.SyncDocument{}, ErrDocumentNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoDocumentStore.GetDocument").
			Msg("failed to find sync document")
		return models.SyncDocument{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	res, err := doc.toModel()
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoDocumentStore.GetDocument").
			Msg("stored sync document has an unexpected layout")
		return models.SyncDocument{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return res, nil
}

// PushDocument relies on $inc over an upserted document: a missing version
// field counts as zero, so the first push stores version 1.
func (m *mongoDocumentStore) PushDocument(ctx context.Context, secretKey string, content models.Snapshot) (models.PushResultDocument, error) {
	now := m.now().UTC()
	filter := bson.D{{Key: "secretKey", Value: secretKey}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "content", Value: contentValue(content)},
			{Key: "lastSync", Value: now},
			{Key: "updatedAt", Value: now},
		}},
		{Key: "$unset", Value: bson.D{{Key: "data", Value: ""}}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: int64(1)}}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: now}}},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var (
		doc mongoSyncDocument
		err error
	)
	for attempt := 0; attempt < mongoPushAttempts; attempt++ {
		err = m.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
		if !mongo.IsDuplicateKeyError(err) {
			break
		}
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoDocumentStore.PushDocument").
			Msg("failed to upsert sync document")
		return models.PushResultDocument{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	lastSync, err := decodeTime(doc.LastSync)
	if err != nil {
		return models.PushResultDocument{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return models.PushResultDocument{
		Version:  doc.Version,
		LastSync: lastSync,
		Created:  doc.Version == 1,
	}, nil
}

func (m *mongoDocumentStore) DeleteDocument(ctx context.Context, secretKey string) error {
	if _, err := m.coll.DeleteOne(ctx, bson.D{{Key: "secretKey", Value: secretKey}}); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoDocumentStore.DeleteDocument").
			Msg("failed to delete sync document")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (m *mongoDocumentStore) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *mongoDocumentStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (d mongoSyncDocument) toModel() (models.SyncDocument, error) {
	content, err := decodeContent(d.Content, d.Data)
	if err != nil {
		return models.SyncDocument{}, err
	}

	res := models.SyncDocument{
		SecretKey: d.SecretKey,
		Content:   content,
		Version:   d.Version,
	}
	if res.LastSync, err = decodeTime(d.LastSync); err != nil {
		return models.SyncDocument{}, err
	}
	if res.CreatedAt, err = decodeTime(d.CreatedAt); err != nil {
		return models.SyncDocument{}, err
	}
	if res.UpdatedAt, err = decodeTime(d.UpdatedAt); err != nil {
		return models.SyncDocument{}, err
	}

	return res, nil
}

// contentValue stores a JSON object as an embedded document so the data
// stays queryable; other payloads fall back to the string layout.
func contentValue(content models.Snapshot) any {
	var doc bson.D
	if err := bson.UnmarshalExtJSON(content, false, &doc); err == nil {
		return doc
	}
	return string(content)
}

func decodeContent(v bson.RawValue, legacy string) (models.Snapshot, error) {
	switch v.Type {
	case bsontype.EmbeddedDocument:
		out, err := bson.MarshalExtJSON(v.Document(), false, false)
		if err != nil {
			return nil, fmt.Errorf("error converting content to JSON: %w", err)
		}
		return models.Snapshot(out), nil
	case bsontype.String:
		return models.Snapshot(v.StringValue()), nil
	case 0, bsontype.Null, bsontype.Undefined:
		if legacy == "" {
			return nil, nil
		}
		return models.Snapshot(legacy), nil
	default:
		return nil, fmt.Errorf("unsupported content type %s", v.Type)
	}
}

func decodeTime(v bson.RawValue) (time.Time, error) {
	switch v.Type {
	case bsontype.DateTime:
		return v.Time().UTC(), nil
	case bsontype.String:
		t, err := time.Parse(time.RFC3339Nano, v.StringValue())
		if err != nil {
			return time.Time{}, fmt.Errorf("error parsing timestamp %q: %w", v.StringValue(), err)
		}
		return t.UTC(), nil
	case 0, bsontype.Null, bsontype.Undefined:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %s", v.Type)
	}
}
