package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ringforge/ringforge/pkg/errors"
	"github.com/ringforge/ringforge/pkg/plan"
)

// MongoConfig configures a MongoDB-backed store.
type MongoConfig struct {
	// URI is the MongoDB connection string, e.g. "mongodb://localhost:27017".
	URI string

	// Database name. Defaults to "ringforge".
	Database string

	// Collection name. Defaults to "boards".
	Collection string
}

// MongoStore persists plans in a MongoDB collection for shared deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "ringforge"
	}
	if cfg.Collection == "" {
		cfg.Collection = "boards"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, doc plan.Document) (plan.Document, error) {
	if doc.Name != "" {
		_, err := s.coll.DeleteMany(ctx, bson.M{
			"name": doc.Name,
			"_id":  bson.M{"$ne": doc.ID},
		})
		if err != nil {
			return plan.Document{}, errors.Wrap(errors.ErrCodeStore, err, "replace plan %q", doc.Name)
		}
	}

	if doc.ID == "" {
		doc.ID = newID()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return plan.Document{}, errors.Wrap(errors.ErrCodeStore, err, "save plan")
	}
	return doc, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (plan.Document, error) {
	return s.findOne(ctx, bson.M{"_id": id}, "id", id)
}

func (s *MongoStore) GetByName(ctx context.Context, name string) (plan.Document, error) {
	return s.findOne(ctx, bson.M{"name": name}, "name", name)
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M, what, key string) (plan.Document, error) {
	var doc plan.Document
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return plan.Document{}, notFound(what, key)
	}
	if err != nil {
		return plan.Document{}, errors.Wrap(errors.ErrCodeStore, err, "load plan")
	}
	return doc, nil
}

func (s *MongoStore) List(ctx context.Context) ([]plan.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list plans")
	}
	defer cursor.Close(ctx)

	var docs []plan.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode plans")
	}
	return docs, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete plan")
	}
	if res.DeletedCount == 0 {
		return notFound("id", id)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
