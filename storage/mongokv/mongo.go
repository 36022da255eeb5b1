package mongokv

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kanda123-lab/querygen/storage"
)

type document struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

// Store keeps one document per key in a collection.
type Store struct {
	coll   *mongo.Collection
	client *mongo.Client
}

// New wraps a collection. Close leaves the client open.
func New(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

// Connect opens a client for uri and uses database.collection. Close
// disconnects it.
func Connect(ctx context.Context, uri, database, collection string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "mongo ping")
	}
	return &Store{coll: client.Database(database).Collection(collection), client: client}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var doc document
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.Wrapf(storage.ErrNotFound, "key %q", key)
	}
	if err != nil {
		return nil, errors.Wrap(err, "mongo find")
	}
	return doc.Value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, document{Key: key, Value: value},
		options.Replace().SetUpsert(true))
	return errors.Wrap(err, "mongo upsert")
}

func (s *Store) Delete(ctx context.Context, key string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return errors.Wrap(err, "mongo delete")
	}
	if res.DeletedCount == 0 {
		return errors.Wrapf(storage.ErrNotFound, "key %q", key)
	}
	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]storage.Entry, error) {
	filter := bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "mongo find")
	}
	defer cursor.Close(ctx)

	var entries []storage.Entry
	for cursor.Next(ctx) {
		var doc document
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "mongo decode")
		}
		entries = append(entries, storage.Entry{Key: doc.Key, Value: doc.Value})
	}
	return entries, errors.Wrap(cursor.Err(), "mongo cursor")
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return errors.Wrap(s.client.Disconnect(context.Background()), "mongo disconnect")
}
