package realtime

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"glowstore/backend/logger"
)

// MongoStore implements Store on top of MongoDB. Change events are used
// only as a wake-up: on every event the whole collection is re-read so the
// callback always sees a full, authoritative snapshot.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) Get(ctx context.Context, collection string) (Snapshot, error) {
	cur, err := s.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	snap := Snapshot{}
	for cur.Next(ctx) {
		id, ok := documentID(cur.Current)
		if !ok {
			logger.L().Warnf("realtime: %s document without usable _id skipped", collection)
			continue
		}
		// cur.Current is only valid until the next call to Next.
		buf := make([]byte, len(cur.Current))
		copy(buf, cur.Current)
		snap[id] = bson.Raw(buf)
	}
	return snap, cur.Err()
}

func (s *MongoStore) GetOne(ctx context.Context, collection, id string) (bson.Raw, error) {
	res := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id})
	raw, err := res.Raw()
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return raw, err
}

func (s *MongoStore) Write(ctx context.Context, collection, id string, value interface{}) error {
	_, err := s.db.Collection(collection).ReplaceOne(
		ctx, bson.M{"_id": id}, value, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Remove(ctx context.Context, collection, id string) error {
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoStore) Subscribe(ctx context.Context, collection string, fn SnapshotFunc, onErr ErrorFunc) (Unsubscribe, error) {
	subCtx, cancel := context.WithCancel(ctx)

	stream, err := s.db.Collection(collection).Watch(subCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, err
	}

	var mu sync.Mutex
	closed := false

	deliver := func() {
		snap, err := s.Get(subCtx, collection)
		if err != nil {
			if subCtx.Err() == nil && onErr != nil {
				onErr(err)
			}
			return
		}
		mu.Lock()
		if closed {
			mu.Unlock()
			return
		}
		mu.Unlock()
		fn(snap)
	}

	// Initial snapshot before any change arrives.
	deliver()

	go func() {
		defer stream.Close(context.Background())
		for stream.Next(subCtx) {
			deliver()
		}
		if err := stream.Err(); err != nil && subCtx.Err() == nil && onErr != nil {
			onErr(err)
		}
	}()

	return func() {
		mu.Lock()
		closed = true
		mu.Unlock()
		cancel()
	}, nil
}

// documentID extracts a string id from a raw document, accepting either
// string or ObjectID keys so pre-existing data keeps working.
func documentID(doc bson.Raw) (string, bool) {
	val, err := doc.LookupErr("_id")
	if err != nil {
		return "", false
	}
	if s, ok := val.StringValueOK(); ok {
		return s, true
	}
	if oid, ok := val.ObjectIDOK(); ok {
		return oid.Hex(), true
	}
	return "", false
}
