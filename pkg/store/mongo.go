package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/stepwise/pkg/step"
)

// Mongo defaults.
const (
	DefaultDatabase   = "stepwise"
	DefaultCollection = "traces"
)

// traceDoc stores the listing fields as BSON and the full trace as JSON,
// so payloads decode the same way they do from the cache.
type traceDoc struct {
	TraceInfo `bson:",inline"`
	Data      []byte `bson:"data"`
}

// MongoStore persists traces in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and ensures the listing index exists.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &MongoStore{client: client, coll: client.Database(database).Collection(DefaultCollection)}
	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "algorithm", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}
	return s, nil
}

func (s *MongoStore) SaveTrace(ctx context.Context, t *step.Trace) error {
	doc, err := toDoc(t)
	if err != nil {
		return err
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": t.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save trace %s: %w", t.ID, err)
	}
	return nil
}

func (s *MongoStore) GetTrace(ctx context.Context, id string) (*step.Trace, error) {
	var doc traceDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get trace %s: %w", id, err)
	}
	return step.UnmarshalTrace(doc.Data)
}

func (s *MongoStore) ListTraces(ctx context.Context, algorithm string, limit int) ([]TraceInfo, error) {
	filter := bson.M{}
	if algorithm != "" {
		filter["algorithm"] = algorithm
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(clampLimit(limit))).
		SetProjection(bson.M{"data": 0})

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list traces: %w", err)
	}
	defer cur.Close(ctx)

	out := []TraceInfo{}
	for cur.Next(ctx) {
		var info TraceInfo
		if err := cur.Decode(&info); err != nil {
			return nil, fmt.Errorf("decode trace info: %w", err)
		}
		out = append(out, info)
	}
	return out, cur.Err()
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func toDoc(t *step.Trace) (traceDoc, error) {
	if err := validate(t); err != nil {
		return traceDoc{}, err
	}
	data, err := step.MarshalTrace(t)
	if err != nil {
		return traceDoc{}, err
	}
	return traceDoc{TraceInfo: Info(t), Data: data}, nil
}

var _ Store = (*MongoStore)(nil)
