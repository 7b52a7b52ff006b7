package purchases

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// purchaseDoc: документ коллекции. seq хранит позицию в исходном массиве,
// по ней восстанавливается порядок вставки.
type purchaseDoc struct {
	Seq           int     `bson:"seq"`
	Purchase      `bson:",inline"`
	CustomerEmail *string `bson:"customerEmail,omitempty"`
}

// MongoStore хранит покупки в одной коллекции.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	// transactional: ReplaceAll внутри транзакции (нужен replica set).
	// Без неё delete и insert идут последовательно, и сбой между ними
	// оставит коллекцию пустой.
	transactional bool
}

func NewMongoStore(client *mongo.Client, database, collection string, transactional bool) *MongoStore {
	return &MongoStore{
		client:        client,
		coll:          client.Database(database).Collection(collection),
		transactional: transactional,
	}
}

func (s *MongoStore) ReplaceAll(ctx context.Context, records []Purchase) error {
	docs := make([]interface{}, len(records))
	for i, r := range records {
		docs[i] = purchaseDoc{Seq: i, Purchase: r}
	}

	replace := func(ctx context.Context) error {
		if _, err := s.coll.DeleteMany(ctx, bson.D{}); err != nil {
			return fmt.Errorf("delete: %w", err)
		}
		if len(docs) == 0 {
			return nil
		}
		if _, err := s.coll.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		return nil
	}

	if !s.transactional {
		if err := replace(ctx); err != nil {
			return fmt.Errorf("%w: mongo replace: %w", ErrStorageUnavailable, err)
		}
		return nil
	}

	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("%w: mongo start session: %w", ErrStorageUnavailable, err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, replace(sc)
	})
	if err != nil {
		return fmt.Errorf("%w: mongo replace tx: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *MongoStore) ReadAll(ctx context.Context) ([]Purchase, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: mongo find: %w", ErrStorageUnavailable, err)
	}
	defer cur.Close(ctx)

	var docs []purchaseDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: mongo decode: %w", ErrStorageUnavailable, err)
	}
	out := make([]Purchase, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Purchase)
	}
	return out, nil
}

// topPurchasersPipeline: $first берётся после явной сортировки по seq,
// поэтому top_product и user_email детерминированы. total складывается
// в Decimal128, как GrossOf складывает в decimal.
var topPurchasersPipeline = mongo.Pipeline{
	{{Key: "$sort", Value: bson.D{{Key: "seq", Value: 1}}}},
	{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$customerName"},
		{Key: "user_name", Value: bson.D{{Key: "$first", Value: "$customerName"}}},
		{Key: "user_email", Value: bson.D{{Key: "$first", Value: "$customerEmail"}}},
		{Key: "total_amount_spent", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$toDecimal", Value: "$total"}}}}},
		{Key: "top_product", Value: bson.D{{Key: "$first", Value: "$productName"}}},
		{Key: "top_quantity", Value: bson.D{{Key: "$max", Value: "$quantity"}}},
		{Key: "top_price", Value: bson.D{{Key: "$max", Value: "$price"}}},
	}}},
	{{Key: "$addFields", Value: bson.D{
		{Key: "total_amount_spent", Value: bson.D{{Key: "$toDouble", Value: "$total_amount_spent"}}},
	}}},
	{{Key: "$sort", Value: bson.D{
		{Key: "total_amount_spent", Value: -1},
		{Key: "_id", Value: 1},
	}}},
}

func (s *MongoStore) TopPurchasers(ctx context.Context) ([]PurchaserSummary, error) {
	cur, err := s.coll.Aggregate(ctx, topPurchasersPipeline)
	if err != nil {
		return nil, fmt.Errorf("%w: mongo aggregate: %w", ErrStorageUnavailable, err)
	}
	defer cur.Close(ctx)

	out := []PurchaserSummary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%w: mongo decode: %w", ErrStorageUnavailable, err)
	}
	return out, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: mongo ping: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
