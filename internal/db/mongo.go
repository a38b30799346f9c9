package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreatedAtField mirrors the creation timestamp hosted content stores keep.
const CreatedAtField = "_createdAt"

type Collections struct {
	Videos       *mongo.Collection
	Clients      *mongo.Collection
	Certificates *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *Collections, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	db := client.Database(dbName)

	cols := &Collections{
		Videos:       db.Collection("videos"),
		Clients:      db.Collection("clients"),
		Certificates: db.Collection("certificates"),
	}

	return client, cols, nil
}

func EnsureIndexes(ctx context.Context, cols *Collections) error {
	indexTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	newestFirst := mongo.IndexModel{Keys: bson.D{{Key: CreatedAtField, Value: -1}}}

	if _, err := cols.Videos.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		newestFirst,
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: CreatedAtField, Value: -1}}},
	}); err != nil {
		return err
	}

	if _, err := cols.Clients.Indexes().CreateOne(indexTimeout, newestFirst); err != nil {
		return err
	}

	if _, err := cols.Certificates.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		newestFirst,
		{Keys: bson.D{{Key: "issuedAt", Value: -1}}},
	}); err != nil {
		return err
	}

	return nil
}
