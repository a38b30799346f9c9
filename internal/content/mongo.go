package content

import (
	"context"
	"fmt"
	"time"

	"portfolio-backend/internal/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps one collection per document type.
type MongoStore struct {
	cols map[string]*mongo.Collection
}

func NewMongoStore(cols *db.Collections) *MongoStore {
	return &MongoStore{cols: map[string]*mongo.Collection{
		TypeVideo:       cols.Videos,
		TypeClient:      cols.Clients,
		TypeCertificate: cols.Certificates,
	}}
}

func (s *MongoStore) collection(docType string) (*mongo.Collection, error) {
	col, ok := s.cols[docType]
	if !ok || col == nil {
		return nil, fmt.Errorf("unknown document type %q", docType)
	}
	return col, nil
}

func (s *MongoStore) Fetch(ctx context.Context, q Query) ([]Document, error) {
	col, err := s.collection(q.Type)
	if err != nil {
		return nil, err
	}

	projection := bson.M{}
	for _, f := range q.Fields {
		projection[f.Path] = 1
	}
	sortKey := db.CreatedAtField
	if q.OrderBy != "" {
		sortKey = q.OrderBy
	}
	opts := options.Find().
		SetProjection(projection).
		SetSort(bson.D{{Key: sortKey, Value: -1}, {Key: db.CreatedAtField, Value: -1}})

	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]Document, 0)
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}
		docs = append(docs, project(raw, q.Fields))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *MongoStore) Create(ctx context.Context, docType string, doc Document) (string, error) {
	col, err := s.collection(docType)
	if err != nil {
		return "", err
	}
	id := primitive.NewObjectID().Hex()
	record := bson.M{"_id": id, db.CreatedAtField: time.Now().UTC()}
	for k, v := range doc {
		record[k] = v
	}
	if _, err := col.InsertOne(ctx, record); err != nil {
		return "", err
	}
	return id, nil
}

func (s *MongoStore) CreateIfMissing(ctx context.Context, docType, id string, doc Document) error {
	col, err := s.collection(docType)
	if err != nil {
		return err
	}
	insert := bson.M{db.CreatedAtField: time.Now().UTC()}
	for k, v := range doc {
		insert[k] = v
	}
	_, err = col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$setOnInsert": insert}, options.Update().SetUpsert(true))
	return err
}

func (s *MongoStore) Patch(ctx context.Context, docType, id string, set Document) error {
	col, err := s.collection(docType)
	if err != nil {
		return err
	}
	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(set)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, docType, id string) error {
	col, err := s.collection(docType)
	if err != nil {
		return err
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
