package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/mindgrid/pkg/document"
	"github.com/matzehuels/mindgrid/pkg/mindmap"
)

// MongoStore is a MongoDB-backed document store for server deployments.
// Documents live in a "documents" collection keyed by their UUID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoDocument is the stored shape. The node array is embedded; mind
// maps are small enough that splitting nodes into their own collection
// buys nothing.
type mongoDocument struct {
	ID        string      `bson:"_id"`
	Title     string      `bson:"title"`
	Nodes     []mongoNode `bson:"nodes"`
	CreatedAt int64       `bson:"created_at"` // unix millis, UTC
	UpdatedAt int64       `bson:"updated_at"`
}

type mongoNode struct {
	ID        string         `bson:"id"`
	Content   string         `bson:"content,omitempty"`
	Level     int            `bson:"level,omitempty"`
	ParentID  string         `bson:"parent_id,omitempty"`
	Collapsed bool           `bson:"collapsed,omitempty"`
	Meta      map[string]any `bson:"meta,omitempty"`
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// ping before returning. The uri is a standard connection string
// (mongodb://host:port); db names the database to use.
func NewMongoStore(ctx context.Context, uri, db string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(db).Collection("documents"),
	}, nil
}

// Get retrieves a document by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*document.Document, error) {
	var md mongoDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&md)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find document %s: %w", id, err)
	}
	return fromMongo(md), nil
}

// Put upserts a document.
func (s *MongoStore) Put(ctx context.Context, d *document.Document) error {
	if d == nil || d.ID == "" {
		return ErrInvalidDocument
	}

	md := toMongo(d)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": d.ID}, md, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store document %s: %w", d.ID, err)
	}
	return nil
}

// Delete removes a document.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns summaries of all documents, most recently updated first.
// Node arrays are projected down to a count server-side.
func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{
			"title":      1,
			"updated_at": 1,
			"node_count": bson.M{"$size": bson.M{"$ifNull": bson.A{"$nodes", bson.A{}}}},
		}}},
		{{Key: "$sort", Value: bson.M{"updated_at": -1, "_id": 1}}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer cur.Close(ctx)

	var out []Summary
	for cur.Next(ctx) {
		var row struct {
			ID        string `bson:"_id"`
			Title     string `bson:"title"`
			NodeCount int    `bson:"node_count"`
			UpdatedAt int64  `bson:"updated_at"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode summary: %w", err)
		}
		out = append(out, Summary{
			ID:        row.ID,
			Title:     row.Title,
			NodeCount: row.NodeCount,
			UpdatedAt: millisToTime(row.UpdatedAt),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return out, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func toMongo(d *document.Document) mongoDocument {
	md := mongoDocument{
		ID:        d.ID,
		Title:     d.Title,
		Nodes:     make([]mongoNode, len(d.Nodes)),
		CreatedAt: d.CreatedAt.UnixMilli(),
		UpdatedAt: d.UpdatedAt.UnixMilli(),
	}
	for i, n := range d.Nodes {
		md.Nodes[i] = mongoNode{
			ID:        n.ID,
			Content:   n.Content,
			Level:     n.Level,
			ParentID:  n.ParentID,
			Collapsed: n.Collapsed,
			Meta:      n.Meta,
		}
	}
	return md
}

func fromMongo(md mongoDocument) *document.Document {
	d := &document.Document{
		ID:        md.ID,
		Title:     md.Title,
		Nodes:     make([]mindmap.Node, len(md.Nodes)),
		CreatedAt: millisToTime(md.CreatedAt),
		UpdatedAt: millisToTime(md.UpdatedAt),
	}
	for i, n := range md.Nodes {
		d.Nodes[i] = mindmap.Node{
			ID:        n.ID,
			Content:   n.Content,
			Level:     n.Level,
			ParentID:  n.ParentID,
			Collapsed: n.Collapsed,
			Meta:      n.Meta,
		}
	}
	return d
}

func millisToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
