package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"collectorsdream/domain/collection"
	"collectorsdream/domain/core"
	"collectorsdream/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the collection the documents have always lived in
const CollectionName = "collection"

// Metadata keys written next to the item fields
const (
	keyID        = "_id"
	keyCreatedAt = "_createdAt"
	keyUpdatedAt = "_updatedAt"
)

// itemRepository implements ports.ItemRepository on MongoDB. Documents are
// schemaless: every item field is a top-level key.
type itemRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Open connects to uri and returns a repository over database's collection
func Open(ctx context.Context, uri, database string) (ports.ItemRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return NewItemRepository(client, client.Database(database).Collection(CollectionName)), nil
}

// NewItemRepository creates a repository over coll. The repository owns
// client and disconnects it on Close.
func NewItemRepository(client *mongo.Client, coll *mongo.Collection) ports.ItemRepository {
	return &itemRepository{client: client, coll: coll}
}

// idFilter matches by ObjectID when id is one, otherwise by the raw string,
// so items migrated from the SQL stores keep their IDs
func idFilter(id core.ID) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id.String()); err == nil {
		return bson.M{keyID: oid}
	}
	return bson.M{keyID: id.String()}
}

func toDocument(item *collection.Item) bson.M {
	doc := bson.M{}
	for k, v := range collection.CleanFields(item.Fields) {
		doc[k] = v
	}
	if oid, err := primitive.ObjectIDFromHex(item.ID.String()); err == nil {
		doc[keyID] = oid
	} else {
		doc[keyID] = item.ID.String()
	}
	doc[keyCreatedAt] = primitive.NewDateTimeFromTime(item.CreatedAt.Time())
	doc[keyUpdatedAt] = primitive.NewDateTimeFromTime(item.UpdatedAt.Time())
	return doc
}

func fromDocument(doc bson.M) *collection.Item {
	item := &collection.Item{Fields: make(map[string]any, len(doc))}
	switch id := doc[keyID].(type) {
	case primitive.ObjectID:
		item.ID = core.ID(id.Hex())
	case string:
		item.ID = core.ID(id)
	default:
		item.ID = core.ID(fmt.Sprint(id))
	}
	if dt, ok := doc[keyCreatedAt].(primitive.DateTime); ok {
		item.CreatedAt = core.NewTimestamp(dt.Time())
	}
	if dt, ok := doc[keyUpdatedAt].(primitive.DateTime); ok {
		item.UpdatedAt = core.NewTimestamp(dt.Time())
	}
	for k, v := range doc {
		if k == keyCreatedAt || k == keyUpdatedAt || collection.IsReservedKey(k) {
			continue
		}
		item.Fields[k] = plain(v)
	}
	return item
}

// plain converts BSON values into the JSON-shaped values the SQL stores return
func plain(v any) any {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = plain(vv)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plain(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = plain(vv)
		}
		return out
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339)
	case primitive.Decimal128:
		return t.String()
	}
	return v
}

// List retrieves all items, oldest first
func (r *itemRepository) List(ctx context.Context) ([]*collection.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: keyCreatedAt, Value: 1}, {Key: keyID, Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}

	items := make([]*collection.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, fromDocument(doc))
	}
	return items, nil
}

// Get retrieves an item by its ID
func (r *itemRepository) Get(ctx context.Context, id core.ID) (*collection.Item, error) {
	var doc bson.M
	err := r.coll.FindOne(ctx, idFilter(id)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.NewNotFoundError(core.ErrItemNotFound, id.String())
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return fromDocument(doc), nil
}

// Create inserts a new item; an empty ID gets a fresh ObjectID
func (r *itemRepository) Create(ctx context.Context, item *collection.Item) error {
	if item.ID.IsEmpty() {
		item.ID = core.ID(primitive.NewObjectID().Hex())
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = core.Now()
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = item.CreatedAt
	}

	if _, err := r.coll.InsertOne(ctx, toDocument(item)); err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Update replaces the fields of an existing item and returns the stored item
func (r *itemRepository) Update(ctx context.Context, item *collection.Item) (*collection.Item, error) {
	existing, err := r.Get(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	updated := &collection.Item{
		ID:        existing.ID,
		Fields:    collection.CleanFields(item.Fields),
		CreatedAt: existing.CreatedAt,
		UpdatedAt: core.Now(),
	}
	result, err := r.coll.ReplaceOne(ctx, idFilter(item.ID), toDocument(updated))
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, core.NewNotFoundError(core.ErrItemNotFound, item.ID.String())
	}
	return updated, nil
}

// Delete removes an item
func (r *itemRepository) Delete(ctx context.Context, id core.ID) error {
	result, err := r.coll.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if result.DeletedCount == 0 {
		return core.NewNotFoundError(core.ErrItemNotFound, id.String())
	}
	return nil
}

// Count returns the number of stored items
func (r *itemRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return int(n), nil
}

// Close disconnects the client
func (r *itemRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}
