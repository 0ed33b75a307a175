package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tkaing/ecologie-api/internal/core/domain"
)

const createdAtField = "createdAt"

// DocumentRepository is the generic MongoDB implementation of
// ports.DocumentRepository, one instance per collection. The *mongo.Database
// it wraps is backed by the process-wide pooled client; no per-call
// connections are opened.
type DocumentRepository struct {
	col *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database, collection string) *DocumentRepository {
	return &DocumentRepository{col: db.Collection(collection)}
}

// Create inserts fields as a new document with a server-assigned createdAt.
func (r *DocumentRepository) Create(ctx context.Context, fields map[string]any) (*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	createdAt := time.Now().UTC().Truncate(time.Millisecond)
	doc := toBson(fields)
	doc[createdAtField] = createdAt

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert document: unexpected id type %T", res.InsertedID)
	}

	return &domain.Document{ID: oid.Hex(), Fields: fields, CreatedAt: createdAt}, nil
}

// FindAll returns every document in the collection.
func (r *DocumentRepository) FindAll(ctx context.Context) ([]domain.Document, error) {
	return r.find(ctx, bson.M{})
}

// FindByCriteria returns all documents matching the exact-value filter.
func (r *DocumentRepository) FindByCriteria(ctx context.Context, criteria map[string]any) ([]domain.Document, error) {
	return r.find(ctx, toBson(criteria))
}

func (r *DocumentRepository) find(ctx context.Context, filter bson.M) ([]domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	defer cursor.Close(ctx)

	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}

	docs := make([]domain.Document, 0, len(raws))
	for _, raw := range raws {
		doc, err := fromBson(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

// FindByID returns the document with the given hex identifier.
func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*domain.Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var raw bson.M
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return fromBson(raw)
}

// FindOneByField returns the first document whose attribute equals value.
func (r *DocumentRepository) FindOneByField(ctx context.Context, attribute string, value any) (*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var raw bson.M
	if err := r.col.FindOne(ctx, bson.M{attribute: value}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return fromBson(raw)
}

// Update replaces the named fields of an existing document and returns the
// updated state. Only the given fields are $set, so the stored createdAt and
// any attribute outside the update (credential hashes included) survive.
func (r *DocumentRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var raw bson.M
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": toBson(fields)}, opts).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update document: %w", err)
	}
	return fromBson(raw)
}

// Delete removes the document with the given identifier.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

// toBson copies a fields map into a bson.M, dropping the reserved keys a
// caller must never write directly.
func toBson(fields map[string]any) bson.M {
	doc := make(bson.M, len(fields))
	for k, v := range fields {
		if k == "_id" || k == createdAtField {
			continue
		}
		doc[k] = v
	}
	return doc
}

// fromBson rebuilds a domain.Document from a raw decoded record, splitting
// off the identifier and createdAt from the resource fields.
func fromBson(raw bson.M) (*domain.Document, error) {
	oid, ok := raw["_id"].(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("decode document: missing object id")
	}

	doc := &domain.Document{ID: oid.Hex(), Fields: make(map[string]any, len(raw))}
	for k, v := range raw {
		switch k {
		case "_id":
		case createdAtField:
			if dt, ok := v.(primitive.DateTime); ok {
				doc.CreatedAt = dt.Time().UTC()
			}
		default:
			doc.Fields[k] = normalize(v)
		}
	}
	return doc, nil
}

// normalize maps driver-specific decode types back to plain Go values so the
// rest of the system never sees bson primitives.
func normalize(v any) any {
	switch t := v.(type) {
	case primitive.A:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalize(item)
		}
		return out
	case primitive.M:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = normalize(item)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	case int32:
		return int64(t)
	default:
		return v
	}
}
