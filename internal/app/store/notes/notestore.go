package notestore

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gridleapp/gridle/internal/app/system/search"
	"github.com/gridleapp/gridle/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notes")}
}

func (s *Store) Create(ctx context.Context, n models.Note) (models.Note, error) {
	n.ID = primitive.NewObjectID()
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Note{}, err
	}
	return n, nil
}

func (s *Store) GetOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Note, error) {
	var n models.Note
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "user_id": ownerID}).Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ListFilter narrows a note listing.
type ListFilter struct {
	// Archived is "true" for archived notes only, "all" for both.
	// Anything else, the empty default included, excludes archived notes.
	Archived string
	Search   string // substring across title and content
}

// ListOwned returns one page of the owner's notes plus the total match
// count, most recently updated first. Archived notes are excluded
// unless the filter asks for them.
func (s *Store) ListOwned(ctx context.Context, ownerID primitive.ObjectID, f ListFilter, skip, limit int64) ([]models.Note, int64, error) {
	filter := bson.M{"user_id": ownerID}
	switch strings.ToLower(strings.TrimSpace(f.Archived)) {
	case "true":
		filter["archived"] = true
	case "all":
		// both archived and live
	default:
		filter["archived"] = false
	}
	if f.Search != "" {
		re := search.Regex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"content": re},
		}
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var notes []models.Note
	if err := cur.All(ctx, &notes); err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

// Update holds a partial note edit. Nil pointers leave fields untouched.
type Update struct {
	Title    *string
	Content  *string
	Summary  *string
	Archived *bool
	Tags     *[]string
}

func (s *Store) UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, upd Update) (*models.Note, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Summary != nil {
		set["summary"] = *upd.Summary
	}
	if upd.Archived != nil {
		set["archived"] = *upd.Archived
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}

	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_id": ownerID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var n models.Note
	if err := res.Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Store) DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "user_id": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByOwner removes every note owned by a user. Used by the admin
// user-delete cascade.
func (s *Store) DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
