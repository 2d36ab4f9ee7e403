package projectstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gridleapp/gridle/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

var errBadStatus = errors.New(`status must be "active"|"completed"|"on-hold"|"cancelled"`)

func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	p.ID = primitive.NewObjectID()
	if p.Status == "" {
		p.Status = models.ProjectActive
	}
	if !models.ValidProjectStatus(p.Status) {
		return models.Project{}, errBadStatus
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

func (s *Store) GetOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "user_id": ownerID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListOwned returns all of the owner's projects, newest first. Project
// counts stay small enough that paging is not worth the surface.
func (s *Store) ListOwned(ctx context.Context, ownerID primitive.ObjectID) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Update holds a partial project edit. Nil pointers leave fields untouched.
type Update struct {
	Name        *string
	Description *string
	Color       *string
	Status      *string
	StartDate   *time.Time
	EndDate     *time.Time
}

func (s *Store) UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, upd Update) (*models.Project, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Color != nil {
		set["color"] = *upd.Color
	}
	if upd.Status != nil {
		if !models.ValidProjectStatus(*upd.Status) {
			return nil, errBadStatus
		}
		set["status"] = *upd.Status
	}
	if upd.StartDate != nil {
		set["start_date"] = *upd.StartDate
	}
	if upd.EndDate != nil {
		set["end_date"] = *upd.EndDate
	}

	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_id": ownerID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var p models.Project
	if err := res.Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "user_id": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByOwner removes every project owned by a user. Used by the admin
// user-delete cascade. Tasks pointing at deleted projects keep their
// project_id; readers treat a dangling reference as "no project".
func (s *Store) DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
