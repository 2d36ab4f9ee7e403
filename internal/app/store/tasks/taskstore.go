package taskstore

import (
	"context"
	"errors"
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
	return &Store{c: db.Collection("tasks")}
}

var (
	errBadPriority = errors.New(`priority must be "Low"|"Medium"|"High"`)
	errBadStatus   = errors.New(`status must be "pending"|"in-progress"|"completed"`)
)

// Create inserts a task for its owner, applying the documented defaults.
func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	t.ID = primitive.NewObjectID()
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if t.Category == "" {
		t.Category = "Uncategorized"
	}
	if t.Status == "" {
		t.Status = models.TaskPending
	}

	if !models.ValidPriority(t.Priority) {
		return models.Task{}, errBadPriority
	}
	if !models.ValidTaskStatus(t.Status) {
		return models.Task{}, errBadStatus
	}

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// GetOwned loads one task scoped to its owner. A task belonging to someone
// else decodes to mongo.ErrNoDocuments, indistinguishable from absence.
func (s *Store) GetOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "user_id": ownerID}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListFilter narrows a task listing. Zero values mean "no constraint".
type ListFilter struct {
	Status   string // case-insensitive; "All" and "" both mean no filter
	Category string
	Search   string // substring across name and description
}

// ListOwned returns one page of the owner's tasks plus the total match
// count, sorted by due date ascending.
func (s *Store) ListOwned(ctx context.Context, ownerID primitive.ObjectID, f ListFilter, skip, limit int64) ([]models.Task, int64, error) {
	filter := bson.M{"user_id": ownerID}
	if f.Status != "" && !strings.EqualFold(f.Status, "All") {
		filter["status"] = strings.ToLower(f.Status)
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Search != "" {
		re := search.Regex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
		}
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "due_date", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var tasks []models.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// ListByGroup returns every task attached to a group, newest first. Group
// visibility (is the caller a member?) is checked by the handler.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []models.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update holds a partial task edit. Nil pointers leave fields untouched.
type Update struct {
	Name        *string
	Description *string
	DueDate     *time.Time
	Priority    *string
	Category    *string
	Status      *string
	ProjectID   **primitive.ObjectID // set to new(…) = assign, to nil-pointing value = clear
	GroupID     **primitive.ObjectID
	Tags        *[]string
	Attachments *[]models.Attachment
}

// UpdateOwned applies a partial update scoped to the owner, re-validating
// the closed enum fields, and returns the fresh task.
func (s *Store) UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, upd Update) (*models.Task, error) {
	set := bson.M{"updated_at": time.Now()}
	unset := bson.M{}

	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.DueDate != nil {
		set["due_date"] = *upd.DueDate
	}
	if upd.Priority != nil {
		if !models.ValidPriority(*upd.Priority) {
			return nil, errBadPriority
		}
		set["priority"] = *upd.Priority
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Status != nil {
		if !models.ValidTaskStatus(*upd.Status) {
			return nil, errBadStatus
		}
		set["status"] = *upd.Status
	}
	if upd.ProjectID != nil {
		if *upd.ProjectID == nil {
			unset["project_id"] = ""
		} else {
			set["project_id"] = **upd.ProjectID
		}
	}
	if upd.GroupID != nil {
		if *upd.GroupID == nil {
			unset["group_id"] = ""
		} else {
			set["group_id"] = **upd.GroupID
		}
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	if upd.Attachments != nil {
		set["attachments"] = *upd.Attachments
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_id": ownerID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var t models.Task
	if err := res.Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteOwned removes one task scoped to its owner. Returns the number
// deleted (0 or 1).
func (s *Store) DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "user_id": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByOwner removes every task owned by a user. Used by the admin
// user-delete cascade.
func (s *Store) DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
