package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gridleapp/gridle/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with sensible defaults and returns it.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Email:        email,
		PasswordHash: "$2a$10$fixturefixturefixturefixturefixturefixture",
		Role:         "user",
		Preferences:  models.DefaultPreferences(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create test user: %v", err)
	}
	return u
}

// CreateAdmin inserts a user with the admin role.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	u := f.CreateUser(ctx, name, email)
	if _, err := f.db.Collection("users").UpdateByID(ctx, u.ID,
		bson.M{"$set": bson.M{"role": "admin"}}); err != nil {
		f.t.Fatalf("promote test user: %v", err)
	}
	u.Role = "admin"
	return u
}

// CreateTask inserts a task owned by ownerID with the documented defaults.
func (f *Fixtures) CreateTask(ctx context.Context, ownerID primitive.ObjectID, name string) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:        primitive.NewObjectID(),
		Name:      name,
		DueDate:   now.Add(24 * time.Hour),
		Priority:  models.PriorityMedium,
		Category:  "Uncategorized",
		Status:    models.TaskPending,
		UserID:    ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("create test task: %v", err)
	}
	return task
}

// CreateNote inserts a note owned by ownerID.
func (f *Fixtures) CreateNote(ctx context.Context, ownerID primitive.ObjectID, title, content string) models.Note {
	f.t.Helper()

	now := time.Now().UTC()
	note := models.Note{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Content:   content,
		UserID:    ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("notes").InsertOne(ctx, note); err != nil {
		f.t.Fatalf("create test note: %v", err)
	}
	return note
}

// CreateProject inserts an active project owned by ownerID.
func (f *Fixtures) CreateProject(ctx context.Context, ownerID primitive.ObjectID, name string) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Project{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Color:     "#3B82F6",
		UserID:    ownerID,
		Status:    models.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("projects").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("create test project: %v", err)
	}
	return p
}

// CreateGroup inserts a group with creatorID as its sole admin member.
func (f *Fixtures) CreateGroup(ctx context.Context, creatorID primitive.ObjectID, name, code string) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	g := models.Group{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedBy: creatorID,
		JoinCode:  code,
		Members: []models.GroupMember{{
			UserID:   creatorID,
			Role:     models.GroupRoleAdmin,
			JoinedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("create test group: %v", err)
	}
	return g
}
