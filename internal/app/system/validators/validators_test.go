package validators_test

import (
	"testing"
	"time"

	"github.com/gridleapp/gridle/internal/app/system/validators"
	"github.com/gridleapp/gridle/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// EnsureAll should succeed on a clean database
	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// First call
	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}

	// Second call should also succeed (idempotent)
	err = validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Verify collections exist
	expectedCollections := []string{
		"users",
		"tasks",
		"notes",
		"groups",
		"projects",
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}

	collMap := make(map[string]bool)
	for _, name := range names {
		collMap[name] = true
	}

	for _, expected := range expectedCollections {
		if !collMap[expected] {
			t.Errorf("expected collection %q to exist", expected)
		}
	}
}

func TestUsersValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert user without required fields - should fail
	_, err = db.Collection("users").InsertOne(ctx, bson.M{
		"image": "https://example.com/avatar.png",
	})
	if err == nil {
		t.Error("expected validation error when inserting user without required fields")
	}
}

func TestUsersValidator_ValidUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Insert valid user - should succeed
	_, err = db.Collection("users").InsertOne(ctx, bson.M{
		"name":       "Test User",
		"name_ci":    "test user",
		"email":      "test@example.com",
		"role":       "user",
		"created_at": time.Now(),
		"updated_at": time.Now(),
	})
	if err != nil {
		t.Errorf("Insert valid user failed: %v", err)
	}
}

func TestUsersValidator_InvalidRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert user with invalid role - should fail
	_, err = db.Collection("users").InsertOne(ctx, bson.M{
		"name":    "Test User",
		"name_ci": "test user",
		"email":   "bad-role@example.com",
		"role":    "superuser",
	})
	if err == nil {
		t.Error("expected validation error when inserting user with invalid role")
	}
}

func TestTasksValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert task without required fields - should fail
	_, err = db.Collection("tasks").InsertOne(ctx, bson.M{
		"description": "No name, owner, priority or status",
	})
	if err == nil {
		t.Error("expected validation error when inserting task without required fields")
	}
}

func TestTasksValidator_ValidTask(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Insert valid task - should succeed
	_, err = db.Collection("tasks").InsertOne(ctx, bson.M{
		"name":       "Write report",
		"user_id":    primitive.NewObjectID(),
		"priority":   "Medium",
		"status":     "pending",
		"category":   "Work",
		"due_date":   time.Now().Add(24 * time.Hour),
		"created_at": time.Now(),
		"updated_at": time.Now(),
	})
	if err != nil {
		t.Errorf("Insert valid task failed: %v", err)
	}
}

func TestTasksValidator_InvalidPriority(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert task with invalid priority - should fail
	_, err = db.Collection("tasks").InsertOne(ctx, bson.M{
		"name":     "Write report",
		"user_id":  primitive.NewObjectID(),
		"priority": "Urgent",
		"status":   "pending",
	})
	if err == nil {
		t.Error("expected validation error when inserting task with invalid priority")
	}
}

func TestTasksValidator_InvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert task with invalid status - should fail
	_, err = db.Collection("tasks").InsertOne(ctx, bson.M{
		"name":     "Write report",
		"user_id":  primitive.NewObjectID(),
		"priority": "Low",
		"status":   "done",
	})
	if err == nil {
		t.Error("expected validation error when inserting task with invalid status")
	}
}

func TestTasksValidator_AllValidPriorities(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	validPriorities := []string{"Low", "Medium", "High"}

	for _, priority := range validPriorities {
		_, err = db.Collection("tasks").InsertOne(ctx, bson.M{
			"name":     "Task " + priority,
			"user_id":  primitive.NewObjectID(),
			"priority": priority,
			"status":   "pending",
		})
		if err != nil {
			t.Errorf("Insert task with priority %q failed: %v", priority, err)
		}
	}
}

func TestNotesValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert note without required fields - should fail
	_, err = db.Collection("notes").InsertOne(ctx, bson.M{
		"summary": "No title, content or owner",
	})
	if err == nil {
		t.Error("expected validation error when inserting note without required fields")
	}
}

func TestNotesValidator_ValidNote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Insert valid note - should succeed
	_, err = db.Collection("notes").InsertOne(ctx, bson.M{
		"title":      "Meeting notes",
		"content":    "Discussed the rollout plan.",
		"user_id":    primitive.NewObjectID(),
		"archived":   false,
		"created_at": time.Now(),
		"updated_at": time.Now(),
	})
	if err != nil {
		t.Errorf("Insert valid note failed: %v", err)
	}
}

func TestGroupsValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert group without required fields - should fail
	_, err = db.Collection("groups").InsertOne(ctx, bson.M{
		"description": "Test Description",
	})
	if err == nil {
		t.Error("expected validation error when inserting group without required fields")
	}
}

func TestGroupsValidator_ValidGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	creatorID := primitive.NewObjectID()

	// Insert valid group - should succeed
	_, err = db.Collection("groups").InsertOne(ctx, bson.M{
		"name":       "Study Group",
		"name_ci":    "study group",
		"created_by": creatorID,
		"join_code":  "ABC123",
		"members": bson.A{
			bson.M{"user_id": creatorID, "role": "admin", "joined_at": time.Now()},
		},
		"created_at": time.Now(),
		"updated_at": time.Now(),
	})
	if err != nil {
		t.Errorf("Insert valid group failed: %v", err)
	}
}

func TestGroupsValidator_InvalidMemberRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	creatorID := primitive.NewObjectID()

	// Try to insert group with an invalid member role - should fail
	_, err = db.Collection("groups").InsertOne(ctx, bson.M{
		"name":       "Study Group",
		"name_ci":    "study group",
		"created_by": creatorID,
		"join_code":  "ABC124",
		"members": bson.A{
			bson.M{"user_id": creatorID, "role": "owner", "joined_at": time.Now()},
		},
	})
	if err == nil {
		t.Error("expected validation error when inserting group member with invalid role")
	}
}

func TestProjectsValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert project without required fields - should fail
	_, err = db.Collection("projects").InsertOne(ctx, bson.M{
		"color": "#3B82F6",
	})
	if err == nil {
		t.Error("expected validation error when inserting project without required fields")
	}
}

func TestProjectsValidator_ValidProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Insert valid project - should succeed
	_, err = db.Collection("projects").InsertOne(ctx, bson.M{
		"name":       "Website Redesign",
		"user_id":    primitive.NewObjectID(),
		"color":      "#3B82F6",
		"status":     "active",
		"created_at": time.Now(),
		"updated_at": time.Now(),
	})
	if err != nil {
		t.Errorf("Insert valid project failed: %v", err)
	}
}

func TestProjectsValidator_AllValidStatuses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	validStatuses := []string{"active", "completed", "on-hold", "cancelled"}

	for _, status := range validStatuses {
		_, err = db.Collection("projects").InsertOne(ctx, bson.M{
			"name":    "Project " + status,
			"user_id": primitive.NewObjectID(),
			"status":  status,
		})
		if err != nil {
			t.Errorf("Insert project with status %q failed: %v", status, err)
		}
	}
}
