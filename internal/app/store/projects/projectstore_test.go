package projectstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	projectstore "github.com/gridleapp/gridle/internal/app/store/projects"
	"github.com/gridleapp/gridle/internal/domain/models"
	"github.com/gridleapp/gridle/internal/testutil"
)

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com")

	created, err := store.Create(ctx, models.Project{
		Name:   "Launch",
		Color:  "#3B82F6",
		UserID: owner.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Status != models.ProjectActive {
		t.Errorf("expected default status active, got %q", created.Status)
	}

	_, err = store.Create(ctx, models.Project{
		Name: "Bad", Color: "#fff", UserID: owner.ID, Status: "paused",
	})
	if err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestStore_OwnerScopedCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com")
	other := fixtures.CreateUser(ctx, "Other", "other@example.com")

	p, err := store.Create(ctx, models.Project{Name: "Mine", Color: "#10B981", UserID: owner.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := store.GetOwned(ctx, p.ID, other.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments for non-owner, got %v", err)
	}

	status := models.ProjectCompleted
	updated, err := store.UpdateOwned(ctx, p.ID, owner.ID, projectstore.Update{Status: &status})
	if err != nil {
		t.Fatalf("UpdateOwned failed: %v", err)
	}
	if updated.Status != models.ProjectCompleted {
		t.Errorf("status not updated: %q", updated.Status)
	}

	projects, err := store.ListOwned(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListOwned failed: %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("expected 1 project, got %d", len(projects))
	}

	n, err := store.DeleteOwned(ctx, p.ID, owner.ID)
	if err != nil {
		t.Fatalf("DeleteOwned failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deletion, got %d", n)
	}
}
