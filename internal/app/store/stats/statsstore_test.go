package statsstore_test

import (
	"testing"
	"time"

	statsstore "github.com/gridleapp/gridle/internal/app/store/stats"
	"github.com/gridleapp/gridle/internal/domain/models"
	"github.com/gridleapp/gridle/internal/testutil"
)

func TestStore_CountAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := statsstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "One", "one@example.com")
	fixtures.CreateUser(ctx, "Two", "two@example.com")
	fixtures.CreateTask(ctx, u.ID, "Task")
	fixtures.CreateNote(ctx, u.ID, "Note", "text")
	fixtures.CreateGroup(ctx, u.ID, "Group", "STAT01")
	fixtures.CreateProject(ctx, u.ID, "Project")

	totals, err := store.CountAll(ctx)
	if err != nil {
		t.Fatalf("CountAll failed: %v", err)
	}
	if totals.Users != 2 || totals.Tasks != 1 || totals.Notes != 1 || totals.Groups != 1 || totals.Projects != 1 {
		t.Errorf("unexpected totals: %+v", totals)
	}
}

func TestStore_RegistrationTrend(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := statsstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Fresh", "fresh@example.com")

	points, err := store.RegistrationTrend(ctx, 30)
	if err != nil {
		t.Fatalf("RegistrationTrend failed: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 trend point, got %d", len(points))
	}

	today := time.Now().UTC().Format("2006-01-02")
	if points[0].Date != today || points[0].Count != 1 {
		t.Errorf("unexpected trend point: %+v", points[0])
	}
}

func TestStore_TaskStatusBreakdown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := statsstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Owner", "owner@example.com")
	fixtures.CreateTask(ctx, u.ID, "A")
	fixtures.CreateTask(ctx, u.ID, "B")

	counts, err := store.TaskStatusBreakdown(ctx)
	if err != nil {
		t.Fatalf("TaskStatusBreakdown failed: %v", err)
	}
	if len(counts) != 1 || counts[0].Status != models.TaskPending || counts[0].Count != 2 {
		t.Errorf("unexpected breakdown: %+v", counts)
	}
}

func TestStore_MostActiveUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := statsstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	busy := fixtures.CreateUser(ctx, "Busy", "busy@example.com")
	idle := fixtures.CreateUser(ctx, "Idle", "idle@example.com")
	fixtures.CreateTask(ctx, busy.ID, "One")
	fixtures.CreateTask(ctx, busy.ID, "Two")
	fixtures.CreateTask(ctx, idle.ID, "Only")

	users, err := store.MostActiveUsers(ctx, 10)
	if err != nil {
		t.Fatalf("MostActiveUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(users))
	}
	if users[0].UserID != busy.ID.Hex() || users[0].TaskCount != 2 {
		t.Errorf("expected busy user first: %+v", users[0])
	}
	if users[0].Name != "Busy" || users[0].Email != "busy@example.com" {
		t.Errorf("join fields missing: %+v", users[0])
	}
}
