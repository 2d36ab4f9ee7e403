package groupstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	groupstore "github.com/gridleapp/gridle/internal/app/store/groups"
	"github.com/gridleapp/gridle/internal/app/system/joincode"
	"github.com/gridleapp/gridle/internal/domain/models"
	"github.com/gridleapp/gridle/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Creator", "creator@example.com")

	g, err := store.Create(ctx, "Study Group", "weekly sessions", false, creator.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !joincode.Valid(g.JoinCode) {
		t.Errorf("join code %q is not valid", g.JoinCode)
	}
	if len(g.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(g.Members))
	}
	if g.Members[0].UserID != creator.ID || g.Members[0].Role != models.GroupRoleAdmin {
		t.Errorf("creator should be the sole admin member, got %+v", g.Members[0])
	}
	if g.CreatedBy != creator.ID {
		t.Errorf("created_by mismatch")
	}
}

func TestStore_JoinByCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Creator", "creator@example.com")
	joiner := fixtures.CreateUser(ctx, "Joiner", "joiner@example.com")
	fixtures.CreateGroup(ctx, creator.ID, "Joinable", "ABC123")

	joined, err := store.JoinByCode(ctx, "ABC123", joiner.ID)
	if err != nil {
		t.Fatalf("JoinByCode failed: %v", err)
	}
	if len(joined.Members) != 2 {
		t.Fatalf("expected 2 members after join, got %d", len(joined.Members))
	}
	idx := joined.MemberIndex(joiner.ID)
	if idx < 0 || joined.Members[idx].Role != models.GroupRoleMember {
		t.Errorf("joiner should be a plain member")
	}

	// Joining again is a no-op, not an error.
	again, err := store.JoinByCode(ctx, "ABC123", joiner.ID)
	if err != nil {
		t.Fatalf("repeat JoinByCode failed: %v", err)
	}
	if len(again.Members) != 2 {
		t.Errorf("repeat join duplicated membership: %d members", len(again.Members))
	}

	if _, err := store.JoinByCode(ctx, "ZZZZZZ", joiner.ID); !errors.Is(err, groupstore.ErrBadJoinCode) {
		t.Errorf("expected ErrBadJoinCode, got %v", err)
	}
}

func TestStore_Leave(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Creator", "creator@example.com")
	member := fixtures.CreateUser(ctx, "Member", "member@example.com")
	outsider := fixtures.CreateUser(ctx, "Outsider", "outsider@example.com")

	g := fixtures.CreateGroup(ctx, creator.ID, "Leavable", "LEAVE1")
	if _, err := store.JoinByCode(ctx, "LEAVE1", member.ID); err != nil {
		t.Fatalf("JoinByCode failed: %v", err)
	}

	if err := store.Leave(ctx, g.ID, member.ID); err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.IsMember(member.ID) {
		t.Error("member still present after leaving")
	}

	if err := store.Leave(ctx, g.ID, outsider.ID); !errors.Is(err, groupstore.ErrNotMember) {
		t.Errorf("expected ErrNotMember, got %v", err)
	}
}

func TestStore_ListForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Creator", "creator@example.com")
	member := fixtures.CreateUser(ctx, "Member", "member@example.com")

	fixtures.CreateGroup(ctx, creator.ID, "Mine Only", "AAAA11")
	shared := fixtures.CreateGroup(ctx, creator.ID, "Shared", "BBBB22")
	if _, err := store.JoinByCode(ctx, "BBBB22", member.ID); err != nil {
		t.Fatalf("JoinByCode failed: %v", err)
	}

	groups, err := store.ListForUser(ctx, member.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(groups) != 1 || groups[0].ID != shared.ID {
		t.Errorf("expected exactly the shared group, got %v", groups)
	}

	groups, err = store.ListForUser(ctx, creator.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(groups) != 2 {
		t.Errorf("expected 2 groups for creator, got %d", len(groups))
	}
}

func TestStore_TransferOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Creator", "creator@example.com")
	member := fixtures.CreateUser(ctx, "Member", "member@example.com")
	outsider := fixtures.CreateUser(ctx, "Outsider", "outsider@example.com")

	g := fixtures.CreateGroup(ctx, creator.ID, "Handover", "XFER01")
	if _, err := store.JoinByCode(ctx, "XFER01", member.ID); err != nil {
		t.Fatalf("JoinByCode failed: %v", err)
	}

	// Target must already be a member.
	if _, err := store.TransferOwner(ctx, g.ID, outsider.ID); !errors.Is(err, groupstore.ErrNotMember) {
		t.Errorf("expected ErrNotMember for outsider, got %v", err)
	}

	updated, err := store.TransferOwner(ctx, g.ID, member.ID)
	if err != nil {
		t.Fatalf("TransferOwner failed: %v", err)
	}
	if updated.CreatedBy != member.ID {
		t.Errorf("created_by not transferred")
	}

	newIdx := updated.MemberIndex(member.ID)
	oldIdx := updated.MemberIndex(creator.ID)
	if newIdx < 0 || updated.Members[newIdx].Role != models.GroupRoleAdmin {
		t.Errorf("new owner not promoted to admin")
	}
	if oldIdx < 0 || updated.Members[oldIdx].Role != models.GroupRoleMember {
		t.Errorf("previous owner not demoted to member")
	}
}

func TestStore_RemoveMemberEverywhere(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Creator", "creator@example.com")
	member := fixtures.CreateUser(ctx, "Member", "member@example.com")

	a := fixtures.CreateGroup(ctx, creator.ID, "Alpha", "ALFA01")
	b := fixtures.CreateGroup(ctx, creator.ID, "Beta", "BETA01")
	if _, err := store.JoinByCode(ctx, "ALFA01", member.ID); err != nil {
		t.Fatalf("JoinByCode failed: %v", err)
	}
	if _, err := store.JoinByCode(ctx, "BETA01", member.ID); err != nil {
		t.Fatalf("JoinByCode failed: %v", err)
	}

	n, err := store.RemoveMemberEverywhere(ctx, member.ID)
	if err != nil {
		t.Fatalf("RemoveMemberEverywhere failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 groups modified, got %d", n)
	}

	ga, _ := store.GetByID(ctx, a.ID)
	gb, _ := store.GetByID(ctx, b.ID)
	if ga.IsMember(member.ID) || gb.IsMember(member.ID) {
		t.Error("member still present after removal")
	}
}

func TestStore_ListCreatedByAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Creator", "creator@example.com")
	other := fixtures.CreateUser(ctx, "Other", "other@example.com")

	mine := fixtures.CreateGroup(ctx, creator.ID, "Mine", "MINE01")
	fixtures.CreateGroup(ctx, other.ID, "Theirs", "THEM01")

	groups, err := store.ListCreatedBy(ctx, creator.ID)
	if err != nil {
		t.Fatalf("ListCreatedBy failed: %v", err)
	}
	if len(groups) != 1 || groups[0].ID != mine.ID {
		t.Errorf("expected only the creator's group")
	}

	n, err := store.Delete(ctx, mine.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deletion, got %d", n)
	}
	if _, err := store.GetByID(ctx, mine.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected group to be gone, got %v", err)
	}
}
