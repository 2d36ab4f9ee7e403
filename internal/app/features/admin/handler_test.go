package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	userstore "github.com/gridleapp/gridle/internal/app/store/users"
	"github.com/gridleapp/gridle/internal/domain/models"
	"github.com/gridleapp/gridle/internal/testutil"
)

func newTestHandler() *Handler {
	return NewHandler(nil, nil, nil, nil, nil, nil, zap.NewNop())
}

func TestHandleDeleteUser_SelfProtection(t *testing.T) {
	h := newTestHandler()
	admin := testutil.AdminUser()

	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/admin/users/"+admin.ID, admin)
	req = testutil.WithChiURLParam(req, "id", admin.ID)
	rec := testutil.NewRecorder()
	h.HandleDeleteUser(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "cannot delete your own account")
}

func TestHandleUpdateUser_CannotChangeOwnRole(t *testing.T) {
	h := newTestHandler()
	admin := testutil.AdminUser()

	req := testutil.WithUser(testutil.NewJSONRequest(http.MethodPut, "/admin/users/"+admin.ID, `{"role":"user"}`), admin)
	req = testutil.WithChiURLParam(req, "id", admin.ID)
	rec := testutil.NewRecorder()
	h.HandleUpdateUser(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "cannot change your own role")
}

func TestHandleUpdateUser_RejectsUnknownRole(t *testing.T) {
	h := newTestHandler()
	admin := testutil.AdminUser()
	targetID := primitive.NewObjectID().Hex()

	req := testutil.WithUser(testutil.NewJSONRequest(http.MethodPut, "/admin/users/"+targetID, `{"role":"superadmin"}`), admin)
	req = testutil.WithChiURLParam(req, "id", targetID)
	rec := testutil.NewRecorder()
	h.HandleUpdateUser(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestPickSuccessor(t *testing.T) {
	owner := primitive.NewObjectID()
	elder := primitive.NewObjectID()
	admin2 := primitive.NewObjectID()

	g := &models.Group{
		CreatedBy: owner,
		Members: []models.GroupMember{
			{UserID: owner, Role: models.GroupRoleAdmin},
			{UserID: elder, Role: models.GroupRoleMember},
			{UserID: admin2, Role: models.GroupRoleAdmin},
		},
	}

	// A remaining group admin wins over an earlier plain member.
	if got := pickSuccessor(g, owner); got != admin2 {
		t.Errorf("expected remaining admin as successor, got %s", got.Hex())
	}

	// With no admins left, the longest-standing member wins.
	g.Members[2].Role = models.GroupRoleMember
	if got := pickSuccessor(g, owner); got != elder {
		t.Errorf("expected oldest member as successor, got %s", got.Hex())
	}

	// Sole member: no successor.
	g.Members = g.Members[:1]
	if got := pickSuccessor(g, owner); got != primitive.NilObjectID {
		t.Errorf("expected no successor, got %s", got.Hex())
	}
}

func TestHandleListUsers_DefaultPageSize(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	h := NewHandler(userstore.New(db), nil, nil, nil, nil, nil, zap.NewNop())
	admin := testutil.AdminUser()

	for i := 0; i < 12; i++ {
		fixtures.CreateUser(ctx, fmt.Sprintf("User %02d", i), fmt.Sprintf("user%02d@example.com", i))
	}

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/admin/users", admin)
	rec := testutil.NewRecorder()
	h.HandleListUsers(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var env struct {
		Data struct {
			Users      []models.User `json:"users"`
			Pagination struct {
				Limit int   `json:"limit"`
				Total int64 `json:"total"`
			} `json:"pagination"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if env.Data.Pagination.Limit != 10 {
		t.Errorf("expected default page size 10, got %d", env.Data.Pagination.Limit)
	}
	if len(env.Data.Users) != 10 {
		t.Errorf("expected 10 users on the first page, got %d", len(env.Data.Users))
	}
	if env.Data.Pagination.Total != 12 {
		t.Errorf("expected 12 total, got %d", env.Data.Pagination.Total)
	}
}
