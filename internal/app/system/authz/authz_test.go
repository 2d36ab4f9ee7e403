package authz_test

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gridleapp/gridle/internal/app/system/auth"
	"github.com/gridleapp/gridle/internal/app/system/authz"
)

func TestUserCtx_NoUser(t *testing.T) {
	r := httptest.NewRequest("GET", "/tasks", nil)

	role, name, id, ok := authz.UserCtx(r)
	if ok {
		t.Fatal("expected ok=false without a session user")
	}
	if role != "visitor" || name != "" || id != primitive.NilObjectID {
		t.Errorf("got (%q, %q, %v)", role, name, id)
	}
}

func TestUserCtx_ValidUser(t *testing.T) {
	oid := primitive.NewObjectID()
	r := auth.WithTestUser(httptest.NewRequest("GET", "/tasks", nil), &auth.SessionUser{
		ID: oid.Hex(), Name: "Ann", Role: "Admin",
	})

	role, name, id, ok := authz.UserCtx(r)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "admin" {
		t.Errorf("role not lowercased: %q", role)
	}
	if name != "Ann" || id != oid {
		t.Errorf("got (%q, %v)", name, id)
	}
}

func TestUserCtx_MalformedIDFailsClosed(t *testing.T) {
	r := auth.WithTestUser(httptest.NewRequest("GET", "/tasks", nil), &auth.SessionUser{
		ID: "not-an-object-id", Role: "admin",
	})

	if _, _, _, ok := authz.UserCtx(r); ok {
		t.Error("malformed session ID must not authenticate")
	}
	if authz.IsAdmin(r) {
		t.Error("malformed session ID must not grant admin")
	}
}

func TestIsAdmin(t *testing.T) {
	admin := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{
		ID: primitive.NewObjectID().Hex(), Role: "admin",
	})
	user := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{
		ID: primitive.NewObjectID().Hex(), Role: "user",
	})

	if !authz.IsAdmin(admin) {
		t.Error("admin role should report IsAdmin")
	}
	if authz.IsAdmin(user) {
		t.Error("user role should not report IsAdmin")
	}
}
