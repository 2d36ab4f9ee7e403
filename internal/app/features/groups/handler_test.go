package groups

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/gridleapp/gridle/internal/testutil"
)

func TestHandleList_RequiresUser(t *testing.T) {
	h := NewHandler(nil, nil, nil, zap.NewNop())

	req := testutil.NewRequest(http.MethodGet, "/groups")
	rec := testutil.NewRecorder()
	h.HandleList(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestHandleCreate_ValidationErrors(t *testing.T) {
	h := NewHandler(nil, nil, nil, zap.NewNop())
	user := testutil.RegularUser()

	cases := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"missing name", `{"description":"no name"}`},
		{"short name", `{"name":"A"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.WithUser(testutil.NewJSONRequest(http.MethodPost, "/groups", tc.body), user)
			rec := testutil.NewRecorder()
			h.HandleCreate(rec.ResponseRecorder, req)

			rec.AssertStatus(t, http.StatusBadRequest)
		})
	}
}

func TestHandleJoin_RejectsMalformedCode(t *testing.T) {
	h := NewHandler(nil, nil, nil, zap.NewNop())
	user := testutil.RegularUser()

	cases := []struct {
		name string
		body string
	}{
		{"missing code", `{}`},
		{"too short", `{"joinCode":"AB1"}`},
		{"bad characters", `{"joinCode":"abc $$"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.WithUser(testutil.NewJSONRequest(http.MethodPost, "/groups/join", tc.body), user)
			rec := testutil.NewRecorder()
			h.HandleJoin(rec.ResponseRecorder, req)

			rec.AssertStatus(t, http.StatusBadRequest)
		})
	}
}
