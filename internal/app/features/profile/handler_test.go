package profile

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/gridleapp/gridle/internal/testutil"
)

func TestHandleGet_RequiresUser(t *testing.T) {
	h := NewHandler(nil, zap.NewNop())

	req := testutil.NewRequest(http.MethodGet, "/profile")
	rec := testutil.NewRecorder()
	h.HandleGet(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestHandleUpdate_ValidationErrors(t *testing.T) {
	h := NewHandler(nil, zap.NewNop())
	user := testutil.RegularUser()

	cases := []struct {
		name string
		body string
	}{
		{"short name", `{"name":"A"}`},
		{"bad intensity", `{"aiReminderIntensity":"Extreme"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.WithUser(testutil.NewJSONRequest(http.MethodPut, "/profile", tc.body), user)
			rec := testutil.NewRecorder()
			h.HandleUpdate(rec.ResponseRecorder, req)

			rec.AssertStatus(t, http.StatusBadRequest)
		})
	}
}
