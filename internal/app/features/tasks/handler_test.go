package tasks

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/gridleapp/gridle/internal/testutil"
)

func TestHandleList_RequiresUser(t *testing.T) {
	h := NewHandler(nil, zap.NewNop())

	req := testutil.NewRequest(http.MethodGet, "/tasks")
	rec := testutil.NewRecorder()
	h.HandleList(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestHandleCreate_ValidationErrors(t *testing.T) {
	h := NewHandler(nil, zap.NewNop())
	user := testutil.RegularUser()

	cases := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"missing name", `{"dueDate":"2026-01-15T00:00:00Z"}`},
		{"missing due date", `{"name":"Task"}`},
		{"bad priority", `{"name":"Task","dueDate":"2026-01-15T00:00:00Z","priority":"Urgent"}`},
		{"bad status", `{"name":"Task","dueDate":"2026-01-15T00:00:00Z","status":"done"}`},
		{"bad project id", `{"name":"Task","dueDate":"2026-01-15T00:00:00Z","projectId":"nothex"}`},
		{"attachment without url", `{"name":"Task","dueDate":"2026-01-15T00:00:00Z","attachments":[{"name":"doc"}]}`},
		{"attachment with bad url", `{"name":"Task","dueDate":"2026-01-15T00:00:00Z","attachments":[{"name":"doc","url":"not a url"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.WithUser(testutil.NewJSONRequest(http.MethodPost, "/tasks", tc.body), user)
			rec := testutil.NewRecorder()
			h.HandleCreate(rec.ResponseRecorder, req)

			rec.AssertStatus(t, http.StatusBadRequest)

			var env struct {
				Success bool   `json:"success"`
				Error   string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("bad envelope: %v", err)
			}
			if env.Success || env.Error == "" {
				t.Errorf("expected failure envelope, got %+v", env)
			}
		})
	}
}

func TestHandleGet_MalformedID(t *testing.T) {
	h := NewHandler(nil, zap.NewNop())
	user := testutil.RegularUser()

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/tasks/not-an-id", user)
	req = testutil.WithChiURLParam(req, "id", "not-an-id")
	rec := testutil.NewRecorder()
	h.HandleGet(rec.ResponseRecorder, req)

	// Malformed IDs are indistinguishable from missing tasks.
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Task not found")
}

func TestBuildAttachments_AssignsUniqueIDs(t *testing.T) {
	built := buildAttachments([]attachmentRequest{
		{Name: "Design doc", URL: "https://example.com/doc", Type: "link"},
		{Name: "Mockup", URL: "https://example.com/mock.png", Type: "image"},
	})

	if len(built) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(built))
	}
	if built[0].ID == "" || built[1].ID == "" {
		t.Error("expected server-assigned attachment IDs")
	}
	if built[0].ID == built[1].ID {
		t.Error("attachment IDs should be unique")
	}
	if built[0].Name != "Design doc" || built[0].URL != "https://example.com/doc" {
		t.Errorf("attachment fields not carried over: %+v", built[0])
	}
}

func TestBuildAttachments_Empty(t *testing.T) {
	if got := buildAttachments(nil); got != nil {
		t.Errorf("expected nil for no attachments, got %+v", got)
	}
}
