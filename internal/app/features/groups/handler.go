package groups

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	groupstore "github.com/gridleapp/gridle/internal/app/store/groups"
	taskstore "github.com/gridleapp/gridle/internal/app/store/tasks"
	userstore "github.com/gridleapp/gridle/internal/app/store/users"
	"github.com/gridleapp/gridle/internal/app/system/httpx"
	"github.com/gridleapp/gridle/internal/domain/models"
)

// Handler is the shared dependency container for the groups feature. It
// also needs the user and task stores: member lists are returned with
// display fields joined in, and a group's task feed lives under this
// feature.
type Handler struct {
	Groups *groupstore.Store
	Tasks  *taskstore.Store
	Users  *userstore.Store
	Log    *zap.Logger
}

func NewHandler(groups *groupstore.Store, tasks *taskstore.Store, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Groups: groups, Tasks: tasks, Users: users, Log: logger}
}

// memberView is a member entry with the user's display fields joined in.
type memberView struct {
	UserID   string    `json:"userId"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// groupView is the API shape of a group. Only members ever receive it,
// so the join code is safe to include.
type groupView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	CreatedBy   string       `json:"createdBy"`
	JoinCode    string       `json:"joinCode"`
	Private     bool         `json:"isPrivate"`
	Members     []memberView `json:"members"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// viewOf joins member display fields from the user store. Members whose
// accounts have since been removed keep their entry with blank fields.
func (h *Handler) viewOf(ctx context.Context, g *models.Group) (groupView, error) {
	ids := make([]primitive.ObjectID, 0, len(g.Members))
	for _, m := range g.Members {
		ids = append(ids, m.UserID)
	}

	refs, err := h.Users.GetRefs(ctx, ids)
	if err != nil {
		return groupView{}, err
	}

	members := make([]memberView, 0, len(g.Members))
	for _, m := range g.Members {
		mv := memberView{
			UserID:   m.UserID.Hex(),
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
		if ref, ok := refs[m.UserID]; ok {
			mv.Name = ref.Name
			mv.Email = ref.Email
		}
		members = append(members, mv)
	}

	return groupView{
		ID:          g.ID.Hex(),
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy.Hex(),
		JoinCode:    g.JoinCode,
		Private:     g.Private,
		Members:     members,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}, nil
}

// loadMemberGroup fetches a group and confirms the caller belongs to it.
// A bad id, a missing group, and a group the caller is not in all answer
// the same 404.
func (h *Handler) loadMemberGroup(ctx context.Context, w http.ResponseWriter, rawID string, userID primitive.ObjectID) (*models.Group, bool) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		httpx.WriteError(w, h.Log, httpx.NotFound("Group"))
		return nil, false
	}

	g, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		httpx.WriteError(w, h.Log, httpx.NotFound("Group"))
		return nil, false
	}
	if !g.IsMember(userID) {
		httpx.WriteError(w, h.Log, httpx.NotFound("Group"))
		return nil, false
	}
	return g, true
}

func (h *Handler) memberIsAdmin(g *models.Group, userID primitive.ObjectID) bool {
	i := g.MemberIndex(userID)
	return i >= 0 && g.Members[i].Role == models.GroupRoleAdmin
}

func (h *Handler) adminCount(g *models.Group) int {
	n := 0
	for _, m := range g.Members {
		if m.Role == models.GroupRoleAdmin {
			n++
		}
	}
	return n
}
