package admin

import (
	"go.uber.org/zap"

	groupstore "github.com/gridleapp/gridle/internal/app/store/groups"
	notestore "github.com/gridleapp/gridle/internal/app/store/notes"
	projectstore "github.com/gridleapp/gridle/internal/app/store/projects"
	statsstore "github.com/gridleapp/gridle/internal/app/store/stats"
	taskstore "github.com/gridleapp/gridle/internal/app/store/tasks"
	userstore "github.com/gridleapp/gridle/internal/app/store/users"
)

// Handler is the dependency container for the admin feature. Deleting a
// user cascades across every store, so this handler holds all of them.
type Handler struct {
	Users    *userstore.Store
	Tasks    *taskstore.Store
	Notes    *notestore.Store
	Groups   *groupstore.Store
	Projects *projectstore.Store
	Stats    *statsstore.Store
	Log      *zap.Logger
}

func NewHandler(users *userstore.Store, tasks *taskstore.Store, notes *notestore.Store, groups *groupstore.Store, projects *projectstore.Store, stats *statsstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    users,
		Tasks:    tasks,
		Notes:    notes,
		Groups:   groups,
		Projects: projects,
		Stats:    stats,
		Log:      logger,
	}
}
