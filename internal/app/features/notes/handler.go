package notes

import (
	"go.uber.org/zap"

	notestore "github.com/gridleapp/gridle/internal/app/store/notes"
)

// Handler is the shared dependency container for the notes feature.
type Handler struct {
	Notes *notestore.Store
	Log   *zap.Logger
}

func NewHandler(notes *notestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Notes: notes, Log: logger}
}
