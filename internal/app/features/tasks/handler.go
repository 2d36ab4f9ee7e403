package tasks

import (
	"go.uber.org/zap"

	taskstore "github.com/gridleapp/gridle/internal/app/store/tasks"
)

// Handler is the shared dependency container for the tasks feature.
type Handler struct {
	Tasks *taskstore.Store
	Log   *zap.Logger
}

func NewHandler(tasks *taskstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Tasks: tasks, Log: logger}
}
