// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project statuses.
const (
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectOnHold    = "on-hold"
	ProjectCancelled = "cancelled"
)

// ValidProjectStatus reports whether s is one of the allowed project statuses.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectOnHold, ProjectCancelled:
		return true
	}
	return false
}

// Project groups tasks under a color-coded banner. Tasks reference it
// optionally; deleting a project does not touch its tasks.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Color       string             `bson:"color" json:"color"` // hex, e.g. #3B82F6
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	StartDate   *time.Time         `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate     *time.Time         `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Status      string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
