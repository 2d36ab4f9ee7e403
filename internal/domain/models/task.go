// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task priorities and statuses. These are closed sets; the task store
// rejects anything else.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"

	TaskPending    = "pending"
	TaskInProgress = "in-progress"
	TaskCompleted  = "completed"
)

// ValidPriority reports whether p is one of the allowed task priorities.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ValidTaskStatus reports whether s is one of the allowed task statuses.
func ValidTaskStatus(s string) bool {
	return s == TaskPending || s == TaskInProgress || s == TaskCompleted
}

// Task is a single to-do item. Every task has exactly one owning user;
// all owner-scoped reads and writes filter on (_id, user_id) together.
type Task struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	DueDate     time.Time           `bson:"due_date" json:"dueDate"`
	Priority    string              `bson:"priority" json:"priority"` // Low | Medium | High
	Category    string              `bson:"category" json:"category"`
	Status      string              `bson:"status" json:"status"` // pending | in-progress | completed
	UserID      primitive.ObjectID  `bson:"user_id" json:"userId"`
	ProjectID   *primitive.ObjectID `bson:"project_id,omitempty" json:"projectId,omitempty"`
	GroupID     *primitive.ObjectID `bson:"group_id,omitempty" json:"groupId,omitempty"`

	AISuggested bool   `bson:"ai_suggested,omitempty" json:"aiSuggested,omitempty"`
	AIInsight   string `bson:"ai_insight,omitempty" json:"aiInsight,omitempty"`

	Tags        []string     `bson:"tags,omitempty" json:"tags,omitempty"`
	Attachments []Attachment `bson:"attachments,omitempty" json:"attachments,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Attachment is a file reference carried on a task.
type Attachment struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	URL  string `bson:"url" json:"url"`
	Type string `bson:"type,omitempty" json:"type,omitempty"`
}
