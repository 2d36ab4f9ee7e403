// internal/domain/models/note.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note is a free-form text note. Same ownership scoping as Task.
// Archive is the only soft-delete in the system: archived notes are
// excluded from listings unless asked for explicitly.
type Note struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	Content  string             `bson:"content" json:"content"`
	UserID   primitive.ObjectID `bson:"user_id" json:"userId"`
	Tags     []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Archived bool               `bson:"archived" json:"archived"`
	Summary  string             `bson:"summary,omitempty" json:"summary,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
