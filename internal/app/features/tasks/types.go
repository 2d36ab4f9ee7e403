package tasks

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gridleapp/gridle/internal/app/system/htmlsanitize"
	"github.com/gridleapp/gridle/internal/app/system/httpx"
	"github.com/gridleapp/gridle/internal/domain/models"
)

type createRequest struct {
	Name        string    `json:"name" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	Priority    string    `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	Category    string    `json:"category" validate:"max=100"`
	Status      string    `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	ProjectID   string    `json:"projectId" validate:"omitempty,len=24,hexadecimal"`
	GroupID     string    `json:"groupId" validate:"omitempty,len=24,hexadecimal"`
	Tags        []string  `json:"tags" validate:"max=20,dive,max=50"`

	Attachments []attachmentRequest `json:"attachments" validate:"max=10,dive"`
}

// attachmentRequest carries a link-style attachment. IDs are assigned
// server-side so clients cannot collide or overwrite each other.
type attachmentRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	URL  string `json:"url" validate:"required,url,max=2000"`
	Type string `json:"type" validate:"max=50"`
}

type updateRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	Category    *string    `json:"category" validate:"omitempty,max=100"`
	Status      *string    `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	ProjectID   *string    `json:"projectId"`
	GroupID     *string    `json:"groupId"`
	Tags        *[]string  `json:"tags" validate:"omitempty,max=20,dive,max=50"`

	Attachments *[]attachmentRequest `json:"attachments" validate:"omitempty,max=10,dive"`
}

// buildAttachments assigns fresh IDs and returns model attachments.
func buildAttachments(reqs []attachmentRequest) []models.Attachment {
	if len(reqs) == 0 {
		return nil
	}
	out := make([]models.Attachment, 0, len(reqs))
	for _, a := range reqs {
		out = append(out, models.Attachment{
			ID:   uuid.NewString(),
			Name: htmlsanitize.Text(a.Name),
			URL:  a.URL,
			Type: a.Type,
		})
	}
	return out
}

// parseOptionalID turns an optional hex-string field into the store's
// double-pointer form: nil = untouched, pointer-to-nil = clear, and a
// real ID = assign. An empty string means clear.
func parseOptionalID(s *string) (**primitive.ObjectID, error) {
	if s == nil {
		return nil, nil
	}
	if *s == "" {
		var cleared *primitive.ObjectID
		return &cleared, nil
	}
	id, err := primitive.ObjectIDFromHex(*s)
	if err != nil {
		return nil, httpx.E(httpx.KindValidation, "Invalid id reference")
	}
	p := &id
	return &p, nil
}
