// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account holder. Role is "user" or "admin".
//
// NOTE:
//   - PasswordHash is empty for Google-federated accounts (GoogleID set).
//     One of the two must be present; the user store enforces this.
//   - Email is stored lowercased; the users collection carries a unique
//     index on it.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	GoogleID     string             `bson:"google_id,omitempty" json:"-"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Role         string             `bson:"role" json:"role"` // user | admin

	EmailVerified *time.Time `bson:"email_verified,omitempty" json:"emailVerified,omitempty"`

	ResetToken        string     `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExpires *time.Time `bson:"reset_token_expires,omitempty" json:"-"`

	Preferences Preferences `bson:"preferences" json:"preferences"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Preferences is stored and returned verbatim; the core never interprets it.
type Preferences struct {
	EmailNotifications    bool   `bson:"email_notifications" json:"emailNotifications"`
	PopupNotifications    bool   `bson:"popup_notifications" json:"popupNotifications"`
	ReminderFrequency     string `bson:"reminder_frequency" json:"reminderFrequency"`
	AIPrioritization      bool   `bson:"ai_prioritization" json:"aiPrioritization"`
	AIReminderIntensity   string `bson:"ai_reminder_intensity" json:"aiReminderIntensity"`
	GrammarAutocorrection bool   `bson:"grammar_autocorrection" json:"grammarAutocorrection"`
}

// DefaultPreferences returns the preferences assigned at registration.
func DefaultPreferences() Preferences {
	return Preferences{
		EmailNotifications:    true,
		PopupNotifications:    true,
		ReminderFrequency:     "1 hour before",
		AIPrioritization:      true,
		AIReminderIntensity:   "Medium",
		GrammarAutocorrection: true,
	}
}

// UserRef is the display form used when resolving owner/member references.
type UserRef struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}
