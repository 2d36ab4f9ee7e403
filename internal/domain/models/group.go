// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group member roles within the embedded members list.
const (
	GroupRoleAdmin  = "admin"
	GroupRoleMember = "member"
)

// Group is a shared space users join by code.
//
// Invariants the group store maintains:
//   - at least one member (the creator, role "admin") from creation on
//   - JoinCode is globally unique (unique index, regenerated on collision)
//   - ownership transfer demotes the previous owner's membership entry to
//     "member" and promotes the new owner's entry to "admin"
type Group struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"createdBy"`
	Members     []GroupMember      `bson:"members" json:"members"`
	JoinCode    string             `bson:"join_code" json:"joinCode"`
	Private     bool               `bson:"private" json:"isPrivate"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// GroupMember is one entry in a group's ordered member list.
type GroupMember struct {
	UserID   primitive.ObjectID `bson:"user_id" json:"userId"`
	Role     string             `bson:"role" json:"role"` // admin | member
	JoinedAt time.Time          `bson:"joined_at" json:"joinedAt"`
}

// MemberIndex returns the position of userID in Members, or -1.
func (g *Group) MemberIndex(userID primitive.ObjectID) int {
	for i, m := range g.Members {
		if m.UserID == userID {
			return i
		}
	}
	return -1
}

// IsMember reports whether userID appears in the member list.
func (g *Group) IsMember(userID primitive.ObjectID) bool {
	return g.MemberIndex(userID) >= 0
}
