package groupstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gridleapp/gridle/internal/app/system/joincode"
	"github.com/gridleapp/gridle/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

var (
	// ErrBadJoinCode means no group carries the presented join code.
	ErrBadJoinCode = errors.New("invalid join code")

	// ErrNotMember means the target user is not in the group's member list.
	ErrNotMember = errors.New("user is not a member of the group")
)

// joinCodeRetries bounds how many times Create regenerates a colliding
// join code before giving up. Collisions are vanishingly rare with a
// 36^6 space, so two retries is plenty.
const joinCodeRetries = 3

// Create inserts a group whose sole member is the creator, with role
// "admin". The join code is generated here and regenerated if it collides
// with the unique index.
func (s *Store) Create(ctx context.Context, name, description string, private bool, creatorID primitive.ObjectID) (models.Group, error) {
	now := time.Now()
	g := models.Group{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: description,
		CreatedBy:   creatorID,
		Private:     private,
		Members: []models.GroupMember{{
			UserID:   creatorID,
			Role:     models.GroupRoleAdmin,
			JoinedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	for attempt := 0; attempt < joinCodeRetries; attempt++ {
		g.JoinCode = joincode.New()
		_, err := s.c.InsertOne(ctx, g)
		if err == nil {
			return g, nil
		}
		if !wafflemongo.IsDup(err) {
			return models.Group{}, err
		}
	}
	return models.Group{}, errors.New("could not allocate a unique join code")
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// ListForUser returns every group the user appears in as a member, newest
// first.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"members.user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// JoinByCode adds the user to the group carrying code. Joining a group the
// user already belongs to is a no-op that still returns the group, so
// re-submitting a code never errors.
func (s *Store) JoinByCode(ctx context.Context, code string, userID primitive.ObjectID) (*models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"join_code": code}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBadJoinCode
		}
		return nil, err
	}
	if g.IsMember(userID) {
		return &g, nil
	}

	member := models.GroupMember{
		UserID:   userID,
		Role:     models.GroupRoleMember,
		JoinedAt: time.Now(),
	}

	// Filter re-checks non-membership so a racing double join cannot
	// produce a duplicate entry.
	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": g.ID, "members.user_id": bson.M{"$ne": userID}},
		bson.M{
			"$push": bson.M{"members": member},
			"$set":  bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var updated models.Group
	if err := res.Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Lost the race; the other join already added us.
			return s.GetByID(ctx, g.ID)
		}
		return nil, err
	}
	return &updated, nil
}

// Leave removes the user's membership entry. Returns ErrNotMember when the
// user was not in the list.
func (s *Store) Leave(ctx context.Context, groupID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": groupID, "members.user_id": userID},
		bson.M{
			"$pull": bson.M{"members": bson.M{"user_id": userID}},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotMember
	}
	return nil
}

// Update holds a partial group edit. Nil pointers leave fields untouched.
type Update struct {
	Name        *string
	Description *string
	Private     *bool
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Group, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Name != nil {
		set["name"] = *upd.Name
		set["name_ci"] = text.Fold(*upd.Name)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Private != nil {
		set["private"] = *upd.Private
	}

	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var g models.Group
	if err := res.Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// TransferOwner moves created_by to newOwnerID. The new owner must already
// be a member; their entry is promoted to "admin" and the previous owner's
// entry, if still present, is demoted to "member".
func (s *Store) TransferOwner(ctx context.Context, groupID, newOwnerID primitive.ObjectID) (*models.Group, error) {
	g, err := s.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !g.IsMember(newOwnerID) {
		return nil, ErrNotMember
	}

	prevOwner := g.CreatedBy

	if _, err := s.c.UpdateOne(ctx,
		bson.M{"_id": groupID},
		bson.M{"$set": bson.M{
			"created_by":          newOwnerID,
			"members.$[new].role": models.GroupRoleAdmin,
			"updated_at":          time.Now(),
		}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: bson.A{bson.M{"new.user_id": newOwnerID}},
		})); err != nil {
		return nil, err
	}

	if prevOwner != newOwnerID {
		if _, err := s.c.UpdateOne(ctx,
			bson.M{"_id": groupID},
			bson.M{"$set": bson.M{"members.$[old].role": models.GroupRoleMember}},
			options.Update().SetArrayFilters(options.ArrayFilters{
				Filters: bson.A{bson.M{"old.user_id": prevOwner}},
			})); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, groupID)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// RemoveMemberEverywhere pulls the user out of every member list. Part of
// the admin user-delete cascade; groups the user created are handled
// separately by ListCreatedBy plus TransferOwner or Delete.
func (s *Store) RemoveMemberEverywhere(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"members.user_id": userID},
		bson.M{
			"$pull": bson.M{"members": bson.M{"user_id": userID}},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// ListCreatedBy returns every group whose created_by is userID.
func (s *Store) ListCreatedBy(ctx context.Context, userID primitive.ObjectID) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, bson.M{"created_by": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
